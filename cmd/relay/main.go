/*
Package main runs a demo relay app answering with each kind of response:

  - GET /files/{path}: files beneath FILE_ROOT, with conditional and byte range requests
  - GET /api/now: the time as JSON, or JSONP given ?callback=
  - GET /events: a Server-Sent Events tick every second
  - GET /numbers?n=: n numbers as NDJSON
  - GET /archive: FILE_ROOT's top-level files zipped as they are read
  - GET /report: a generated CSV download deleted once sent
*/
package main

import (
	"os"

	"github.com/xy-planning-network/relay/http/middleware"
	"github.com/xy-planning-network/relay/http/router"
	"github.com/xy-planning-network/relay/ranger"
)

func main() {
	rng, err := ranger.New()
	if err != nil {
		// NOTE(dlk): no logger exists yet
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	h := &Handler{Responder: rng.Responder, root: rng.EmitConfig().FileRoot}

	rng.ServeFiles("/files", h.root, rng.Responder)
	rng.HandleRoutes(
		[]router.Route{
			{Path: "/api/now", Method: "GET", Handler: h.now},
			{Path: "/numbers", Method: "GET", Handler: h.numbers},
		},
		middleware.NoStore(),
	)
	rng.HandleRoutes([]router.Route{
		{Path: "/events", Method: "GET", Handler: h.events},
		{Path: "/archive", Method: "GET", Handler: h.archive},
		{Path: "/report", Method: "GET", Handler: h.report},
	})

	if err := rng.Guide(); err != nil {
		rng.EmitLogger().Fatal(err.Error(), nil)
	}
}
