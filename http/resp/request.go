package resp

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/relay/http/conditional"
)

// A Request exposes what preparing a Response reads from the request it answers.
type Request interface {
	conditional.Request

	Context() context.Context
	Method() string
}

type httpRequest struct {
	conditional.Request
	r *http.Request
}

// FromHTTP adapts r into a Request.
func FromHTTP(r *http.Request) Request {
	return httpRequest{Request: conditional.FromHTTP(r), r: r}
}

func (h httpRequest) Context() context.Context {
	if h.r == nil {
		return context.Background()
	}

	return h.r.Context()
}

func (h httpRequest) Method() string {
	if h.r == nil {
		return http.MethodGet
	}

	return h.r.Method
}
