package middleware

import (
	"net/http"

	"github.com/xy-planning-network/relay/http/header"
)

// NoStore marks every response as one clients and proxies must never reuse.
// Responses setting their own Cache-Control still win.
func NoStore() Adapter {
	hs := new(header.Set)
	hs.SetNoCache()
	values := hs.Header()

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			dst := w.Header()
			for name, vals := range values {
				dst[name] = append([]string(nil), vals...)
			}

			h.ServeHTTP(w, r)
		})
	}
}
