package middleware

import (
	"net/http"
	"net/url"

	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/http/resp"
)

// ForceHTTPS redirects HTTP requests to HTTPS if the environment is not "development".
//
// The "X-Forwarded-Proto" is used to check whether HTTP was requested due to a relay application
// running behind a proxy.
func ForceHTTPS(env relay.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-Forwarded-Proto") == "https" || r.TLS != nil {
				handler.ServeHTTP(w, r)
				return
			}

			u := new(url.URL)
			*u = *r.URL
			u.Scheme = "https"
			u.Host = r.Host

			rd, err := resp.NewRedirect(u.String(), http.StatusPermanentRedirect)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			rd.Prepare(resp.FromHTTP(r))
			rd.Send(resp.NewHTTPHost(w, r))
		})
	}
}
