package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/http/resp"
)

// InjectResponder stores a *resp.Responder in the *http.Request.Context
// thereby making it available to handlers.
func InjectResponder(rp *resp.Responder, key relay.Key) Adapter {
	if rp == nil || key == "" {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handler.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), key, rp)))
		})
	}
}

// Responder retrieves the *resp.Responder InjectResponder stored under key.
func Responder(ctx context.Context, key relay.Key) (*resp.Responder, bool) {
	rp, ok := ctx.Value(key).(*resp.Responder)
	return rp, ok && rp != nil
}
