package middleware

import (
	"net/http"
)

// An Adapter allows chaining middlewares together.
type Adapter func(http.Handler) http.Handler

// Chain glues the set of adapters to the handler.
func Chain(handler http.Handler, adapters ...Adapter) http.Handler {
	//NOTE: Loop in reverse to preserve middleware order
	for i := len(adapters) - 1; i >= 0; i-- {
		handler = adapters[i](handler)
	}

	return handler
}

// NoopAdapter hands back h untouched.
// Middlewares missing what they need to operate return it.
func NoopAdapter(h http.Handler) http.Handler { return h }

// Compose folds adapters into one Adapter applying them in the order given,
// as Chain would.
func Compose(adapters ...Adapter) Adapter {
	if len(adapters) == 0 {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler { return Chain(h, adapters...) }
}
