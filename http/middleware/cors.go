package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORS sets "Access-Control-Allowed" style headers on a response.
// The handler including this middleware must also handle the http.MethodOptions method
// and not just the HTTP method it's designed for.
//
// Browsers on base may send conditional and byte range requests,
// and read the headers describing partial content and downloads.
//
// If base is empty, NoopAdapter returns and this middleware does nothing.
func CORS(base string) Adapter {
	if base == "" {
		return NoopAdapter
	}

	return handlers.CORS(
		handlers.AllowedHeaders([]string{
			"Content-Type",
			"If-Modified-Since",
			"If-None-Match",
			"If-Range",
			"Range",
			RequestIDHeader,
		}),
		handlers.AllowedOrigins([]string{base}),
		handlers.AllowedMethods([]string{
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
			http.MethodPost,
		}),
		handlers.ExposedHeaders([]string{
			"Accept-Ranges",
			"Content-Disposition",
			"Content-Length",
			"Content-Range",
			"ETag",
			"Last-Modified",
			RequestIDHeader,
		}),
	)
}
