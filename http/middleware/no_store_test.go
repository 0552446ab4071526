package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/relay/http/header"
	"github.com/xy-planning-network/relay/http/middleware"
)

func TestNoStore(t *testing.T) {
	tcs := []struct {
		name     string
		handler  http.Handler
		expected string
	}{
		{"Default", noopHandler(), "no-cache, no-store, must-revalidate"},
		{
			"Handler-Wins",
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set(header.CacheControl, "max-age=60")
			}),
			"max-age=60",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

			// Act
			middleware.NoStore()(tc.handler).ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.expected, w.Header().Get(header.CacheControl))
		})
	}
}
