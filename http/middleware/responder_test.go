package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/http/middleware"
	"github.com/xy-planning-network/relay/http/resp"
)

func TestInjectResponder(t *testing.T) {
	// Arrange + Act
	actual := middleware.InjectResponder(nil, relay.Key(""))

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	// Arrange
	rp := resp.NewResponder()

	k := relay.Key("testing-inject-responder")

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act
	middleware.InjectResponder(rp, k)(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
		actualResponder, ok := middleware.Responder(rx.Context(), k)

		// Assert
		require.True(t, ok)
		require.Equal(t, rp, actualResponder)
	})).ServeHTTP(w, r)

	// Arrange + Act
	_, ok := middleware.Responder(r.Context(), k)

	// Assert
	require.False(t, ok)
}
