package conditional_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/relay/http/conditional"
)

var modified = time.Date(2024, time.March, 10, 12, 0, 0, 500, time.UTC)

func TestNotModified(t *testing.T) {
	meta := conditional.Metadata{ETag: "abc", LastModified: modified, Size: 10}

	tcs := []struct {
		name        string
		since       string
		noneMatch   string
		notModified bool
	}{
		{"Nothing", "", "", false},
		{"ETag-Match", "", `"abc"`, true},
		{"ETag-Mismatch", "", `"xyz"`, false},
		{"ETag-In-List", "", `"xyz", W/"abc"`, true},
		{"ETag-Star", "", "*", true},
		{"Since-Earlier", "Sun, 10 Mar 2024 11:59:59 GMT", "", false},
		{"Since-Equal", "Sun, 10 Mar 2024 12:00:00 GMT", "", true},
		{"Since-Later", "Mon, 11 Mar 2024 00:00:00 GMT", "", true},
		{"Since-Malformed", "yesterday", "", false},
		{"Either-Matches", "Sun, 10 Mar 2024 11:00:00 GMT", `"abc"`, true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.notModified, conditional.NotModified(meta, tc.since, tc.noneMatch))
		})
	}
}

func TestNotModifiedUnknownResource(t *testing.T) {
	require.False(t, conditional.NotModified(conditional.Metadata{}, "Sun, 10 Mar 2024 12:00:00 GMT", "*"))
}

func TestRangeAllowed(t *testing.T) {
	meta := conditional.Metadata{ETag: "abc", LastModified: modified}

	tcs := []struct {
		name    string
		ifRange string
		allowed bool
	}{
		{"Empty", "", true},
		{"Strong-Match", `"abc"`, true},
		{"Mismatch", `"xyz"`, false},
		{"Weak", `W/"abc"`, false},
		{"Date-Equal", "Sun, 10 Mar 2024 12:00:00 GMT", true},
		{"Date-Later", "Sun, 10 Mar 2024 12:00:01 GMT", false},
		{"Garbage", "nope", false},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.allowed, conditional.RangeAllowed(meta, tc.ifRange))
		})
	}
}

func TestEvaluate(t *testing.T) {
	// Arrange
	meta := conditional.Metadata{ETag: "abc"}
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	// Act + Assert
	require.False(t, conditional.Evaluate(meta, conditional.FromHTTP(r)))

	r.Header.Set(conditional.IfNoneMatch, `"abc"`)
	require.True(t, conditional.FromHTTP(r).HasConditionalHeaders())
	require.True(t, conditional.Evaluate(meta, conditional.FromHTTP(r)))

	require.False(t, conditional.Evaluate(meta, nil))
	require.False(t, conditional.FromHTTP(nil).HasConditionalHeaders())
}
