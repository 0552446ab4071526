package resp

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/http/cookie"
	"github.com/xy-planning-network/relay/http/header"
	"github.com/xy-planning-network/relay/logger"
)

func newDraft() *Draft {
	return &Draft{
		r:      httptest.NewRequest(http.MethodGet, "http://example.com", nil),
		header: new(header.Set),
	}
}

func TestCode(t *testing.T) {
	tcs := []struct {
		name string
		code int
		err  error
	}{
		{"Min-Int32", math.MinInt32, relay.ErrNotValid},
		{"99", 99, relay.ErrNotValid},
		{"200", http.StatusOK, nil},
		{"599", 599, nil},
		{"Max-Int32", math.MaxInt32, relay.ErrNotValid},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			d := newDraft()

			// Act
			err := Code(tc.code)(Responder{}, d)

			// Assert
			require.ErrorIs(t, err, tc.err)
			if tc.err == nil {
				require.Equal(t, tc.code, d.code)
			}
		})
	}
}

func TestData(t *testing.T) {
	tcs := []struct {
		name string
		data map[string]any
	}{
		{"Zero-Value", make(map[string]any)},
		{"Data", map[string]any{"go": "rocks"}},
		{"Nil", nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			d := newDraft()

			// Act
			err := Data(tc.data)(Responder{}, d)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.data, d.data)
		})
	}
}

func TestErr(t *testing.T) {
	tcs := []struct {
		name string
		err  error
	}{
		{name: "Zero-Value", err: nil},
		{name: "Error", err: relay.ErrNotValid},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			l := newLogger()
			d := newDraft()

			// Act
			err := Err(tc.err)(Responder{logger: l}, d)

			// Assert
			require.Nil(t, err)
			require.Equal(t, http.StatusInternalServerError, d.code)
			require.Equal(t, tc.err, d.err)
			if tc.err != nil {
				require.Equal(t, tc.err.Error(), l.String())
			}
		})
	}
}

func TestCallback(t *testing.T) {
	tcs := []struct {
		name     string
		cb       string
		expected string
		err      error
	}{
		{"Empty", "", "", nil},
		{"Plain", "cb", "cb", nil},
		{"Dotted", "app.on_data", "app.on_data", nil},
		{"Sanitized", "cb();alert", "cbalert", nil},
		{"Nothing-Left", "();", "", relay.ErrNotValid},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			d := newDraft()

			err := Callback(tc.cb)(Responder{}, d)

			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.expected, d.callback)
		})
	}
}

func TestCookie(t *testing.T) {
	t.Run("Replaces", func(t *testing.T) {
		d := newDraft()

		require.Nil(t, Cookie(cookie.New("a", "1"))(Responder{}, d))
		require.Nil(t, Cookie(cookie.New("b", "2"))(Responder{}, d))
		require.Nil(t, Cookie(cookie.New("a", "3"))(Responder{}, d))

		require.Len(t, d.cookies, 2)
		require.Equal(t, "3", d.cookies[0].Value)
		require.Equal(t, "2", d.cookies[1].Value)
	})

	t.Run("Invalid", func(t *testing.T) {
		d := newDraft()
		c := cookie.New("a", "1")
		c.SameSite = cookie.SameSiteNone

		err := Cookie(c)(Responder{}, d)

		require.ErrorIs(t, err, relay.ErrNotValid)
		require.Empty(t, d.cookies)
	})
}

func TestFileFns(t *testing.T) {
	d := newDraft()

	require.Nil(t, Download("report.csv")(Responder{}, d))
	require.Equal(t, header.Attachment, d.file.Disposition)
	require.Equal(t, "report.csv", d.file.Filename)

	require.Nil(t, Inline("")(Responder{}, d))
	require.Equal(t, header.Inline, d.file.Disposition)
	require.Empty(t, d.file.Filename)

	require.Nil(t, DeleteAfterSend()(Responder{}, d))
	require.True(t, d.file.DeleteAfterSend)

	require.Nil(t, RateLimit(1024)(Responder{}, d))
	require.Equal(t, 1024, d.file.RateLimit)
	require.ErrorIs(t, RateLimit(-1)(Responder{}, d), relay.ErrNotValid)
}

func TestParam(t *testing.T) {
	t.Run("No-Url", func(t *testing.T) {
		err := Param("a", "b")(Responder{}, newDraft())
		require.ErrorIs(t, err, ErrMissingData)
	})

	t.Run("Appends", func(t *testing.T) {
		d := newDraft()
		require.Nil(t, Url("https://example.com/p?x=1")(Responder{}, d))

		require.Nil(t, Param("y", "2")(Responder{}, d))
		require.Nil(t, Param("y", "3")(Responder{}, d))

		require.Equal(t, "https://example.com/p?x=1&y=2&y=3", d.url.String())
	})
}

func TestToRoot(t *testing.T) {
	t.Run("No-Root", func(t *testing.T) {
		d := newDraft()
		require.Nil(t, Url("https://example.com/elsewhere")(Responder{}, d))

		require.Nil(t, ToRoot()(Responder{}, d))

		require.Nil(t, d.url)
	})

	t.Run("Copies-Root", func(t *testing.T) {
		// Arrange
		root, err := url.ParseRequestURI("https://example.com")
		require.Nil(t, err)
		rr := Responder{rootUrl: root}
		d := newDraft()

		// Act
		require.Nil(t, ToRoot()(rr, d))
		require.Nil(t, Param("a", "1")(rr, d))

		// Assert
		require.Equal(t, "https://example.com?a=1", d.url.String())
		require.Equal(t, "https://example.com", root.String())
	})
}

func TestUrl(t *testing.T) {
	tcs := []struct {
		name string
		url  string
		err  error
	}{
		{"Zero-Value", "", relay.ErrNotValid},
		{"Relative", "not a url", relay.ErrNotValid},
		{"Path", "/path", nil},
		{"Absolute", "https://example.com/path?q=1", nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			d := newDraft()

			err := Url(tc.url)(Responder{}, d)

			require.ErrorIs(t, err, tc.err)
			if tc.err == nil {
				require.Equal(t, tc.url, d.url.String())
			}
		})
	}
}

func TestDraftApply(t *testing.T) {
	t.Run("Copies", func(t *testing.T) {
		// Arrange
		d := newDraft()
		require.Nil(t, Header("X-One", "1")(Responder{}, d))
		require.Nil(t, Cookie(cookie.New("a", "1"))(Responder{}, d))
		require.Nil(t, NoCache()(Responder{}, d))

		res, err := New(http.StatusOK, nil)
		require.Nil(t, err)
		require.Nil(t, res.Header().Set("X-One", "0"))

		// Act
		err = d.apply(res)

		// Assert
		require.Nil(t, err)
		require.Equal(t, []string{"1"}, res.Header().Values("X-One"))
		require.True(t, res.Cookies().Has("a"))
		require.Equal(t, "no-cache", res.Header().Get(header.Pragma, ""))
	})

	t.Run("Nothing", func(t *testing.T) {
		res, err := New(http.StatusOK, nil)
		require.Nil(t, err)

		require.Nil(t, newDraft().apply(res))

		require.Zero(t, res.Header().Len())
		require.Zero(t, res.Cookies().Len())
	})
}

func TestNewLogContext(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	e := errors.New("boom")

	require.Nil(t, newLogContext(nil, nil, nil))
	require.Equal(t, &logger.LogContext{Request: r}, newLogContext(r, nil, nil))
	require.Equal(t, &logger.LogContext{Error: e}, newLogContext(nil, e, nil))
	require.Equal(t, &logger.LogContext{Data: map[string]any{"k": 1}}, newLogContext(nil, nil, map[string]any{"k": 1}))
	require.Equal(t, &logger.LogContext{}, newLogContext(nil, nil, []int{1}))
}

type testLogger struct{ *bytes.Buffer }

func newLogger() testLogger                                  { return testLogger{new(bytes.Buffer)} }
func (tl testLogger) Debug(msg string, _ *logger.LogContext) { fmt.Fprint(tl, msg) }
func (tl testLogger) Error(msg string, _ *logger.LogContext) { fmt.Fprint(tl, msg) }
func (tl testLogger) Fatal(msg string, _ *logger.LogContext) { fmt.Fprint(tl, msg) }
func (tl testLogger) Info(msg string, _ *logger.LogContext)  { fmt.Fprint(tl, msg) }
func (tl testLogger) Warn(msg string, _ *logger.LogContext)  { fmt.Fprint(tl, msg) }
func (tl testLogger) LogLevel() logger.LogLevel              { return logger.LogLevelDebug }
