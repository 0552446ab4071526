package main

import (
	"archive/zip"
	"bufio"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/relay/http/resp"
	"github.com/xy-planning-network/relay/logger"
)

func newHandler(t *testing.T) *Handler {
	root := t.TempDir()
	require.Nil(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("alpha"), 0o644))
	require.Nil(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("bravo"), 0o644))
	require.Nil(t, os.Mkdir(filepath.Join(root, "skip"), 0o755))

	rp := resp.NewResponder(resp.WithLogger(logger.New(logger.WithOutput(new(bytes.Buffer)))))
	return &Handler{Responder: rp, root: root, tick: time.Millisecond}
}

func TestNow(t *testing.T) {
	tcs := []struct {
		name   string
		query  string
		code   int
		prefix string
	}{
		{"JSON", "", http.StatusOK, `{"now":"`},
		{"JSONP", "?callback=show", http.StatusOK, `/**/show({"now":"`},
		{"Bad-Callback", "?callback=%3C%3E", http.StatusBadRequest, ""},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			h := newHandler(t)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/now"+tc.query, nil)

			// Act
			h.now(w, r)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.True(t, strings.HasPrefix(w.Body.String(), tc.prefix), w.Body.String())
		})
	}
}

func TestEvents(t *testing.T) {
	// Arrange
	h := newHandler(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)

	// Act
	h.events(w, r)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	require.Contains(t, w.Body.String(), "event: tick\ndata: 0\n\n")
}

func TestNumbers(t *testing.T) {
	tcs := []struct {
		name  string
		query string
		code  int
		lines int
	}{
		{"Three", "?n=3", http.StatusOK, 3},
		{"None", "?n=0", http.StatusOK, 0},
		{"Missing", "", http.StatusBadRequest, 1},
		{"Too-Many", "?n=10001", http.StatusBadRequest, 1},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			h := newHandler(t)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/numbers"+tc.query, nil)

			// Act
			h.numbers(w, r)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.lines, strings.Count(w.Body.String(), "\n"))
		})
	}
}

func TestArchive(t *testing.T) {
	// Arrange
	h := newHandler(t)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/archive", nil)

	// Act
	h.archive(w, r)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	require.Nil(t, err)

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	require.ElementsMatch(t, []string{"a.txt", "b.txt"}, names)
}

func TestReport(t *testing.T) {
	// Arrange
	h := newHandler(t)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/report", nil)

	// Act
	h.report(w, r)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="squares.csv"`)

	sc := bufio.NewScanner(bytes.NewReader(w.Body.Bytes()))
	var lines int
	for sc.Scan() {
		lines++
	}
	require.Equal(t, 101, lines)
}
