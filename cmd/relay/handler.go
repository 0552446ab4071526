package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/http/resp"
	"github.com/xy-planning-network/relay/http/stream"
)

const maxNumbers = 10_000

// Handler shares the initialized Responder across all demo responses.
type Handler struct {
	*resp.Responder

	root string
	tick time.Duration
}

func (h *Handler) now(w http.ResponseWriter, r *http.Request) {
	opts := []resp.Fn{resp.Data(map[string]any{"now": time.Now().UTC().Format(time.RFC3339)})}
	if cb := r.URL.Query().Get("callback"); cb != "" {
		opts = append(opts, resp.Callback(cb))
	}

	if err := h.Json(w, r, opts...); err != nil && !errors.Is(err, resp.ErrDone) {
		h.Err(w, r, err, resp.Code(http.StatusBadRequest))
	}
}

func (h *Handler) events(w http.ResponseWriter, r *http.Request) {
	tick := h.tick
	if tick <= 0 {
		tick = time.Second
	}

	p := stream.ProducerFunc(func(s stream.Sink) error {
		t := time.NewTicker(tick)
		defer t.Stop()

		for i := 0; ; i++ {
			ev := stream.Event{
				ID:    uuid.NewString(),
				Event: "tick",
				Data:  strconv.Itoa(i),
			}
			if err := stream.WriteEvent(s, ev); err != nil {
				return err
			}

			select {
			case <-r.Context().Done():
				return nil
			case <-t.C:
			}

			if s.Aborted() {
				return nil
			}
		}
	})

	h.SSE(w, r, p)
}

func (h *Handler) numbers(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.URL.Query().Get("n"))
	if err != nil || n < 0 || n > maxNumbers {
		h.Err(w, r, fmt.Errorf("%w: n must be between 0 and %d", relay.ErrNotValid, maxNumbers), resp.Code(http.StatusBadRequest))
		return
	}

	h.NDJSON(w, r, count(n))
}

func count(n int) iter.Seq[any] {
	return func(yield func(any) bool) {
		for i := 1; i <= n; i++ {
			if !yield(map[string]int{"n": i}) {
				return
			}
		}
	}
}

func (h *Handler) archive(w http.ResponseWriter, r *http.Request) {
	des, err := os.ReadDir(h.root)
	if err != nil {
		h.Err(w, r, nil)
		return
	}

	entries := make([]stream.Entry, 0, len(des))
	for _, de := range des {
		if !de.Type().IsRegular() {
			continue
		}

		entries = append(entries, stream.FileEntry(de.Name(), filepath.Join(h.root, de.Name())))
	}

	h.Archive(w, r, "files.zip", entries)
}

// report writes a CSV to a temporary file and offers it as a download, removing it afterwards.
func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	f, err := os.CreateTemp("", "report-*.csv")
	if err != nil {
		h.Err(w, r, fmt.Errorf("%w: %s", relay.ErrIO, err))
		return
	}

	cw := csv.NewWriter(f)
	cw.Write([]string{"n", "square"})
	for i := 1; i <= 100; i++ {
		cw.Write([]string{strconv.Itoa(i), strconv.Itoa(i * i)})
	}
	cw.Flush()

	if err := errors.Join(cw.Error(), f.Close()); err != nil {
		os.Remove(f.Name())
		h.Err(w, r, fmt.Errorf("%w: %s", relay.ErrIO, err))
		return
	}

	h.File(w, r, f.Name(), resp.Download("squares.csv"), resp.DeleteAfterSend())
}
