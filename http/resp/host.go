package resp

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httputil"
	"strconv"

	"github.com/xy-planning-network/relay/http/header"
	"github.com/xy-planning-network/relay/http/stream"
)

// A Head is everything a Host commits before content.
type Head struct {
	Proto  string
	Code   int
	Text   string
	Header *header.Set

	// Bodiless is set when no content follows, as for HEAD requests or 304 replies.
	Bodiless bool
}

// A Host is the transport a Response is sent through.
type Host interface {
	stream.Sink

	// HeadersSent reports whether this exchange has already committed its headers,
	// possibly by code outside the Response.
	HeadersSent() bool

	// WriteHead commits the status line and headers.
	WriteHead(h Head) error
}

// A Finisher is a Host that can end the exchange once content is written.
type Finisher interface {
	Finish() error
}

// HeaderWriter is implemented by http.ResponseWriters that record whether WriteHeader was called,
// like the one middleware.LogRequest installs.
type HeaderWriter interface {
	HeaderWritten() bool
}

// An HTTPHost sends a Response through net/http.
type HTTPHost struct {
	w       http.ResponseWriter
	rc      *http.ResponseController
	ctx     context.Context
	written bool
	broken  bool
}

// NewHTTPHost constructs an HTTPHost replying to r through w.
// The client counts as gone once r's context is done.
func NewHTTPHost(w http.ResponseWriter, r *http.Request) *HTTPHost {
	ctx := context.Background()
	if r != nil {
		ctx = r.Context()
	}

	return &HTTPHost{w: w, rc: http.NewResponseController(w), ctx: ctx}
}

// HeadersSent asks w, or any http.ResponseWriter it wraps, whether headers went out already.
func (h *HTTPHost) HeadersSent() bool {
	if h.written {
		return true
	}

	w := h.w
	for w != nil {
		if hw, ok := w.(HeaderWriter); ok && hw.HeaderWritten() {
			return true
		}

		u, ok := w.(interface{ Unwrap() http.ResponseWriter })
		if !ok {
			break
		}
		w = u.Unwrap()
	}

	return false
}

// WriteHead copies hd.Header into w and writes the status code.
// net/http composes the status line itself, so hd.Proto and hd.Text go unused.
func (h *HTTPHost) WriteHead(hd Head) error {
	dst := h.w.Header()
	for name, values := range hd.Header.Header() {
		dst[name] = values
	}

	h.w.WriteHeader(hd.Code)
	h.written = true

	return nil
}

func (h *HTTPHost) Write(p []byte) (int, error) {
	if h.Aborted() {
		return 0, io.ErrClosedPipe
	}

	n, err := h.w.Write(p)
	if err != nil {
		h.broken = true
	}

	return n, err
}

// Flush pushes buffered content to the client.
// Writers that cannot flush are tolerated.
func (h *HTTPHost) Flush() error {
	if h.Aborted() {
		return nil
	}

	err := h.rc.Flush()
	if errors.Is(err, http.ErrNotSupported) {
		return nil
	}

	if err != nil {
		h.broken = true
	}

	return err
}

func (h *HTTPHost) Aborted() bool {
	return h.broken || h.ctx.Err() != nil
}

// A WireHost writes a Response as raw HTTP/1.x bytes.
//
// Content of unknown length on HTTP/1.1 is sent with chunked transfer coding,
// terminated by Finish.
type WireHost struct {
	buf     *bufio.Writer
	dst     io.Writer
	body    io.WriteCloser
	ctx     context.Context
	sent    bool
	chunked bool
	broken  bool
}

// NewWireHost constructs a WireHost writing to w for as long as ctx lives.
func NewWireHost(ctx context.Context, w io.Writer) *WireHost {
	if ctx == nil {
		ctx = context.Background()
	}

	return &WireHost{buf: bufio.NewWriter(w), dst: w, ctx: ctx}
}

func (h *WireHost) HeadersSent() bool { return h.sent }

// WriteHead writes the status line, as in "HTTP/1.1 200 OK", then each header line.
func (h *WireHost) WriteHead(hd Head) error {
	if !hd.Bodiless && hd.Proto == "1.1" && !hd.Header.Has(header.ContentLength) {
		h.chunked = true
		hd.Header = hd.Header.Clone()
		hd.Header.Set(header.TransferEncoding, "chunked")
	}

	h.sent = true
	h.buf.WriteString("HTTP/" + hd.Proto + " " + strconv.Itoa(hd.Code) + " " + hd.Text + "\r\n")
	hd.Header.Each(func(name, value string) {
		h.buf.WriteString(name + ": " + value + "\r\n")
	})
	h.buf.WriteString("\r\n")

	if h.chunked {
		h.body = httputil.NewChunkedWriter(h.buf)
	}

	return h.Flush()
}

func (h *WireHost) Write(p []byte) (int, error) {
	if h.Aborted() {
		return 0, io.ErrClosedPipe
	}

	var w io.Writer = h.buf
	if h.body != nil {
		w = h.body
	}

	n, err := w.Write(p)
	if err != nil {
		h.broken = true
	}

	return n, err
}

func (h *WireHost) Flush() error {
	if h.Aborted() {
		return nil
	}

	if err := h.buf.Flush(); err != nil {
		h.broken = true
		return err
	}

	if f, ok := h.dst.(interface{ Flush() error }); ok {
		return f.Flush()
	}

	return nil
}

func (h *WireHost) Aborted() bool {
	return h.broken || h.ctx.Err() != nil
}

// Finish terminates chunked content and flushes everything written.
func (h *WireHost) Finish() error {
	if h.body != nil {
		if err := h.body.Close(); err != nil {
			return err
		}
		h.body = nil

		if _, err := h.buf.WriteString("\r\n"); err != nil {
			return err
		}
	}

	return h.Flush()
}
