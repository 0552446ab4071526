package resp

import (
	"iter"
	"net/http"

	"github.com/xy-planning-network/relay/http/header"
	"github.com/xy-planning-network/relay/http/payload"
	"github.com/xy-planning-network/relay/http/stream"
)

const accelBuffering = "X-Accel-Buffering"

// NewStream constructs a Response with code whose content p writes as it goes.
// Nothing is buffered, so no Content-Length is sent.
func NewStream(p stream.Producer, code int) (*Response, error) {
	r, err := newStreamed(code, p)
	if err != nil {
		return nil, err
	}

	r.header.Set(header.CacheControl, "no-cache")
	return r, nil
}

// NewSSE constructs a Server-Sent Events Response fed by p,
// which ought to frame messages with stream.WriteEvent.
func NewSSE(p stream.Producer) (*Response, error) {
	r, err := NewStream(p, http.StatusOK)
	if err != nil {
		return nil, err
	}

	r.header.Set(header.ContentType, stream.SSEContentType)
	r.header.Set(accelBuffering, "no")

	return r, nil
}

// NewNDJSON constructs a Response writing each item of seq as a line of JSON.
func NewNDJSON(seq iter.Seq[any], opts payload.Options) (*Response, error) {
	r, err := NewStream(stream.NDJSON(seq, opts), http.StatusOK)
	if err != nil {
		return nil, err
	}

	r.header.Set(header.ContentType, stream.NDJSONContentType)
	r.header.Set(accelBuffering, "no")

	return r, nil
}

// NewArchive constructs a Response zipping entries on the fly into a download named filename.
func NewArchive(filename string, chunkSize int, entries ...stream.Entry) (*Response, error) {
	if filename == "" {
		filename = "archive.zip"
	}

	r, err := NewStream(stream.Zip(chunkSize, entries...), http.StatusOK)
	if err != nil {
		return nil, err
	}

	r.header.Set(header.ContentType, stream.ZipContentType)
	if err := r.header.SetDownload(filename); err != nil {
		return nil, err
	}

	return r, nil
}
