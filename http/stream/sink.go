package stream

import (
	"context"
	"io"
	"net/http"
)

// A Sink accepts response content for a single client.
type Sink interface {
	io.Writer

	// Flush pushes buffered content to the client.
	Flush() error

	// Aborted reports whether the client has disconnected.
	Aborted() bool
}

// A Producer writes the whole of a streamed response to a Sink.
type Producer interface {
	Produce(s Sink) error
}

// ProducerFunc adapts a function into a Producer.
type ProducerFunc func(s Sink) error

func (fn ProducerFunc) Produce(s Sink) error { return fn(s) }

// WriterSink adapts an io.Writer into a Sink.
//
// Flush calls w's Flush method, if any.
// The Sink reports Aborted once ctx is done or a write to w has failed.
type WriterSink struct {
	ctx    context.Context
	w      io.Writer
	broken bool
}

// NewWriterSink constructs a WriterSink writing to w for as long as ctx lives.
func NewWriterSink(ctx context.Context, w io.Writer) *WriterSink {
	if ctx == nil {
		ctx = context.Background()
	}

	return &WriterSink{ctx: ctx, w: w}
}

func (s *WriterSink) Write(p []byte) (int, error) {
	if s.Aborted() {
		return 0, io.ErrClosedPipe
	}

	n, err := s.w.Write(p)
	if err != nil {
		s.broken = true
	}

	return n, err
}

func (s *WriterSink) Flush() error {
	if s.Aborted() {
		return nil
	}

	var err error
	switch f := s.w.(type) {
	case interface{ Flush() error }:
		err = f.Flush()
	case http.Flusher:
		f.Flush()
	}

	if err != nil {
		s.broken = true
	}

	return err
}

func (s *WriterSink) Aborted() bool {
	return s.broken || s.ctx.Err() != nil
}
