// Package streamtest provides a stream.Sink for tests.
package streamtest

import (
	"bytes"
	"errors"
)

// ErrDisconnected is returned by writes to a Recorder after it aborts.
var ErrDisconnected = errors.New("streamtest: client disconnected")

// A Recorder is a stream.Sink keeping everything written to it.
//
// With AbortAfter set above zero, the Recorder reports Aborted
// once that many writes have succeeded and refuses further writes.
type Recorder struct {
	AbortAfter int
	Writes     int
	Flushes    int

	// Chunks holds the size of every accepted write, in order.
	Chunks []int

	buf bytes.Buffer
}

func (r *Recorder) Write(p []byte) (int, error) {
	if r.Aborted() {
		return 0, ErrDisconnected
	}

	r.Writes++
	r.Chunks = append(r.Chunks, len(p))

	return r.buf.Write(p)
}

func (r *Recorder) Flush() error {
	r.Flushes++
	return nil
}

func (r *Recorder) Aborted() bool {
	return r.AbortAfter > 0 && r.Writes >= r.AbortAfter
}

// Bytes returns everything written so far.
func (r *Recorder) Bytes() []byte { return r.buf.Bytes() }

// String returns everything written so far.
func (r *Recorder) String() string { return r.buf.String() }

// Len returns the number of bytes written so far.
func (r *Recorder) Len() int { return r.buf.Len() }
