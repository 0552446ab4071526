package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/xy-planning-network/relay"
)

// DefaultChunkSize bounds how much of a source is held in memory per write.
const DefaultChunkSize = 8 << 10

// CopyChunks copies up to n bytes of src to s in chunks of chunkSize,
// flushing after each chunk. A negative n copies until src is exhausted.
//
// CopyChunks checks s.Aborted after every chunk and stops without error once it reports true.
// It returns the bytes written, which never includes a chunk the sink refused.
// Failing to read src, or src ending before n bytes, is relay.ErrIO.
func CopyChunks(s Sink, src io.Reader, n int64, chunkSize int) (int64, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	buf := make([]byte, chunkSize)
	var written int64
	for n < 0 || written < n {
		if s.Aborted() {
			return written, nil
		}

		want := int64(len(buf))
		if n >= 0 && n-written < want {
			want = n - written
		}

		read, rerr := io.ReadFull(src, buf[:want])
		if read > 0 {
			wrote, werr := s.Write(buf[:read])
			written += int64(wrote)
			if werr != nil {
				return written, nilIfAborted(s, werr)
			}

			if ferr := s.Flush(); ferr != nil {
				return written, nilIfAborted(s, ferr)
			}
		}

		switch {
		case rerr == nil:
		case n < 0 && (errors.Is(rerr, io.EOF) || errors.Is(rerr, io.ErrUnexpectedEOF)):
			return written, nil
		case errors.Is(rerr, io.EOF), errors.Is(rerr, io.ErrUnexpectedEOF):
			return written, fmt.Errorf("%w: source ended after %d of %d bytes", relay.ErrIO, written, n)
		default:
			return written, fmt.Errorf("%w: %s", relay.ErrIO, rerr)
		}
	}

	return written, nil
}

// nilIfAborted swallows err when it stems from the client going away.
func nilIfAborted(s Sink, err error) error {
	if err == nil || s.Aborted() {
		return nil
	}

	return fmt.Errorf("%w: %s", relay.ErrIO, err)
}
