package stream

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/xy-planning-network/relay"
)

// ZipContentType is the media type of a zip archive.
const ZipContentType = "application/zip"

// An Entry is one file placed in an archive.
type Entry struct {
	Name     string
	Modified time.Time
	Open     func() (io.ReadCloser, error)
}

// FileEntry constructs an Entry named name reading from the file at path.
func FileEntry(name, path string) Entry {
	e := Entry{Name: name, Open: func() (io.ReadCloser, error) { return os.Open(path) }}
	if fi, err := os.Stat(path); err == nil {
		e.Modified = fi.ModTime()
	}

	return e
}

// Zip constructs a Producer writing entries into a zip archive, one chunk of chunkSize at a time.
//
// Each entry is opened right before it is copied and closed right after.
// Cancellation is checked between entries and between chunks;
// an aborted archive is left truncated.
func Zip(chunkSize int, entries ...Entry) Producer {
	return ProducerFunc(func(s Sink) error {
		zw := zip.NewWriter(s)
		for _, e := range entries {
			if s.Aborted() {
				return nil
			}

			aborted, err := writeEntry(zw, s, e, chunkSize)
			if err != nil || aborted {
				return err
			}
		}

		if err := zw.Close(); err != nil {
			return nilIfAborted(s, err)
		}

		return nilIfAborted(s, s.Flush())
	})
}

func writeEntry(zw *zip.Writer, s Sink, e Entry, chunkSize int) (bool, error) {
	if e.Open == nil {
		return false, fmt.Errorf("%w: archive entry %s has nothing to open", relay.ErrNotValid, e.Name)
	}

	hdr := &zip.FileHeader{Name: e.Name, Method: zip.Deflate, Modified: e.Modified}
	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return false, nilIfAborted(s, err)
	}

	src, err := e.Open()
	if err != nil {
		return false, fmt.Errorf("%w: opening archive entry %s: %s", relay.ErrIO, e.Name, err)
	}
	defer src.Close()

	if _, err := CopyChunks(&entrySink{w: w, zw: zw, parent: s}, src, -1, chunkSize); err != nil {
		return false, err
	}

	return s.Aborted(), nil
}

// An entrySink feeds one archive entry, flushing the archive through to the parent Sink.
type entrySink struct {
	w      io.Writer
	zw     *zip.Writer
	parent Sink
}

func (es *entrySink) Write(p []byte) (int, error) { return es.w.Write(p) }

func (es *entrySink) Flush() error {
	if err := es.zw.Flush(); err != nil {
		return err
	}

	return es.parent.Flush()
}

func (es *entrySink) Aborted() bool { return es.parent.Aborted() }
