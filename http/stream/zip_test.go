package stream_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/http/stream"
	"github.com/xy-planning-network/relay/http/stream/streamtest"
)

func stringEntry(name, body string) stream.Entry {
	return stream.Entry{Name: name, Open: func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(body)), nil
	}}
}

func TestZip(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "b.txt")
	require.Nil(t, os.WriteFile(path, []byte("from disk"), 0o600))
	rec := new(streamtest.Recorder)

	// Act
	err := stream.Zip(4, stringEntry("a.txt", "hello world"), stream.FileEntry("dir/b.txt", path)).Produce(rec)

	// Assert
	require.Nil(t, err)

	zr, err := zip.NewReader(bytes.NewReader(rec.Bytes()), int64(rec.Len()))
	require.Nil(t, err)
	require.Len(t, zr.File, 2)

	expected := map[string]string{"a.txt": "hello world", "dir/b.txt": "from disk"}
	for _, f := range zr.File {
		r, err := f.Open()
		require.Nil(t, err)
		b, err := io.ReadAll(r)
		require.Nil(t, err)
		require.Nil(t, r.Close())
		require.Equal(t, expected[f.Name], string(b))
	}
}

func TestZipAborted(t *testing.T) {
	// Arrange
	var opened int
	entry := stream.Entry{Name: "x", Open: func() (io.ReadCloser, error) {
		opened++
		return io.NopCloser(strings.NewReader(strings.Repeat("x", 1<<16))), nil
	}}
	rec := &streamtest.Recorder{AbortAfter: 1}

	// Act
	err := stream.Zip(1024, entry, entry, entry).Produce(rec)

	// Assert
	require.Nil(t, err)
	require.Equal(t, 1, opened)
	require.Equal(t, 1, rec.Writes)
}

func TestZipOpenError(t *testing.T) {
	// Arrange
	entry := stream.Entry{Name: "x", Open: func() (io.ReadCloser, error) { return nil, errors.New("gone") }}

	// Act
	err := stream.Zip(0, entry).Produce(new(streamtest.Recorder))

	// Assert
	require.ErrorIs(t, err, relay.ErrIO)
}
