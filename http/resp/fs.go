package resp

import (
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
)

// A FileSystem is where File reads from.
type FileSystem interface {
	Open(path string) (io.ReadSeekCloser, error)
	Stat(path string) (fs.FileInfo, error)
	Remove(path string) error
}

// OSFileSystem is the FileSystem of the host operating system.
type OSFileSystem struct{}

func (OSFileSystem) Open(path string) (io.ReadSeekCloser, error) { return os.Open(path) }
func (OSFileSystem) Stat(path string) (fs.FileInfo, error)       { return os.Stat(path) }
func (OSFileSystem) Remove(path string) error                    { return os.Remove(path) }

// A MimeGuesser names the media type of the file at path.
type MimeGuesser func(path string) string

const octetStream = "application/octet-stream"

// GuessByExtension looks up the media type of path's extension,
// falling back to application/octet-stream.
func GuessByExtension(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}

	return octetStream
}
