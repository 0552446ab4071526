package resp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/http/conditional"
	"github.com/xy-planning-network/relay/http/header"
	"github.com/xy-planning-network/relay/http/ranges"
	"github.com/xy-planning-network/relay/http/stream"
)

const acceptRanges = "Accept-Ranges"

// displayable lists media types browsers render in place rather than download.
var displayable = map[string]bool{
	"application/pdf": true,
	"audio/mpeg":      true,
	"audio/ogg":       true,
	"audio/wav":       true,
	"audio/webm":      true,
	"image/avif":      true,
	"image/bmp":       true,
	"image/gif":       true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/svg+xml":   true,
	"image/webp":      true,
	"text/html":       true,
	"text/plain":      true,
	"video/mp4":       true,
	"video/ogg":       true,
	"video/webm":      true,
}

// FileOptions tunes how a File is described and delivered.
// Zero values fall back to defaults.
type FileOptions struct {
	// FileSystem defaults to OSFileSystem.
	FileSystem FileSystem

	// Mime defaults to GuessByExtension.
	Mime MimeGuesser

	// ETag defaults to ContentHash.
	ETag ETagStrategy

	// Cache, when set, remembers metadata between Files of the same version.
	Cache MetadataCache

	// ChunkSize defaults to stream.DefaultChunkSize.
	ChunkSize int

	// Disposition forces header.Attachment or header.Inline.
	// Left empty, displayable media types are inline and everything else an attachment.
	Disposition string

	// Filename is the name offered to the client, defaulting to the path's base name.
	Filename string

	// DeleteAfterSend removes the file once Send returns, however it went.
	DeleteAfterSend bool

	// RateLimit caps delivery at this many bytes per second; zero is unlimited.
	RateLimit int
}

func (o FileOptions) withDefaults() FileOptions {
	if o.FileSystem == nil {
		o.FileSystem = OSFileSystem{}
	}

	if o.Mime == nil {
		o.Mime = GuessByExtension
	}

	if o.ETag == "" {
		o.ETag = ContentHash
	}

	if o.ChunkSize <= 0 {
		o.ChunkSize = stream.DefaultChunkSize
	}

	return o
}

// A File is a Response delivering the contents of a file,
// honoring conditional and byte range requests.
type File struct {
	*Response

	path   string
	opts   FileOptions
	meta   conditional.Metadata
	window ranges.Window
	ranged bool
	ctx    context.Context
}

// NewFile constructs a File for the file at path.
//
// A missing path or a directory is relay.ErrNotValid.
// Failing to read the file while deriving its entity tag is relay.ErrIO.
func NewFile(ctx context.Context, path string, opts FileOptions) (*File, error) {
	opts = opts.withDefaults()
	if err := opts.ETag.Valid(); err != nil {
		return nil, err
	}

	if ctx == nil {
		ctx = context.Background()
	}

	info, err := opts.FileSystem.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w: %s", relay.ErrNotValid, relay.ErrNotExist, path)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", relay.ErrNotValid, path, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", relay.ErrNotValid, path)
	}

	meta, err := loadMetadata(ctx, opts.Cache, opts.FileSystem, path, info, opts.ETag)
	if err != nil {
		return nil, err
	}

	r, err := New(http.StatusOK, nil)
	if err != nil {
		return nil, err
	}

	f := &File{Response: r, path: path, opts: opts, meta: meta, ctx: ctx}
	if err := f.SetProducer(stream.ProducerFunc(f.produce)); err != nil {
		return nil, err
	}

	if err := f.describe(); err != nil {
		return nil, err
	}

	return f, nil
}

// Path returns where the file is read from.
func (f *File) Path() string { return f.path }

// Metadata returns the version of the file this File sends.
func (f *File) Metadata() conditional.Metadata { return f.meta }

// Window returns the byte range to be sent, if Prepare selected one.
func (f *File) Window() (ranges.Window, bool) { return f.window, f.ranged }

func (f *File) describe() error {
	mediaType := f.opts.Mime(f.path)
	if err := f.header.Set(header.ContentType, mediaType); err != nil {
		return err
	}

	kind := f.opts.Disposition
	if kind == "" {
		kind = header.Attachment
		if base, _, err := mime.ParseMediaType(mediaType); err == nil && displayable[base] {
			kind = header.Inline
		}
	}

	name := f.opts.Filename
	if name == "" {
		name = filepath.Base(f.path)
	}

	if err := f.header.SetDisposition(kind, name); err != nil {
		return err
	}

	f.header.Set(acceptRanges, "bytes")
	f.header.Set(header.ContentLength, strconv.FormatUint(f.meta.Size, 10))
	f.header.SetLastModified(f.meta.LastModified)

	return f.header.SetETag(f.meta.ETag, false)
}

// Prepare answers conditional requests with 304 Not Modified,
// then narrows delivery to a requested byte range:
// 206 Partial Content for a satisfiable one, 416 Range Not Satisfiable otherwise.
func (f *File) Prepare(req Request) {
	if f.state != Building {
		return
	}

	if req == nil {
		f.Response.Prepare(req)
		return
	}

	f.ctx = req.Context()
	method := req.Method()
	if method != http.MethodGet && method != http.MethodHead {
		f.Response.Prepare(req)
		return
	}

	if conditional.Evaluate(f.meta, req) {
		f.SetStatus(http.StatusNotModified)
		f.Response.Prepare(req)
		return
	}

	if f.code == http.StatusOK {
		f.selectRange(req)
	}

	f.Response.Prepare(req)
}

func (f *File) selectRange(req Request) {
	res := ranges.Parse(req.Header("Range"), f.meta.Size)
	if res.Kind == ranges.NoRange || !conditional.RangeAllowed(f.meta, req.Header(conditional.IfRange)) {
		return
	}

	switch res.Kind {
	case ranges.Satisfiable:
		f.SetStatus(http.StatusPartialContent)
		f.header.Set(header.ContentRange, res.Window.ContentRange())
		f.header.Set(header.ContentLength, strconv.FormatUint(res.Window.Len(), 10))
		f.window, f.ranged = res.Window, true
	case ranges.Unsatisfiable:
		f.SetStatus(http.StatusRequestedRangeNotSatisfiable)
		f.header.Set(header.ContentRange, ranges.UnsatisfiedRange(f.meta.Size))
		f.header.Del(header.ContentLength)
		f.header.Del(header.ContentDisposition)
		f.producer = nil
	}
}

// Send sends f through h, removing the file afterwards when configured to.
func (f *File) Send(h Host) error {
	err := f.Response.Send(h)
	if !f.opts.DeleteAfterSend {
		return err
	}

	if rmErr := f.opts.FileSystem.Remove(f.path); rmErr != nil && err == nil && !errors.Is(rmErr, fs.ErrNotExist) {
		return fmt.Errorf("%w: removing %s: %s", relay.ErrIO, f.path, rmErr)
	}

	return err
}

// produce copies the selected window of the file to s.
// The file is opened only now and closed on every path.
func (f *File) produce(s stream.Sink) error {
	src, err := f.opts.FileSystem.Open(f.path)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %s", relay.ErrIO, f.path, err)
	}
	defer src.Close()

	start, n := uint64(0), f.meta.Size
	if f.ranged {
		start, n = f.window.Start, f.window.Len()
	}

	if start > 0 {
		if _, err := src.Seek(int64(start), io.SeekStart); err != nil {
			return fmt.Errorf("%w: seeking %s: %s", relay.ErrIO, f.path, err)
		}
	}

	_, err = stream.CopyChunks(stream.Throttle(f.ctx, s, f.opts.RateLimit), src, int64(n), f.opts.ChunkSize)
	return err
}
