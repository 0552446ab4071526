package resp

import (
	"net/url"

	"github.com/xy-planning-network/relay/http/payload"
	"github.com/xy-planning-network/relay/logger"
)

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithChunkSize sets how many bytes of a file or archive entry are written between flushes.
//
// Non-positive sizes fall back to stream.DefaultChunkSize.
func WithChunkSize(n int) func(*Responder) {
	return func(d *Responder) {
		d.file.ChunkSize = n
	}
}

// WithDownloadRate caps file delivery at bytesPerSecond.
// Zero, the default, leaves delivery unthrottled.
func WithDownloadRate(bytesPerSecond int) func(*Responder) {
	return func(d *Responder) {
		if bytesPerSecond < 0 {
			bytesPerSecond = 0
		}

		d.file.RateLimit = bytesPerSecond
	}
}

// WithETagStrategy sets how entity tags for files are derived.
//
// NOTE: If s is not a known ETagStrategy, ContentHash is used.
func WithETagStrategy(s ETagStrategy) func(*Responder) {
	if s.Valid() != nil {
		s = ContentHash
	}

	return func(d *Responder) {
		d.file.ETag = s
	}
}

// WithFileSystem sets where files are read from.
func WithFileSystem(fsys FileSystem) func(*Responder) {
	return func(d *Responder) {
		d.file.FileSystem = fsys
	}
}

// WithJSONOptions sets how Json and NDJSON encode data.
func WithJSONOptions(opts payload.Options) func(*Responder) {
	return func(d *Responder) {
		d.jsonOpts = opts
	}
}

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, a defaultLogger will be configured.
func WithLogger(log logger.Logger) func(*Responder) {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithMetadataCache sets where file metadata is remembered between requests.
func WithMetadataCache(c MetadataCache) func(*Responder) {
	return func(d *Responder) {
		d.file.Cache = c
	}
}

// WithMimeGuesser sets how a file's media type is derived from its path.
func WithMimeGuesser(fn MimeGuesser) func(*Responder) {
	return func(d *Responder) {
		d.file.Mime = fn
	}
}

// WithRootUrl sets the provided URL after parsing it into a *url.URL to use for redirecting
//
// NOTE: If u fails parsing by url.ParseRequestURI, the root URL becomes https://example.com
func WithRootUrl(u string) func(*Responder) {
	good, err := url.ParseRequestURI(u)
	if err != nil {
		good, _ = url.ParseRequestURI("https://example.com")
	}

	return func(d *Responder) {
		d.rootUrl = good
	}
}
