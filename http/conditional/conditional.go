package conditional

import (
	"net/http"
	"strings"
	"time"
)

const (
	IfModifiedSince = "If-Modified-Since"
	IfNoneMatch     = "If-None-Match"
	IfRange         = "If-Range"
)

// Metadata describes the version of a resource a response carries.
//
// ETag is the opaque tag, without quotes or a W/ prefix.
type Metadata struct {
	ETag         string
	LastModified time.Time
	Size         uint64
}

// A Request exposes the headers conditional evaluation reads.
type Request interface {
	Header(name string) string
	HasConditionalHeaders() bool
}

type httpRequest struct{ r *http.Request }

// FromHTTP adapts r into a Request.
// A nil r has no headers.
func FromHTTP(r *http.Request) Request { return httpRequest{r} }

func (h httpRequest) Header(name string) string {
	if h.r == nil {
		return ""
	}

	return h.r.Header.Get(name)
}

func (h httpRequest) HasConditionalHeaders() bool {
	return h.Header(IfModifiedSince) != "" || h.Header(IfNoneMatch) != ""
}

// Evaluate calls NotModified with the validators req carries.
func Evaluate(meta Metadata, req Request) bool {
	if req == nil || !req.HasConditionalHeaders() {
		return false
	}

	return NotModified(meta, req.Header(IfModifiedSince), req.Header(IfNoneMatch))
}

// NotModified reports whether a client holding the validators
// ifModifiedSince and ifNoneMatch already has the version meta describes.
//
// Either validator matching is enough.
// A malformed ifModifiedSince is treated as absent.
func NotModified(meta Metadata, ifModifiedSince, ifNoneMatch string) bool {
	if ifNoneMatch != "" && meta.ETag != "" && matchAny(ifNoneMatch, meta.ETag) {
		return true
	}

	if ifModifiedSince == "" || meta.LastModified.IsZero() {
		return false
	}

	since, err := http.ParseTime(ifModifiedSince)
	if err != nil {
		return false
	}

	return !since.Before(meta.LastModified.Truncate(time.Second))
}

// RangeAllowed reports whether a Range request ought to be honored given its If-Range value.
//
// An empty ifRange always allows.
// An entity tag must match meta.ETag strongly; a date must equal meta.LastModified to the second.
func RangeAllowed(meta Metadata, ifRange string) bool {
	ifRange = strings.TrimSpace(ifRange)
	if ifRange == "" {
		return true
	}

	if strings.HasPrefix(ifRange, "W/") {
		return false
	}

	if strings.HasPrefix(ifRange, `"`) {
		return meta.ETag != "" && strings.Trim(ifRange, `"`) == meta.ETag
	}

	at, err := http.ParseTime(ifRange)
	if err != nil || meta.LastModified.IsZero() {
		return false
	}

	return at.Equal(meta.LastModified.Truncate(time.Second))
}

// matchAny reports whether any entity tag in the comma separated list matches etag,
// ignoring weakness.
func matchAny(list, etag string) bool {
	for _, tag := range strings.Split(list, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" {
			return true
		}

		tag = strings.TrimPrefix(tag, "W/")
		if strings.Trim(tag, `"`) == etag {
			return true
		}
	}

	return false
}
