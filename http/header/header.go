package header

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/xy-planning-network/relay"
	"golang.org/x/net/http/httpguts"
)

const (
	CacheControl       = "Cache-Control"
	ContentDisposition = "Content-Disposition"
	ContentLength      = "Content-Length"
	ContentRange       = "Content-Range"
	ContentType        = "Content-Type"
	Date               = "Date"
	ETag               = "ETag"
	Expires            = "Expires"
	LastModified       = "Last-Modified"
	Location           = "Location"
	Pragma             = "Pragma"
	SetCookie          = "Set-Cookie"
	TransferEncoding   = "Transfer-Encoding"
)

// An entry is one header name and the values written under it.
type entry struct {
	name   string
	values []string
}

// A Set is an ordered, case-insensitive collection of response headers.
//
// The zero value is ready to use.
type Set struct {
	entries []entry
	index   map[string]int
}

// New constructs a Set holding the provided headers.
// Invalid names or values are reported and the rest are kept.
func New(initial map[string]string) (*Set, error) {
	s := new(Set)
	var err error
	for name, value := range initial {
		if nested := s.Set(name, value); nested != nil && err == nil {
			err = nested
		}
	}

	return s, err
}

// Set writes value under name, replacing any values already there.
//
// Set returns relay.ErrNotValid if name is not an HTTP token
// or value contains bytes not allowed in a field value, like CR or LF.
func (s *Set) Set(name, value string) error {
	if err := validate(name, value); err != nil {
		return err
	}

	if i, ok := s.find(name); ok {
		s.entries[i].values = []string{value}
		return nil
	}

	s.insert(name, value)
	return nil
}

// Add appends value under name, keeping values already there.
func (s *Set) Add(name, value string) error {
	if err := validate(name, value); err != nil {
		return err
	}

	if i, ok := s.find(name); ok {
		s.entries[i].values = append(s.entries[i].values, value)
		return nil
	}

	s.insert(name, value)
	return nil
}

// Get returns the first value under name or def if there is none.
func (s *Set) Get(name, def string) string {
	i, ok := s.find(name)
	if !ok || len(s.entries[i].values) == 0 {
		return def
	}

	return s.entries[i].values[0]
}

// Values returns a copy of every value under name.
func (s *Set) Values(name string) []string {
	i, ok := s.find(name)
	if !ok {
		return nil
	}

	return append([]string(nil), s.entries[i].values...)
}

// Has reports whether name has been written.
func (s *Set) Has(name string) bool {
	_, ok := s.find(name)
	return ok
}

// Del removes name and its values.
func (s *Set) Del(name string) {
	i, ok := s.find(name)
	if !ok {
		return
	}

	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	s.reindex()
}

// Names lists header names in the order they were first written,
// in canonical form.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		names = append(names, e.name)
	}

	return names
}

// Each calls fn for every name and value pair, in order.
func (s *Set) Each(fn func(name, value string)) {
	for _, e := range s.entries {
		for _, v := range e.values {
			fn(e.name, v)
		}
	}
}

// Len returns the number of distinct header names.
func (s *Set) Len() int { return len(s.entries) }

// Clone returns a deep copy of s.
func (s *Set) Clone() *Set {
	c := new(Set)
	for _, e := range s.entries {
		c.entries = append(c.entries, entry{name: e.name, values: append([]string(nil), e.values...)})
	}
	c.reindex()

	return c
}

// Header converts s into an [http.Header].
func (s *Set) Header() http.Header {
	h := make(http.Header, len(s.entries))
	s.Each(func(name, value string) { h[name] = append(h[name], value) })
	return h
}

// SetContentType writes Content-Type for mediaType with a charset parameter.
// An empty charset defaults to utf-8.
// Binary media types ought to be written with Set instead.
func (s *Set) SetContentType(mediaType, charset string) error {
	if charset == "" {
		charset = "utf-8"
	}

	if strings.Contains(strings.ToLower(mediaType), "charset=") {
		return s.Set(ContentType, mediaType)
	}

	return s.Set(ContentType, mediaType+"; charset="+charset)
}

// SetCacheControl writes Cache-Control composed from opts.
func (s *Set) SetCacheControl(opts CacheOptions) error {
	return s.Set(CacheControl, opts.String())
}

// SetNoCache instructs clients and proxies never to reuse the response.
func (s *Set) SetNoCache() {
	// NOTE(dlk): these values are constant and valid, ignore errors
	s.Set(CacheControl, "no-cache, no-store, must-revalidate")
	s.Set(Pragma, "no-cache")
	s.Set(Expires, "0")
}

// SetDate writes Date in the HTTP time format.
func (s *Set) SetDate(t time.Time) {
	s.Set(Date, t.UTC().Format(http.TimeFormat))
}

// SetLastModified writes Last-Modified in the HTTP time format.
// A zero t removes the header.
func (s *Set) SetLastModified(t time.Time) {
	if t.IsZero() {
		s.Del(LastModified)
		return
	}

	s.Set(LastModified, t.UTC().Format(http.TimeFormat))
}

// SetETag writes ETag, quoting tag and prefixing W/ when weak.
// An empty tag removes the header.
func (s *Set) SetETag(tag string, weak bool) error {
	if tag == "" {
		s.Del(ETag)
		return nil
	}

	tag = strings.Trim(tag, `"`)
	if strings.ContainsAny(tag, "\" \t") {
		return fmt.Errorf("%w: entity tag %q", relay.ErrNotValid, tag)
	}

	val := `"` + tag + `"`
	if weak {
		val = "W/" + val
	}

	return s.Set(ETag, val)
}

func (s *Set) find(name string) (int, bool) {
	if s.index == nil {
		return 0, false
	}

	i, ok := s.index[strings.ToLower(name)]
	return i, ok
}

func (s *Set) insert(name, value string) {
	if s.index == nil {
		s.index = make(map[string]int)
	}

	s.index[strings.ToLower(name)] = len(s.entries)
	s.entries = append(s.entries, entry{name: http.CanonicalHeaderKey(name), values: []string{value}})
}

func (s *Set) reindex() {
	s.index = make(map[string]int, len(s.entries))
	for i, e := range s.entries {
		s.index[strings.ToLower(e.name)] = i
	}
}

func validate(name, value string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("%w: header name %q", relay.ErrNotValid, name)
	}

	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("%w: value for header %s", relay.ErrNotValid, name)
	}

	return nil
}
