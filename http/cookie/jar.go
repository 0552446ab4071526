package cookie

import (
	"fmt"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/xy-planning-network/relay"
)

// ForeverAge is the longest lifetime browsers honor for a cookie.
const ForeverAge = 400 * 24 * time.Hour

// A Jar is the ordered set of Directives a response will send.
//
// The zero value is ready to use.
type Jar struct {
	directives []Directive
	now        func() time.Time
}

// NewJar constructs an empty Jar.
func NewJar() *Jar { return &Jar{now: time.Now} }

// Set stores d, replacing a Directive with the same name in place.
func (j *Jar) Set(d Directive) error {
	if err := d.Valid(); err != nil {
		return err
	}

	for i := range j.directives {
		if j.directives[i].Name == d.Name {
			j.directives[i] = d
			return nil
		}
	}

	j.directives = append(j.directives, d)
	return nil
}

// SetEncoded encodes d.Value with codecs and stores the result as a raw Directive.
func (j *Jar) SetEncoded(d Directive, codecs ...securecookie.Codec) error {
	if len(codecs) == 0 {
		return fmt.Errorf("%w: no codecs to encode cookie %s", relay.ErrBadConfig, d.Name)
	}

	encoded, err := securecookie.EncodeMulti(d.Name, d.Value, codecs...)
	if err != nil {
		return fmt.Errorf("%w: cookie %s: %s", relay.ErrEncoding, d.Name, err)
	}

	d.Value = encoded
	d.Raw = true

	return j.Set(d)
}

// Decode reverses SetEncoded for a value read back from a request.
func Decode(name, encoded string, codecs ...securecookie.Codec) (string, error) {
	var val string
	if err := securecookie.DecodeMulti(name, encoded, &val, codecs...); err != nil {
		return "", fmt.Errorf("%w: cookie %s: %s", relay.ErrNotValid, name, err)
	}

	return val, nil
}

// Get returns the Directive stored under name.
func (j *Jar) Get(name string) (Directive, bool) {
	for _, d := range j.directives {
		if d.Name == name {
			return d, true
		}
	}

	return Directive{}, false
}

// Has reports whether a Directive is stored under name.
func (j *Jar) Has(name string) bool {
	_, ok := j.Get(name)
	return ok
}

// Remove drops the Directive stored under name, if any.
//
// Remove does not instruct the client to delete the cookie; use Expire for that.
func (j *Jar) Remove(name string) {
	for i := range j.directives {
		if j.directives[i].Name == name {
			j.directives = append(j.directives[:i], j.directives[i+1:]...)
			return
		}
	}
}

// Forever stores a cookie lasting as long as clients allow.
func (j *Jar) Forever(name, value string) error {
	d := New(name, value)
	d.Expires = j.clock().Add(ForeverAge)
	d.MaxAge = int(ForeverAge / time.Second)

	return j.Set(d)
}

// Expire instructs the client to delete the cookie named name at path and domain.
func (j *Jar) Expire(name, path, domain string) error {
	d := New(name, "")
	d.Path = path
	d.Domain = domain
	d.Expires = time.Unix(0, 0)
	d.MaxAge = -1

	return j.Set(d)
}

// Directives returns a copy of the stored Directives in the order first set.
func (j *Jar) Directives() []Directive {
	return append([]Directive(nil), j.directives...)
}

// Len returns the number of stored Directives.
func (j *Jar) Len() int { return len(j.directives) }

// Lines serializes every Directive into a Set-Cookie header value.
func (j *Jar) Lines() []string {
	lines := make([]string, 0, len(j.directives))
	for _, d := range j.directives {
		lines = append(lines, d.String())
	}

	return lines
}

func (j *Jar) clock() time.Time {
	if j.now == nil {
		return time.Now()
	}

	return j.now()
}
