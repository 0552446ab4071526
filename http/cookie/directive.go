package cookie

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/xy-planning-network/relay"
	"golang.org/x/net/http/httpguts"
)

// A SameSite is the cross-site policy a client applies to a cookie.
type SameSite string

const (
	SameSiteDefault SameSite = ""
	SameSiteLax     SameSite = "Lax"
	SameSiteNone    SameSite = "None"
	SameSiteStrict  SameSite = "Strict"
)

// Valid asserts s is a known policy.
func (s SameSite) Valid() error {
	switch s {
	case SameSiteDefault, SameSiteLax, SameSiteNone, SameSiteStrict:
		return nil
	default:
		return fmt.Errorf("%w: same site policy %q", relay.ErrNotValid, string(s))
	}
}

// A Directive is one cookie a response instructs the client to store.
//
// A zero Expires makes a session cookie.
// A negative MaxAge expires the cookie now; zero omits the attribute.
type Directive struct {
	Name     string
	Value    string
	Expires  time.Time
	MaxAge   int
	Path     string
	Domain   string
	Secure   bool
	HTTPOnly bool
	SameSite SameSite
	Raw      bool
}

// New constructs a Directive for name and value scoped to "/",
// hidden from scripts and sent only on same-site navigation.
func New(name, value string) Directive {
	return Directive{
		Name:     name,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		SameSite: SameSiteLax,
	}
}

// Valid asserts d can be serialized into a Set-Cookie header.
func (d Directive) Valid() error {
	if !httpguts.ValidHeaderFieldName(d.Name) {
		return fmt.Errorf("%w: cookie name %q", relay.ErrNotValid, d.Name)
	}

	if d.Raw {
		for i := 0; i < len(d.Value); i++ {
			if !isCookieOctet(d.Value[i]) {
				return fmt.Errorf("%w: raw value for cookie %s", relay.ErrNotValid, d.Name)
			}
		}
	}

	for _, attr := range []string{d.Path, d.Domain} {
		for i := 0; i < len(attr); i++ {
			if b := attr[i]; b < 0x20 || b > 0x7e || b == ';' {
				return fmt.Errorf("%w: attribute for cookie %s", relay.ErrNotValid, d.Name)
			}
		}
	}

	if d.SameSite == SameSiteNone && !d.Secure {
		return fmt.Errorf("%w: cookie %s with SameSite=None must be Secure", relay.ErrNotValid, d.Name)
	}

	return d.SameSite.Valid()
}

// String serializes d as a Set-Cookie header value:
//
//	name=value; Expires=Wed, 21 Oct 2015 07:28:00 GMT; Max-Age=60; Domain=example.com; Path=/; Secure; HttpOnly; SameSite=Lax
//
// String does not validate d; call Valid first.
func (d Directive) String() string {
	var b strings.Builder
	b.WriteString(d.Name)
	b.WriteByte('=')
	if d.Raw {
		b.WriteString(d.Value)
	} else {
		b.WriteString(url.PathEscape(d.Value))
	}

	if !d.Expires.IsZero() {
		b.WriteString("; Expires=")
		b.WriteString(d.Expires.UTC().Format(http.TimeFormat))
	}

	switch {
	case d.MaxAge > 0:
		b.WriteString("; Max-Age=")
		b.WriteString(strconv.Itoa(d.MaxAge))
	case d.MaxAge < 0:
		b.WriteString("; Max-Age=0")
	}

	if d.Domain != "" {
		b.WriteString("; Domain=")
		b.WriteString(d.Domain)
	}

	if d.Path != "" {
		b.WriteString("; Path=")
		b.WriteString(d.Path)
	}

	if d.Secure {
		b.WriteString("; Secure")
	}

	if d.HTTPOnly {
		b.WriteString("; HttpOnly")
	}

	if d.SameSite != SameSiteDefault {
		b.WriteString("; SameSite=")
		b.WriteString(string(d.SameSite))
	}

	return b.String()
}

// isCookieOctet reports whether c may appear unquoted in a cookie value.
// cookie-octet = %x21 / %x23-2B / %x2D-3A / %x3C-5B / %x5D-7E
func isCookieOctet(c byte) bool {
	return c == 0x21 ||
		(0x23 <= c && c <= 0x2b) ||
		(0x2d <= c && c <= 0x3a) ||
		(0x3c <= c && c <= 0x5b) ||
		(0x5d <= c && c <= 0x7e)
}
