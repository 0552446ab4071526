package header

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/xy-planning-network/relay"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	Attachment = "attachment"
	Inline     = "inline"

	fallbackName = "download"
	upperhex     = "0123456789ABCDEF"
)

// Disposition composes a Content-Disposition value of kind naming filename.
//
// Filenames made only of printable ASCII are quoted as is:
//
//	attachment; filename="plain.pdf"
//
// Anything else gets an ASCII fallback for old clients
// and the exact name percent-encoded per RFC 5987:
//
//	attachment; filename="resume.pdf"; filename*=UTF-8''r%C3%A9sum%C3%A9.pdf
//
// kind must be Attachment or Inline,
// and filename cannot contain path separators.
func Disposition(kind, filename string) (string, error) {
	kind = strings.ToLower(kind)
	if kind != Attachment && kind != Inline {
		return "", fmt.Errorf("%w: disposition %q", relay.ErrNotValid, kind)
	}

	if filename == "" {
		return kind, nil
	}

	if strings.ContainsAny(filename, `/\`) {
		return "", fmt.Errorf("%w: filename %q contains a path separator", relay.ErrNotValid, filename)
	}

	if !needsExtended(filename) {
		return kind + `; filename="` + filename + `"`, nil
	}

	return kind + `; filename="` + asciiFallback(filename) + `"; filename*=UTF-8''` + encodeRFC5987(filename), nil
}

// SetDisposition writes Content-Disposition composed by Disposition.
func (s *Set) SetDisposition(kind, filename string) error {
	val, err := Disposition(kind, filename)
	if err != nil {
		return err
	}

	return s.Set(ContentDisposition, val)
}

// SetDownload marks the response as an attachment saved under filename.
func (s *Set) SetDownload(filename string) error {
	return s.SetDisposition(Attachment, filename)
}

// SetInline marks the response for display, naming it filename if saved.
func (s *Set) SetInline(filename string) error {
	return s.SetDisposition(Inline, filename)
}

func needsExtended(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c < 0x20 || c > 0x7e || c == '"' || c == '%' {
			return true
		}
	}

	return false
}

// asciiFallback strips accents from name, then drops what is still not printable ASCII.
func asciiFallback(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, name); err == nil {
		name = stripped
	}

	var b strings.Builder
	for i := 0; i < len(name); i++ {
		switch c := name[i]; {
		case c == '"':
			b.WriteString(`\"`)
		case c == '%':
			b.WriteByte('_')
		case c >= 0x20 && c <= 0x7e:
			b.WriteByte(c)
		}
	}

	out := strings.TrimSpace(b.String())
	if out == "" || strings.HasPrefix(out, ".") {
		return fallbackName + out
	}

	return out
}

func encodeRFC5987(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isAttrChar(c) {
			b.WriteByte(c)
			continue
		}

		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}

	return b.String()
}

func isAttrChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}

	return strings.IndexByte("!#$&+-.^_`|~", c) >= 0
}
