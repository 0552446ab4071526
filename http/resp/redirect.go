package resp

import (
	"fmt"
	"html"
	"net/http"

	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/http/header"
)

const redirectTmpl = `<!DOCTYPE html>
<html>
    <head>
        <meta charset="UTF-8" />
        <meta http-equiv="refresh" content="0;url='%[1]s'" />

        <title>Redirecting to %[1]s</title>
    </head>
    <body>
        Redirecting to <a href="%[1]s">%[1]s</a>.
    </body>
</html>`

// A Redirect is a Response sending the client to another URL.
type Redirect struct {
	*Response

	target string
}

// NewRedirect constructs a Redirect to target with code,
// a 3xx status or 201 Created.
func NewRedirect(target string, code int) (*Redirect, error) {
	if target == "" {
		return nil, fmt.Errorf("%w: cannot redirect to an empty URL", relay.ErrNotValid)
	}

	if code != http.StatusCreated && (code < 300 || code > 399) {
		return nil, fmt.Errorf("%w: %d is not a redirect status", relay.ErrNotValid, code)
	}

	r, err := New(code, nil)
	if err != nil {
		return nil, err
	}

	rd := &Redirect{Response: r}
	if err := rd.SetTarget(target); err != nil {
		return nil, err
	}

	return rd, nil
}

// Target returns the URL the client is sent to.
func (rd *Redirect) Target() string { return rd.target }

// SetTarget changes where the client is sent, rewriting the body naming it.
func (rd *Redirect) SetTarget(target string) error {
	if err := rd.building(); err != nil {
		return err
	}

	if target == "" {
		return fmt.Errorf("%w: cannot redirect to an empty URL", relay.ErrNotValid)
	}

	if err := rd.header.Set(header.Location, target); err != nil {
		return err
	}

	if err := rd.header.SetContentType("text/html", ""); err != nil {
		return err
	}

	rd.target = target
	return rd.SetContent([]byte(fmt.Sprintf(redirectTmpl, html.EscapeString(target))))
}
