package resp

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/http/cookie"
	"github.com/xy-planning-network/relay/http/header"
	"github.com/xy-planning-network/relay/http/payload"
	"github.com/xy-planning-network/relay/logger"
)

// A Fn is a functional option that mutates the state of the Draft.
type Fn func(Responder, *Draft) error

// A Draft is the internal object a Responder response method builds while applying all
// functional options, before it becomes a Response.
type Draft struct {
	r        *http.Request
	code     int
	data     any
	callback string
	url      *url.URL
	header   *header.Set
	cookies  []cookie.Directive
	cache    *header.CacheOptions
	noCache  bool
	file     FileOptions
	err      error
}

// Cache sets Cache-Control from opts.
func Cache(opts header.CacheOptions) Fn {
	return func(_ Responder, d *Draft) error {
		d.cache = &opts
		d.noCache = false
		return nil
	}
}

// Callback wraps a JSON body for JSONP.
//
// Used with Responder.Json.
func Callback(cb string) Fn {
	return func(_ Responder, d *Draft) error {
		sanitized := payload.SanitizeCallback(cb)
		if cb != "" && sanitized == "" {
			return fmt.Errorf("%w: JSONP callback %q", relay.ErrNotValid, cb)
		}

		d.callback = sanitized
		return nil
	}
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, d *Draft) error {
		if c < 100 || c > 599 {
			return fmt.Errorf("%w: status code %d", relay.ErrNotValid, c)
		}

		d.code = c
		return nil
	}
}

// Cookie stores a cookie to set on the client, replacing one of the same name.
func Cookie(c cookie.Directive) Fn {
	return func(_ Responder, d *Draft) error {
		if err := c.Valid(); err != nil {
			return err
		}

		for i := range d.cookies {
			if d.cookies[i].Name == c.Name {
				d.cookies[i] = c
				return nil
			}
		}

		d.cookies = append(d.cookies, c)
		return nil
	}
}

// Data stores the provided empty interface for writing to the client.
//
// Used with Responder.Json.
func Data(data any) Fn {
	return func(_ Responder, d *Draft) error {
		d.data = data
		return nil
	}
}

// DeleteAfterSend removes the file once it is sent.
//
// Used with Responder.File.
func DeleteAfterSend() Fn {
	return func(_ Responder, d *Draft) error {
		d.file.DeleteAfterSend = true
		return nil
	}
}

// Download offers the file as an attachment saved under filename,
// or its own name if filename is empty.
//
// Used with Responder.File.
func Download(filename string) Fn {
	return func(_ Responder, d *Draft) error {
		d.file.Disposition = header.Attachment
		d.file.Filename = filename
		return nil
	}
}

// Err sets the status code http.StatusInternalServerError and logs the error.
func Err(e error) Fn {
	return func(rr Responder, d *Draft) error {
		if e != nil {
			rr.logger.Error(e.Error(), newLogContext(d.r, e, d.data))
		}

		d.err = e
		return Code(http.StatusInternalServerError)(rr, d)
	}
}

// Header sets a header on the response, replacing values set before.
func Header(name, value string) Fn {
	return func(_ Responder, d *Draft) error {
		return d.header.Set(name, value)
	}
}

// Inline offers the file for display, naming it filename if saved.
//
// Used with Responder.File.
func Inline(filename string) Fn {
	return func(_ Responder, d *Draft) error {
		d.file.Disposition = header.Inline
		d.file.Filename = filename
		return nil
	}
}

// NoCache instructs clients and proxies never to reuse the response.
func NoCache() Fn {
	return func(_ Responder, d *Draft) error {
		d.noCache = true
		d.cache = nil
		return nil
	}
}

// Param adds the query parameter to the response's URL.
//
// Used with Responder.Redirect.
func Param(key, val string) Fn {
	return func(_ Responder, d *Draft) error {
		if d.url == nil {
			return fmt.Errorf("%w: Url() has not been called", ErrMissingData)
		}

		q := d.url.Query()
		q.Add(key, val)
		d.url.RawQuery = q.Encode()
		return nil
	}
}

// RateLimit caps file delivery at bytesPerSecond.
//
// Used with Responder.File.
func RateLimit(bytesPerSecond int) Fn {
	return func(_ Responder, d *Draft) error {
		if bytesPerSecond < 0 {
			return fmt.Errorf("%w: rate limit %d", relay.ErrNotValid, bytesPerSecond)
		}

		d.file.RateLimit = bytesPerSecond
		return nil
	}
}

// ToRoot calls Url with the Responder's default, root URL.
func ToRoot() Fn {
	return func(rr Responder, d *Draft) error {
		if rr.rootUrl == nil {
			d.url = nil
			return nil
		}

		u := *rr.rootUrl
		d.url = &u
		return nil
	}
}

// Url parses raw the URL string and sets it in the *Draft if successful.
//
// Used with Responder.Redirect.
func Url(u string) Fn {
	return func(_ Responder, d *Draft) error {
		parsed, err := url.ParseRequestURI(u)
		if err != nil {
			return fmt.Errorf("%w: u is not a valid URL: %v", relay.ErrNotValid, err)
		}

		d.url = parsed
		return nil
	}
}

// newLogContext helps structure a logger.LogContext from the provided parts.
func newLogContext(r *http.Request, err error, data any) *logger.LogContext {
	if r == nil && err == nil && data == nil {
		return nil
	}

	ctx := new(logger.LogContext)
	if r != nil {
		ctx.Request = r
	}

	if err != nil {
		ctx.Error = err
	}

	if mapped, ok := data.(map[string]any); ok {
		ctx.Data = mapped
	}

	return ctx
}

// apply copies what the options gathered onto res.
func (d *Draft) apply(res sendable) error {
	var err error
	d.header.Each(func(name, value string) {
		if err == nil {
			err = res.Header().Set(name, value)
		}
	})
	if err != nil {
		return err
	}

	for _, c := range d.cookies {
		if err := res.Cookies().Set(c); err != nil {
			return err
		}
	}

	switch {
	case d.noCache:
		res.Header().SetNoCache()
	case d.cache != nil:
		return res.Header().SetCacheControl(*d.cache)
	}

	return nil
}
