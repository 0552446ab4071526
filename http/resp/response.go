package resp

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/http/cookie"
	"github.com/xy-planning-network/relay/http/header"
	"github.com/xy-planning-network/relay/http/stream"
)

const (
	defaultContentType = "text/html; charset=UTF-8"
	defaultProto       = "1.1"
	unknownStatusText  = "Unknown"
)

// A Response is a status, headers, cookies and content on their way to a client.
//
// Content is either a buffered body or a stream.Producer, never both.
// A Response moves through the States as it is sent;
// setters fail with relay.ErrNotValid once it has left Building.
type Response struct {
	code     int
	text     string
	proto    string
	header   *header.Set
	cookies  *cookie.Jar
	body     []byte
	producer stream.Producer
	state    State
	streamed bool
	head     bool
	now      func() time.Time
}

// New constructs a Response with code and a buffered body.
func New(code int, body []byte) (*Response, error) {
	r := &Response{
		proto:   defaultProto,
		header:  new(header.Set),
		cookies: cookie.NewJar(),
		body:    body,
		now:     time.Now,
	}

	if err := r.SetStatus(code); err != nil {
		return nil, err
	}

	return r, nil
}

// newStreamed constructs a Response with code whose content comes from p.
func newStreamed(code int, p stream.Producer) (*Response, error) {
	r, err := New(code, nil)
	if err != nil {
		return nil, err
	}

	if err := r.SetProducer(p); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Response) Code() int            { return r.code }
func (r *Response) Text() string         { return r.text }
func (r *Response) Proto() string        { return r.proto }
func (r *Response) Header() *header.Set  { return r.header }
func (r *Response) Cookies() *cookie.Jar { return r.cookies }
func (r *Response) State() State         { return r.state }

// Content returns the buffered body, if any.
func (r *Response) Content() []byte { return r.body }

// Streamed reports whether content comes from a stream.Producer.
func (r *Response) Streamed() bool { return r.producer != nil }

// SetStatus sets the status code and its reason phrase.
// Without a text, the standard phrase for code is used, or "Unknown".
func (r *Response) SetStatus(code int, text ...string) error {
	if err := r.building(); err != nil {
		return err
	}

	if code < 100 || code > 599 {
		return fmt.Errorf("%w: status code %d", relay.ErrNotValid, code)
	}

	r.code = code
	switch {
	case len(text) > 0 && text[0] != "":
		r.text = text[0]
	case http.StatusText(code) != "":
		r.text = http.StatusText(code)
	default:
		r.text = unknownStatusText
	}

	return nil
}

// SetProto sets the HTTP version written in the status line, "1.0" or "1.1".
func (r *Response) SetProto(proto string) error {
	if err := r.building(); err != nil {
		return err
	}

	if proto != "1.0" && proto != "1.1" {
		return fmt.Errorf("%w: protocol version %q", relay.ErrNotValid, proto)
	}

	r.proto = proto
	return nil
}

// SetContent replaces the buffered body.
// SetContent fails on a streamed Response, or once sending has begun.
func (r *Response) SetContent(body []byte) error {
	if err := r.building(); err != nil {
		return err
	}

	if r.producer != nil {
		return fmt.Errorf("%w: cannot set content on a streamed response", relay.ErrNotValid)
	}

	r.body = body
	return nil
}

// SetProducer makes p the source of content.
// SetProducer fails if a buffered body is set, or once sending has begun.
func (r *Response) SetProducer(p stream.Producer) error {
	if err := r.building(); err != nil {
		return err
	}

	if p == nil {
		return fmt.Errorf("%w: nil producer", relay.ErrNotValid)
	}

	if len(r.body) > 0 {
		return fmt.Errorf("%w: cannot stream a response with buffered content", relay.ErrNotValid)
	}

	r.producer = p
	return nil
}

func (r *Response) IsInvalid() bool       { return r.code < 100 || r.code >= 600 }
func (r *Response) IsInformational() bool { return r.code >= 100 && r.code < 200 }
func (r *Response) IsSuccessful() bool    { return r.code >= 200 && r.code < 300 }
func (r *Response) IsRedirection() bool   { return r.code >= 300 && r.code < 400 }
func (r *Response) IsClientError() bool   { return r.code >= 400 && r.code < 500 }
func (r *Response) IsServerError() bool   { return r.code >= 500 && r.code < 600 }
func (r *Response) IsOK() bool            { return r.code == http.StatusOK }
func (r *Response) IsForbidden() bool     { return r.code == http.StatusForbidden }
func (r *Response) IsNotFound() bool      { return r.code == http.StatusNotFound }

// IsEmpty reports whether the status forbids content.
func (r *Response) IsEmpty() bool {
	return r.code == http.StatusNoContent || r.code == http.StatusNotModified
}

// IsRedirect reports whether the status is one clients follow to a Location,
// and, given a location, whether the Location header names it.
func (r *Response) IsRedirect(location ...string) bool {
	switch r.code {
	case http.StatusCreated,
		http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
	default:
		return false
	}

	if len(location) == 0 {
		return true
	}

	return r.header.Get(header.Location, "") == location[0]
}

// Prepare reconciles headers and content with req before sending.
//
// Bodiless statuses lose content and the headers describing it.
// A missing Content-Type defaults to HTML.
// Content-Length yields to Transfer-Encoding.
// HEAD requests keep their headers but send no content.
func (r *Response) Prepare(req Request) {
	if r.state != Building {
		return
	}

	if r.IsInformational() || r.IsEmpty() {
		r.body = nil
		r.producer = nil
		r.header.Del(header.ContentType)
		r.header.Del(header.ContentLength)
		r.header.Del(header.TransferEncoding)
		return
	}

	if !r.header.Has(header.ContentType) {
		r.header.Set(header.ContentType, defaultContentType)
	}

	if r.header.Has(header.TransferEncoding) {
		r.header.Del(header.ContentLength)
	}

	if req != nil && req.Method() == http.MethodHead {
		r.head = true
	}
}

// SendHeaders commits the status line, headers and cookies through h.
//
// SendHeaders does nothing if r already sent them or h reports the exchange already did.
func (r *Response) SendHeaders(h Host) error {
	if r.state != Building {
		return nil
	}

	if h.HeadersSent() {
		r.state = HeadersSent
		return nil
	}

	hdr := r.header.Clone()
	if !hdr.Has(header.Date) {
		hdr.SetDate(r.clock())
	}

	bodiless := r.head || r.IsInformational() || r.IsEmpty()
	if r.producer == nil && !r.IsInformational() && !r.IsEmpty() && !hdr.Has(header.TransferEncoding) {
		hdr.Set(header.ContentLength, fmt.Sprint(len(r.body)))
	}

	for _, line := range r.cookies.Lines() {
		if err := hdr.Add(header.SetCookie, line); err != nil {
			return err
		}
	}

	if err := h.WriteHead(Head{Proto: r.proto, Code: r.code, Text: r.text, Header: hdr, Bodiless: bodiless}); err != nil {
		if h.Aborted() {
			r.state = Aborted
			return nil
		}

		return fmt.Errorf("%w: writing headers: %s", relay.ErrIO, err)
	}

	r.state = HeadersSent
	return nil
}

// SendContent writes content through h, sending headers first if need be.
//
// A buffered body is written once.
// A producer is invoked at most once however many times SendContent is called.
// A client going away moves r to Aborted without an error.
func (r *Response) SendContent(h Host) error {
	if r.state == Building {
		if err := r.SendHeaders(h); err != nil {
			return err
		}
	}

	if r.state != HeadersSent {
		return nil
	}

	if r.head || r.IsInformational() || r.IsEmpty() {
		r.state = ContentSent
		return nil
	}

	if r.producer == nil {
		if len(r.body) > 0 {
			if _, err := h.Write(r.body); err != nil {
				return r.abort(h, err)
			}
		}

		r.state = ContentSent
		return nil
	}

	if r.streamed {
		return nil
	}
	r.streamed = true

	if err := r.producer.Produce(h); err != nil {
		r.state = Aborted
		return err
	}

	if h.Aborted() {
		r.state = Aborted
		return nil
	}

	r.state = ContentSent
	return nil
}

// Send sends headers then content through h,
// finishing the exchange when h is a Finisher.
func (r *Response) Send(h Host) error {
	if err := r.SendHeaders(h); err != nil {
		return err
	}

	if err := r.SendContent(h); err != nil {
		return err
	}

	if r.state != ContentSent {
		return nil
	}

	if f, ok := h.(Finisher); ok {
		if err := f.Finish(); err != nil {
			return r.abort(h, err)
		}
	}

	r.state = Done
	return nil
}

func (r *Response) abort(h Host, err error) error {
	r.state = Aborted
	if h.Aborted() {
		return nil
	}

	return fmt.Errorf("%w: %s", relay.ErrIO, err)
}

func (r *Response) building() error {
	if r.state != Building {
		return fmt.Errorf("%w: response is %s", relay.ErrNotValid, r.state)
	}

	return nil
}

func (r *Response) clock() time.Time {
	if r.now == nil {
		return time.Now()
	}

	return r.now()
}
