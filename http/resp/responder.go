package resp

import (
	"fmt"
	"iter"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/http/cookie"
	"github.com/xy-planning-network/relay/http/header"
	"github.com/xy-planning-network/relay/http/payload"
	"github.com/xy-planning-network/relay/http/stream"
	"github.com/xy-planning-network/relay/logger"
)

const responderFrames = 0

// Responder maintains reusable pieces for responding to HTTP requests.
// It exposes many common methods for writing structured data as an HTTP response.
// These are the forms of response Responder can execute:
//
//	Archive
//	Err
//	File
//	Json
//	NDJSON
//	Redirect
//	SSE
//	Stream
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
// Meaning, one needs only application-wide configuration of how HTTP responses should look.
// Our suggestion does not exclude creating diverse Responders
// for non-overlapping segments of an application.
//
// When handling a specific HTTP request, calling code supplies additional data, structure,
// and so forth through Fn functions.
type Responder struct {
	logger logger.Logger

	// Root URL the responder is listening on, also used when redirecting without a Url
	rootUrl *url.URL

	// How Json encodes data
	jsonOpts payload.Options

	// Defaults for every File, which Fn functions may override per request
	file FileOptions
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{jsonOpts: payload.Options{EscapeHTML: true}}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(responderFrames)
	}

	d.file = d.file.withDefaults()

	return d
}

// Archive zips entries into a download named filename as it writes them.
func (doer *Responder) Archive(w http.ResponseWriter, r *http.Request, filename string, entries []stream.Entry, opts ...Fn) error {
	rr, err := doer.do(r, opts...)
	if err != nil {
		return err
	}

	res, err := NewArchive(filename, rr.file.ChunkSize, entries...)
	if err != nil {
		return err
	}

	return doer.send(w, r, rr, res)
}

// Err writes the error causing the failure state as plain text, logging it.
//
// Use in exceptional circumstances when no other response can occur.
// The default response status code is 500.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error, opts ...Fn) {
	rr, nested := doer.do(r, append([]Fn{Err(err)}, opts...)...)
	switch {
	case nested == nil:
	case err == nil:
		err = nested
	default:
		err = fmt.Errorf("%w: %s", err, nested)
	}

	if rr == nil {
		// NOTE(dlk): the request is done, no one is listening
		return
	}

	if NewHTTPHost(w, r).HeadersSent() {
		// NOTE(dlk): a status line already went out, an error body would corrupt what follows it
		doer.logger.Error("response already committed", newLogContext(r, err, nil))
		return
	}

	if rr.code < http.StatusBadRequest {
		rr.code = http.StatusInternalServerError
	}

	msg := http.StatusText(rr.code)
	if err != nil {
		msg = err.Error()
	}

	res, _ := New(rr.code, []byte(msg+"\n"))
	res.header.SetContentType("text/plain", "")
	res.header.Set("X-Content-Type-Options", "nosniff")

	rr.noCache = true
	doer.send(w, r, rr, res)
}

// File sends the file at path, answering conditional and byte range requests.
//
// Download and Inline override how clients present the file.
// DeleteAfterSend removes it once sent.
func (doer *Responder) File(w http.ResponseWriter, r *http.Request, path string, opts ...Fn) error {
	rr, err := doer.do(r, opts...)
	if err != nil {
		return err
	}

	f, err := NewFile(r.Context(), path, rr.file)
	if err != nil {
		doer.logger.Warn(err.Error(), newLogContext(r, err, nil))
		return err
	}

	return doer.send(w, r, rr, f)
}

// Json responds with data in JSON format, collating it from Data() and setting appropriate headers.
// Callback() wraps the JSON for JSONP.
//
// The default response status code is 200.
func (doer *Responder) Json(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(r, opts...)
	if err != nil {
		return err
	}

	if rr.code == 0 {
		if err := Code(http.StatusOK)(*doer, rr); err != nil {
			return err
		}
	}

	res, err := NewJSON(rr.data, rr.code, doer.jsonOpts)
	if err != nil {
		doer.logger.Error(err.Error(), newLogContext(r, err, rr.data))
		return err
	}

	if err := res.SetCallback(rr.callback); err != nil {
		return err
	}

	return doer.send(w, r, rr, res)
}

// NDJSON writes every item seq yields as a line of JSON.
func (doer *Responder) NDJSON(w http.ResponseWriter, r *http.Request, seq iter.Seq[any], opts ...Fn) error {
	rr, err := doer.do(r, opts...)
	if err != nil {
		return err
	}

	res, err := NewNDJSON(seq, doer.jsonOpts)
	if err != nil {
		return err
	}

	return doer.send(w, r, rr, res)
}

// Redirect sends the client to where Url() sets the redirect destination.
// If Url() is not passed in opts, then ToRoot() sets the redirect destination.
//
// The default response status code is 302.
//
// If Code() set the status code to something other than standard redirect 3xx statuses,
// Redirect overwrites the status code with an appropriate 3xx status code.
func (doer *Responder) Redirect(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(r, opts...)
	if err != nil {
		return err
	}

	if rr.url == nil {
		if err := ToRoot()(*doer, rr); err != nil {
			return err
		}
	}

	if rr.url == nil {
		return fmt.Errorf("%w: cannot redirect, no resp.url", ErrMissingData)
	}

	switch {
	case rr.code == http.StatusCreated:
		// NOTE(dlk): Location of a newly created resource, so do nothing
	case rr.code >= http.StatusMultipleChoices && rr.code <= http.StatusPermanentRedirect:
		// NOTE(dlk): code is already a 3xx, so do nothing
	case rr.code >= http.StatusBadRequest && rr.code < http.StatusInternalServerError:
		rr.code = http.StatusSeeOther
	case rr.code >= http.StatusInternalServerError:
		rr.code = http.StatusTemporaryRedirect
	default:
		rr.code = http.StatusFound
	}

	res, err := NewRedirect(rr.url.String(), rr.code)
	if err != nil {
		return err
	}

	return doer.send(w, r, rr, res)
}

// SSE streams Server-Sent Events p frames with stream.WriteEvent.
func (doer *Responder) SSE(w http.ResponseWriter, r *http.Request, p stream.Producer, opts ...Fn) error {
	rr, err := doer.do(r, opts...)
	if err != nil {
		return err
	}

	res, err := NewSSE(p)
	if err != nil {
		return err
	}

	return doer.send(w, r, rr, res)
}

// Stream writes whatever p produces, flushing as it goes.
//
// The default response status code is 200.
func (doer *Responder) Stream(w http.ResponseWriter, r *http.Request, p stream.Producer, opts ...Fn) error {
	rr, err := doer.do(r, opts...)
	if err != nil {
		return err
	}

	res, err := NewStream(p, http.StatusOK)
	if err != nil {
		return err
	}

	return doer.send(w, r, rr, res)
}

// sendable is what every kind of response the Responder builds shares.
type sendable interface {
	Header() *header.Set
	Cookies() *cookie.Jar
	State() State
	SetStatus(code int, text ...string) error
	Prepare(req Request)
	Send(h Host) error
}

// send finishes res with what the Draft gathered and writes it to w.
//
// A client going away is logged at the debug level and is not an error.
// Failing once headers went out wraps ErrDone.
func (doer *Responder) send(w http.ResponseWriter, r *http.Request, rr *Draft, res sendable) error {
	if rr.code != 0 {
		if err := res.SetStatus(rr.code); err != nil {
			return err
		}
	}

	if err := rr.apply(res); err != nil {
		return err
	}

	res.Prepare(FromHTTP(r))
	if err := res.Send(NewHTTPHost(w, r)); err != nil {
		doer.logger.Error(err.Error(), newLogContext(r, err, nil))
		if res.State() != Building {
			// NOTE(dlk): headers are out, callers must not try another response
			return fmt.Errorf("%w: %w", ErrDone, err)
		}

		return err
	}

	if res.State() == Aborted {
		doer.logger.Debug("client went away mid-response", newLogContext(r, nil, nil))
	}

	return nil
}

// do applies all options to the passed in *http.Request.
//
// Calling code ought to pass Options in the correct order.
// An option requiring something set by another one should come after.
// do nonetheless attempts to retry calling functional options until all do not return errors or,
// a set of options unable to not return errors is reached.
//
// Should all options apply successfully, do returns a validly formed *Draft.
func (doer *Responder) do(r *http.Request, opts ...Fn) (*Draft, error) {
	rr := &Draft{
		r:      r,
		header: new(header.Set),
		file:   doer.file,
	}

	var err error
	redos := make([]Fn, 0)
	for _, opt := range opts {
		select {
		case <-r.Context().Done():
			return nil, fmt.Errorf("%w", ErrDone)
		default:
			if err = opt(*doer, rr); err != nil {
				redos = append(redos, opt)
			}
		}
	}

	i := -1
	for i != len(redos) {
		select {
		case <-r.Context().Done():
			return nil, fmt.Errorf("%w", ErrDone)
		default:
			// NOTE(dlk): because doer.redo mutates the length of redos,
			// confirm we are running up against a set of functions
			// that will not return anything other than errors by checking
			// the length of redos has not changed since calling doer.redo.
			i = len(redos)
			redos = doer.redo(rr, redos...)
		}
	}

	// NOTE(dlk): wrapup errors to send back
	if len(redos) == 0 {
		return rr, nil
	}

	err = nil
	for _, opt := range redos {
		nested := opt(*doer, rr)
		if err == nil {
			err = nested
			continue
		}

		err = fmt.Errorf("%w: %s", nested, err)
	}

	if err == nil {
		err = relay.ErrNotValid
	}

	return rr, err
}

// redo applies as many may Options as it can, returning those Options that continue to throw an error.
func (doer *Responder) redo(rr *Draft, opts ...Fn) []Fn {
	bad := make([]Fn, 0)
	for _, opt := range opts {
		if err := opt(*doer, rr); err != nil {
			bad = append(bad, opt)
		}
	}

	return bad
}
