package resp

import (
	"encoding/json"
	"fmt"

	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/http/payload"
)

const (
	jsonContentType  = "application/json"
	jsonpContentType = "text/javascript"
)

// A JSON is a Response whose body is encoded data, optionally wrapped for JSONP.
//
// Changing the data, callback or options re-encodes the body right away,
// so encoding failures surface before anything is sent.
type JSON struct {
	*Response

	data     any
	raw      json.RawMessage
	callback string
	opts     payload.Options
}

// NewJSON constructs a JSON with code encoding data per opts.
func NewJSON(data any, code int, opts payload.Options) (*JSON, error) {
	r, err := New(code, nil)
	if err != nil {
		return nil, err
	}

	j := &JSON{Response: r, data: data, opts: opts}
	if err := j.update(); err != nil {
		return nil, err
	}

	return j, nil
}

// Data returns what the body encodes.
func (j *JSON) Data() any { return j.data }

// Callback returns the sanitized JSONP callback, if any.
func (j *JSON) Callback() string { return j.callback }

// SetData replaces what the body encodes.
func (j *JSON) SetData(data any) error {
	if err := j.building(); err != nil {
		return err
	}

	prev, prevRaw := j.data, j.raw
	j.data, j.raw = data, nil
	if err := j.update(); err != nil {
		j.data, j.raw = prev, prevRaw
		return err
	}

	return nil
}

// SetRawJSON uses raw as the body as is, after checking it is valid JSON.
func (j *JSON) SetRawJSON(raw []byte) error {
	if err := j.building(); err != nil {
		return err
	}

	if !json.Valid(raw) {
		return &payload.EncodingError{Err: fmt.Errorf("raw JSON is not valid")}
	}

	j.data, j.raw = nil, append(json.RawMessage(nil), raw...)
	return j.update()
}

// SetCallback wraps the body in a JSONP invocation of callback.
// An empty callback turns JSONP off; one with nothing left after sanitizing is relay.ErrNotValid.
func (j *JSON) SetCallback(callback string) error {
	if err := j.building(); err != nil {
		return err
	}

	sanitized := payload.SanitizeCallback(callback)
	if callback != "" && sanitized == "" {
		return fmt.Errorf("%w: JSONP callback %q", relay.ErrNotValid, callback)
	}

	j.callback = sanitized
	return j.update()
}

// SetOptions changes how data is encoded.
func (j *JSON) SetOptions(opts payload.Options) error {
	if err := j.building(); err != nil {
		return err
	}

	prev := j.opts
	j.opts = opts
	if err := j.update(); err != nil {
		j.opts = prev
		return err
	}

	return nil
}

func (j *JSON) update() error {
	var (
		body []byte
		err  error
	)

	if j.raw != nil {
		body = j.raw
	} else if body, err = payload.Encode(j.data, j.opts); err != nil {
		return err
	}

	contentType := jsonContentType
	if j.callback != "" {
		body = payload.Wrap(j.callback, body)
		contentType = jsonpContentType
	}

	if err := j.header.SetContentType(contentType, ""); err != nil {
		return err
	}

	return j.SetContent(body)
}
