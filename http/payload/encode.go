package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"unicode/utf8"

	"github.com/xy-planning-network/relay"
)

// Options tunes Encode.
type Options struct {
	// EscapeHTML escapes <, > and & inside strings.
	EscapeHTML bool

	// Indent, when set, pretty-prints with the provided indent per level.
	Indent string

	// RejectInvalidUTF8 fails on strings that are not valid UTF-8
	// instead of replacing the bad bytes with U+FFFD.
	RejectInvalidUTF8 bool
}

// An EncodingError reports a value that could not be encoded as JSON.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: %s", relay.ErrEncoding, e.Err)
}

// Unwrap exposes both relay.ErrEncoding and the encoder's diagnostic.
func (e *EncodingError) Unwrap() []error { return []error{relay.ErrEncoding, e.Err} }

// Encode renders v as JSON per opts, without a trailing newline.
func Encode(v any, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(opts.EscapeHTML)
	if opts.Indent != "" {
		enc.SetIndent("", opts.Indent)
	}

	if err := enc.Encode(v); err != nil {
		return nil, &EncodingError{Err: err}
	}

	if opts.RejectInvalidUTF8 {
		// NOTE(dlk): Encode succeeding means v has no cycles for validUTF8 to chase.
		if path, ok := validUTF8(reflect.ValueOf(v), "$"); !ok {
			return nil, &EncodingError{Err: fmt.Errorf("invalid UTF-8 in string at %s", path)}
		}
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

var (
	rawMessageType = reflect.TypeOf(json.RawMessage(nil))
	valueType      = reflect.TypeOf(Value{})
)

// validUTF8 walks every string v encodes, returning the path to the first invalid one.
func validUTF8(v reflect.Value, path string) (string, bool) {
	if !v.IsValid() {
		return "", true
	}

	switch v.Type() {
	case rawMessageType:
		return path, utf8.Valid(v.Bytes())
	case valueType:
		return v.Interface().(Value).validUTF8(path)
	}

	switch v.Kind() {
	case reflect.String:
		return path, utf8.ValidString(v.String())
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return "", true
		}
		return validUTF8(v.Elem(), path)
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return "", true
		}
		for i := 0; i < v.Len(); i++ {
			if p, ok := validUTF8(v.Index(i), fmt.Sprintf("%s[%d]", path, i)); !ok {
				return p, false
			}
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			p := fmt.Sprintf("%s[%v]", path, iter.Key())
			if _, ok := validUTF8(iter.Key(), p); !ok {
				return p, false
			}
			if p, ok := validUTF8(iter.Value(), p); !ok {
				return p, false
			}
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			if p, ok := validUTF8(v.Field(i), path+"."+t.Field(i).Name); !ok {
				return p, false
			}
		}
	}

	return "", true
}

func (v Value) validUTF8(path string) (string, bool) {
	switch v.kind {
	case KindString:
		return path, utf8.ValidString(v.s)
	case KindList:
		for i, el := range v.list {
			if p, ok := el.validUTF8(fmt.Sprintf("%s[%d]", path, i)); !ok {
				return p, false
			}
		}
	case KindObject:
		for _, m := range v.members {
			p := path + "." + m.Key
			if !utf8.ValidString(m.Key) {
				return p, false
			}
			if p, ok := m.Value.validUTF8(p); !ok {
				return p, false
			}
		}
	}

	return "", true
}
