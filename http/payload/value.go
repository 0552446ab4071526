package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
)

// A Kind names which variant of JSON a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return "null"
	}
}

// A Member is one key and Value of an object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs a Member.
func Field(key string, v Value) Member { return Member{Key: key, Value: v} }

// A Value is any JSON value.
//
// The zero Value is null.
type Value struct {
	kind    Kind
	b       bool
	n       json.Number
	s       string
	list    []Value
	members []Member
}

func Null() Value           { return Value{} }
func Bool(b bool) Value     { return Value{kind: KindBool, b: b} }
func String(s string) Value { return Value{kind: KindString, s: s} }
func Int(i int64) Value     { return Value{kind: KindNumber, n: json.Number(strconv.FormatInt(i, 10))} }

// Number constructs a number Value.
// NaN and infinities have no JSON form; they encode as null.
func Number(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}

	return Value{kind: KindNumber, n: json.Number(strconv.FormatFloat(f, 'g', -1, 64))}
}

func List(vs ...Value) Value { return Value{kind: KindList, list: vs} }

// Object constructs an object Value.
// A key repeated in ms keeps its first position and its last Value.
func Object(ms ...Member) Value {
	v := Value{kind: KindObject, members: make([]Member, 0, len(ms))}
	for _, m := range ms {
		v = v.With(m.Key, m.Value)
	}

	return v
}

func (v Value) Kind() Kind { return v.kind }

// With returns a copy of object v with key set to val.
// With on any other Kind returns v unchanged.
func (v Value) With(key string, val Value) Value {
	if v.kind != KindObject {
		return v
	}

	members := append([]Member(nil), v.members...)
	for i := range members {
		if members[i].Key == key {
			members[i].Value = val
			return Value{kind: KindObject, members: members}
		}
	}

	return Value{kind: KindObject, members: append(members, Member{Key: key, Value: val})}
}

// Get returns the Value under key when v is an object.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}

	return Value{}, false
}

// Len returns the number of elements or members v holds.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// MarshalJSON writes v with object members in order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (v Value) write(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		buf.WriteString(v.n.String())
	case KindString:
		b, err := json.Marshal(v.s)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindList:
		buf.WriteByte('[')
		for i, el := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := el.write(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(m.Key)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if err := m.Value.write(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unknown kind %d", v.kind)
	}

	return nil
}

// UnmarshalJSON reads any JSON document into v, keeping object member order.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}

	*v = parsed
	return nil
}

// Parse reads a single JSON document into a Value.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := parse(dec)
	if err != nil {
		return Value{}, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("unexpected data after top-level value")
	}

	return v, nil
}

func parse(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Value{kind: KindNumber, n: t}, nil
	case string:
		return String(t), nil
	case json.Delim:
		if t == '[' {
			list := []Value{}
			for dec.More() {
				el, err := parse(dec)
				if err != nil {
					return Value{}, err
				}
				list = append(list, el)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}

			return List(list...), nil
		}

		obj := Object()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return Value{}, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return Value{}, fmt.Errorf("object key %v is not a string", keyTok)
			}
			val, err := parse(dec)
			if err != nil {
				return Value{}, err
			}
			obj = obj.With(key, val)
		}
		if _, err := dec.Token(); err != nil {
			return Value{}, err
		}

		return obj, nil
	}

	return Value{}, fmt.Errorf("unexpected token %v", tok)
}
