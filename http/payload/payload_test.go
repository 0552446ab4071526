package payload_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/http/payload"
)

func TestEncode(t *testing.T) {
	tcs := []struct {
		name     string
		v        any
		opts     payload.Options
		expected string
	}{
		{"Map", map[string]int{"a": 1}, payload.Options{}, `{"a":1}`},
		{"Nil", nil, payload.Options{}, `null`},
		{"HTML-Kept", "<b>&</b>", payload.Options{}, `"<b>&</b>"`},
		{"HTML-Escaped", "<b>", payload.Options{EscapeHTML: true}, `"\u003cb\u003e"`},
		{"Indented", []int{1}, payload.Options{Indent: "  "}, "[\n  1\n]"},
		{
			"Ordered-Value",
			payload.Object(
				payload.Field("z", payload.Int(1)),
				payload.Field("a", payload.List(payload.Bool(true), payload.Null(), payload.Number(1.5))),
			),
			payload.Options{},
			`{"z":1,"a":[true,null,1.5]}`,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual, err := payload.Encode(tc.v, tc.opts)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.expected, string(actual))
		})
	}
}

type node struct {
	Next *node
}

func TestEncodeErrors(t *testing.T) {
	cyclic := &node{}
	cyclic.Next = cyclic

	type named struct {
		Name string
	}

	tcs := []struct {
		name string
		v    any
		opts payload.Options
	}{
		{"Cycle", cyclic, payload.Options{}},
		{"Channel", make(chan int), payload.Options{}},
		{"NaN", math.NaN(), payload.Options{}},
		{"Invalid-UTF8-String", "ab\xffc", payload.Options{RejectInvalidUTF8: true}},
		{"Invalid-UTF8-Field", named{Name: "\xc3"}, payload.Options{RejectInvalidUTF8: true}},
		{"Invalid-UTF8-Map-Key", map[string]int{"\xff": 1}, payload.Options{RejectInvalidUTF8: true}},
		{"Invalid-UTF8-Value", payload.List(payload.String("\xff")), payload.Options{RejectInvalidUTF8: true}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			_, err := payload.Encode(tc.v, tc.opts)

			// Assert
			require.ErrorIs(t, err, relay.ErrEncoding)
			var encErr *payload.EncodingError
			require.True(t, errors.As(err, &encErr))
			require.NotEmpty(t, encErr.Err.Error())
		})
	}
}

func TestEncodeInvalidUTF8Replaced(t *testing.T) {
	actual, err := payload.Encode("ab\xff", payload.Options{})
	require.Nil(t, err)
	require.Equal(t, `"ab\ufffd"`, string(actual))
}

func TestParse(t *testing.T) {
	// Act
	v, err := payload.Parse([]byte(`{"z":[1,2.5,"x"],"a":{"b":null},"c":false}`))

	// Assert
	require.Nil(t, err)
	require.Equal(t, payload.KindObject, v.Kind())
	require.Equal(t, 3, v.Len())

	z, ok := v.Get("z")
	require.True(t, ok)
	require.Equal(t, payload.KindList, z.Kind())

	b, err := json.Marshal(v)
	require.Nil(t, err)
	require.Equal(t, `{"z":[1,2.5,"x"],"a":{"b":null},"c":false}`, string(b))
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{``, `{`, `{"a":1}{}`, `[1,]`, `nope`} {
		_, err := payload.Parse([]byte(in))
		require.NotNil(t, err, in)
	}
}

func TestValueWith(t *testing.T) {
	// Arrange
	v := payload.Object(payload.Field("a", payload.Int(1)), payload.Field("b", payload.Int(2)))

	// Act
	updated := v.With("a", payload.String("x"))

	// Assert
	b, err := json.Marshal(updated)
	require.Nil(t, err)
	require.Equal(t, `{"a":"x","b":2}`, string(b))

	b, err = json.Marshal(v)
	require.Nil(t, err)
	require.Equal(t, `{"a":1,"b":2}`, string(b))

	require.Equal(t, payload.Int(3), payload.Int(3).With("a", payload.Null()))
}

func TestNumberNotFinite(t *testing.T) {
	require.Equal(t, payload.KindNull, payload.Number(math.Inf(1)).Kind())
}

func TestSanitizeCallback(t *testing.T) {
	tcs := []struct {
		in       string
		expected string
	}{
		{"cb", "cb"},
		{"ale rt(1)", "alert1"},
		{"jQuery_123.done", "jQuery_123.done"},
		{"<script>", "script"},
		{"();", ""},
	}

	for _, tc := range tcs {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.expected, payload.SanitizeCallback(tc.in))
		})
	}
}

func TestWrap(t *testing.T) {
	require.Equal(t, `/**/cb({"a":1});`, string(payload.Wrap("cb", []byte(`{"a":1}`))))
}
