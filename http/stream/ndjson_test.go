package stream_test

import (
	"iter"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/http/payload"
	"github.com/xy-planning-network/relay/http/stream"
	"github.com/xy-planning-network/relay/http/stream/streamtest"
)

func items(vs ...any) iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range vs {
			if !yield(v) {
				return
			}
		}
	}
}

func TestNDJSON(t *testing.T) {
	// Arrange
	rec := new(streamtest.Recorder)
	p := stream.NDJSON(items(map[string]int{"a": 1}, "<b>", []int{1, 2}), payload.Options{Indent: "  "})

	// Act
	err := p.Produce(rec)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "{\"a\":1}\n\"<b>\"\n[1,2]\n", rec.String())
	require.Equal(t, 3, rec.Flushes)
}

func TestNDJSONAborted(t *testing.T) {
	// Arrange
	rec := &streamtest.Recorder{AbortAfter: 2}
	var pulled int
	seq := func(yield func(any) bool) {
		for i := 0; i < 10; i++ {
			pulled++
			if !yield(i) {
				return
			}
		}
	}

	// Act
	err := stream.NDJSON(seq, payload.Options{}).Produce(rec)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "0\n1\n", rec.String())
	require.Equal(t, 3, pulled)
}

func TestNDJSONEncodingError(t *testing.T) {
	// Arrange
	rec := new(streamtest.Recorder)

	// Act
	err := stream.NDJSON(items(1, math.Inf(1), 3), payload.Options{}).Produce(rec)

	// Assert
	require.ErrorIs(t, err, relay.ErrEncoding)
	require.Equal(t, "1\n", rec.String())
}
