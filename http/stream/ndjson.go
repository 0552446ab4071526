package stream

import (
	"iter"

	"github.com/xy-planning-network/relay/http/payload"
)

// NDJSONContentType is the media type of newline delimited JSON.
const NDJSONContentType = "application/x-ndjson"

// NDJSON constructs a Producer writing each item of seq as one line of JSON, flushing after each.
//
// Items are encoded per opts; Indent is ignored since each item must stay on one line.
// An item that cannot be encoded stops the stream with a *payload.EncodingError.
func NDJSON(seq iter.Seq[any], opts payload.Options) Producer {
	opts.Indent = ""

	return ProducerFunc(func(s Sink) error {
		for item := range seq {
			if s.Aborted() {
				return nil
			}

			line, err := payload.Encode(item, opts)
			if err != nil {
				return err
			}

			if _, err := s.Write(append(line, '\n')); err != nil {
				return nilIfAborted(s, err)
			}

			if err := s.Flush(); err != nil {
				return nilIfAborted(s, err)
			}
		}

		return nil
	})
}
