/*
Package stream moves response content to a client a chunk at a time.

A Producer writes to a Sink and is invoked at most once per response.
Between chunks a Producer checks Sink.Aborted and returns nil once the peer has gone:
a disconnect ends the stream, it is not an error.

	p := stream.ProducerFunc(func(s stream.Sink) error {
		for i := 0; i < 3; i++ {
			if s.Aborted() {
				return nil
			}
			if err := stream.WriteEvent(s, stream.Event{Data: strconv.Itoa(i)}); err != nil {
				return err
			}
		}
		return nil
	})

Framing helpers cover Server-Sent Events (WriteEvent), newline delimited JSON (NDJSON),
bounded file copies (CopyChunks) and zip archives (Zip).
Throttle caps the rate bytes reach a Sink.
*/
package stream
