// Package payload encodes JSON and JSONP response bodies.
//
// Encode accepts any value encoding/json accepts, plus Value,
// a tagged JSON value whose object members keep the order they were added in:
//
// 	v := payload.Object(
// 		payload.Field("id", payload.Int(42)),
// 		payload.Field("tags", payload.List(payload.String("a"), payload.String("b"))),
// 	)
// 	b, err := payload.Encode(v, payload.Options{})
// 	// {"id":42,"tags":["a","b"]}
//
// Failures are reported as *EncodingError, which matches relay.ErrEncoding with errors.Is.
//
// JSONP bodies are produced by Wrap after the callback passes through SanitizeCallback:
//
// 	payload.Wrap(payload.SanitizeCallback("cb"), b)
// 	// /**/cb({"id":42,"tags":["a","b"]});
package payload
