package payload

import "strings"

// SanitizeCallback keeps only the characters of a JSONP callback name in [A-Za-z0-9_.].
func SanitizeCallback(callback string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9', r == '_', r == '.':
			return r
		default:
			return -1
		}
	}, callback)
}

// Wrap renders body as a JSONP invocation of callback: /**/callback(body);
//
// callback ought to have passed through SanitizeCallback.
func Wrap(callback string, body []byte) []byte {
	out := make([]byte, 0, len(callback)+len(body)+7)
	out = append(out, "/**/"...)
	out = append(out, callback...)
	out = append(out, '(')
	out = append(out, body...)

	return append(out, ");"...)
}
