// Package ranges interprets a request's Range header against a resource's size.
//
// Only single byte ranges are honored.
// A multi-range request is answered with the full resource rather than multipart/byteranges.
package ranges

import (
	"strconv"
	"strings"
)

const unit = "bytes="

// A Kind classifies a parsed Range header.
type Kind int

const (
	// NoRange means serve the full resource with the status unchanged.
	NoRange Kind = iota

	// Satisfiable means reply 206 with the Window.
	Satisfiable

	// Unsatisfiable means reply 416 with no body.
	Unsatisfiable
)

func (k Kind) String() string {
	switch k {
	case Satisfiable:
		return "Satisfiable"
	case Unsatisfiable:
		return "Unsatisfiable"
	default:
		return "NoRange"
	}
}

// A Window is an inclusive span of bytes in a resource of Total bytes.
//
// Start <= End < Total always holds for a Window returned by Parse.
type Window struct {
	Start uint64
	End   uint64
	Total uint64
}

// Len returns the number of bytes in w.
func (w Window) Len() uint64 { return w.End - w.Start + 1 }

// ContentRange renders w as a Content-Range value, as in "bytes 0-99/1000".
func (w Window) ContentRange() string {
	return "bytes " + strconv.FormatUint(w.Start, 10) + "-" + strconv.FormatUint(w.End, 10) + "/" + strconv.FormatUint(w.Total, 10)
}

// UnsatisfiedRange renders the Content-Range value for a 416 reply on a resource of size bytes.
func UnsatisfiedRange(size uint64) string {
	return "bytes */" + strconv.FormatUint(size, 10)
}

// A Result is the outcome of Parse.
// Window is only meaningful when Kind is Satisfiable.
type Result struct {
	Kind   Kind
	Window Window
}

// Parse interprets header against a resource of size bytes.
//
//   - An absent, malformed or multi-range header is NoRange.
//   - A missing end means through the last byte; an end past the last byte is clamped to it.
//   - A suffix range "bytes=-N" selects the last N bytes.
//   - A start at or beyond size, or past the end, is Unsatisfiable.
func Parse(header string, size uint64) Result {
	header = strings.TrimSpace(header)
	if !strings.HasPrefix(header, unit) {
		return Result{}
	}

	spec := strings.TrimSpace(header[len(unit):])
	if spec == "" || strings.Contains(spec, ",") {
		return Result{}
	}

	first, last, ok := strings.Cut(spec, "-")
	if !ok {
		return Result{}
	}
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)

	if first == "" {
		return suffix(last, size)
	}

	start, err := parsePos(first)
	if err != nil {
		return Result{}
	}

	end := size - 1
	if last != "" {
		if end, err = parsePos(last); err != nil {
			return Result{}
		}
	}

	if size == 0 || start >= size || start > end {
		return Result{Kind: Unsatisfiable}
	}

	if end >= size {
		end = size - 1
	}

	return Result{Kind: Satisfiable, Window: Window{Start: start, End: end, Total: size}}
}

func suffix(length string, size uint64) Result {
	n, err := parsePos(length)
	if err != nil {
		return Result{}
	}

	if n == 0 || size == 0 {
		return Result{Kind: Unsatisfiable}
	}

	if n > size {
		n = size
	}

	return Result{Kind: Satisfiable, Window: Window{Start: size - n, End: size - 1, Total: size}}
}

// parsePos accepts only ASCII digits, so signs are rejected.
func parsePos(s string) (uint64, error) {
	if s == "" || s[0] < '0' || s[0] > '9' {
		return 0, strconv.ErrSyntax
	}

	return strconv.ParseUint(s, 10, 64)
}
