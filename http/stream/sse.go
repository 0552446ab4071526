package stream

import (
	"strconv"
	"strings"
	"time"
)

const (
	// SSEContentType is the media type of a Server-Sent Events stream.
	SSEContentType = "text/event-stream"
)

// An Event is one Server-Sent Events message.
// Empty fields are left out of the frame; Data is always written.
type Event struct {
	ID    string
	Event string
	Data  string
	Retry time.Duration
}

// Frame renders ev in the text/event-stream format:
//
//	id: 7
//	event: tick
//	retry: 3000
//	data: first line
//	data: second line
//
// Each line of Data gets its own data field.
func (ev Event) Frame() []byte {
	var b strings.Builder
	if ev.ID != "" {
		b.WriteString("id: " + singleLine(ev.ID) + "\n")
	}

	if ev.Event != "" {
		b.WriteString("event: " + singleLine(ev.Event) + "\n")
	}

	if ev.Retry > 0 {
		b.WriteString("retry: " + strconv.FormatInt(ev.Retry.Milliseconds(), 10) + "\n")
	}

	data := lineBreaks.Replace(ev.Data)
	for _, line := range strings.Split(data, "\n") {
		b.WriteString("data: " + line + "\n")
	}

	b.WriteString("\n")
	return []byte(b.String())
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// WriteEvent frames ev onto s and flushes it.
func WriteEvent(s Sink, ev Event) error {
	if _, err := s.Write(ev.Frame()); err != nil {
		return err
	}

	return s.Flush()
}

// WriteComment writes a comment line onto s and flushes it.
// Clients ignore comments; they keep idle connections open.
func WriteComment(s Sink, text string) error {
	if _, err := s.Write([]byte(": " + singleLine(text) + "\n\n")); err != nil {
		return err
	}

	return s.Flush()
}

// singleLine drops line breaks from fields that cannot span lines.
func singleLine(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}
