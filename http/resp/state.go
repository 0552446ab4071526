package resp

// A State marks how far a Response has progressed onto the wire.
type State int

const (
	// Building is before anything is sent; every setter works.
	Building State = iota

	// HeadersSent is after the status line and headers are committed.
	HeadersSent

	// ContentSent is after the body was written in full.
	ContentSent

	// Done is after the host finished the exchange.
	Done

	// Aborted is after the client went away mid-stream, or a producer failed.
	Aborted
)

func (s State) String() string {
	switch s {
	case Building:
		return "Building"
	case HeadersSent:
		return "HeadersSent"
	case ContentSent:
		return "ContentSent"
	case Done:
		return "Done"
	case Aborted:
		return "Aborted"
	default:
		return "Unknown"
	}
}
