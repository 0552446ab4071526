package relay

// Enumerable is the interface implemented by types that can only be represented by enumerable, constant values.
//
// Values read from configuration are checked with Valid before use.
type Enumerable interface {
	String() string
	Valid() error
}

var _ Enumerable = Development
