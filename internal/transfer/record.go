// Package transfer implements the transfer registry: the in-memory record
// of every in-flight or completed upload a receiver has handled in its
// current process lifetime.
package transfer

import "time"

// State is one of a Record's five valid lifecycle states.
type State string

const (
	StateReceiving     State = "receiving"
	StateReceived      State = "received"
	StateDecompressing State = "decompressing"
	StateDone          State = "done"
	StateError         State = "error"
)

// IsTerminal reports whether s is a terminal state (done or error). No
// further transitions are valid out of a terminal state.
func (s State) IsTerminal() bool {
	return s == StateDone || s == StateError
}

// Record is one row in the registry: the full state of a single transfer
// identified by TransferID. A Record has exactly one writer at a time — the
// request handler that owns the transfer — the registry only serializes
// map access, never per-record mutation ordering.
type Record struct {
	TransferID    string
	Filename      string
	State         State
	BytesReceived int64
	StoredAs      string
	Error         string
	CreatedAt     time.Time
}

// Clone returns a value copy of the record, safe to hand to a caller
// outside the registry's lock. Record has no reference fields besides the
// immutable strings/time already copied by value, so a shallow copy is a
// deep copy here.
func (r *Record) Clone() Record {
	return *r
}
