package transfer

import (
	"fmt"
	"sync"
	"time"

	"github.com/chrisagrams/mstransfer/internal/events"
)

// ErrConflict is returned by Create when a transfer id already exists.
var ErrConflict = fmt.Errorf("transfer id already exists")

// Patch is a sum of optional field mutations applied atomically by Update.
// Only non-nil fields are applied; this replaces the original source's
// keyword-argument-bag update with a small typed struct, per spec.md §9.
type Patch struct {
	State         *State
	BytesReceived *int64
	StoredAs      *string
	Error         *string
}

// Registry is the concurrent-safe map of transfer_id → Record. It owns its
// records exclusively: callers only ever see Clone()'d snapshots. All
// operations are linearizable per transfer_id; none perform I/O, so the
// single mutex is never held across a disk or network call.
type Registry struct {
	mu      sync.Mutex
	records map[string]*Record
	bus     *events.EventBus
}

// NewRegistry creates an empty registry. bus may be nil, in which case
// state changes are not published anywhere (useful in tests).
func NewRegistry(bus *events.EventBus) *Registry {
	return &Registry{
		records: make(map[string]*Record),
		bus:     bus,
	}
}

// Create inserts a fresh record in state receiving. It fails with
// ErrConflict if the id already exists — concurrent id reuse is a sender
// bug, not something the registry silently tolerates by overwriting.
func (r *Registry) Create(transferID, filename string) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[transferID]; exists {
		return Record{}, ErrConflict
	}

	rec := &Record{
		TransferID: transferID,
		Filename:   filename,
		State:      StateReceiving,
		CreatedAt:  time.Now(),
	}
	r.records[transferID] = rec

	r.publish(transferID, "", string(StateReceiving), "")
	return rec.Clone(), nil
}

// Get returns a snapshot of the record, or false if unknown.
func (r *Registry) Get(transferID string) (Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[transferID]
	if !ok {
		return Record{}, false
	}
	return rec.Clone(), true
}

// Update atomically applies patch to the record. It is a no-op (returning
// the unchanged current snapshot) if the id is unknown or already in a
// terminal state — no transition ever leaves done/error.
func (r *Registry) Update(transferID string, patch Patch) (Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[transferID]
	if !ok {
		return Record{}, false
	}
	if rec.State.IsTerminal() {
		return rec.Clone(), true
	}

	oldState := rec.State
	if patch.BytesReceived != nil {
		if *patch.BytesReceived > rec.BytesReceived {
			rec.BytesReceived = *patch.BytesReceived
		}
	}
	if patch.StoredAs != nil {
		rec.StoredAs = *patch.StoredAs
	}
	if patch.Error != nil {
		rec.Error = *patch.Error
	}
	if patch.State != nil {
		rec.State = *patch.State
	}

	if patch.State != nil && *patch.State != oldState {
		errMsg := ""
		if patch.Error != nil {
			errMsg = *patch.Error
		}
		r.publish(transferID, string(oldState), string(rec.State), errMsg)
	}

	return rec.Clone(), true
}

// Sweep removes every record in a terminal state whose CreatedAt is older
// than now-maxAge, returning the count removed.
func (r *Registry) Sweep(maxAge time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	threshold := time.Now().Add(-maxAge)
	removed := 0
	for id, rec := range r.records {
		if rec.State.IsTerminal() && rec.CreatedAt.Before(threshold) {
			delete(r.records, id)
			removed++
		}
	}
	return removed
}

// Len returns the current record count, mainly for tests and diagnostics.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func (r *Registry) publish(transferID, oldState, newState, errMsg string) {
	if r.bus == nil {
		return
	}
	r.bus.PublishStateChange(transferID, oldState, newState, errMsg)
}
