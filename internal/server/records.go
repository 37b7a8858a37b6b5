package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-dynform/pkg/form"
)

// Entry is one submitted record as listed by the server.
type Entry struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"createdAt"`
	Values    form.Record `json:"values"`
}

// Records keeps submitted records in memory for display. Nothing survives a
// restart.
type Records struct {
	mu      sync.RWMutex
	entries []Entry
	now     func() time.Time
}

// NewRecords returns an empty record list.
func NewRecords() *Records {
	return &Records{now: time.Now}
}

// Add appends record under a fresh id.
func (r *Records) Add(record form.Record) Entry {
	entry := Entry{
		ID:        uuid.NewString(),
		CreatedAt: r.now().UTC(),
		Values:    record,
	}
	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()
	return entry
}

// List returns the records in submission order.
func (r *Records) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Values returns only the record values, in submission order.
func (r *Records) Values() []form.Record {
	entries := r.List()
	out := make([]form.Record, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Values)
	}
	return out
}
