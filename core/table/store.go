package table

import "sync"

// Signal is the answer of a Store to an insertion.
type Signal int

const (
	// Continue asks the producer to keep going.
	Continue Signal = iota
	// Abort asks the producer to stop without error.
	Abort
)

func (s Signal) String() string {
	if s == Abort {
		return "abort"
	}
	return "continue"
}

// Store is the host table that receives projected rows.
type Store interface {
	// NewRow creates an empty row owned by the store.
	NewRow() *Row
	// AddWithIdentifier inserts row under id.
	AddWithIdentifier(row *Row, id string) Signal
}

// MemoryStore keeps rows in insertion order. A positive Limit makes the store
// answer Abort once Limit rows have been added.
type MemoryStore struct {
	Limit int

	mu   sync.Mutex
	rows []*Row
}

// NewMemoryStore creates an unbounded store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewRow creates an empty row.
func (s *MemoryStore) NewRow() *Row {
	return NewRow()
}

// AddWithIdentifier appends row and reports whether the limit was reached.
func (s *MemoryStore) AddWithIdentifier(row *Row, id string) Signal {
	s.mu.Lock()
	defer s.mu.Unlock()

	row.ID = id
	s.rows = append(s.rows, row)

	if s.Limit > 0 && len(s.rows) >= s.Limit {
		return Abort
	}
	return Continue
}

// Rows returns the stored rows in insertion order.
func (s *MemoryStore) Rows() []*Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Row, len(s.rows))
	copy(out, s.rows)
	return out
}

// Len returns the number of stored rows.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}
