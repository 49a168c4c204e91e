package reconcile

import (
	"fmt"
	"strings"
)

// Column is one column of a changed item.
type Column struct {
	// Name is the logical column name.
	Name string `json:"name"`

	// Before is the source value.
	Before any `json:"before"`

	// After is the current target value.
	After any `json:"after"`
}

// Item is one changed row handed over by the comparer.
type Item struct {
	// Sync marks the item for processing. It is cleared once committed.
	Sync bool `json:"sync"`

	// Columns holds the column values in comparer order.
	Columns []Column `json:"columns"`

	// TargetID identifies the remote record for update and delete.
	TargetID string `json:"target_id,omitempty"`
}

// Column returns the column named name, matched case-insensitively.
func (it *Item) Column(name string) (Column, bool) {
	for _, c := range it.Columns {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Column{}, false
}

// Batches is a change set.
type Batches struct {
	Add    []*Item `json:"add"`
	Update []*Item `json:"update"`
	Delete []*Item `json:"delete"`
}

// Len returns the total number of items.
func (b Batches) Len() int {
	return len(b.Add) + len(b.Update) + len(b.Delete)
}

// Kind is the write operation applied to a batch.
type Kind int

const (
	KindAdd Kind = iota
	KindUpdate
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// State is the outcome of one item.
type State int

const (
	// StatePending means the item was never attempted.
	StatePending State = iota
	// StateCommitted means the write succeeded.
	StateCommitted
	// StateSkipped means the item was not marked for sync.
	StateSkipped
	// StateFailed means the write failed and the run continued.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateCommitted:
		return "committed"
	case StateSkipped:
		return "skipped"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText renders the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// MarshalText renders the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Outcome records what happened to one item.
type Outcome struct {
	Kind  Kind   `json:"kind"`
	Index int    `json:"index"`
	State State  `json:"state"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

// Report summarises an Execute run.
type Report struct {
	// Outcomes lists every item in execution order.
	Outcomes []Outcome `json:"outcomes"`

	// Summary provides aggregate counts.
	Summary ReportSummary `json:"summary"`
}

// ReportSummary provides aggregate counts for a Report.
type ReportSummary struct {
	Total     int `json:"total"`
	Committed int `json:"committed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
	Pending   int `json:"pending"`
}

func newReport(b Batches) *Report {
	r := &Report{Outcomes: make([]Outcome, 0, b.Len())}
	for _, batch := range []struct {
		kind  Kind
		items []*Item
	}{{KindAdd, b.Add}, {KindUpdate, b.Update}, {KindDelete, b.Delete}} {
		for i := range batch.items {
			r.Outcomes = append(r.Outcomes, Outcome{Kind: batch.kind, Index: i, State: StatePending})
		}
	}
	return r
}

func (r *Report) summarise() {
	s := ReportSummary{Total: len(r.Outcomes)}
	for _, o := range r.Outcomes {
		switch o.State {
		case StateCommitted:
			s.Committed++
		case StateSkipped:
			s.Skipped++
		case StateFailed:
			s.Failed++
		case StatePending:
			s.Pending++
		}
	}
	r.Summary = s
}

// Options controls executor behaviour.
type Options struct {
	// FailOnError stops the run at the first failed item.
	FailOnError bool
}
