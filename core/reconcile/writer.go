package reconcile

import "context"

// Writer performs the remote write for one item.
// Each resource kind that supports writes implements it.
type Writer interface {
	// Add creates the remote record and returns its identifier.
	Add(ctx context.Context, item *Item) (string, error)

	// Update modifies the remote record named by item.TargetID.
	Update(ctx context.Context, item *Item) error

	// Delete removes the remote record named by item.TargetID.
	Delete(ctx context.Context, item *Item) error
}

// Status receives progress and log messages and can stop a run.
type Status interface {
	// ContinueProcessing is polled before every item.
	ContinueProcessing() bool

	// Progress reports that current of total items in a batch are done.
	Progress(total, current int)

	// LogMessage records a message for the operator.
	LogMessage(msg string)
}

// Hooks observes item processing.
type Hooks interface {
	BeforeItem(ctx context.Context, kind Kind, index int, item *Item)
	AfterItem(ctx context.Context, kind Kind, index int, item *Item, id string)
	ErrorItem(ctx context.Context, kind Kind, index int, item *Item, err error)
}

// NopHooks ignores every notification.
type NopHooks struct{}

func (NopHooks) BeforeItem(context.Context, Kind, int, *Item)        {}
func (NopHooks) AfterItem(context.Context, Kind, int, *Item, string) {}
func (NopHooks) ErrorItem(context.Context, Kind, int, *Item, error)  {}
