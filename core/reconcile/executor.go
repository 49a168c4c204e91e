package reconcile

import (
	"context"
	"fmt"
)

// Executor drives a Writer over a change set.
type Executor struct {
	writer Writer
	status Status
	hooks  Hooks
	opts   Options
}

// NewExecutor creates an executor. A nil status uses a silent LogStatus.
func NewExecutor(writer Writer, status Status, opts Options) *Executor {
	if status == nil {
		status = NewLogStatus(nil)
	}
	return &Executor{
		writer: writer,
		status: status,
		hooks:  NopHooks{},
		opts:   opts,
	}
}

// WithHooks sets the item hooks and returns the executor.
func (e *Executor) WithHooks(h Hooks) *Executor {
	if h == nil {
		h = NopHooks{}
	}
	e.hooks = h
	return e
}

// Execute processes Add, then Update, then Delete.
// It returns the report together with the first error when FailOnError is
// set, or ctx.Err() when the context is cancelled. A stop requested through
// Status is not an error.
func (e *Executor) Execute(ctx context.Context, b Batches) (*Report, error) {
	report := newReport(b)
	defer report.summarise()

	offset := 0
	for _, batch := range []struct {
		kind  Kind
		items []*Item
	}{{KindAdd, b.Add}, {KindUpdate, b.Update}, {KindDelete, b.Delete}} {
		stopped, err := e.runBatch(ctx, batch.kind, batch.items, report.Outcomes[offset:offset+len(batch.items)])
		if err != nil || stopped {
			return report, err
		}
		offset += len(batch.items)
	}

	return report, nil
}

func (e *Executor) runBatch(ctx context.Context, kind Kind, items []*Item, outcomes []Outcome) (bool, error) {
	total := len(items)
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return true, err
		}
		if !e.status.ContinueProcessing() {
			return true, nil
		}

		err := e.runItem(ctx, kind, i, item, &outcomes[i])
		e.status.Progress(total, i+1)
		if err != nil {
			return true, err
		}
	}
	return false, nil
}

func (e *Executor) runItem(ctx context.Context, kind Kind, index int, item *Item, out *Outcome) error {
	e.hooks.BeforeItem(ctx, kind, index, item)

	if item == nil || !item.Sync {
		out.State = StateSkipped
		return nil
	}

	id, err := e.write(ctx, kind, item)
	if err != nil {
		out.Error = err.Error()
		out.State = StateFailed
		e.hooks.ErrorItem(ctx, kind, index, item, err)
		if e.opts.FailOnError {
			return fmt.Errorf("%s item %d: %w", kind, index, err)
		}
		e.status.LogMessage(FailureMessage(err))
		return nil
	}

	out.ID = id
	e.hooks.AfterItem(ctx, kind, index, item, id)
	item.Sync = false
	out.State = StateCommitted
	return nil
}

func (e *Executor) write(ctx context.Context, kind Kind, item *Item) (string, error) {
	switch kind {
	case KindAdd:
		return e.writer.Add(ctx, item)
	case KindUpdate:
		return item.TargetID, e.writer.Update(ctx, item)
	case KindDelete:
		return item.TargetID, e.writer.Delete(ctx, item)
	default:
		return "", fmt.Errorf("unknown kind %s", kind)
	}
}
