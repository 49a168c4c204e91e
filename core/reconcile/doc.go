// Package reconcile applies change sets produced by an external comparer to a
// remote system, one item at a time.
//
// A change set is a Batches value: Add, Update and Delete lists of Items.
// The comparer decides which rows differ; this package never compares
// records. It only drives a Writer over the items and records what happened.
//
// # Architecture
//
// The package consists of four parts:
//
// 1. Executor: walks Add, then Update, then Delete. Each batch finishes before
// the next one starts and the Status sink can stop the run between items.
//
// 2. Writer: resource-specific write operations (see feature/mailchimp).
//
// 3. Hooks and Status: observers notified around every item. Hooks persist
// outcomes (see feature/journal); Status reports progress and messages.
//
// 4. Cache: TTL cache with stampede protection for lookups that are costly
// to rebuild, such as the list directory.
//
// # Failure isolation
//
// A failed item never rolls back earlier items. With Options.FailOnError the
// run stops at the first failure and the error is returned. Otherwise the
// failure is logged through Status, the item keeps its Sync flag and
// processing moves on to the next item.
//
// # Usage Example
//
//	exec := reconcile.NewExecutor(writer, reconcile.NewLogStatus(log), reconcile.Options{})
//	report, err := exec.Execute(ctx, batches)
package reconcile
