package mailchimp

import (
	"fmt"
	"sort"

	"audience-sync/core/coerce"
	"audience-sync/core/reconcile"
	"audience-sync/core/schema"
)

// Tag statuses understood by the tags sub-resource.
const (
	TagActive   = "active"
	TagInactive = "inactive"
)

// TagChange adds or removes one tag.
type TagChange struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Delta is the compiled write for one item.
type Delta struct {
	// Payload is the body of the main POST or PUT.
	Payload map[string]any
	// Tags holds tag changes sent to the tags sub-resource on update.
	Tags []TagChange
}

// Empty reports whether the delta requires no remote call.
func (d Delta) Empty() bool {
	return len(d.Payload) == 0 && len(d.Tags) == 0
}

// Compiler turns changed items into remote payloads.
type Compiler struct {
	set *schema.Set
}

// NewCompiler creates a compiler for set.
func NewCompiler(set *schema.Set) *Compiler {
	return &Compiler{set: set}
}

// CompileAdd builds the create payload from the source values of item.
// Array fields are sent whole.
func (c *Compiler) CompileAdd(item *reconcile.Item) (Delta, error) {
	d := Delta{Payload: make(map[string]any)}

	for _, col := range item.Columns {
		f, ok := c.writable(col.Name)
		if !ok || col.Before == nil {
			continue
		}

		value, err := coerce.ToRemote(f, col.Before)
		if err != nil {
			return Delta{}, fmt.Errorf("column %s: %w", col.Name, err)
		}
		if value == nil {
			continue
		}
		if f.IsArraySubResource() {
			d.Payload[f.Parent] = coerce.SortedStrings(value.([]string))
			continue
		}
		place(d.Payload, f, value)
	}

	return d, nil
}

// CompileUpdate builds the update payload from the columns whose values
// differ. Array fields become tag changes: additions for values only in
// After and removals for values only in Before.
func (c *Compiler) CompileUpdate(item *reconcile.Item) (Delta, error) {
	d := Delta{Payload: make(map[string]any)}

	for _, col := range item.Columns {
		f, ok := c.writable(col.Name)
		if !ok || coerce.Equal(f, col.Before, col.After) {
			continue
		}

		if f.IsArraySubResource() {
			changes, err := tagChanges(f, col.Before, col.After)
			if err != nil {
				return Delta{}, fmt.Errorf("column %s: %w", col.Name, err)
			}
			d.Tags = append(d.Tags, changes...)
			continue
		}

		value, err := coerce.ToRemote(f, col.After)
		if err != nil {
			return Delta{}, fmt.Errorf("column %s: %w", col.Name, err)
		}
		if value == nil {
			value = clearValue(f)
		}
		place(d.Payload, f, value)
	}

	return d, nil
}

func (c *Compiler) writable(column string) (schema.Field, bool) {
	f, ok := c.set.Lookup(column)
	if !ok || f.ReadOnly {
		return schema.Field{}, false
	}
	return f, true
}

func place(payload map[string]any, f schema.Field, value any) {
	switch f.Placement {
	case schema.Flat:
		payload[f.RemoteName] = value
	case schema.NestedScalar, schema.NestedArray:
		nested, ok := payload[f.Parent].(map[string]any)
		if !ok {
			nested = make(map[string]any)
			payload[f.Parent] = nested
		}
		nested[f.RemoteName] = value
	}
}

// clearValue is sent when a column was emptied.
func clearValue(f schema.Field) any {
	if f.Type == schema.String {
		return ""
	}
	return nil
}

// tagChanges fails without changes when either side is not a string array.
func tagChanges(f schema.Field, before, after any) ([]TagChange, error) {
	b, err := coerce.ToRemote(f, before)
	if err != nil {
		return nil, err
	}
	a, err := coerce.ToRemote(f, after)
	if err != nil {
		return nil, err
	}
	was, _ := b.([]string)
	now, _ := a.([]string)
	wasSet := coerce.StringSet(was)
	nowSet := coerce.StringSet(now)

	var added, removed []string
	for name := range nowSet {
		if _, ok := wasSet[name]; !ok {
			added = append(added, name)
		}
	}
	for name := range wasSet {
		if _, ok := nowSet[name]; !ok {
			removed = append(removed, name)
		}
	}
	sort.Strings(added)
	sort.Strings(removed)

	changes := make([]TagChange, 0, len(added)+len(removed))
	for _, name := range added {
		changes = append(changes, TagChange{Name: name, Status: TagActive})
	}
	for _, name := range removed {
		changes = append(changes, TagChange{Name: name, Status: TagInactive})
	}
	return changes, nil
}
