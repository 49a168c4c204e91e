package mailchimp

import (
	"fmt"
	"sort"

	"audience-sync/core/coerce"
	"audience-sync/core/schema"
	"audience-sync/core/table"

	"go.uber.org/zap"
)

// Projector copies resource values into rows following a descriptor set.
type Projector struct {
	set    *schema.Set
	logger *zap.Logger
}

// NewProjector creates a projector for set.
func NewProjector(set *schema.Set, logger *zap.Logger) *Projector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Projector{set: set, logger: logger}
}

// Check returns a ConfigError for the first column unknown to the set.
func (p *Projector) Check(columns []string) error {
	for _, column := range columns {
		if _, ok := p.set.Lookup(column); !ok {
			return &ConfigError{Setting: "columns", Reason: fmt.Sprintf("unknown %s column %q", p.set.Kind(), column)}
		}
	}
	return nil
}

// Project fills row with the requested columns of resource. An empty column
// list projects every field. Unknown columns panic; callers Check them first.
func (p *Projector) Project(resource map[string]any, row *table.Row, columns []string) {
	if len(columns) == 0 {
		columns = p.set.Names()
	}

	for _, column := range columns {
		f := p.set.MustLookup(column)

		raw, present := locate(f, resource)
		if !present {
			continue
		}

		value, err := coerce.FromRemote(f, raw)
		if err != nil {
			p.logger.Warn("Skipping malformed value",
				zap.String("kind", p.set.Kind()),
				zap.String("field", f.Path()),
				zap.Error(err),
			)
			continue
		}
		if value == nil {
			continue
		}
		if f.IsArraySubResource() {
			if names, ok := value.([]string); ok {
				sort.Strings(names)
			}
		}

		row.Set(column, value)
	}
}

// locate returns the raw value for f. Missing parents yield no value.
func locate(f schema.Field, resource map[string]any) (any, bool) {
	switch f.Placement {
	case schema.Flat:
		v, ok := resource[f.RemoteName]
		return v, ok && v != nil

	case schema.NestedScalar:
		parent, ok := resource[f.Parent].(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := parent[f.RemoteName]
		return v, ok && v != nil

	case schema.NestedArray:
		elements, ok := resource[f.Parent].([]any)
		if !ok {
			return nil, false
		}
		values := make([]any, 0, len(elements))
		for _, el := range elements {
			obj, ok := el.(map[string]any)
			if !ok {
				continue
			}
			if v := obj[f.RemoteName]; v != nil {
				values = append(values, v)
			}
		}
		return values, true
	}

	return nil, false
}
