package table

import (
	"encoding/json"
	"sort"
)

// Row is an ordered mapping from column name to typed value.
type Row struct {
	ID      string
	columns []string
	values  map[string]any
}

// NewRow returns an empty row.
func NewRow() *Row {
	return &Row{values: make(map[string]any)}
}

// Set assigns a column value, remembering first-assignment order.
func (r *Row) Set(column string, value any) {
	if _, ok := r.values[column]; !ok {
		r.columns = append(r.columns, column)
	}
	r.values[column] = value
}

// Get returns a column value and whether it was assigned.
func (r *Row) Get(column string) (any, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Columns returns the assigned column names in order.
func (r *Row) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Len returns the number of assigned columns.
func (r *Row) Len() int {
	return len(r.columns)
}

// Values returns a copy of the column values.
func (r *Row) Values() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// MarshalJSON renders the row as {"id": ..., "values": {...}}.
func (r *Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID     string         `json:"id"`
		Values map[string]any `json:"values"`
	}{ID: r.ID, Values: r.values})
}

// UnmarshalJSON reads the MarshalJSON form. Columns are restored in name
// order since JSON objects carry none.
func (r *Row) UnmarshalJSON(data []byte) error {
	var doc struct {
		ID     string         `json:"id"`
		Values map[string]any `json:"values"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	names := make([]string, 0, len(doc.Values))
	for name := range doc.Values {
		names = append(names, name)
	}
	sort.Strings(names)

	*r = Row{ID: doc.ID, values: make(map[string]any, len(names))}
	for _, name := range names {
		r.Set(name, doc.Values[name])
	}
	return nil
}
