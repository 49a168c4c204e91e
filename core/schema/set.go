package schema

import (
	"fmt"
	"strings"
)

// Set is an ordered, case-insensitive collection of field descriptors for a
// single resource kind.
type Set struct {
	kind   string
	fields []Field
	index  map[string]int
}

// NewSet builds a descriptor set. It panics if a logical name is repeated
// (case-insensitively) or a nested field has no parent.
func NewSet(kind string, fields ...Field) *Set {
	s := &Set{
		kind:   kind,
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	for _, f := range fields {
		if f.LogicalName == "" {
			panic(fmt.Sprintf("schema %s: field with empty logical name", kind))
		}
		if f.RemoteName == "" {
			f.RemoteName = f.LogicalName
		}
		if f.Placement != Flat && f.Parent == "" {
			panic(fmt.Sprintf("schema %s: field %q is %s but has no parent", kind, f.LogicalName, f.Placement))
		}

		key := strings.ToLower(f.LogicalName)
		if _, dup := s.index[key]; dup {
			panic(fmt.Sprintf("schema %s: duplicate logical name %q", kind, f.LogicalName))
		}

		s.index[key] = len(s.fields)
		s.fields = append(s.fields, f)
	}

	return s
}

// Kind returns the resource kind this set describes.
func (s *Set) Kind() string {
	return s.kind
}

// Len returns the number of fields.
func (s *Set) Len() int {
	return len(s.fields)
}

// Fields returns a copy of the descriptors in declaration order.
func (s *Set) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Names returns the logical names in declaration order.
func (s *Set) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.LogicalName
	}
	return names
}

// Lookup finds a field by logical name, ignoring case.
func (s *Set) Lookup(name string) (Field, bool) {
	i, ok := s.index[strings.ToLower(name)]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// MustLookup is like Lookup but panics when the name is unknown. Callers use
// it where the row schema and the registry are required to agree.
func (s *Set) MustLookup(name string) Field {
	f, ok := s.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("schema %s: unknown logical name %q", s.kind, name))
	}
	return f
}

// DefaultLogicalSchema returns the columns a host should create for this kind.
func (s *Set) DefaultLogicalSchema() []Column {
	cols := make([]Column, len(s.fields))
	for i, f := range s.fields {
		cols[i] = Column{
			Name:     f.LogicalName,
			Type:     f.Type,
			TypeName: f.Type.String(),
			ReadOnly: f.ReadOnly,
		}
	}
	return cols
}
