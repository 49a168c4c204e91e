package schema

import "fmt"

// ValueType is the logical type of a column value.
type ValueType int

const (
	String ValueType = iota
	StringArray
	Integer
	Number
	DateTime
	Boolean
)

func (t ValueType) String() string {
	switch t {
	case String:
		return "string"
	case StringArray:
		return "string-array"
	case Integer:
		return "integer"
	case Number:
		return "number"
	case DateTime:
		return "datetime"
	case Boolean:
		return "boolean"
	default:
		return fmt.Sprintf("ValueType(%d)", int(t))
	}
}

// Placement says where a field lives inside the remote resource.
type Placement int

const (
	// Flat fields are top-level properties.
	Flat Placement = iota
	// NestedScalar fields are properties of the object at Parent.
	NestedScalar
	// NestedArray fields are collected from each element of the array at Parent.
	NestedArray
)

func (p Placement) String() string {
	switch p {
	case Flat:
		return "flat"
	case NestedScalar:
		return "nested"
	case NestedArray:
		return "nested-array"
	default:
		return fmt.Sprintf("Placement(%d)", int(p))
	}
}

// Field describes one logical column.
type Field struct {
	// LogicalName is the column name exposed to the host schema.
	LogicalName string
	// RemoteName is the key inside the remote object (or array element).
	RemoteName string
	// Parent is the nested object or array holding the value.
	// Required unless Placement is Flat.
	Parent string
	// Placement selects how the value is located.
	Placement Placement
	// Type is the logical value type.
	Type ValueType
	// ReadOnly fields are never sent back on write.
	ReadOnly bool
}

// IsSubValue reports whether the field lives below a parent object.
func (f Field) IsSubValue() bool {
	return f.Placement != Flat
}

// IsArraySubResource reports whether the field aggregates an array of objects.
func (f Field) IsArraySubResource() bool {
	return f.Placement == NestedArray
}

// Path returns a printable location such as "merge_fields|FNAME".
func (f Field) Path() string {
	if f.IsSubValue() {
		return f.Parent + "|" + f.RemoteName
	}
	return f.RemoteName
}

// Column is one entry of the default logical schema offered to the host.
type Column struct {
	Name     string    `json:"name"`
	Type     ValueType `json:"-"`
	TypeName string    `json:"type"`
	ReadOnly bool      `json:"read_only"`
}
