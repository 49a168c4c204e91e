package schema_test

import (
	"testing"

	"audience-sync/core/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSet() *schema.Set {
	return schema.NewSet("member",
		schema.Field{LogicalName: "id", Type: schema.String, ReadOnly: true},
		schema.Field{LogicalName: "firstname", RemoteName: "FNAME", Parent: "merge_fields", Placement: schema.NestedScalar},
		schema.Field{LogicalName: "tags", RemoteName: "name", Parent: "tags", Placement: schema.NestedArray, Type: schema.StringArray},
	)
}

func TestSet_LookupIsCaseInsensitive(t *testing.T) {
	s := testSet()

	f, ok := s.Lookup("FirstName")
	require.True(t, ok)
	assert.Equal(t, "FNAME", f.RemoteName)
	assert.True(t, f.IsSubValue())
	assert.False(t, f.IsArraySubResource())
	assert.Equal(t, "merge_fields|FNAME", f.Path())

	_, ok = s.Lookup("missing")
	assert.False(t, ok)
}

func TestSet_DefaultsRemoteName(t *testing.T) {
	s := testSet()
	f := s.MustLookup("ID")
	assert.Equal(t, "id", f.RemoteName)
	assert.False(t, f.IsSubValue())
}

func TestSet_MustLookupPanicsOnUnknown(t *testing.T) {
	s := testSet()
	assert.Panics(t, func() { s.MustLookup("nope") })
}

func TestNewSet_Validation(t *testing.T) {
	tests := []struct {
		name   string
		fields []schema.Field
	}{
		{
			name: "duplicate names differ only in case",
			fields: []schema.Field{
				{LogicalName: "email"},
				{LogicalName: "EMAIL"},
			},
		},
		{
			name: "nested field without parent",
			fields: []schema.Field{
				{LogicalName: "firstname", Placement: schema.NestedScalar},
			},
		},
		{
			name: "empty logical name",
			fields: []schema.Field{
				{RemoteName: "x"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() { schema.NewSet("test", tt.fields...) })
		})
	}
}

func TestSet_DefaultLogicalSchema(t *testing.T) {
	cols := testSet().DefaultLogicalSchema()
	require.Len(t, cols, 3)

	assert.Equal(t, "id", cols[0].Name)
	assert.True(t, cols[0].ReadOnly)
	assert.Equal(t, "string", cols[0].TypeName)

	assert.Equal(t, "tags", cols[2].Name)
	assert.Equal(t, schema.StringArray, cols[2].Type)
	assert.Equal(t, "string-array", cols[2].TypeName)
}

func TestSet_FieldsPreserveOrder(t *testing.T) {
	s := testSet()
	assert.Equal(t, []string{"id", "firstname", "tags"}, s.Names())
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "member", s.Kind())
}
