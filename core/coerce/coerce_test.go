package coerce_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"audience-sync/core/coerce"
	"audience-sync/core/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func field(name string, typ schema.ValueType) schema.Field {
	return schema.Field{LogicalName: name, RemoteName: name, Type: typ}
}

func TestFromRemote(t *testing.T) {
	signup := time.Date(2015, 9, 16, 19, 24, 29, 0, time.UTC)

	tests := []struct {
		name  string
		field schema.Field
		raw   any
		want  any
	}{
		{"nil string", field("s", schema.String), nil, nil},
		{"string", field("s", schema.String), "hello", "hello"},
		{"empty string stays a string", field("s", schema.String), "", ""},
		{"number as string", field("s", schema.String), json.Number("10"), "10"},
		{"integer from json number", field("i", schema.Integer), json.Number("4"), int64(4)},
		{"integer from float", field("i", schema.Integer), float64(3), int64(3)},
		{"integer from string", field("i", schema.Integer), "17", int64(17)},
		{"empty integer is absent", field("i", schema.Integer), "", nil},
		{"number", field("n", schema.Number), json.Number("2.5"), 2.5},
		{"boolean", field("b", schema.Boolean), true, true},
		{"boolean from string", field("b", schema.Boolean), "false", false},
		{"boolean from one", field("b", schema.Boolean), json.Number("1"), true},
		{"datetime", field("d", schema.DateTime), "2015-09-16T19:24:29+00:00", signup},
		{"datetime fallback layout", field("d", schema.DateTime), "2015-09-16 19:24:29", signup},
		{"empty datetime is absent", field("d", schema.DateTime), "", nil},
		{"string array", field("a", schema.StringArray), []any{"z", nil, "a"}, []string{"z", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerce.FromRemote(tt.field, tt.raw)
			require.NoError(t, err)
			if want, ok := tt.want.(time.Time); ok {
				gotTime, isTime := got.(time.Time)
				require.True(t, isTime)
				assert.True(t, want.Equal(gotTime))
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromRemote_Errors(t *testing.T) {
	tests := []struct {
		name  string
		field schema.Field
		raw   any
	}{
		{"integer", field("member_rating", schema.Integer), "four"},
		{"fractional integer", field("member_rating", schema.Integer), json.Number("4.5")},
		{"number", field("score", schema.Number), "abc"},
		{"boolean", field("vip", schema.Boolean), "maybe"},
		{"boolean out of range", field("vip", schema.Boolean), json.Number("2")},
		{"datetime", field("last_changed", schema.DateTime), "yesterday"},
		{"array from object", field("tags", schema.StringArray), map[string]any{"a": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerce.FromRemote(tt.field, tt.raw)
			assert.Nil(t, got)

			var cerr *coerce.Error
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.field.LogicalName, cerr.Field)
			assert.Equal(t, tt.raw, cerr.Raw)
			assert.Contains(t, err.Error(), tt.field.LogicalName)
		})
	}
}

func TestToRemote(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))

	got, err := coerce.ToRemote(field("d", schema.DateTime), ts)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02T02:04:05Z", got)

	got, err = coerce.ToRemote(field("d", schema.DateTime), "")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = coerce.ToRemote(field("a", schema.StringArray), "vip, new ,")
	require.NoError(t, err)
	assert.Equal(t, []string{"vip", "new"}, got)

	got, err = coerce.ToRemote(field("a", schema.StringArray), []any{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, got)

	got, err = coerce.ToRemote(field("i", schema.Integer), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got)

	got, err = coerce.ToRemote(field("s", schema.String), nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = coerce.ToRemote(field("d", schema.DateTime), "not a date")
	assert.Error(t, err)
}

func TestEqual(t *testing.T) {
	tags := field("tags", schema.StringArray)
	assert.True(t, coerce.Equal(tags, []string{"a", "b"}, []any{"b", "a"}))
	assert.False(t, coerce.Equal(tags, []string{"a"}, []string{"a", "b"}))

	rating := field("rating", schema.Integer)
	assert.True(t, coerce.Equal(rating, int64(2), float64(2)))
	assert.False(t, coerce.Equal(rating, int64(2), int64(3)))

	name := field("name", schema.String)
	assert.True(t, coerce.Equal(name, nil, nil))
	assert.False(t, coerce.Equal(name, nil, "x"))

	when := field("when", schema.DateTime)
	assert.True(t, coerce.Equal(when, "2024-01-01T00:00:00Z", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestStringSet(t *testing.T) {
	set := coerce.StringSet([]string{"a", "b", "a"})
	assert.Len(t, set, 2)
	assert.Empty(t, coerce.StringSet(nil))
	assert.Equal(t, []string{"a", "b"}, coerce.SortedStrings([]string{"b", "a"}))
}
