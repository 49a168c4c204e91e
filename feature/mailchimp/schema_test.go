package mailchimp

import (
	"testing"

	"audience-sync/core/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	members := Registry("MEMBER")
	assert.Equal(t, KindMember, members.Kind())

	f, ok := members.Lookup("FirstName")
	require.True(t, ok)
	assert.Equal(t, "merge_fields", f.Parent)
	assert.Equal(t, "FNAME", f.RemoteName)
	assert.Equal(t, schema.NestedScalar, f.Placement)

	tags := members.MustLookup("tags")
	assert.True(t, tags.IsArraySubResource())
	assert.Equal(t, schema.StringArray, tags.Type)

	for _, name := range []string{"id", "unique_email_id", "member_rating", "last_changed", "email_client", "source"} {
		assert.True(t, members.MustLookup(name).ReadOnly, name)
	}

	lists := Registry(KindList)
	assert.Equal(t, []string{"id", "name", "member_count", "date_created"}, lists.Names())

	assert.Panics(t, func() { Registry("campaign") })
	_, ok = LookupRegistry("campaign")
	assert.False(t, ok)
}

func TestDefaultLogicalSchema(t *testing.T) {
	cols := Registry(KindMember).DefaultLogicalSchema()
	require.Len(t, cols, Registry(KindMember).Len())

	byName := map[string]schema.Column{}
	for _, c := range cols {
		byName[c.Name] = c
	}
	assert.Equal(t, "string-array", byName["tags"].TypeName)
	assert.Equal(t, "integer", byName["member_rating"].TypeName)
	assert.True(t, byName["member_rating"].ReadOnly)
	assert.Equal(t, "boolean", byName["vip"].TypeName)
}
