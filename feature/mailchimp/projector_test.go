package mailchimp

import (
	"testing"
	"time"

	"audience-sync/core/reconcile"
	"audience-sync/core/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const memberDoc = `{
  "id": "62eeb292278cc15f5817cb78f7790b08",
  "email_address": "urist.mcvankab@freddiesjokes.com",
  "unique_email_id": "8b3f9d2c1a",
  "email_type": "html",
  "status": "subscribed",
  "merge_fields": {"FNAME": "Urist", "LNAME": "McVankab"},
  "ip_signup": "",
  "timestamp_signup": "",
  "ip_opt": "198.2.191.34",
  "timestamp_opt": "2015-09-16T19:24:29+00:00",
  "member_rating": 2,
  "last_changed": "2015-09-16T19:24:29+00:00",
  "language": "en",
  "vip": false,
  "email_client": "",
  "source": "API - Generic",
  "tags": [{"id": 2, "name": "zeta"}, {"id": 1, "name": "alpha"}]
}`

func TestProject_Member(t *testing.T) {
	row := table.NewRow()
	NewProjector(memberFields, nil).Project(decode(memberDoc), row, nil)

	v, _ := row.Get("email_address")
	assert.Equal(t, "urist.mcvankab@freddiesjokes.com", v)

	v, _ = row.Get("firstname")
	assert.Equal(t, "Urist", v)

	v, _ = row.Get("member_rating")
	assert.Equal(t, int64(2), v)

	v, _ = row.Get("vip")
	assert.Equal(t, false, v)

	v, _ = row.Get("timestamp_opt")
	assert.Equal(t, time.Date(2015, 9, 16, 19, 24, 29, 0, time.UTC), v.(time.Time).UTC())

	_, ok := row.Get("timestamp_signup")
	assert.False(t, ok, "empty timestamp is absent")

	v, _ = row.Get("ip_signup")
	assert.Equal(t, "", v)
}

func TestProject_TagsAreSorted(t *testing.T) {
	for _, doc := range []string{
		`{"id":"1","tags":[{"name":"z"},{"name":"a"}]}`,
		`{"id":"1","tags":[{"name":"a"},{"name":"z"}]}`,
	} {
		row := table.NewRow()
		NewProjector(memberFields, nil).Project(decode(doc), row, []string{"tags"})
		v, ok := row.Get("tags")
		require.True(t, ok)
		assert.Equal(t, []string{"a", "z"}, v)
	}
}

func TestProject_MissingParentIsNoValue(t *testing.T) {
	row := table.NewRow()
	NewProjector(memberFields, nil).Project(decode(`{"id":"1","email_address":"x@y.z"}`), row, []string{"firstname", "tags", "email_address"})

	_, ok := row.Get("firstname")
	assert.False(t, ok)
	_, ok = row.Get("tags")
	assert.False(t, ok)
	assert.Equal(t, []string{"email_address"}, row.Columns())
}

func TestProject_EmptyTagArray(t *testing.T) {
	row := table.NewRow()
	NewProjector(memberFields, nil).Project(decode(`{"id":"1","tags":[]}`), row, []string{"tags"})
	v, ok := row.Get("tags")
	require.True(t, ok)
	assert.Equal(t, []string{}, v)
}

func TestProject_MalformedValueLeavesCellUnset(t *testing.T) {
	row := table.NewRow()
	NewProjector(memberFields, nil).Project(decode(`{"id":"1","member_rating":"lots","status":"subscribed"}`), row, nil)

	_, ok := row.Get("member_rating")
	assert.False(t, ok)
	v, _ := row.Get("status")
	assert.Equal(t, "subscribed", v)
}

func TestProject_ColumnsAreCaseInsensitive(t *testing.T) {
	row := table.NewRow()
	NewProjector(memberFields, nil).Project(decode(memberDoc), row, []string{"Status"})
	assert.Equal(t, []string{"Status"}, row.Columns())
}

func TestProject_UnknownColumnPanics(t *testing.T) {
	proj := NewProjector(memberFields, nil)
	assert.Panics(t, func() {
		proj.Project(decode(memberDoc), table.NewRow(), []string{"not_a_field"})
	})
}

func TestProjector_Check(t *testing.T) {
	proj := NewProjector(memberFields, nil)
	assert.NoError(t, proj.Check(nil))
	assert.NoError(t, proj.Check([]string{"Email_Address", "tags"}))

	err := proj.Check([]string{"status", "not_a_field"})
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "columns", cfgErr.Setting)
	assert.Contains(t, cfgErr.Reason, "not_a_field")
	assert.ErrorIs(t, err, reconcile.ErrConfiguration)
}

func TestProject_ListStats(t *testing.T) {
	row := table.NewRow()
	NewProjector(listFields, nil).Project(decode(`{"id":"L1","name":"Newsletter","stats":{"member_count":42}}`), row, nil)

	v, _ := row.Get("member_count")
	assert.Equal(t, int64(42), v)
	v, _ = row.Get("name")
	assert.Equal(t, "Newsletter", v)
}
