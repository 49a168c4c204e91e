package mailchimp

import (
	"context"
	"net/http"
	"testing"

	"audience-sync/core/reconcile"
	"audience-sync/core/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const membersURL = "https://us1.api.mailchimp.com/3.0/lists/L1/members"

func TestMemberWriter_Add(t *testing.T) {
	client := &fakeClient{route: func(method, url string, body any) (map[string]any, error) {
		return map[string]any{"id": "new-id"}, nil
	}}
	w := NewMemberWriter(client, testEndpoint(t), "L1", nil)

	id, err := w.Add(context.Background(), &reconcile.Item{Sync: true, Columns: []reconcile.Column{
		{Name: "email_address", Before: "a@example.com"},
		{Name: "tags", Before: []string{"vip"}},
	}})
	require.NoError(t, err)
	assert.Equal(t, "new-id", id)

	calls := client.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, membersURL, calls[0].URL)
	assert.Equal(t, map[string]any{"email_address": "a@example.com", "tags": []string{"vip"}}, calls[0].Body)
}

func TestMemberWriter_AddWithoutID(t *testing.T) {
	client := &fakeClient{}
	w := NewMemberWriter(client, testEndpoint(t), "L1", nil)

	_, err := w.Add(context.Background(), &reconcile.Item{Sync: true})
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestMemberWriter_Update(t *testing.T) {
	tests := []struct {
		name    string
		columns []reconcile.Column
		want    []call
	}{
		{
			name: "Fields and tags",
			columns: []reconcile.Column{
				{Name: "status", Before: "subscribed", After: "unsubscribed"},
				{Name: "tags", Before: []string{"a"}, After: []string{"b"}},
			},
			want: []call{
				{Method: http.MethodPut, URL: membersURL + "/m1", Body: map[string]any{"status": "unsubscribed"}},
				{Method: http.MethodPost, URL: membersURL + "/m1/tags", Body: map[string]any{"tags": []TagChange{
					{Name: "b", Status: TagActive},
					{Name: "a", Status: TagInactive},
				}}},
			},
		},
		{
			name: "Tags only skips the main write",
			columns: []reconcile.Column{
				{Name: "status", Before: "subscribed", After: "subscribed"},
				{Name: "tags", Before: nil, After: []string{"new"}},
			},
			want: []call{
				{Method: http.MethodPost, URL: membersURL + "/m1/tags", Body: map[string]any{"tags": []TagChange{
					{Name: "new", Status: TagActive},
				}}},
			},
		},
		{
			name: "No changes makes no calls",
			columns: []reconcile.Column{
				{Name: "status", Before: "subscribed", After: "subscribed"},
				{Name: "member_rating", Before: int64(1), After: int64(4)},
			},
			want: []call{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{}
			w := NewMemberWriter(client, testEndpoint(t), "L1", nil)

			err := w.Update(context.Background(), &reconcile.Item{Sync: true, TargetID: "m1", Columns: tt.columns})
			require.NoError(t, err)
			assert.Equal(t, tt.want, client.Calls())
		})
	}
}

func TestMemberWriter_UpdateStopsOnFailure(t *testing.T) {
	client := &fakeClient{route: func(method, url string, body any) (map[string]any, error) {
		return nil, &transport.Error{Method: method, URL: url, Status: http.StatusBadRequest, Body: "invalid"}
	}}
	w := NewMemberWriter(client, testEndpoint(t), "L1", nil)

	err := w.Update(context.Background(), &reconcile.Item{Sync: true, TargetID: "m1", Columns: []reconcile.Column{
		{Name: "status", Before: "a", After: "b"},
		{Name: "tags", Before: []string{}, After: []string{"x"}},
	}})
	require.Error(t, err)
	assert.Len(t, client.Calls(), 1)
}

func TestMemberWriter_Delete(t *testing.T) {
	client := &fakeClient{}
	w := NewMemberWriter(client, testEndpoint(t), "L1", nil)

	require.NoError(t, w.Delete(context.Background(), &reconcile.Item{Sync: true, TargetID: "m1"}))
	assert.Equal(t, []call{{Method: http.MethodDelete, URL: membersURL + "/m1"}}, client.Calls())

	assert.ErrorIs(t, w.Delete(context.Background(), &reconcile.Item{Sync: true}), ErrNoTarget)
	assert.ErrorIs(t, w.Update(context.Background(), &reconcile.Item{Sync: true}), ErrNoTarget)
}

func TestMemberWriter_WithExecutor(t *testing.T) {
	client := &fakeClient{route: func(method, url string, body any) (map[string]any, error) {
		if m := body.(map[string]any); m["email_address"] == "bad@example.com" {
			return nil, &transport.Error{Method: method, URL: url, Status: http.StatusBadRequest, Body: `{"title":"Invalid Resource"}`}
		}
		return map[string]any{"id": "ok"}, nil
	}}
	w := NewMemberWriter(client, testEndpoint(t), "L1", nil)

	items := []*reconcile.Item{
		{Sync: true, Columns: []reconcile.Column{{Name: "email_address", Before: "one@example.com"}}},
		{Sync: true, Columns: []reconcile.Column{{Name: "email_address", Before: "bad@example.com"}}},
		{Sync: true, Columns: []reconcile.Column{{Name: "email_address", Before: "three@example.com"}}},
	}

	report, err := reconcile.NewExecutor(w, nil, reconcile.Options{}).Execute(context.Background(), reconcile.Batches{Add: items})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Summary.Committed)
	assert.Equal(t, 1, report.Summary.Failed)
	assert.False(t, items[0].Sync)
	assert.True(t, items[1].Sync)
	assert.False(t, items[2].Sync)
}
