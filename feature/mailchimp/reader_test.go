package mailchimp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"testing"
	"time"

	"audience-sync/core/reconcile"
	"audience-sync/core/table"
	"audience-sync/core/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEndpoint(t *testing.T) Endpoint {
	t.Helper()
	e, err := NewEndpoint("key-us1", "")
	require.NoError(t, err)
	return e
}

// memberPages serves total members in pages read from the request offset.
func memberPages(total int) func(method, raw string, body any) (map[string]any, error) {
	return func(method, raw string, body any) (map[string]any, error) {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, err
		}
		count, _ := strconv.Atoi(u.Query().Get("count"))
		offset, _ := strconv.Atoi(u.Query().Get("offset"))

		members := []any{}
		for i := offset; i < offset+count && i < total; i++ {
			members = append(members, map[string]any{
				"id":            fmt.Sprintf("m%03d", i),
				"email_address": fmt.Sprintf("user%03d@example.com", i),
			})
		}
		return map[string]any{"members": members, "total_items": total}, nil
	}
}

func TestReadMembers_RequestCount(t *testing.T) {
	tests := []struct {
		total    int
		pageSize int
		requests int
	}{
		{0, 50, 1},
		{1, 50, 1},
		{50, 50, 1},
		{51, 50, 2},
		{120, 50, 3},
		{7, 3, 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.total, tt.pageSize), func(t *testing.T) {
			client := &fakeClient{route: memberPages(tt.total)}
			r := NewReader(client, testEndpoint(t), "L1", ReaderOptions{PageSize: tt.pageSize}, nil)
			store := table.NewMemoryStore()

			n, err := r.ReadMembers(context.Background(), store, []string{"email_address"})
			require.NoError(t, err)
			assert.Equal(t, tt.total, n)
			assert.Equal(t, tt.total, store.Len())
			assert.Len(t, client.Calls(), tt.requests)
		})
	}
}

func TestReadMembers_AbortMidPage(t *testing.T) {
	client := &fakeClient{route: memberPages(200)}
	r := NewReader(client, testEndpoint(t), "L1", ReaderOptions{PageSize: 50}, nil)
	store := &table.MemoryStore{Limit: 60}

	n, err := r.ReadMembers(context.Background(), store, nil)
	require.NoError(t, err)
	assert.Equal(t, 60, n)
	assert.Len(t, client.Calls(), 2)

	rows := store.Rows()
	assert.Equal(t, "m000", rows[0].ID)
	assert.Equal(t, "m059", rows[59].ID)
}

func TestReadMembers_PrefetchKeepsOrder(t *testing.T) {
	client := &fakeClient{route: memberPages(130)}
	r := NewReader(client, testEndpoint(t), "L1", ReaderOptions{PageSize: 25, Prefetch: true}, nil)
	store := table.NewMemoryStore()

	n, err := r.ReadMembers(context.Background(), store, nil)
	require.NoError(t, err)
	assert.Equal(t, 130, n)
	assert.Len(t, client.Calls(), 6)
	for i, row := range store.Rows() {
		assert.Equal(t, fmt.Sprintf("m%03d", i), row.ID)
	}
}

func TestReadMembers_PrefetchAbortCostsOneExtraRequest(t *testing.T) {
	client := &fakeClient{route: memberPages(200)}
	r := NewReader(client, testEndpoint(t), "L1", ReaderOptions{PageSize: 50, Prefetch: true}, nil)
	store := &table.MemoryStore{Limit: 10}

	n, err := r.ReadMembers(context.Background(), store, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Eventually(t, func() bool { return len(client.Calls()) == 2 }, time.Second, time.Millisecond)

	time.Sleep(10 * time.Millisecond)
	assert.Len(t, client.Calls(), 2)
	assert.Equal(t, 10, store.Len())
}

func TestReader_UnknownColumns(t *testing.T) {
	client := &fakeClient{route: memberPages(5)}
	r := NewReader(client, testEndpoint(t), "L1", ReaderOptions{}, nil)
	store := table.NewMemoryStore()

	_, err := r.ReadMembers(context.Background(), store, []string{"email_address", "shoe_size"})
	assert.ErrorIs(t, err, reconcile.ErrConfiguration)

	_, err = r.ReadLists(context.Background(), store, []string{"shoe_size"})
	assert.ErrorIs(t, err, reconcile.ErrConfiguration)

	_, err = r.FetchMembers(context.Background(), store, KeySet{Column: "id", Keys: []string{"a"}}, []string{"shoe_size"})
	assert.ErrorIs(t, err, reconcile.ErrConfiguration)

	_, err = r.FetchMembers(context.Background(), store, KeySet{Column: "shoe_size", Keys: []string{"a"}}, nil)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	assert.Empty(t, client.Calls())
	assert.Zero(t, store.Len())
}

func TestReadMembers_TransportError(t *testing.T) {
	client := &fakeClient{route: func(method, raw string, body any) (map[string]any, error) {
		return nil, &transport.Error{Method: method, URL: raw, Status: http.StatusUnauthorized}
	}}
	r := NewReader(client, testEndpoint(t), "L1", ReaderOptions{}, nil)

	_, err := r.ReadMembers(context.Background(), table.NewMemoryStore(), nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, transport.StatusOf(err))
}

func TestReadMembers_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &fakeClient{}
	client.route = func(method, raw string, body any) (map[string]any, error) {
		cancel()
		return memberPages(100)(method, raw, body)
	}
	r := NewReader(client, testEndpoint(t), "L1", ReaderOptions{PageSize: 10}, nil)

	n, err := r.ReadMembers(ctx, table.NewMemoryStore(), nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, n, 10)
	assert.Len(t, client.Calls(), 1)
}

func TestReadLists(t *testing.T) {
	client := &fakeClient{route: func(method, raw string, body any) (map[string]any, error) {
		return decode(`{"lists":[{"id":"L1","name":"Newsletter","stats":{"member_count":3}}],"total_items":1}`), nil
	}}
	r := NewReader(client, testEndpoint(t), "", ReaderOptions{}, nil)
	store := table.NewMemoryStore()

	n, err := r.ReadLists(context.Background(), store, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "https://us1.api.mailchimp.com/3.0/lists?count=50&offset=0", client.Calls()[0].URL)
	assert.Equal(t, "L1", store.Rows()[0].ID)
}

func TestFetchMembers(t *testing.T) {
	hash := SubscriberHash("known@example.com")
	client := &fakeClient{route: func(method, raw string, body any) (map[string]any, error) {
		switch raw {
		case "https://us1.api.mailchimp.com/3.0/lists/L1/members/" + hash:
			return map[string]any{"id": hash, "email_address": "known@example.com"}, nil
		case "https://us1.api.mailchimp.com/3.0/lists/L1/members/raw-id":
			return map[string]any{"id": "raw-id", "email_address": "raw@example.com"}, nil
		}
		return nil, &transport.Error{Method: method, URL: raw, Status: http.StatusNotFound}
	}}
	r := NewReader(client, testEndpoint(t), "L1", ReaderOptions{}, nil)

	t.Run("By email", func(t *testing.T) {
		store := table.NewMemoryStore()
		n, err := r.FetchMembers(context.Background(), store, KeySet{
			Column: "email_address",
			Keys:   []string{"Known@Example.com", "missing@example.com"},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, hash, store.Rows()[0].ID)
	})

	t.Run("By id", func(t *testing.T) {
		store := table.NewMemoryStore()
		n, err := r.FetchMembers(context.Background(), store, KeySet{Column: "id", Keys: []string{"raw-id"}}, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestFetchMembers_OtherErrorsAbort(t *testing.T) {
	client := &fakeClient{route: func(method, raw string, body any) (map[string]any, error) {
		return nil, &transport.Error{Method: method, URL: raw, Err: errors.New("connection reset")}
	}}
	r := NewReader(client, testEndpoint(t), "L1", ReaderOptions{}, nil)

	_, err := r.FetchMembers(context.Background(), table.NewMemoryStore(), KeySet{Column: "id", Keys: []string{"a", "b"}}, nil)
	require.Error(t, err)
	assert.Len(t, client.Calls(), 1)
}
