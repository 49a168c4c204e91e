package mailchimp

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"audience-sync/core/transport"
)

type call struct {
	Method string
	URL    string
	Body   any
}

// fakeClient answers requests from a route function and records every call.
type fakeClient struct {
	mu    sync.Mutex
	calls []call
	route func(method, url string, body any) (map[string]any, error)
}

func (f *fakeClient) do(method, url string, body any) (map[string]any, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{Method: method, URL: url, Body: body})
	f.mu.Unlock()
	if f.route == nil {
		return map[string]any{}, nil
	}
	return f.route(method, url, body)
}

func (f *fakeClient) GetJSON(_ context.Context, url string) (map[string]any, error) {
	return f.do(http.MethodGet, url, nil)
}

func (f *fakeClient) PostJSON(_ context.Context, url string, body any) (map[string]any, error) {
	return f.do(http.MethodPost, url, body)
}

func (f *fakeClient) PutJSON(_ context.Context, url string, body any) (map[string]any, error) {
	return f.do(http.MethodPut, url, body)
}

func (f *fakeClient) DeleteJSON(_ context.Context, url string) (map[string]any, error) {
	return f.do(http.MethodDelete, url, nil)
}

func (f *fakeClient) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]call, len(f.calls))
	copy(out, f.calls)
	return out
}

var _ transport.Client = (*fakeClient)(nil)

// decode parses a JSON document the way the HTTP transport does.
func decode(doc string) map[string]any {
	var out map[string]any
	dec := json.NewDecoder(strings.NewReader(doc))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		panic(err)
	}
	return out
}
