package mailchimp

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"audience-sync/core/reconcile"
	"audience-sync/core/table"
	"audience-sync/core/transport"
	"audience-sync/core/utils"

	"go.uber.org/zap"
)

// ListSummary is one entry of the list directory.
type ListSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MemberCount int    `json:"member_count"`
}

// ListDirectory resolves list names to ids. Entries are cached per API key.
type ListDirectory struct {
	reader *Reader
	cache  *reconcile.Cache[[]ListSummary]
	key    string
}

// NewListDirectory creates a directory. The cache key is a fingerprint of
// apiKey.
func NewListDirectory(client transport.Client, endpoint Endpoint, apiKey string, cache *reconcile.Cache[[]ListSummary], pageSize int, logger *zap.Logger) *ListDirectory {
	if cache == nil {
		cache = reconcile.NewCache[[]ListSummary](5 * time.Minute)
	}
	return &ListDirectory{
		reader: NewReader(client, endpoint, "", ReaderOptions{PageSize: pageSize}, logger),
		cache:  cache,
		key:    "lists." + Fingerprint(apiKey),
	}
}

// Fingerprint returns a short stable digest of a credential.
func Fingerprint(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:8])
}

// Lists returns all lists, cached.
func (d *ListDirectory) Lists(ctx context.Context) ([]ListSummary, error) {
	return d.cache.Get(ctx, d.key, d.load)
}

// Resolve returns the id of the list named name, ignoring case.
func (d *ListDirectory) Resolve(ctx context.Context, name string) (string, error) {
	lists, err := d.Lists(ctx)
	if err != nil {
		return "", err
	}
	for _, l := range lists {
		if strings.EqualFold(l.Name, name) {
			return l.ID, nil
		}
	}
	return "", &ConfigError{Setting: "list_name", Reason: fmt.Sprintf("no list named %q", name)}
}

// Invalidate drops the cached directory.
func (d *ListDirectory) Invalidate() {
	d.cache.Invalidate(d.key)
}

func (d *ListDirectory) load(ctx context.Context) ([]ListSummary, error) {
	store := table.NewMemoryStore()
	if _, err := d.reader.ReadLists(ctx, store, []string{"id", "name", "member_count"}); err != nil {
		return nil, err
	}

	rows := store.Rows()
	out := make([]ListSummary, 0, len(rows))
	for _, row := range rows {
		name, _ := row.Get("name")
		count, _ := row.Get("member_count")
		out = append(out, ListSummary{
			ID:          row.ID,
			Name:        utils.ToString(name),
			MemberCount: utils.ToInt(count),
		})
	}
	return out, nil
}
