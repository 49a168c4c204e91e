package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"audience-sync/core/reconcile"
	"audience-sync/core/storage"
	"audience-sync/core/table"

	"github.com/minio/minio-go/v7"
)

// ErrNoSnapshot is returned when a kind has no snapshot yet.
var ErrNoSnapshot = errors.New("no snapshot found")

const timeLayout = "20060102T150405.000000000Z"

// Document is the stored form of a snapshot.
type Document struct {
	Kind    string       `json:"kind"`
	TakenAt time.Time    `json:"taken_at"`
	Count   int          `json:"count"`
	Rows    []*table.Row `json:"rows"`
}

// Store reads and writes snapshot objects.
type Store struct {
	client storage.Client
	bucket string
	prefix string
	now    func() time.Time
}

// NewStore creates a store writing below prefix in bucket.
func NewStore(client storage.Client, bucket, prefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		now:    time.Now,
	}
}

func (s *Store) kindPrefix(kind string) string {
	return path.Join(s.prefix, kind) + "/"
}

// Save writes rows as a new snapshot of kind and returns the object name.
func (s *Store) Save(ctx context.Context, kind string, rows []*table.Row) (string, error) {
	taken := s.now().UTC()
	doc := Document{Kind: kind, TakenAt: taken, Count: len(rows), Rows: rows}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	name := s.kindPrefix(kind) + taken.Format(timeLayout) + ".json"
	_, err = s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("upload snapshot %s: %w", name, err)
	}
	return name, nil
}

// List returns the snapshot objects of kind, oldest first.
func (s *Store) List(ctx context.Context, kind string) ([]string, error) {
	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.kindPrefix(kind),
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list snapshots: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, ".json") {
			names = append(names, obj.Key)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Latest returns the newest snapshot object of kind.
func (s *Store) Latest(ctx context.Context, kind string) (string, error) {
	names, err := s.List(ctx, kind)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", ErrNoSnapshot
	}
	return names[len(names)-1], nil
}

// Load reads a snapshot object.
func (s *Store) Load(ctx context.Context, object string) (*Document, error) {
	var doc Document
	if err := s.getJSON(ctx, object, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadChangeSet reads a change set object as produced by the comparer.
func (s *Store) LoadChangeSet(ctx context.Context, object string) (reconcile.Batches, error) {
	var b reconcile.Batches
	if err := s.getJSON(ctx, object, &b); err != nil {
		return reconcile.Batches{}, err
	}
	return b, nil
}

// Prune removes all but the newest keep snapshots of kind and returns the
// number removed.
func (s *Store) Prune(ctx context.Context, kind string, keep int) (int, error) {
	names, err := s.List(ctx, kind)
	if err != nil {
		return 0, err
	}
	if keep < 0 {
		keep = 0
	}
	if len(names) <= keep {
		return 0, nil
	}

	stale := names[:len(names)-keep]
	objects := make(chan minio.ObjectInfo, len(stale))
	for _, name := range stale {
		objects <- minio.ObjectInfo{Key: name}
	}
	close(objects)

	for rerr := range s.client.RemoveObjects(ctx, s.bucket, objects, minio.RemoveObjectsOptions{}) {
		if rerr.Err != nil {
			return 0, fmt.Errorf("remove %s: %w", rerr.ObjectName, rerr.Err)
		}
	}
	return len(stale), nil
}

func (s *Store) getJSON(ctx context.Context, object string, v any) error {
	reader, err := s.client.GetObject(ctx, s.bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("get %s: %w", object, err)
	}
	defer reader.Close()

	dec := json.NewDecoder(reader)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", object, err)
	}
	return nil
}
