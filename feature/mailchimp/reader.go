package mailchimp

import (
	"context"
	"fmt"

	"audience-sync/core/table"
	"audience-sync/core/transport"
	"audience-sync/core/utils"

	"go.uber.org/zap"
)

// DefaultPageSize is used when ReaderOptions.PageSize is not positive.
const DefaultPageSize = 50

// ReaderOptions controls paging.
type ReaderOptions struct {
	// PageSize is the count requested per page.
	PageSize int
	// Prefetch requests page N+1 while page N is projected. The request for
	// the next page is already in flight when the store aborts, so an abort
	// may cost one extra request whose page is discarded.
	Prefetch bool
}

// KeySet names the rows to fetch by key.
type KeySet struct {
	// Column is the logical column the keys belong to, such as "id" or
	// "email_address".
	Column string `json:"column"`
	// Keys holds the key values.
	Keys []string `json:"keys"`
}

// Reader projects remote collections into a table.Store.
type Reader struct {
	client   transport.Client
	endpoint Endpoint
	listID   string
	opts     ReaderOptions
	logger   *zap.Logger
}

// NewReader creates a reader for the members of listID.
func NewReader(client transport.Client, endpoint Endpoint, listID string, opts ReaderOptions, logger *zap.Logger) *Reader {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{
		client:   client,
		endpoint: endpoint,
		listID:   listID,
		opts:     opts,
		logger:   logger,
	}
}

// ReadMembers scans every member of the list. It returns the number of rows
// added. An Abort from the store or a cancelled context ends the scan early
// without error. Unknown columns fail with a ConfigError before any request.
func (r *Reader) ReadMembers(ctx context.Context, store table.Store, columns []string) (int, error) {
	proj := NewProjector(memberFields, r.logger)
	if err := proj.Check(columns); err != nil {
		return 0, err
	}
	return r.paginate(ctx, "members", func(offset int) string {
		return r.endpoint.Members(r.listID, r.opts.PageSize, offset)
	}, proj, store, columns)
}

// ReadLists scans every list visible to the API key.
func (r *Reader) ReadLists(ctx context.Context, store table.Store, columns []string) (int, error) {
	proj := NewProjector(listFields, r.logger)
	if err := proj.Check(columns); err != nil {
		return 0, err
	}
	return r.paginate(ctx, "lists", func(offset int) string {
		return r.endpoint.Lists(r.opts.PageSize, offset)
	}, proj, store, columns)
}

// FetchMembers reads one member per key. Keys without a remote record are
// skipped; any other failure ends the fetch.
func (r *Reader) FetchMembers(ctx context.Context, store table.Store, keys KeySet, columns []string) (int, error) {
	proj := NewProjector(memberFields, r.logger)
	if err := proj.Check(append([]string{keys.Column}, columns...)); err != nil {
		return 0, err
	}
	added := 0

	for _, key := range keys.Keys {
		if ctx.Err() != nil {
			return added, nil
		}

		resource, err := r.client.GetJSON(ctx, r.endpoint.Member(r.listID, LookupKey(keys.Column, key)))
		if err != nil {
			if transport.IsNotFound(err) {
				r.logger.Debug("Member not found", zap.String("column", keys.Column), zap.String("key", key))
				continue
			}
			return added, fmt.Errorf("fetch member %q: %w", key, err)
		}

		signal, ok := r.add(proj, store, resource, columns)
		if ok {
			added++
		}
		if signal == table.Abort {
			return added, nil
		}
	}

	return added, nil
}

type page struct {
	items []any
	total int
	err   error
}

func (r *Reader) fetchPage(ctx context.Context, url, key string) page {
	resource, err := r.client.GetJSON(ctx, url)
	if err != nil {
		return page{err: err}
	}

	items, _ := resource[key].([]any)
	return page{items: items, total: utils.ToInt(resource["total_items"])}
}

func (r *Reader) paginate(
	ctx context.Context,
	key string,
	urlFor func(offset int) string,
	proj *Projector,
	store table.Store,
	columns []string,
) (int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	request := func(offset int) <-chan page {
		ch := make(chan page, 1)
		if r.opts.Prefetch {
			go func() { ch <- r.fetchPage(ctx, urlFor(offset), key) }()
		} else {
			ch <- r.fetchPage(ctx, urlFor(offset), key)
		}
		return ch
	}

	added, seen := 0, 0
	next := request(0)
	for {
		var p page
		select {
		case p = <-next:
		case <-ctx.Done():
			return added, nil
		}

		if p.err != nil {
			if ctx.Err() != nil {
				return added, nil
			}
			return added, fmt.Errorf("read %s at offset %d: %w", key, seen, p.err)
		}

		seen += len(p.items)
		more := len(p.items) > 0 && seen < p.total
		if more && r.opts.Prefetch {
			next = request(seen)
		}

		for _, item := range p.items {
			resource, ok := item.(map[string]any)
			if !ok {
				continue
			}
			signal, ok := r.add(proj, store, resource, columns)
			if ok {
				added++
			}
			if signal == table.Abort {
				return added, nil
			}
		}

		if !more || ctx.Err() != nil {
			return added, nil
		}
		if !r.opts.Prefetch {
			next = request(seen)
		}
	}
}

func (r *Reader) add(proj *Projector, store table.Store, resource map[string]any, columns []string) (table.Signal, bool) {
	id, err := ExtractID(resource)
	if err != nil {
		r.logger.Warn("Skipping resource without id", zap.String("kind", proj.set.Kind()))
		return table.Continue, false
	}

	row := store.NewRow()
	proj.Project(resource, row, columns)
	return store.AddWithIdentifier(row, id), true
}
