package snapshot

import (
	"context"
	"fmt"

	"audience-sync/core/table"

	"go.uber.org/zap"
)

// Source reads every row of a resource kind into a store.
type Source interface {
	Read(ctx context.Context, kind string, store table.Store, columns []string) (int, error)
}

// Result describes a snapshot that was taken.
type Result struct {
	Kind   string `json:"kind"`
	Object string `json:"object"`
	Count  int    `json:"count"`
	Pruned int    `json:"pruned"`
}

// Service takes snapshots from a source and keeps the newest Keep of them.
type Service struct {
	source Source
	store  *Store
	keep   int
	logger *zap.Logger
}

// NewService creates a snapshot service. keep <= 0 disables pruning.
func NewService(source Source, store *Store, keep int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, store: store, keep: keep, logger: logger}
}

// Store returns the underlying object store.
func (s *Service) Store() *Store {
	return s.store
}

// Take reads kind with its default columns and stores the rows.
func (s *Service) Take(ctx context.Context, kind string) (*Result, error) {
	rows := table.NewMemoryStore()
	if _, err := s.source.Read(ctx, kind, rows, nil); err != nil {
		return nil, fmt.Errorf("read %s: %w", kind, err)
	}

	object, err := s.store.Save(ctx, kind, rows.Rows())
	if err != nil {
		return nil, err
	}
	res := &Result{Kind: kind, Object: object, Count: rows.Len()}

	if s.keep > 0 {
		pruned, err := s.store.Prune(ctx, kind, s.keep)
		if err != nil {
			s.logger.Warn("Snapshot prune failed", zap.String("kind", kind), zap.Error(err))
		}
		res.Pruned = pruned
	}

	s.logger.Info("Snapshot taken",
		zap.String("kind", kind),
		zap.String("object", object),
		zap.Int("rows", res.Count),
		zap.Int("pruned", res.Pruned),
	)
	return res, nil
}

// TakeAll snapshots every kind in order and stops at the first error.
func (s *Service) TakeAll(ctx context.Context, kinds []string) ([]*Result, error) {
	out := make([]*Result, 0, len(kinds))
	for _, kind := range kinds {
		res, err := s.Take(ctx, kind)
		if err != nil {
			return out, err
		}
		out = append(out, res)
	}
	return out, nil
}
