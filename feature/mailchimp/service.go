package mailchimp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"audience-sync/core/reconcile"
	"audience-sync/core/schema"
	"audience-sync/core/table"
	"audience-sync/core/transport"

	"go.uber.org/zap"
)

// Service runs reads and writes against one account.
type Service struct {
	cfg       Config
	client    transport.Client
	endpoint  Endpoint
	directory *ListDirectory
	hooks     reconcile.Hooks
	logger    *zap.Logger
}

// NewService validates cfg and wires the connector. A nil client uses the
// HTTP transport; a nil cache gets one sized from cfg.
func NewService(cfg Config, client transport.Client, cache *reconcile.Cache[[]ListSummary], logger *zap.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	endpoint, err := NewEndpoint(cfg.APIKey, cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if client == nil {
		client = transport.NewHTTPClient(cfg.Transport(), logger)
	}
	if cache == nil {
		cache = reconcile.NewCache[[]ListSummary](time.Duration(cfg.ListCacheTTLSeconds) * time.Second)
	}

	return &Service{
		cfg:       cfg,
		client:    client,
		endpoint:  endpoint,
		directory: NewListDirectory(client, endpoint, cfg.APIKey, cache, cfg.PageSize, logger),
		hooks:     reconcile.NopHooks{},
		logger:    logger,
	}, nil
}

// SetHooks installs the hooks used by Apply.
func (s *Service) SetHooks(h reconcile.Hooks) {
	if h == nil {
		h = reconcile.NopHooks{}
	}
	s.hooks = h
}

// Lists returns the audiences visible to the API key.
func (s *Service) Lists(ctx context.Context) ([]ListSummary, error) {
	return s.directory.Lists(ctx)
}

// RefreshLists drops the cached directory.
func (s *Service) RefreshLists() {
	s.directory.Invalidate()
}

// Schema returns the default logical schema for kind.
func (s *Service) Schema(kind string) ([]schema.Column, error) {
	set, ok := LookupRegistry(kind)
	if !ok {
		return nil, &ConfigError{Setting: "kind", Reason: fmt.Sprintf("unknown resource kind %q", kind)}
	}
	return set.DefaultLogicalSchema(), nil
}

// ListID returns the configured list id, resolving ListName if needed.
func (s *Service) ListID(ctx context.Context) (string, error) {
	if s.cfg.ListID != "" {
		return s.cfg.ListID, nil
	}
	if s.cfg.ListName == "" {
		return "", &ConfigError{Setting: "list_id", Reason: "list_id or list_name is required"}
	}
	return s.directory.Resolve(ctx, s.cfg.ListName)
}

// Read scans every resource of kind into store.
func (s *Service) Read(ctx context.Context, kind string, store table.Store, columns []string) (int, error) {
	switch strings.ToLower(kind) {
	case KindList:
		return s.reader("").ReadLists(ctx, store, columns)
	case KindMember:
		listID, err := s.ListID(ctx)
		if err != nil {
			return 0, err
		}
		return s.reader(listID).ReadMembers(ctx, store, columns)
	}
	return 0, &ConfigError{Setting: "kind", Reason: fmt.Sprintf("unknown resource kind %q", kind)}
}

// FetchMembers reads the members named by keys into store.
func (s *Service) FetchMembers(ctx context.Context, store table.Store, keys KeySet, columns []string) (int, error) {
	listID, err := s.ListID(ctx)
	if err != nil {
		return 0, err
	}
	return s.reader(listID).FetchMembers(ctx, store, keys, columns)
}

// Apply writes a change set. Only members can be written.
func (s *Service) Apply(ctx context.Context, kind string, batches reconcile.Batches, status reconcile.Status, opts reconcile.Options) (*reconcile.Report, error) {
	if !strings.EqualFold(kind, KindMember) {
		return nil, &ConfigError{Setting: "kind", Reason: fmt.Sprintf("%q is read-only", kind)}
	}

	listID, err := s.ListID(ctx)
	if err != nil {
		return nil, err
	}
	if status == nil {
		status = reconcile.NewLogStatus(s.logger)
	}

	writer := NewMemberWriter(s.client, s.endpoint, listID, s.logger)
	report, err := reconcile.NewExecutor(writer, status, opts).WithHooks(s.hooks).Execute(ctx, batches)
	if report != nil {
		s.logger.Info("Change set applied",
			zap.String("list_id", listID),
			zap.Int("committed", report.Summary.Committed),
			zap.Int("failed", report.Summary.Failed),
			zap.Int("skipped", report.Summary.Skipped),
			zap.Int("pending", report.Summary.Pending),
		)
	}
	return report, err
}

func (s *Service) reader(listID string) *Reader {
	return NewReader(s.client, s.endpoint, listID, ReaderOptions{
		PageSize: s.cfg.PageSize,
		Prefetch: s.cfg.Prefetch,
	}, s.logger)
}
