package integrity

import (
	"context"
	"errors"

	"audience-sync/core/storage"
	"audience-sync/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrDisabled is returned by checks whose dependency is not configured.
var ErrDisabled = errors.New("check disabled")

// Service runs deployment health checks. Every dependency is optional.
type Service struct {
	client  storage.Client
	bucket  string
	folders []string
	db      *gorm.DB
	remote  checks.Remote
	resolve bool
	logger  *zap.Logger
}

// Options wires the checked dependencies.
type Options struct {
	// Storage and Bucket enable the snapshot storage check.
	Storage storage.Client
	Bucket  string
	// Prefix and Kinds select the snapshot folders.
	Prefix string
	Kinds  []string
	// DB enables the journal schema check.
	DB *gorm.DB
	// Remote enables the API check. ResolveList also resolves the audience.
	Remote      checks.Remote
	ResolveList bool
}

// NewService creates a new integrity service.
func NewService(opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:  opts.Storage,
		bucket:  opts.Bucket,
		folders: checks.SnapshotFolders(opts.Prefix, opts.Kinds),
		db:      opts.DB,
		remote:  opts.Remote,
		resolve: opts.ResolveList,
		logger:  logger,
	}
}

// CheckStorage returns the missing snapshot folders.
func (s *Service) CheckStorage(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrDisabled
	}
	return checks.CheckStorage(ctx, s.client, s.bucket, s.folders)
}

// FixStorage creates the missing snapshot folders.
func (s *Service) FixStorage(ctx context.Context, missing []string) error {
	if s.client == nil {
		return ErrDisabled
	}
	return checks.FixStorage(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckJournal compares the journal table with its model.
func (s *Service) CheckJournal() (*checks.JournalReport, error) {
	if s.db == nil {
		return nil, ErrDisabled
	}
	return checks.CheckJournal(s.db)
}

// CheckRemote verifies the API key and the configured audience.
func (s *Service) CheckRemote(ctx context.Context) (*checks.RemoteReport, error) {
	if s.remote == nil {
		return nil, ErrDisabled
	}
	return checks.CheckRemote(ctx, s.remote, s.resolve), nil
}
