package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"audience-sync/core/config"
	"audience-sync/core/database"
	"audience-sync/core/logger"
	"audience-sync/core/storage"
	"audience-sync/feature/journal"
	"audience-sync/feature/mailchimp"
	"audience-sync/feature/snapshot"

	"go.uber.org/zap"
)

// runtime bundles what every connector command needs.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *mailchimp.Service
}

func loadRuntime() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	svc, err := mailchimp.NewService(cfg.Mailchimp, nil, nil, l)
	if err != nil {
		return nil, err
	}

	return &runtime{cfg: cfg, logger: l, service: svc}, nil
}

// openJournal connects the journal database when sync.journal is set.
func openJournal(cfg *config.Config, l *zap.Logger) (*journal.Journal, error) {
	if !cfg.Sync.Journal {
		return nil, nil
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to journal database: %w", err)
	}

	j := journal.New(db, l)
	if err := j.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate journal: %w", err)
	}
	if err := j.Verify(); err != nil {
		return nil, fmt.Errorf("failed to verify journal: %w", err)
	}
	l.Info("Journal enabled", zap.String("run_id", j.RunID()))
	return j, nil
}

// openStorage connects object storage and makes sure the bucket exists.
func openStorage(ctx context.Context, cfg *config.Config) (storage.Client, error) {
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Storage.TimeoutSeconds)*time.Second)
	defer cancel()
	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
		return nil, fmt.Errorf("failed to prepare bucket: %w", err)
	}
	return client, nil
}

// openSnapshots builds the snapshot service on a fresh storage connection.
func openSnapshots(ctx context.Context, cfg *config.Config, source snapshot.Source, l *zap.Logger) (*snapshot.Service, error) {
	client, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return newSnapshots(cfg, client, source, l), nil
}

func newSnapshots(cfg *config.Config, client storage.Client, source snapshot.Source, l *zap.Logger) *snapshot.Service {
	store := snapshot.NewStore(client, cfg.Storage.Bucket, cfg.Sync.SnapshotPrefix)
	return snapshot.NewService(source, store, cfg.Sync.SnapshotKeep, l)
}

// snapshotKinds returns the kinds that can be read with the current settings.
func snapshotKinds(cfg mailchimp.Config) []string {
	if cfg.HasList() {
		return mailchimp.Kinds()
	}
	return []string{mailchimp.KindList}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
