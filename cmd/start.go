package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"audience-sync/core/config"
	"audience-sync/core/loader"
	"audience-sync/core/logger"
	"audience-sync/core/middleware/auth"
	"audience-sync/core/middleware/rayid"
	"audience-sync/core/storage"
	"audience-sync/feature/integrity"
	"audience-sync/feature/journal"
	"audience-sync/feature/mailchimp"
	"audience-sync/feature/snapshot"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "audience-sync/docs/swagger"
)

// @title Audience Sync API
// @version 1.0
// @description Read Mailchimp audiences and members and apply change sets.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the audience sync server",
	Long:  `Starts the HTTP server, initializes all enabled features and schedules snapshots.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connector (optional: the server still serves docs without it)
		svc, err := mailchimp.NewService(cfg.Mailchimp, nil, nil, logg)
		if err != nil {
			logg.Warn("Mailchimp connector disabled", zap.Error(err))
			svc = nil
		}

		// 4. Journal (optional)
		var db *gorm.DB
		if svc != nil {
			if j, err := openJournal(cfg, logg); err != nil {
				logg.Warn("Optional journal failed", zap.Error(err))
			} else if j != nil {
				svc.SetHooks(j)
				db = j.DB()
			}
		}

		// 5. Snapshot storage (optional)
		var store storage.Client
		if client, err := openStorage(context.Background(), cfg); err != nil {
			logg.Warn("Optional snapshot storage failed", zap.Error(err))
		} else {
			store = client
		}

		var snaps *snapshot.Service
		if svc != nil && store != nil {
			snaps = newSnapshots(cfg, store, svc, logg)
		}

		health := integrity.Options{
			Storage: store,
			Bucket:  cfg.Storage.Bucket,
			Prefix:  cfg.Sync.SnapshotPrefix,
			Kinds:   snapshotKinds(cfg.Mailchimp),
			DB:      db,
		}
		if svc != nil {
			health.Remote = svc
			health.ResolveList = cfg.Mailchimp.HasList()
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 6. Feature Loader
		mgr := loader.NewManager(logg)
		mgr.Register(mailchimp.NewFeature(svc))
		mgr.Register(journal.NewFeature(db, logg))
		mgr.Register(snapshot.NewFeature(snaps))
		mgr.Register(integrity.NewFeature(integrity.NewService(health, logg)))

		// RayID first so every log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{
			ApiKey: cfg.Server.ApiKey,
			Skip:   cfg.Server.Public(),
		}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Scheduled snapshots
		scheduler := scheduleSnapshots(cfg, snaps, logg)
		if scheduler != nil {
			scheduler.Start()
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		if scheduler != nil {
			<-scheduler.Stop().Done()
		}
		_ = app.Shutdown()
	},
}

// scheduleSnapshots registers the snapshot job when sync.snapshot_cron is set.
func scheduleSnapshots(cfg *config.Config, snaps *snapshot.Service, logg *zap.Logger) *cron.Cron {
	if snaps == nil || cfg.Sync.SnapshotCron == "" {
		return nil
	}

	kinds := snapshotKinds(cfg.Mailchimp)
	timeout := 30 * time.Minute

	c := cron.New()
	_, err := c.AddFunc(cfg.Sync.SnapshotCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if _, err := snaps.TakeAll(ctx, kinds); err != nil {
			logg.Error("Scheduled snapshot failed", zap.Error(err))
		}
	})
	if err != nil {
		logg.Warn("Invalid snapshot schedule", zap.String("cron", cfg.Sync.SnapshotCron), zap.Error(err))
		return nil
	}

	logg.Info("Snapshots scheduled", zap.String("cron", cfg.Sync.SnapshotCron), zap.Strings("kinds", kinds))
	return c
}

func init() {
	RootCmd.AddCommand(startCmd)
}
