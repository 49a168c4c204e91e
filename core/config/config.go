package config

import (
	"reflect"
	"strings"

	"audience-sync/core/database"
	"audience-sync/core/logger"
	"audience-sync/core/server"
	"audience-sync/core/storage"
	"audience-sync/feature/mailchimp"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the snapshot object storage.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the outcome journal database.
	Database database.Config `mapstructure:"database"`
	// Mailchimp holds the connector settings.
	Mailchimp mailchimp.Config `mapstructure:"mailchimp"`
	// Sync holds apply and snapshot settings.
	Sync SyncConfig `mapstructure:"sync"`
}

// SyncConfig controls change-set application and snapshots.
type SyncConfig struct {
	// FailOnError stops a run at the first failed item.
	FailOnError bool `mapstructure:"fail_on_error" default:"false"`
	// Journal records item outcomes in the database.
	Journal bool `mapstructure:"journal" default:"false"`
	// SnapshotPrefix is the object prefix for snapshots.
	SnapshotPrefix string `mapstructure:"snapshot_prefix" default:"snapshots"`
	// SnapshotCron schedules snapshots in the server. Empty disables it.
	SnapshotCron string `mapstructure:"snapshot_cron" default:""`
	// SnapshotKeep is how many snapshots per kind are kept. 0 keeps all.
	SnapshotKeep int `mapstructure:"snapshot_keep" default:"10"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Missing .env is fine in production.
	_ = godotenv.Overload(envPath)

	v := viper.New()
	bindValues(v, Config{}, "")

	// MAILCHIMP_API_KEY -> mailchimp.api_key
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues walks the struct and registers every mapstructure key with its
// 'default' tag value so AutomaticEnv can resolve it.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
	}
}
