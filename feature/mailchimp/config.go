package mailchimp

import "audience-sync/core/transport"

// Config holds connector settings.
type Config struct {
	// APIKey is the Marketing API key. Its suffix after '-' selects the data center.
	APIKey string `mapstructure:"api_key" default:""`
	// ListID selects the audience directly.
	ListID string `mapstructure:"list_id" default:""`
	// ListName selects the audience by name when ListID is empty.
	ListName string `mapstructure:"list_name" default:""`
	// PageSize is the count requested per page.
	PageSize int `mapstructure:"page_size" default:"50"`
	// BaseURL overrides the derived API root.
	BaseURL string `mapstructure:"base_url" default:""`
	// TimeoutSeconds bounds a single request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxRetries is the number of retries for retryable failures.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// BackoffMs is the first retry delay.
	BackoffMs int `mapstructure:"backoff_ms" default:"500"`
	// BackoffMaxMs caps the retry delay.
	BackoffMaxMs int `mapstructure:"backoff_max_ms" default:"10000"`
	// Prefetch requests the next page while the current one is projected.
	Prefetch bool `mapstructure:"prefetch" default:"false"`
	// Trace logs each request at debug level.
	Trace bool `mapstructure:"trace" default:"false"`
	// ListCacheTTLSeconds is how long the list directory is cached.
	ListCacheTTLSeconds int `mapstructure:"list_cache_ttl_seconds" default:"300"`
}

// Validate checks the settings needed to reach the API.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return &ConfigError{Setting: "api_key", Reason: "is required"}
	}
	if c.BaseURL == "" {
		if _, err := DataCenter(c.APIKey); err != nil {
			return err
		}
	}
	if c.PageSize < 0 {
		return &ConfigError{Setting: "page_size", Reason: "must not be negative"}
	}
	return nil
}

// HasList reports whether an audience is selected.
func (c Config) HasList() bool {
	return c.ListID != "" || c.ListName != ""
}

// Transport returns the transport settings.
func (c Config) Transport() transport.Config {
	return transport.Config{
		APIKey:         c.APIKey,
		TimeoutSeconds: c.TimeoutSeconds,
		MaxRetries:     c.MaxRetries,
		BackoffMs:      c.BackoffMs,
		BackoffMaxMs:   c.BackoffMaxMs,
		Trace:          c.Trace,
	}
}
