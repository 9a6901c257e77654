package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultEntry is the entry document name patched after persistence.
const DefaultEntry = "index.html"

// Load reads and validates an asset-offload.yaml configuration file and
// applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	if cfg.Entry == "" {
		cfg.Entry = DefaultEntry
	}

	return &cfg, nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Config for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(cfg *Config) []string {
	var errs []string

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported version %d — only version 1 is supported", cfg.Version))
	}

	if cfg.Store.Endpoint == "" {
		errs = append(errs, "store: 'endpoint' is required")
	} else if u, err := url.Parse(cfg.Store.Endpoint); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, fmt.Sprintf("store: endpoint '%s' must be an http(s) URL", cfg.Store.Endpoint))
	}
	if cfg.Store.Bucket == "" {
		errs = append(errs, "store: 'bucket' is required")
	}
	if cfg.Store.AccessKey == "" {
		errs = append(errs, "store: 'access_key' is required")
	}
	if cfg.Store.SecretKey == "" {
		errs = append(errs, "store: 'secret_key' is required")
	}

	if cfg.CDN.BaseURL == "" {
		errs = append(errs, "cdn: 'base_url' is required")
	}

	for i, ext := range cfg.Extensions {
		if strings.TrimSpace(ext) == "" {
			errs = append(errs, fmt.Sprintf("extensions[%d]: empty extension", i))
		}
	}

	if cfg.Upload.Concurrency < 0 {
		errs = append(errs, fmt.Sprintf("upload: concurrency %d must not be negative", cfg.Upload.Concurrency))
	}
	if cfg.Upload.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Sprintf("upload: timeout_seconds %d must not be negative", cfg.Upload.TimeoutSeconds))
	}

	if strings.Contains(cfg.Entry, "/") || strings.Contains(cfg.Entry, "\\") {
		errs = append(errs, fmt.Sprintf("entry '%s' must be a bare file name", cfg.Entry))
	}

	return errs
}
