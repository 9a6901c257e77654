package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/bianoble/asset-offload/internal/config"
	"github.com/bianoble/asset-offload/internal/store"
)

// loadConfig reads and validates the config file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", configPath, err)
	}
	return cfg, nil
}

// newStore builds the HTTP store client from the config.
func newStore(cfg *config.Config) *store.HTTPStore {
	return &store.HTTPStore{
		Endpoint: cfg.Store.Endpoint,
		Credentials: store.Credentials{
			AccessKey: cfg.Store.AccessKey,
			SecretKey: cfg.Store.SecretKey,
		},
		Timeout: time.Duration(cfg.Upload.TimeoutSeconds) * time.Second,
	}
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// detail prints a line only in verbose mode.
func detail(format string, args ...any) {
	if verbose {
		fmt.Printf("  "+format+"\n", args...)
	}
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
