package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration and verify store reachability",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		info("Config OK: bucket '%s', CDN base '%s'.", cfg.Store.Bucket, cfg.CDN.BaseURL)

		st := newStore(cfg)
		// Any definitive answer proves the service and credentials work.
		present, err := st.Exists(cmd.Context(), cfg.Store.Bucket, "asset-offload-healthcheck")
		if err != nil {
			return fmt.Errorf("store unreachable: %w", err)
		}
		detail("healthcheck key present: %v", present)
		info("Store reachable.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
