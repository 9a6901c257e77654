package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bianoble/asset-offload/internal/artifact"
	"github.com/bianoble/asset-offload/internal/bundle"
	"github.com/bianoble/asset-offload/internal/identity"
	"github.com/bianoble/asset-offload/pkg/assetoffload"
)

var (
	runDir    string
	runDryRun bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Offload assets from a persisted build output directory",
	Long: `Scans the build output directory, uploads qualifying binary assets to the
configured object store, rewrites references in code and text files, removes
the offloaded assets, and patches the entry document.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger()
		fs := afero.NewOsFs()

		exts := artifact.NewExtSet(cfg.Extensions)
		artifacts, err := bundle.Scan(fs, runDir, exts)
		if err != nil {
			return err
		}

		if runDryRun {
			base := strings.TrimRight(cfg.CDN.BaseURL, "/")
			count := 0
			for _, a := range artifacts {
				if a.Kind != artifact.KindBinary {
					continue
				}
				ext := identity.Ext(a.Name)
				if !exts.Contains(ext) {
					continue
				}
				info("  would offload  %s  ->  %s/%s", a.Name, base, identity.Key(a.Data, ext))
				count++
			}
			info("")
			info("Dry run — %d asset(s) would be offloaded, nothing uploaded or written.", count)
			return nil
		}

		plugin := assetoffload.New(cfg, newStore(cfg),
			assetoffload.WithLogger(logger), assetoffload.WithFs(fs))

		kept, result := plugin.ProcessBundle(cmd.Context(), artifacts)

		actions, err := bundle.Persist(fs, runDir, kept, result.Uploaded)
		for _, act := range actions {
			info("  %s  %s", act.Action, act.Path)
		}
		if err != nil {
			return err
		}

		if err := plugin.PatchEntry(runDir); err != nil {
			// Patch failures leave the persisted entry as-is; the build
			// output still works with local references.
			logger.Error("entry document patch failed", "error", err)
		}

		for _, name := range result.Reused {
			detail("already present  %s", name)
		}
		for _, e := range result.Errors {
			errorf("%s: %s", e.Name, e.Err)
		}

		info("")
		info("Offload complete: %d uploaded, %d reused, %d errors.",
			len(result.Uploaded)-len(result.Reused), len(result.Reused), len(result.Errors))

		if len(result.Errors) > 0 {
			return fmt.Errorf("%d asset(s) failed", len(result.Errors))
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runDir, "dir", "dist", "build output directory")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "show what would be offloaded without uploading or writing")
	rootCmd.AddCommand(runCmd)
}
