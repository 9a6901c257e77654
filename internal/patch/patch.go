// Package patch re-applies the reference rewrite to the persisted entry
// document. The host pipeline finalizes the entry HTML after the in-memory
// rewrite stage has already run, so the persisted file needs its own pass.
package patch

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/bianoble/asset-offload/internal/bundle"
	"github.com/bianoble/asset-offload/internal/rewrite"
)

// Patcher rewrites asset references in the entry document on disk.
type Patcher struct {
	Fs       afero.Fs // nil = the OS filesystem
	Rewriter *rewrite.Rewriter
	Logger   *slog.Logger
}

// Patch rewrites <outDir>/<entryName> in place using mapping. A missing
// entry document is not an error: the build may legitimately produce none.
// The file is only written when the rewrite changed its content, and the
// write is atomic so a failure never truncates the persisted document.
func (p *Patcher) Patch(outDir, entryName string, mapping map[string]string) error {
	fs := p.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	path := filepath.Join(outDir, entryName)
	data, err := afero.ReadFile(fs, path)
	if os.IsNotExist(err) {
		logger.Info("entry document absent, nothing to patch", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading entry document %s: %w", path, err)
	}

	patched := p.Rewriter.Rewrite(string(data), mapping)
	if patched == string(data) {
		return nil
	}

	if err := bundle.WriteFileAtomic(fs, path, []byte(patched), 0644); err != nil {
		return fmt.Errorf("writing entry document %s: %w", path, err)
	}
	logger.Info("patched entry document", "path", path)
	return nil
}
