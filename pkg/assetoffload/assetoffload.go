// Package assetoffload moves qualifying binary assets out of a finished
// build into a content-addressed object store and rewrites every reference
// to them — in code chunks, textual assets, and the persisted entry HTML —
// to point at the configured CDN instead.
//
// The package exposes the two lifecycle hooks a host build pipeline calls:
// ProcessBundle on the in-memory artifact set before persistence, and
// PatchEntry on the output directory after persistence.
package assetoffload

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/bianoble/asset-offload/internal/artifact"
	"github.com/bianoble/asset-offload/internal/config"
	"github.com/bianoble/asset-offload/internal/patch"
	"github.com/bianoble/asset-offload/internal/rewrite"
	"github.com/bianoble/asset-offload/internal/store"
	"github.com/bianoble/asset-offload/internal/uploader"
)

// Plugin is one offload run. It owns the name -> CDN URL mapping built
// during ProcessBundle and reuses it in PatchEntry, so it must not be
// shared across builds; create one Plugin per build invocation.
type Plugin struct {
	cfg      *config.Config
	fs       afero.Fs
	logger   *slog.Logger
	exts     *artifact.ExtSet
	rewriter *rewrite.Rewriter
	coord    *uploader.Coordinator
	patcher  *patch.Patcher

	uploaded map[string]string
}

// Option customizes a Plugin.
type Option func(*Plugin)

// WithLogger routes progress and failure reports to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Plugin) { p.logger = logger }
}

// WithFs overrides the filesystem used by the entry-document patcher.
func WithFs(fs afero.Fs) Option {
	return func(p *Plugin) { p.fs = fs }
}

// New builds a Plugin from cfg, talking to the store through client.
func New(cfg *config.Config, client store.Client, opts ...Option) *Plugin {
	p := &Plugin{
		cfg:    cfg,
		fs:     afero.NewOsFs(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.exts = artifact.NewExtSet(cfg.Extensions)
	p.rewriter = rewrite.NewRewriter(p.exts)
	p.coord = &uploader.Coordinator{
		Store:       client,
		Bucket:      cfg.Store.Bucket,
		CDNBase:     cfg.CDN.BaseURL,
		Exts:        p.exts,
		Concurrency: cfg.Upload.Concurrency,
		Logger:      p.logger,
	}
	p.patcher = &patch.Patcher{Fs: p.fs, Rewriter: p.rewriter, Logger: p.logger}
	return p
}

// ProcessBundle uploads qualifying binary assets, rewrites every reference
// in the remaining code and text artifacts, and prunes the uploaded assets
// from the set. The returned slice is the surviving artifact set; the
// result carries the mapping and any per-asset failures. Failures are
// never fatal: a failed asset keeps its artifact and its local references.
func (p *Plugin) ProcessBundle(ctx context.Context, artifacts []*Artifact) ([]*Artifact, *Result) {
	result := p.coord.Process(ctx, artifacts)
	p.uploaded = result.Uploaded

	// Rewrite before pruning, so no reference to a pruned asset survives.
	if len(result.Uploaded) > 0 {
		for _, a := range artifacts {
			if a.Kind == artifact.KindBinary {
				continue
			}
			a.Data = []byte(p.rewriter.Rewrite(string(a.Data), result.Uploaded))
		}
	}

	return artifact.Prune(artifacts, result.Uploaded), result
}

// PatchEntry re-applies the rewrite to the persisted entry document using
// the mapping from this run's ProcessBundle. Callers invoke it after the
// build pipeline has written all artifacts to outDir. Safe to call when
// nothing was uploaded.
func (p *Plugin) PatchEntry(outDir string) error {
	if len(p.uploaded) == 0 {
		return nil
	}
	return p.patcher.Patch(outDir, p.cfg.Entry, p.uploaded)
}

// Rewrite exposes the run's reference rewriter for hosts that patch
// additional documents of their own.
func (p *Plugin) Rewrite(text string) string {
	return p.rewriter.Rewrite(text, p.uploaded)
}
