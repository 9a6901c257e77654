// Package uploader decides which artifacts to offload and uploads each
// distinct content blob at most once.
package uploader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/bianoble/asset-offload/internal/artifact"
	"github.com/bianoble/asset-offload/internal/identity"
	"github.com/bianoble/asset-offload/internal/store"
)

// DefaultConcurrency bounds parallel store calls when the caller does not
// choose a limit.
const DefaultConcurrency = 4

// Coordinator classifies an artifact set, offloads every qualifying binary
// asset, and builds the name -> CDN URL mapping the rewrite stage consumes.
type Coordinator struct {
	Store       store.Client
	Bucket      string
	CDNBase     string // trailing slash ignored
	Exts        *artifact.ExtSet
	Concurrency int          // <= 0 means DefaultConcurrency
	Logger      *slog.Logger // nil means silent
}

// Process runs the offload pass. Store failures are accumulated in the
// result and are never fatal: an asset whose upload failed gets no mapping
// entry, so its references and the artifact itself stay intact.
//
// Distinct remote keys are handled concurrently up to the configured limit;
// the check-then-upload sequence for any single key is serialized, so a key
// is checked and uploaded at most once per run no matter how many artifact
// names share its content.
func (c *Coordinator) Process(ctx context.Context, artifacts []*artifact.Artifact) *Result {
	result := &Result{Uploaded: make(map[string]string)}

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	limit := c.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	base := strings.TrimRight(c.CDNBase, "/")

	var (
		mu     sync.Mutex
		seen   = make(map[string]bool) // remote keys confirmed present this run
		flight singleflight.Group
	)

	var g errgroup.Group
	g.SetLimit(limit)

	for _, a := range artifacts {
		a := a
		if a.Kind != artifact.KindBinary {
			continue
		}
		ext := identity.Ext(a.Name)
		if !c.Exts.Contains(ext) {
			continue
		}

		g.Go(func() error {
			key := identity.Key(a.Data, ext)

			// Single flight per remote key: duplicate content rides on the
			// first caller's outcome instead of re-checking or re-uploading.
			v, err, shared := flight.Do(key, func() (any, error) {
				mu.Lock()
				done := seen[key]
				mu.Unlock()
				if done {
					return true, nil
				}

				present, checkErr := c.Store.Exists(ctx, c.Bucket, key)
				if checkErr != nil {
					// Fail open: a failed check must not silently skip the
					// asset, so treat it as absent and attempt the upload.
					logger.Warn("existence check failed, attempting upload",
						"key", key, "error", checkErr)
					present = false
				}

				if !present {
					token, authErr := c.Store.IssueUploadAuthorization(ctx, c.Bucket, key)
					if authErr != nil {
						return false, fmt.Errorf("authorizing upload: %w", authErr)
					}
					if upErr := c.Store.Upload(ctx, token, key, a.Data); upErr != nil {
						return false, fmt.Errorf("uploading: %w", upErr)
					}
					logger.Info("uploaded asset", "name", a.Name, "key", key, "bytes", len(a.Data))
				}

				mu.Lock()
				seen[key] = true
				mu.Unlock()
				return present, nil
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, AssetError{Name: a.Name, Err: err})
				return nil
			}
			if v.(bool) || shared {
				result.Reused = append(result.Reused, a.Name)
			}
			result.Uploaded[a.Name] = base + "/" + key
			return nil
		})
	}

	// Workers report through the result, never through the group.
	_ = g.Wait()

	// Concurrency makes accumulation order arbitrary; sort for stable output.
	sort.Strings(result.Reused)
	sort.Slice(result.Errors, func(i, j int) bool {
		return result.Errors[i].Name < result.Errors[j].Name
	})

	return result
}
