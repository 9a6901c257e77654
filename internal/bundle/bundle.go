// Package bundle loads a persisted build output directory into an artifact
// set and writes the offloaded set back.
package bundle

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/bianoble/asset-offload/internal/artifact"
	"github.com/bianoble/asset-offload/internal/identity"
)

// FileAction records one file-level change made while persisting.
type FileAction struct {
	Path   string
	Action string // "rewritten", "offloaded"
}

var codeExtensions = map[string]bool{
	".js":  true,
	".mjs": true,
	".cjs": true,
}

var textExtensions = map[string]bool{
	".css":         true,
	".svg":         true,
	".html":        true,
	".htm":         true,
	".json":        true,
	".map":         true,
	".txt":         true,
	".webmanifest": true,
}

// Scan walks a build output directory and classifies every file into an
// artifact. Qualifying extensions win over the textual classes, so an SVG
// in the qualifying set is treated as an offloadable binary asset rather
// than a rewrite target. Hidden files are skipped. Artifact names use
// forward slashes relative to dir, matching how bundlers record them.
func Scan(fs afero.Fs, dir string, exts *artifact.ExtSet) ([]*artifact.Artifact, error) {
	var artifacts []*artifact.Artifact

	err := afero.Walk(fs, dir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() {
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") {
			return nil
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return relErr
		}
		name := filepath.ToSlash(rel)

		data, readErr := afero.ReadFile(fs, path)
		if readErr != nil {
			return fmt.Errorf("reading %s: %w", name, readErr)
		}

		ext := identity.Ext(name)
		kind := artifact.KindBinary
		switch {
		case codeExtensions[ext]:
			kind = artifact.KindCode
		case exts.Contains(ext):
			kind = artifact.KindBinary
		case textExtensions[ext]:
			kind = artifact.KindText
		}

		artifacts = append(artifacts, &artifact.Artifact{Name: name, Kind: kind, Data: data})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].Name < artifacts[j].Name
	})
	return artifacts, nil
}

// Persist writes rewritten artifacts back under dir and removes the files
// whose artifacts were pruned after upload. Unchanged files are left
// untouched. Removal failures for already-missing files are ignored.
func Persist(fs afero.Fs, dir string, artifacts []*artifact.Artifact, removed map[string]string) ([]FileAction, error) {
	var actions []FileAction

	for _, a := range artifacts {
		if a.Kind == artifact.KindBinary {
			continue
		}
		if !safeRelName(a.Name) {
			return actions, fmt.Errorf("artifact name %q escapes the output directory", a.Name)
		}
		path := filepath.Join(dir, filepath.FromSlash(a.Name))
		existing, err := afero.ReadFile(fs, path)
		if err == nil && bytes.Equal(existing, a.Data) {
			continue
		}
		if err := WriteFileAtomic(fs, path, a.Data, 0644); err != nil {
			return actions, fmt.Errorf("writing %s: %w", a.Name, err)
		}
		actions = append(actions, FileAction{Path: a.Name, Action: "rewritten"})
	}

	names := make([]string, 0, len(removed))
	for name := range removed {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !safeRelName(name) {
			return actions, fmt.Errorf("artifact name %q escapes the output directory", name)
		}
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := fs.Remove(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return actions, fmt.Errorf("removing %s: %w", name, err)
		}
		actions = append(actions, FileAction{Path: name, Action: "offloaded"})
	}

	return actions, nil
}

// safeRelName reports whether an artifact name stays inside the output
// directory when joined to it.
func safeRelName(name string) bool {
	if name == "" || path.IsAbs(name) {
		return false
	}
	clean := path.Clean(name)
	return clean != ".." && !strings.HasPrefix(clean, "../")
}

// WriteFileAtomic writes content via a temp file in the target directory
// plus rename, so a failed write never leaves a truncated file behind.
func WriteFileAtomic(fs afero.Fs, path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(fs, dir, ".asset-offload-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = fs.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := fs.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := fs.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", path, err)
	}

	success = true
	return nil
}
