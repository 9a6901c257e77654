package artifact

import "strings"

// DefaultExtensions is the qualifying extension set used when the
// configuration does not name one.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp"}

// ExtSet is an ordered, case-insensitive set of file extensions eligible
// for offload. Immutable after construction.
type ExtSet struct {
	ordered []string
	index   map[string]bool
}

// NewExtSet normalizes the given extensions (lower-case, leading dot
// ensured) and builds the set. An empty input falls back to
// DefaultExtensions. Duplicates after normalization are dropped, first
// occurrence wins, so the order stays deterministic.
func NewExtSet(exts []string) *ExtSet {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	s := &ExtSet{index: make(map[string]bool, len(exts))}
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if s.index[e] {
			continue
		}
		s.index[e] = true
		s.ordered = append(s.ordered, e)
	}
	return s
}

// Contains reports whether ext qualifies. The leading dot and case are
// normalized before the lookup.
func (s *ExtSet) Contains(ext string) bool {
	if ext == "" {
		return false
	}
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return s.index[ext]
}

// Slice returns the normalized extensions in configuration order.
func (s *ExtSet) Slice() []string {
	out := make([]string, len(s.ordered))
	copy(out, s.ordered)
	return out
}
