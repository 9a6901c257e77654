// Package rewrite substitutes CDN URLs for local asset paths across build
// output text.
package rewrite

import (
	"regexp"
	"strings"

	"github.com/bianoble/asset-offload/internal/artifact"
)

// Rewriter locates asset-path references in build output text and replaces
// mapped paths with their CDN URLs. Matching covers the literal form
// ("/assets/a.png") and the escaped form found inside already-escaped
// string literals ("\/assets\/a.png"). A match whose canonical name is
// absent from the mapping is left byte-for-byte unchanged.
type Rewriter struct {
	literal *regexp.Regexp
	escaped *regexp.Regexp
}

// NewRewriter compiles the match patterns for the given qualifying set.
// The pattern grammar: an optional "./", "../" or "/" prefix, the literal
// "assets/", a non-greedy run of path-safe characters, then a dot and one
// qualifying extension. The escaped variant uses "\/" separators and
// tolerates an escaped extension dot.
func NewRewriter(exts *artifact.ExtSet) *Rewriter {
	alt := extAlternation(exts)
	return &Rewriter{
		literal: regexp.MustCompile(`(?:\.\.?/|/)?assets/[A-Za-z0-9_./-]+?\.(?:` + alt + `)`),
		escaped: regexp.MustCompile(`(?:\.\.?\\/|\\/)?assets\\/(?:[A-Za-z0-9_.-]|\\/)+?\\?\.(?:` + alt + `)`),
	}
}

// Rewrite replaces every mapped asset reference in text with its CDN URL.
// The literal pass runs before the escaped pass. Total over any input and
// idempotent: rewriting already-rewritten text is a no-op.
func (r *Rewriter) Rewrite(text string, mapping map[string]string) string {
	if len(mapping) == 0 {
		return text
	}

	out := r.literal.ReplaceAllStringFunc(text, func(m string) string {
		if url, ok := mapping[canonicalName(m)]; ok {
			return url
		}
		return m
	})

	return r.escaped.ReplaceAllStringFunc(out, func(m string) string {
		if url, ok := mapping[canonicalName(unescape(m))]; ok {
			// Re-escape the separators so the surrounding escaped string
			// literal stays syntactically valid.
			return strings.ReplaceAll(url, "/", `\/`)
		}
		return m
	})
}

func extAlternation(exts *artifact.ExtSet) string {
	parts := make([]string, 0, len(exts.Slice()))
	for _, e := range exts.Slice() {
		parts = append(parts, regexp.QuoteMeta(strings.TrimPrefix(e, ".")))
	}
	return strings.Join(parts, "|")
}

// canonicalName strips a leading "./" or "/" so the match aligns with
// artifact names as the build pipeline records them. A "../" prefix is left
// alone: such a path never matches a recorded name and stays unmapped.
func canonicalName(m string) string {
	if strings.HasPrefix(m, "./") {
		return m[2:]
	}
	if strings.HasPrefix(m, "/") {
		return m[1:]
	}
	return m
}

func unescape(m string) string {
	m = strings.ReplaceAll(m, `\/`, "/")
	return strings.ReplaceAll(m, `\.`, ".")
}
