// Package identity derives the content-addressed remote key for an asset.
package identity

import (
	"crypto/md5"
	"encoding/hex"
	"path"
	"strings"
)

// Key returns the remote object key for the given asset bytes: the hex MD5
// digest of the content followed by the normalized extension. Identical
// bytes always produce the identical key regardless of the asset's original
// name, which is what makes cross-build and cross-file dedup work. The
// digest is a content identity, not a security boundary.
func Key(data []byte, ext string) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:]) + ext
}

// Ext returns the lower-cased extension of an artifact name, including the
// leading dot. Empty when the name has none.
func Ext(name string) string {
	return strings.ToLower(path.Ext(name))
}
