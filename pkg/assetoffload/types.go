package assetoffload

import (
	"github.com/bianoble/asset-offload/internal/artifact"
	"github.com/bianoble/asset-offload/internal/uploader"
)

// Type aliases re-export the core types as the public API, so host hook
// adapters import only this package.

type Artifact = artifact.Artifact
type Kind = artifact.Kind
type Result = uploader.Result
type AssetError = uploader.AssetError

const (
	KindCode   = artifact.KindCode
	KindText   = artifact.KindText
	KindBinary = artifact.KindBinary
)
