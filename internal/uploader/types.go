package uploader

// AssetError associates an upload failure with a specific artifact.
type AssetError struct {
	Name string
	Err  error
}

func (e AssetError) Error() string {
	return e.Name + ": " + e.Err.Error()
}

func (e AssetError) Unwrap() error {
	return e.Err
}

// Result holds the outcome of one offload pass.
type Result struct {
	// Uploaded maps artifact name to CDN URL for every asset confirmed
	// present remotely, whether freshly uploaded or found already there.
	// Only names in this map are safe to rewrite and prune.
	Uploaded map[string]string
	// Reused lists artifact names whose content needed no new upload:
	// the remote key was already present, or another artifact with the
	// same bytes was handled earlier in the run.
	Reused []string
	// Errors holds per-asset failures. The pass never aborts on them;
	// a failed asset simply stays local.
	Errors []AssetError
}
