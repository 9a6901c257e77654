package config

// Config represents the asset-offload.yaml configuration file.
type Config struct {
	Version    int      `yaml:"version"`
	Store      Store    `yaml:"store"`
	CDN        CDN      `yaml:"cdn"`
	Extensions []string `yaml:"extensions,omitempty"`
	Upload     Upload   `yaml:"upload,omitempty"`
	Entry      string   `yaml:"entry,omitempty"`
}

// Store identifies the remote object-storage service and the credentials
// used against it.
type Store struct {
	Endpoint  string `yaml:"endpoint"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// CDN configures the public delivery domain offloaded assets are served from.
type CDN struct {
	BaseURL string `yaml:"base_url"`
}

// Upload tunes the upload coordinator.
type Upload struct {
	Concurrency    int `yaml:"concurrency,omitempty"`
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}
