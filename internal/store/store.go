// Package store defines the contract against the remote object-storage
// service and provides its HTTP implementation.
package store

import "context"

// Client is the thin contract the offload stage needs from an
// object-storage service.
type Client interface {
	// Exists reports whether key is already present in bucket.
	Exists(ctx context.Context, bucket, key string) (bool, error)
	// IssueUploadAuthorization obtains an upload token scoped to bucket and key.
	IssueUploadAuthorization(ctx context.Context, bucket, key string) (string, error)
	// Upload stores data under key using a previously issued token.
	Upload(ctx context.Context, token, key string, data []byte) error
}

// Credentials is the opaque auth material for the store. Never logged.
type Credentials struct {
	AccessKey string
	SecretKey string
}

// StoreError associates a store failure with the operation and remote key.
type StoreError struct {
	Op  string // "exists", "authorize", "upload"
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + " " + e.Key + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
