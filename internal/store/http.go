package store

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxResponseSize bounds how much of a store response is read; responses
// here are status codes and short tokens, never object payloads.
const maxResponseSize = 64 * 1024

// HTTPClient abstracts the HTTP transport for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// DefaultHTTPClient wraps http.DefaultClient.
type DefaultHTTPClient struct{}

func (DefaultHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return http.DefaultClient.Do(req)
}

// HTTPStore talks to an object-storage service over HTTP. Existence checks
// and token issuance are signed with the account credentials; uploads carry
// the issued token.
type HTTPStore struct {
	Endpoint    string // service base URL, trailing slash ignored
	Credentials Credentials
	Client      HTTPClient    // nil = DefaultHTTPClient
	Timeout     time.Duration // per-call timeout (0 = rely on the context)
}

func (s *HTTPStore) Exists(ctx context.Context, bucket, key string) (bool, error) {
	status, _, err := s.do(ctx, http.MethodHead, "/"+bucket+"/"+key, s.signedAuth(bucket, key), nil)
	if err != nil {
		return false, &StoreError{Op: "exists", Key: key, Err: err}
	}

	switch status {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, &StoreError{Op: "exists", Key: key, Err: fmt.Errorf("HTTP %d", status)}
	}
}

func (s *HTTPStore) IssueUploadAuthorization(ctx context.Context, bucket, key string) (string, error) {
	path := "/token?bucket=" + url.QueryEscape(bucket) + "&key=" + url.QueryEscape(key)
	status, body, err := s.do(ctx, http.MethodPost, path, s.signedAuth(bucket, key), nil)
	if err != nil {
		return "", &StoreError{Op: "authorize", Key: key, Err: err}
	}
	if status != http.StatusOK {
		return "", &StoreError{Op: "authorize", Key: key, Err: fmt.Errorf("HTTP %d", status)}
	}

	token := strings.TrimSpace(string(body))
	if token == "" {
		return "", &StoreError{Op: "authorize", Key: key, Err: fmt.Errorf("empty token response")}
	}
	return token, nil
}

func (s *HTTPStore) Upload(ctx context.Context, token, key string, data []byte) error {
	status, _, err := s.do(ctx, http.MethodPut, "/upload/"+key, "UpToken "+token, bytes.NewReader(data))
	if err != nil {
		return &StoreError{Op: "upload", Key: key, Err: err}
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return &StoreError{Op: "upload", Key: key, Err: fmt.Errorf("HTTP %d", status)}
	}
	return nil
}

// do sends one request and drains the response, so the per-call timeout
// covers the full exchange.
func (s *HTTPStore) do(ctx context.Context, method, path, auth string, body io.Reader) (int, []byte, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(s.Endpoint, "/")+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/octet-stream")
	}

	client := s.Client
	if client == nil {
		client = DefaultHTTPClient{}
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return 0, nil, fmt.Errorf("reading response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// signedAuth produces the credentialed Authorization header value: the
// access key plus an HMAC-SHA1 of the bucket/key pair under the secret key.
func (s *HTTPStore) signedAuth(bucket, key string) string {
	mac := hmac.New(sha1.New, []byte(s.Credentials.SecretKey))
	mac.Write([]byte(bucket + "/" + key))
	return s.Credentials.AccessKey + ":" + base64.URLEncoding.EncodeToString(mac.Sum(nil))
}
