package uploader

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bianoble/asset-offload/internal/artifact"
	"github.com/bianoble/asset-offload/internal/identity"
)

// fakeStore records calls and answers from canned state.
type fakeStore struct {
	mu sync.Mutex

	present   map[string]bool
	existsErr error
	uploadErr error

	existsCalls []string
	tokenCalls  []string
	uploadCalls []string
}

func (f *fakeStore) Exists(ctx context.Context, bucket, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.existsCalls = append(f.existsCalls, key)
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.present[key], nil
}

func (f *fakeStore) IssueUploadAuthorization(ctx context.Context, bucket, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokenCalls = append(f.tokenCalls, key)
	return "token-" + key, nil
}

func (f *fakeStore) Upload(ctx context.Context, token, key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploadCalls = append(f.uploadCalls, key)
	if f.uploadErr != nil {
		return f.uploadErr
	}
	return nil
}

func newCoordinator(st *fakeStore) *Coordinator {
	return &Coordinator{
		Store:   st,
		Bucket:  "bucket",
		CDNBase: "https://cdn.example/",
		Exts:    artifact.NewExtSet(nil),
	}
}

func TestProcessBasicOffload(t *testing.T) {
	st := &fakeStore{present: map[string]bool{}}
	c := newCoordinator(st)

	data := []byte("logo bytes")
	artifacts := []*artifact.Artifact{
		{Name: "assets/logo.png", Kind: artifact.KindBinary, Data: data},
	}

	result := c.Process(context.Background(), artifacts)

	key := identity.Key(data, ".png")
	if len(st.existsCalls) != 1 || len(st.uploadCalls) != 1 {
		t.Fatalf("calls = %d exists / %d uploads, want 1 / 1", len(st.existsCalls), len(st.uploadCalls))
	}
	if st.uploadCalls[0] != key {
		t.Errorf("uploaded key = %s, want %s", st.uploadCalls[0], key)
	}

	wantURL := "https://cdn.example/" + key
	if got := result.Uploaded["assets/logo.png"]; got != wantURL {
		t.Errorf("mapping = %s, want %s", got, wantURL)
	}
	if len(result.Errors) != 0 || len(result.Reused) != 0 {
		t.Errorf("unexpected errors %v or reused %v", result.Errors, result.Reused)
	}
}

func TestProcessAlreadyPresent(t *testing.T) {
	data := []byte("logo bytes")
	key := identity.Key(data, ".png")

	st := &fakeStore{present: map[string]bool{key: true}}
	c := newCoordinator(st)

	artifacts := []*artifact.Artifact{
		{Name: "assets/logo.png", Kind: artifact.KindBinary, Data: data},
	}

	result := c.Process(context.Background(), artifacts)

	if len(st.uploadCalls) != 0 {
		t.Errorf("present key must not be re-uploaded, got %d uploads", len(st.uploadCalls))
	}
	if _, ok := result.Uploaded["assets/logo.png"]; !ok {
		t.Error("present asset must still get a mapping entry")
	}
	if len(result.Reused) != 1 || result.Reused[0] != "assets/logo.png" {
		t.Errorf("Reused = %v, want the present asset", result.Reused)
	}
}

func TestProcessUploadFailure(t *testing.T) {
	st := &fakeStore{present: map[string]bool{}, uploadErr: errors.New("boom")}
	c := newCoordinator(st)

	artifacts := []*artifact.Artifact{
		{Name: "assets/logo.png", Kind: artifact.KindBinary, Data: []byte("x")},
	}

	result := c.Process(context.Background(), artifacts)

	if _, ok := result.Uploaded["assets/logo.png"]; ok {
		t.Error("failed upload must not produce a mapping entry")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want one entry", result.Errors)
	}
	if result.Errors[0].Name != "assets/logo.png" {
		t.Errorf("error name = %s", result.Errors[0].Name)
	}
	if !errors.Is(result.Errors[0], st.uploadErr) {
		t.Error("asset error should unwrap to the store failure")
	}
}

func TestProcessExistsErrorFailsOpen(t *testing.T) {
	st := &fakeStore{existsErr: errors.New("transient")}
	c := newCoordinator(st)

	artifacts := []*artifact.Artifact{
		{Name: "assets/logo.png", Kind: artifact.KindBinary, Data: []byte("x")},
	}

	result := c.Process(context.Background(), artifacts)

	if len(st.uploadCalls) != 1 {
		t.Fatal("a failed existence check must fall through to an upload attempt")
	}
	if _, ok := result.Uploaded["assets/logo.png"]; !ok {
		t.Error("asset uploaded after a failed check must be mapped")
	}
}

func TestProcessDedupSharedContent(t *testing.T) {
	st := &fakeStore{present: map[string]bool{}}
	c := newCoordinator(st)
	c.Concurrency = 1 // serialize so the second artifact hits the dedup set

	data := []byte("identical bytes")
	artifacts := []*artifact.Artifact{
		{Name: "assets/one.png", Kind: artifact.KindBinary, Data: data},
		{Name: "assets/two.png", Kind: artifact.KindBinary, Data: data},
	}

	result := c.Process(context.Background(), artifacts)

	if len(st.existsCalls) != 1 || len(st.uploadCalls) != 1 {
		t.Errorf("calls = %d exists / %d uploads, want 1 / 1 for shared content",
			len(st.existsCalls), len(st.uploadCalls))
	}

	one, two := result.Uploaded["assets/one.png"], result.Uploaded["assets/two.png"]
	if one == "" || one != two {
		t.Errorf("both names must map to the same CDN URL, got %q and %q", one, two)
	}
	if len(result.Reused) != 1 {
		t.Errorf("Reused = %v, want exactly the deduplicated name", result.Reused)
	}
}

func TestProcessSkipsNonQualifying(t *testing.T) {
	st := &fakeStore{present: map[string]bool{}}
	c := newCoordinator(st)

	artifacts := []*artifact.Artifact{
		{Name: "assets/favicon.ico", Kind: artifact.KindBinary, Data: []byte("x")},
		{Name: "assets/app.js", Kind: artifact.KindCode, Data: []byte("code")},
		{Name: "assets/style.css", Kind: artifact.KindText, Data: []byte("css")},
	}

	result := c.Process(context.Background(), artifacts)

	if len(st.existsCalls)+len(st.tokenCalls)+len(st.uploadCalls) != 0 {
		t.Error("non-qualifying artifacts must cause no store calls")
	}
	if len(result.Uploaded) != 0 {
		t.Errorf("Uploaded = %v, want empty", result.Uploaded)
	}
}

func TestProcessTrimsCDNBase(t *testing.T) {
	st := &fakeStore{present: map[string]bool{}}
	c := newCoordinator(st)
	c.CDNBase = "https://cdn.example///"

	artifacts := []*artifact.Artifact{
		{Name: "assets/logo.png", Kind: artifact.KindBinary, Data: []byte("x")},
	}

	result := c.Process(context.Background(), artifacts)
	url := result.Uploaded["assets/logo.png"]
	want := "https://cdn.example/" + identity.Key([]byte("x"), ".png")
	if url != want {
		t.Errorf("CDN URL = %q, want %q", url, want)
	}
}
