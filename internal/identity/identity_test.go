package identity

import "testing"

func TestKeyDeterministic(t *testing.T) {
	data := []byte("logo bytes")
	first := Key(data, ".png")
	for i := 0; i < 10; i++ {
		if got := Key(data, ".png"); got != first {
			t.Fatalf("Key is not deterministic: %s != %s", got, first)
		}
	}
}

func TestKeyKnownDigest(t *testing.T) {
	// md5("abc") = 900150983cd24fb0d6963f7d28e17f72
	got := Key([]byte("abc"), ".png")
	want := "900150983cd24fb0d6963f7d28e17f72.png"
	if got != want {
		t.Errorf("Key = %s, want %s", got, want)
	}
}

func TestKeyIgnoresName(t *testing.T) {
	data := []byte("same content")
	if Key(data, ".jpg") == Key(data, ".png") {
		t.Error("distinct extensions must yield distinct keys")
	}
	if Key([]byte("a"), ".png") == Key([]byte("b"), ".png") {
		t.Error("distinct content must yield distinct keys")
	}
}

func TestExt(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"assets/logo.png", ".png"},
		{"assets/logo.PNG", ".png"},
		{"assets/archive.tar.gz", ".gz"},
		{"assets/noext", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Ext(tt.name); got != tt.want {
			t.Errorf("Ext(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
