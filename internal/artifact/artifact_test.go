package artifact

import "testing"

func TestPruneRemovesOnlyMapped(t *testing.T) {
	artifacts := []*Artifact{
		{Name: "assets/a.png", Kind: KindBinary},
		{Name: "assets/app.js", Kind: KindCode},
		{Name: "assets/b.png", Kind: KindBinary},
		{Name: "assets/style.css", Kind: KindText},
	}
	uploaded := map[string]string{
		"assets/a.png": "https://cdn.example/k1.png",
	}

	kept := Prune(artifacts, uploaded)

	want := []string{"assets/app.js", "assets/b.png", "assets/style.css"}
	if len(kept) != len(want) {
		t.Fatalf("kept %d artifacts, want %d", len(kept), len(want))
	}
	for i, name := range want {
		if kept[i].Name != name {
			t.Errorf("kept[%d] = %s, want %s", i, kept[i].Name, name)
		}
	}
}

func TestPruneNeverRemovesUnmapped(t *testing.T) {
	artifacts := []*Artifact{
		{Name: "assets/failed.png", Kind: KindBinary},
	}

	kept := Prune(artifacts, map[string]string{})
	if len(kept) != 1 {
		t.Fatal("artifact without a mapping entry must never be pruned")
	}
}

func TestPruneEmptyMappingReturnsInput(t *testing.T) {
	artifacts := []*Artifact{{Name: "a.js", Kind: KindCode}}
	kept := Prune(artifacts, nil)
	if len(kept) != 1 || kept[0] != artifacts[0] {
		t.Error("empty mapping should leave the set untouched")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindCode, "code"},
		{KindText, "text"},
		{KindBinary, "binary"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %s, want %s", tt.kind, got, tt.want)
		}
	}
}
