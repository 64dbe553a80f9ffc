package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, root, rel string) {
	t.Helper()
	p := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkClassifiesSourceAndAssets(t *testing.T) {
	root := t.TempDir()
	write(t, root, "src/index.ts")
	write(t, root, "src/logo.svg")
	write(t, root, "src/types.d.ts")
	write(t, root, "node_modules/pkg/index.js")

	res, err := Walk(root, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if len(res.SourceFiles) != 1 {
		t.Errorf("got %d source files, want 1: %v", len(res.SourceFiles), res.SourceFiles)
	}
	if len(res.AssetFiles) != 1 {
		t.Errorf("got %d asset files, want 1: %v", len(res.AssetFiles), res.AssetFiles)
	}
}

func TestWalkHonorsGitignore(t *testing.T) {
	root := t.TempDir()
	write(t, root, ".gitignore")
	if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte("ignored/\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	write(t, root, "ignored/skip.ts")
	write(t, root, "kept.ts")

	res, err := Walk(root, Options{})
	if err != nil {
		t.Fatal(err)
	}
	for f := range res.SourceFiles {
		if filepath.Base(f) == "skip.ts" {
			t.Errorf("gitignored file was collected: %s", f)
		}
	}
	if len(res.SourceFiles) != 1 {
		t.Errorf("got %d source files, want 1: %v", len(res.SourceFiles), res.SourceFiles)
	}
}
