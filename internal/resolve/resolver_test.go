package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/deadwood/domain"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("export const x = 1;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func canon(t *testing.T, path string) string {
	t.Helper()
	abs, err := filepath.Abs(path)
	if err != nil {
		t.Fatal(err)
	}
	return abs
}

func TestResolveRelative(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "src", "util.ts")
	writeFile(t, target)

	files := map[string]struct{}{canon(t, target): {}}
	r := New(root, []string{root}, nil, files)

	from := filepath.Join(root, "src", "index.ts")
	got := r.Resolve(from, "./util")
	if got != canon(t, target) {
		t.Errorf("Resolve = %q, want %q", got, canon(t, target))
	}
}

func TestResolveAlias(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "src", "components", "Button.tsx")
	writeFile(t, target)

	files := map[string]struct{}{canon(t, target): {}}
	aliases := []domain.AliasRule{{Key: "@/*", Target: "src/*", BaseDir: root}}
	r := New(root, []string{root}, aliases, files)

	got := r.Resolve(filepath.Join(root, "anywhere.ts"), "@/components/Button")
	if got != canon(t, target) {
		t.Errorf("Resolve(@/...) = %q, want %q", got, canon(t, target))
	}
}

func TestResolvePackageSpecifierIsNotLocal(t *testing.T) {
	root := t.TempDir()
	r := New(root, []string{root}, nil, map[string]struct{}{})

	if r.IsLikelyLocal("react") {
		t.Error("expected bare package specifier to not look local")
	}
	if got := r.Resolve(filepath.Join(root, "index.ts"), "react"); got != "" {
		t.Errorf("Resolve(react) = %q, want empty", got)
	}
}

func TestLooksLikePackageSpecifierDottedHeuristic(t *testing.T) {
	// A dotted bare specifier is misclassified as local; this mirrors
	// a known heuristic gap carried over unchanged.
	if LooksLikePackageSpecifier("foo.bar") {
		t.Error("dotted specifiers are treated as local, not package-like")
	}
	if !LooksLikePackageSpecifier("lodash") {
		t.Error("plain package name should look like a package specifier")
	}
}

func TestPackageNameScoped(t *testing.T) {
	if got := PackageName("@scope/pkg/sub"); got != "@scope/pkg" {
		t.Errorf("PackageName = %q", got)
	}
	if got := PackageName("lodash/debounce"); got != "lodash" {
		t.Errorf("PackageName = %q", got)
	}
}
