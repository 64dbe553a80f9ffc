package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/deadwood/domain"
	"github.com/ludo-technologies/deadwood/internal/resolve"
)

func TestReachableFollowsResolvedImports(t *testing.T) {
	// The resolver only accepts candidates that exist on disk, so the
	// fixture files are created under a temp root.
	root := t.TempDir()
	a := filepath.Join(root, "a.ts")
	b := filepath.Join(root, "b.ts")
	c := filepath.Join(root, "c.ts")
	for _, f := range []string{a, b, c} {
		if err := os.WriteFile(f, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	modules := map[string]*domain.ModuleInfo{
		a: {Path: a, Imports: []domain.ImportRecord{{Specifier: "./b"}}},
		b: {Path: b},
		c: {Path: c},
	}
	files := map[string]struct{}{a: {}, b: {}, c: {}}
	r := resolve.New(root, []string{root}, nil, files)

	reached := Reachable([]string{a}, modules, r)

	if _, ok := reached[a]; !ok {
		t.Error("entry should be reachable")
	}
	if _, ok := reached[b]; !ok {
		t.Error("imported file should be reachable")
	}
	if _, ok := reached[c]; ok {
		t.Error("unimported file should not be reachable")
	}
}

func TestUnresolvedSpecifierSuffixesStripsPrefixes(t *testing.T) {
	suffixes := unresolvedSpecifierSuffixes("@/components/Button")
	if _, ok := suffixes["components/Button"]; !ok {
		t.Errorf("expected @/-stripped suffix, got %v", suffixes)
	}
}

func TestUnresolvedLeafName(t *testing.T) {
	if got := unresolvedLeafName("./components/Button.tsx"); got != "Button" {
		t.Errorf("leaf = %q, want Button", got)
	}
	if got := unresolvedLeafName("."); got != "" {
		t.Errorf("leaf of '.' should be empty, got %q", got)
	}
}
