package deps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/deadwood/domain"
	"github.com/ludo-technologies/deadwood/internal/resolve"
)

func TestDeclaredDependenciesFirstSectionWins(t *testing.T) {
	root := t.TempDir()
	manifest := `{
		"dependencies": {"react": "^18.0.0"},
		"devDependencies": {"react": "^18.0.0", "vitest": "^1.0.0"}
	}`
	if err := os.WriteFile(filepath.Join(root, "package.json"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	declared := DeclaredDependencies(root)
	if declared["react"] != domain.DependencyProd {
		t.Errorf("react kind = %v, want prod (first section wins)", declared["react"])
	}
	if declared["vitest"] != domain.DependencyDev {
		t.Errorf("vitest kind = %v, want dev", declared["vitest"])
	}
}

func TestUnusedExcludesTypesAndFiltersNonProd(t *testing.T) {
	declared := map[string]domain.DependencyKind{
		"lodash":       domain.DependencyProd,
		"@types/node":  domain.DependencyDev,
		"eslint":       domain.DependencyDev,
	}
	used := map[string]struct{}{}

	got := Unused(declared, used, false)
	if len(got) != 1 || got[0] != "lodash" {
		t.Errorf("Unused(prod-only) = %v, want [lodash]", got)
	}

	got = Unused(declared, used, true)
	if len(got) != 2 {
		t.Errorf("Unused(include-non-prod) = %v, want 2 entries", got)
	}
}

func TestUsedPackagesCountsAliasMatchingButUnresolvedSpecifier(t *testing.T) {
	modules := map[string]*domain.ModuleInfo{
		"/p/entry.ts": {
			Path:    "/p/entry.ts",
			Imports: []domain.ImportRecord{{Specifier: "@lib/missing"}},
		},
	}
	files := map[string]struct{}{"/p/entry.ts": {}}
	aliases := []domain.AliasRule{{Key: "@lib/*", Target: "*", BaseDir: "/p/lib"}}
	r := resolve.New("/p", []string{"/p"}, aliases, files)
	reachable := map[string]struct{}{"/p/entry.ts": {}}

	used := UsedPackages(reachable, modules, r)
	if _, ok := used["@lib/missing"]; !ok {
		t.Errorf("expected alias-matching but unresolved specifier to still count as a used package, got %v", used)
	}
}

func TestMissingPackageJSONYieldsEmpty(t *testing.T) {
	root := t.TempDir()
	declared := DeclaredDependencies(root)
	if len(declared) != 0 {
		t.Errorf("expected empty map for missing package.json, got %v", declared)
	}
}
