package assets

import (
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, root, rel, content string) string {
	t.Helper()
	p := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		t.Fatal(err)
	}
	return abs
}

func TestUsedViaRelativeImportLiteral(t *testing.T) {
	root := t.TempDir()
	logo := write(t, root, "src/logo.svg", "<svg/>")
	write(t, root, "src/index.ts", `import logo from './logo.svg';`)

	sourceFiles := map[string]struct{}{filepath.Join(root, "src", "index.ts"): {}}
	assetFiles := map[string]struct{}{logo: {}}

	used := Used(root, sourceFiles, assetFiles)
	if _, ok := used[logo]; !ok {
		t.Errorf("expected logo.svg to be used, got %v", used)
	}
}

func TestPublicAssetAlwaysUsed(t *testing.T) {
	root := t.TempDir()
	favicon := write(t, root, "public/favicon.ico", "x")

	used := Used(root, map[string]struct{}{}, map[string]struct{}{favicon: {}})
	if _, ok := used[favicon]; !ok {
		t.Error("public/ assets should always count as used")
	}

	unused := Unused(root, map[string]struct{}{favicon: {}}, used)
	if len(unused) != 0 {
		t.Errorf("public/ assets should never appear unused, got %v", unused)
	}
}

func TestUsedViaDirectoryIndexImport(t *testing.T) {
	root := t.TempDir()
	icon := write(t, root, "src/icons/index.svg", "<svg/>")
	write(t, root, "src/index.ts", `import icon from './icons';`)

	sourceFiles := map[string]struct{}{filepath.Join(root, "src", "index.ts"): {}}
	assetFiles := map[string]struct{}{icon: {}}

	used := Used(root, sourceFiles, assetFiles)
	if _, ok := used[icon]; !ok {
		t.Errorf("expected src/icons/index.svg to be used via directory import, got %v", used)
	}

	unused := Unused(root, assetFiles, used)
	if len(unused) != 0 {
		t.Errorf("expected no unused assets, got %v", unused)
	}
}

func TestUnusedAssetNeverReferenced(t *testing.T) {
	root := t.TempDir()
	orphan := write(t, root, "src/assets/orphan.png", "x")
	write(t, root, "src/index.ts", `console.log("hello");`)

	sourceFiles := map[string]struct{}{filepath.Join(root, "src", "index.ts"): {}}
	assetFiles := map[string]struct{}{orphan: {}}

	used := Used(root, sourceFiles, assetFiles)
	unused := Unused(root, assetFiles, used)
	if len(unused) != 1 || unused[0] != orphan {
		t.Errorf("Unused = %v, want [%s]", unused, orphan)
	}
}
