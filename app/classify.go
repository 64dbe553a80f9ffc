package app

import (
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/deadwood/internal/constants"
)

func isTestLikeFile(path string) bool {
	base := filepath.Base(path)
	if strings.Contains(base, ".test.") || strings.Contains(base, ".spec.") {
		return true
	}
	return strings.Contains(filepath.ToSlash(path), "/__tests__/")
}

func isDeclarationFile(path string) bool {
	return strings.HasSuffix(path, ".d.ts")
}

// isCommonConfigFile recognizes well-known tool config files that
// should never be reported as unused, even when nothing imports them.
func isCommonConfigFile(path string) bool {
	name := strings.ToLower(filepath.Base(path))

	if strings.Contains(name, "config") {
		return true
	}
	for _, prefix := range []string{".eslintrc", ".prettierrc", ".stylelintrc", ".babelrc"} {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	for _, known := range constants.CommonConfigFileNames {
		if name == known {
			return true
		}
	}
	return false
}

// filterAssetsByRoots restricts the discovered asset set to files
// under one of the given project-relative roots.
func filterAssetsByRoots(root string, assets map[string]struct{}, rawRoots []string) map[string]struct{} {
	var roots []string
	for _, r := range rawRoots {
		if normalized := normalizeAssetRoot(r); normalized != "" {
			roots = append(roots, normalized)
		}
	}
	if len(roots) == 0 {
		return assets
	}

	out := make(map[string]struct{})
	for asset := range assets {
		rel, err := filepath.Rel(root, asset)
		if err != nil {
			continue
		}
		relSlash := filepath.ToSlash(rel)
		for _, r := range roots {
			if relSlash == r || strings.HasPrefix(relSlash, r+"/") {
				out[asset] = struct{}{}
				break
			}
		}
	}
	return out
}

func normalizeAssetRoot(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "\\", "/")
	s = strings.TrimPrefix(s, "./")
	s = strings.Trim(s, "/")
	return s
}
