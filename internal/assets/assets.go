// Package assets determines which non-source asset files (images,
// fonts, stylesheets, ...) are actually referenced from source code,
// either through static imports, string literals, or
// import.meta.glob() bundler globs.
package assets

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ludo-technologies/deadwood/internal/constants"
	"github.com/ludo-technologies/deadwood/internal/jsparse"
)

// Used returns the set of asset files referenced from any of
// sourceFiles, via relative/aliased imports, bare string literals, or
// import.meta.glob() patterns.
func Used(root string, sourceFiles, assetFiles map[string]struct{}) map[string]struct{} {
	used := make(map[string]struct{})

	literals := collectStringLiterals(sourceFiles)

	for file := range sourceFiles {
		raw, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		source := jsparse.StripComments(string(raw))

		for _, lit := range jsparse.StringLiterals(source) {
			if asset := resolveAssetSpecifier(root, filepath.Dir(file), lit, assetFiles); asset != "" {
				used[asset] = struct{}{}
			}
		}

		for _, pattern := range jsparse.ImportMetaGlobLiterals(source) {
			markGlobMatches(root, pattern, assetFiles, used)
		}
	}

	for asset := range assetFiles {
		if _, already := used[asset]; already {
			continue
		}
		if isPublicAsset(root, asset) {
			used[asset] = struct{}{}
			continue
		}
		if referencedByLiteral(root, asset, literals) {
			used[asset] = struct{}{}
		}
	}

	return used
}

// Unused returns the sorted complement of Used within assetFiles,
// excluding files under a "public" path component (those are always
// considered used — they're served as-is, not imported).
func Unused(root string, assetFiles, used map[string]struct{}) []string {
	var out []string
	for asset := range assetFiles {
		if isPublicAsset(root, asset) {
			continue
		}
		if _, ok := used[asset]; ok {
			continue
		}
		out = append(out, asset)
	}
	sort.Strings(out)
	return out
}

func resolveAssetSpecifier(root, fromDir, specifier string, assets map[string]struct{}) string {
	s := strings.TrimSpace(specifier)
	if idx := strings.IndexAny(s, "?#"); idx >= 0 {
		s = s[:idx]
	}
	if s == "" {
		return ""
	}

	switch {
	case strings.HasPrefix(s, "./") || strings.HasPrefix(s, "../"):
		return resolveAssetCandidate(filepath.Join(fromDir, s), assets)
	case strings.HasPrefix(s, "/"):
		return resolveAssetCandidate(filepath.Join(root, strings.TrimPrefix(s, "/")), assets)
	case strings.HasPrefix(s, "@/"):
		return resolveAssetCandidate(filepath.Join(root, "src", strings.TrimPrefix(s, "@/")), assets)
	case strings.HasPrefix(s, "~/"):
		return resolveAssetCandidate(filepath.Join(root, "src", strings.TrimPrefix(s, "~/")), assets)
	case strings.HasPrefix(s, "src/"):
		return resolveAssetCandidate(filepath.Join(root, s), assets)
	default:
		return ""
	}
}

func resolveAssetCandidate(raw string, assets map[string]struct{}) string {
	candidates := []string{raw}
	if filepath.Ext(raw) == "" {
		for _, ext := range constants.AssetExtensions {
			candidates = append(candidates, raw+"."+ext)
		}
		for _, ext := range constants.AssetExtensions {
			candidates = append(candidates, filepath.Join(raw, "index."+ext))
		}
	}

	for _, c := range candidates {
		abs, err := filepath.Abs(c)
		if err != nil {
			continue
		}
		if _, ok := assets[abs]; ok {
			return abs
		}
	}
	return ""
}

func markGlobMatches(root, pattern string, assetFiles map[string]struct{}, used map[string]struct{}) {
	relPattern := globSpecifierToRelPattern(pattern)
	if relPattern == "" {
		return
	}

	for asset := range assetFiles {
		rel, err := filepath.Rel(root, asset)
		if err != nil {
			continue
		}
		relSlash := filepath.ToSlash(rel)
		if ok, _ := doublestar.Match(relPattern, relSlash); ok {
			used[asset] = struct{}{}
		}
	}
}

func globSpecifierToRelPattern(specifier string) string {
	s := strings.TrimSpace(specifier)
	switch {
	case strings.HasPrefix(s, "./") || strings.HasPrefix(s, "../"):
		return strings.TrimPrefix(strings.TrimPrefix(s, "./"), "../")
	case strings.HasPrefix(s, "/"):
		return strings.TrimPrefix(s, "/")
	case strings.HasPrefix(s, "@/"):
		return "src/" + strings.TrimPrefix(s, "@/")
	case strings.HasPrefix(s, "~/"):
		return "src/" + strings.TrimPrefix(s, "~/")
	case strings.HasPrefix(s, "src/"):
		return s
	default:
		return ""
	}
}

func collectStringLiterals(sourceFiles map[string]struct{}) map[string]struct{} {
	set := make(map[string]struct{})
	for file := range sourceFiles {
		raw, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		source := jsparse.StripComments(string(raw))
		for _, lit := range jsparse.StringLiterals(source) {
			set[lit] = struct{}{}
			set[normalizeLiteral(lit)] = struct{}{}
		}
	}
	return set
}

func normalizeLiteral(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexAny(s, "?#"); idx >= 0 {
		s = s[:idx]
	}
	return s
}

// referencedByLiteral checks every plausible way source code might
// reference this asset as a bare string: relative to root, with a
// leading slash, under its src/ or public/-stripped form, by bare
// filename, and each of those combined with bundler query suffixes.
func referencedByLiteral(root, asset string, literals map[string]struct{}) bool {
	rel, err := filepath.Rel(root, asset)
	if err != nil {
		return false
	}
	relSlash := filepath.ToSlash(rel)

	candidates := []string{relSlash, "/" + relSlash}

	if strings.HasPrefix(relSlash, "src/") {
		stripped := strings.TrimPrefix(relSlash, "src/")
		candidates = append(candidates, stripped, "/"+stripped, "@/"+stripped, "~/"+stripped)
	}
	if strings.HasPrefix(relSlash, "public/") {
		stripped := strings.TrimPrefix(relSlash, "public/")
		candidates = append(candidates, stripped, "/"+stripped)
	}
	candidates = append(candidates, filepath.Base(relSlash))

	all := append([]string{}, candidates...)
	for _, c := range candidates {
		for _, suffix := range constants.AssetQuerySuffixes {
			all = append(all, c+suffix)
		}
	}

	for _, c := range all {
		if _, ok := literals[c]; ok {
			return true
		}
	}
	return false
}

func isPublicAsset(root, asset string) bool {
	rel, err := filepath.Rel(root, asset)
	if err != nil {
		return false
	}
	for _, component := range strings.Split(filepath.ToSlash(rel), "/") {
		if component == "public" {
			return true
		}
	}
	return false
}
