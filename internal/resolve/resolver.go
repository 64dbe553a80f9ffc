// Package resolve turns import specifiers into concrete files on disk,
// honoring relative/root-absolute paths, tsconfig path aliases, and a
// configurable list of base directories.
package resolve

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/deadwood/domain"
	"github.com/ludo-technologies/deadwood/internal/constants"
)

// Resolver resolves import specifiers against a known file set.
type Resolver struct {
	Root       string
	BaseDirs   []string
	AliasRules []domain.AliasRule
	Files      map[string]struct{}
}

// New builds a Resolver over the given known file set.
func New(root string, baseDirs []string, aliases []domain.AliasRule, files map[string]struct{}) *Resolver {
	return &Resolver{Root: root, BaseDirs: baseDirs, AliasRules: aliases, Files: files}
}

// Resolve returns the known file a specifier points to, or "" if it
// cannot be placed.
func (r *Resolver) Resolve(fromFile, specifier string) string {
	normalized := normalizeSpecifier(specifier)
	if normalized == "" {
		return ""
	}

	if isRelativeSpecifier(normalized) {
		return r.resolveCandidate(filepath.Join(filepath.Dir(fromFile), normalized))
	}

	if strings.HasPrefix(normalized, "/") {
		return r.resolveCandidate(filepath.Join(r.Root, strings.TrimPrefix(normalized, "/")))
	}

	for _, rule := range r.AliasRules {
		wildcard, ok := matchAlias(rule.Key, normalized)
		if !ok {
			continue
		}
		target := applyAliasTarget(rule.Target, wildcard)
		if resolved := r.resolveCandidate(filepath.Join(rule.BaseDir, target)); resolved != "" {
			return resolved
		}
	}

	if !LooksLikePackageSpecifier(normalized) {
		for _, base := range r.BaseDirs {
			if resolved := r.resolveCandidate(filepath.Join(base, normalized)); resolved != "" {
				return resolved
			}
		}
	}

	return ""
}

// IsLikelyLocal reports whether a specifier is shaped like something
// that should resolve within the project, even if Resolve fails.
func (r *Resolver) IsLikelyLocal(specifier string) bool {
	normalized := normalizeSpecifier(specifier)
	if normalized == "" {
		return false
	}
	if isRelativeSpecifier(normalized) || strings.HasPrefix(normalized, "/") {
		return true
	}
	for _, rule := range r.AliasRules {
		if _, ok := matchAlias(rule.Key, normalized); ok {
			return true
		}
	}
	return !LooksLikePackageSpecifier(normalized)
}

// LocalExists probes the filesystem (not just the known-files set) for
// something matching the specifier, used by the Arbiter to decide
// whether an unresolved local-looking import is actually missing.
func (r *Resolver) LocalExists(fromFile, specifier string) bool {
	normalized := normalizeSpecifier(specifier)
	if normalized == "" {
		return false
	}

	if isRelativeSpecifier(normalized) {
		return localTargetExists(filepath.Join(filepath.Dir(fromFile), normalized))
	}
	if strings.HasPrefix(normalized, "/") {
		return localTargetExists(filepath.Join(r.Root, strings.TrimPrefix(normalized, "/")))
	}

	for _, rule := range r.AliasRules {
		wildcard, ok := matchAlias(rule.Key, normalized)
		if !ok {
			continue
		}
		target := applyAliasTarget(rule.Target, wildcard)
		if localTargetExists(filepath.Join(rule.BaseDir, target)) {
			return true
		}
	}

	if !LooksLikePackageSpecifier(normalized) {
		for _, base := range r.BaseDirs {
			if localTargetExists(filepath.Join(base, normalized)) {
				return true
			}
		}
	}

	return false
}

// ResolveCandidatePath probes a raw, already-joined path (no alias or
// base-dir resolution, no specifier classification) against the known
// file set, expanding extensions and index files the same way import
// specifier resolution does. Used by entry discovery to check
// manifest fields and conventional filenames.
func (r *Resolver) ResolveCandidatePath(raw string) string {
	return r.resolveCandidate(raw)
}

func (r *Resolver) resolveCandidate(raw string) string {
	for _, candidate := range candidateExtensions(raw, constants.SourceExtensions) {
		canon, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if _, ok := r.Files[canon]; ok {
			return canon
		}
	}
	return ""
}

func localTargetExists(raw string) bool {
	for _, candidate := range candidateExtensions(raw, constants.LocalExistingExtensions) {
		if _, err := os.Stat(candidate); err == nil {
			return true
		}
	}
	return false
}

// candidateExtensions expands a raw path into the sequence of paths
// tried against disk: the path itself if it already has an extension,
// else the path itself, then the path with each extension appended,
// then `<path>/index.<ext>` for each extension.
func candidateExtensions(raw string, exts []string) []string {
	if filepath.Ext(raw) != "" {
		return []string{raw}
	}

	out := make([]string, 0, 1+2*len(exts))
	out = append(out, raw)
	for _, ext := range exts {
		out = append(out, raw+"."+ext)
	}
	for _, ext := range exts {
		out = append(out, filepath.Join(raw, "index."+ext))
	}
	return out
}

func normalizeSpecifier(specifier string) string {
	s := strings.TrimSpace(specifier)
	if idx := strings.IndexAny(s, "?#"); idx >= 0 {
		s = s[:idx]
	}
	return s
}

func isRelativeSpecifier(specifier string) bool {
	return strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../")
}

// LooksLikePackageSpecifier reports whether a specifier is shaped like
// an npm package name rather than a local file. Any specifier
// containing a "." is treated as local, including dotted package-like
// names (e.g. "foo.bar") — a known heuristic gap, preserved as-is.
func LooksLikePackageSpecifier(specifier string) bool {
	if isRelativeSpecifier(specifier) {
		return false
	}
	if strings.HasPrefix(specifier, "/") || strings.HasPrefix(specifier, "#") {
		return false
	}
	if strings.Contains(specifier, ".") {
		return false
	}
	return true
}

// PackageName extracts the installable package name from a specifier,
// handling scoped packages (@scope/name).
func PackageName(specifier string) string {
	parts := strings.Split(specifier, "/")
	if len(parts) == 0 {
		return specifier
	}
	if strings.HasPrefix(parts[0], "@") && len(parts) > 1 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}

func matchAlias(key, specifier string) (wildcard string, ok bool) {
	star := strings.IndexByte(key, '*')
	if star < 0 {
		if key == specifier {
			return "", true
		}
		return "", false
	}

	prefix, suffix := key[:star], key[star+1:]
	if !strings.HasPrefix(specifier, prefix) || !strings.HasSuffix(specifier, suffix) {
		return "", false
	}
	if len(specifier) < len(prefix)+len(suffix) {
		return "", false
	}
	return specifier[len(prefix) : len(specifier)-len(suffix)], true
}

func applyAliasTarget(target, wildcard string) string {
	if !strings.Contains(target, "*") {
		return target
	}
	return strings.ReplaceAll(target, "*", wildcard)
}
