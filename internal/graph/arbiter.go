package graph

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/ludo-technologies/deadwood/domain"
	"github.com/ludo-technologies/deadwood/internal/resolve"
)

// UnresolvedLocalImports scans every reachable file's imports and
// collects the ones that look local but neither resolve to a known
// file nor exist on disk under any extension.
func UnresolvedLocalImports(reachable map[string]struct{}, modules map[string]*domain.ModuleInfo, resolver *resolve.Resolver) []domain.UnresolvedImport {
	set := make(map[domain.UnresolvedImport]struct{})

	for file := range reachable {
		module, ok := modules[file]
		if !ok {
			continue
		}
		for _, imp := range module.Imports {
			if !resolver.IsLikelyLocal(imp.Specifier) {
				continue
			}
			if resolver.Resolve(file, imp.Specifier) != "" {
				continue
			}
			if resolver.LocalExists(file, imp.Specifier) {
				continue
			}
			set[domain.UnresolvedImport{FromFile: file, Specifier: imp.Specifier}] = struct{}{}
		}
	}

	out := make([]domain.UnresolvedImport, 0, len(set))
	for u := range set {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FromFile != out[j].FromFile {
			return out[i].FromFile < out[j].FromFile
		}
		return out[i].Specifier < out[j].Specifier
	})
	return out
}

// InferMaybeUsedFiles guesses which known files an unresolved local
// import specifier might actually refer to, so they aren't
// conservatively reported as unused. It never changes the resolved
// graph, only suppresses unused-file findings.
func InferMaybeUsedFiles(root string, unresolved []domain.UnresolvedImport, files map[string]struct{}) map[string]struct{} {
	type fileIndex struct {
		path      string
		relSlash  string
		relNoExt  string
	}

	indexes := make([]fileIndex, 0, len(files))
	for f := range files {
		rel, err := filepath.Rel(root, f)
		if err != nil {
			continue
		}
		relSlash := filepath.ToSlash(rel)
		indexes = append(indexes, fileIndex{
			path:     f,
			relSlash: relSlash,
			relNoExt: stripFileExtension(relSlash),
		})
	}

	maybeUsed := make(map[string]struct{})

	for _, u := range unresolved {
		suffixes := unresolvedSpecifierSuffixes(u.Specifier)
		leaf := unresolvedLeafName(u.Specifier)

		for _, idx := range indexes {
			if _, already := maybeUsed[idx.path]; already {
				continue
			}

			matched := false
			for suffix := range suffixes {
				if idx.relNoExt == suffix ||
					strings.HasSuffix(idx.relNoExt, "/"+suffix) ||
					strings.HasSuffix(idx.relSlash, "/"+suffix) ||
					strings.HasSuffix(idx.relNoExt, "/"+suffix+"/index") {
					matched = true
					break
				}
			}
			if matched {
				maybeUsed[idx.path] = struct{}{}
				continue
			}

			if leaf != "" {
				base := filepath.Base(idx.relSlash)
				stem := strings.TrimSuffix(base, filepath.Ext(base))
				if stem == leaf {
					maybeUsed[idx.path] = struct{}{}
				}
			}
		}
	}

	return maybeUsed
}

func unresolvedSpecifierSuffixes(specifier string) map[string]struct{} {
	s := specifier
	if idx := strings.IndexAny(s, "?#"); idx >= 0 {
		s = s[:idx]
	}
	s = strings.ReplaceAll(s, "\\", "/")

	for strings.HasPrefix(s, "./") || strings.HasPrefix(s, "../") {
		switch {
		case strings.HasPrefix(s, "./"):
			s = strings.TrimPrefix(s, "./")
		case strings.HasPrefix(s, "../"):
			s = strings.TrimPrefix(s, "../")
		}
	}

	out := make(map[string]struct{})
	add := func(v string) {
		if v != "" {
			out[v] = struct{}{}
		}
	}

	add(s)
	if strings.HasPrefix(s, "/") {
		add(strings.TrimPrefix(s, "/"))
	}
	if strings.HasPrefix(s, "@/") {
		add(strings.TrimPrefix(s, "@/"))
	}
	if strings.HasPrefix(s, "~/") {
		add(strings.TrimPrefix(s, "~/"))
	}
	if strings.HasPrefix(s, "@") {
		if idx := strings.Index(s, "/"); idx >= 0 {
			add(s[idx+1:])
		}
	}
	if strings.HasPrefix(s, "src/") {
		add(strings.TrimPrefix(s, "src/"))
	}

	return out
}

func unresolvedLeafName(specifier string) string {
	s := specifier
	if idx := strings.IndexAny(s, "?#"); idx >= 0 {
		s = s[:idx]
	}
	s = strings.ReplaceAll(s, "\\", "/")
	s = strings.TrimRight(s, "/")

	idx := strings.LastIndex(s, "/")
	leaf := s
	if idx >= 0 {
		leaf = s[idx+1:]
	}
	if leaf == "." || leaf == ".." || leaf == "" {
		return ""
	}
	return stripFileExtension(leaf)
}

func stripFileExtension(pathLike string) string {
	dir, base := filepath.Split(pathLike)
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return dir + base
}
