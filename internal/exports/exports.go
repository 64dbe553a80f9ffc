// Package exports tracks which exports of a reachable module are
// actually imported from elsewhere in the graph, and flags the rest as
// unused — conservatively, falling back to a project-wide token scan
// before calling anything truly dead.
package exports

import (
	"path/filepath"
	"sort"

	"github.com/ludo-technologies/deadwood/domain"
	"github.com/ludo-technologies/deadwood/internal/resolve"
)

// Result is the outcome of running the usage engine once.
type Result struct {
	Unused             []domain.UnusedExport
	SuppressedCount    int
	ExportAllWarnings  []string
}

// Compute walks every reachable file's imports twice: first the direct
// ones (to record exactly which names of the target module are used),
// then the re-exporting ones (which conservatively mark the whole
// target module as fully used, since a re-export's own consumers are
// opaque to this analysis). It then emits one UnusedExport per export
// name that is neither recorded as used nor found as a token anywhere
// else in the project.
func Compute(
	root string,
	reachable map[string]struct{},
	allFiles map[string]struct{},
	modules map[string]*domain.ModuleInfo,
	resolver *resolve.Resolver,
	entries map[string]struct{},
	maybeUsedFromUnresolved map[string]struct{},
	isTestLike func(string) bool,
	isDeclaration func(string) bool,
) Result {
	usage := make(map[string]*domain.ExportUsage)
	ensure := func(file string) *domain.ExportUsage {
		u, ok := usage[file]
		if !ok {
			u = domain.NewExportUsage()
			usage[file] = u
		}
		return u
	}

	for file := range reachable {
		module, ok := modules[file]
		if !ok {
			continue
		}
		for _, imp := range module.Imports {
			if imp.IsReexport || imp.SideEffectOnly {
				continue
			}
			target := resolver.Resolve(file, imp.Specifier)
			if target == "" {
				continue
			}
			u := ensure(target)
			if imp.UsesNamespace {
				u.All = true
			}
			if imp.UsesDefault {
				u.DefaultUsed = true
			}
			for _, name := range imp.Named {
				u.Named[name] = struct{}{}
			}
		}
	}

	for file := range reachable {
		module, ok := modules[file]
		if !ok {
			continue
		}
		for _, imp := range module.Imports {
			if !imp.IsReexport {
				continue
			}
			target := resolver.Resolve(file, imp.Specifier)
			if target == "" {
				continue
			}
			ensure(target).All = true
		}
	}

	reachableTokens := BuildFileTokenCache(reachable)
	allTokens := BuildFileTokenCache(allFiles)
	reachableCounts := CountTokensInScope(reachable, reachableTokens)
	allCounts := CountTokensInScope(allFiles, allTokens)

	var result Result
	var unused []domain.UnusedExport

	for file := range reachable {
		if _, isEntry := entries[file]; isEntry {
			continue
		}
		if isTestLike(file) || isDeclaration(file) {
			continue
		}
		if _, maybe := maybeUsedFromUnresolved[file]; maybe {
			continue
		}

		module, ok := modules[file]
		if !ok {
			continue
		}

		used := usage[file]
		if used == nil {
			used = domain.NewExportUsage()
		}

		if !used.All {
			for _, name := range module.Exports {
				if appearsInOtherFiles(reachableCounts, name, reachable, file) ||
					appearsInOtherFiles(allCounts, name, allFiles, file) {
					result.SuppressedCount++
					continue
				}
				if _, ok := used.Named[name]; ok {
					continue
				}
				unused = append(unused, domain.UnusedExport{File: relDisplay(root, file), Export: name})
			}

			if module.HasDefaultExport && !used.DefaultUsed {
				unused = append(unused, domain.UnusedExport{File: relDisplay(root, file), Export: "default"})
			}
		}

		if module.HasExportAll && !used.All {
			result.ExportAllWarnings = append(result.ExportAllWarnings,
				"export * from '"+relDisplay(root, file)+"' could not be fully attributed; manual review recommended.")
		}
	}

	sort.Slice(unused, func(i, j int) bool {
		if unused[i].File != unused[j].File {
			return unused[i].File < unused[j].File
		}
		return unused[i].Export < unused[j].Export
	})
	result.Unused = dedupUnused(unused)

	return result
}

func dedupUnused(in []domain.UnusedExport) []domain.UnusedExport {
	seen := make(map[domain.UnusedExport]struct{}, len(in))
	out := make([]domain.UnusedExport, 0, len(in))
	for _, u := range in {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

func relDisplay(root, file string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return file
	}
	return filepath.ToSlash(rel)
}
