// Package deps attributes which declared package.json dependencies are
// actually imported anywhere in the reachable module graph.
package deps

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ludo-technologies/deadwood/domain"
	"github.com/ludo-technologies/deadwood/internal/resolve"
)

type manifestSections struct {
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

// DeclaredDependencies reads package.json (missing or unreadable means
// "no declared dependencies", not an error) and classifies each name
// by the first section it appears in, in Prod > Dev > Peer > Optional
// order.
func DeclaredDependencies(root string) map[string]domain.DependencyKind {
	out := make(map[string]domain.DependencyKind)

	raw, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return out
	}

	var manifest manifestSections
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return out
	}

	insert := func(names map[string]string, kind domain.DependencyKind) {
		for name := range names {
			if _, exists := out[name]; !exists {
				out[name] = kind
			}
		}
	}

	insert(manifest.Dependencies, domain.DependencyProd)
	insert(manifest.DevDependencies, domain.DependencyDev)
	insert(manifest.PeerDependencies, domain.DependencyPeer)
	insert(manifest.OptionalDependencies, domain.DependencyOptional)

	return out
}

// UsedPackages returns the set of package names imported anywhere
// across the reachable files, based on specifiers the resolver cannot
// place locally but that look like package specifiers.
func UsedPackages(reachable map[string]struct{}, modules map[string]*domain.ModuleInfo, resolver *resolve.Resolver) map[string]struct{} {
	used := make(map[string]struct{})

	for file := range reachable {
		module, ok := modules[file]
		if !ok {
			continue
		}
		for _, imp := range module.Imports {
			if resolver.Resolve(file, imp.Specifier) != "" {
				continue
			}
			normalized := normalize(imp.Specifier)
			if !resolve.LooksLikePackageSpecifier(normalized) {
				continue
			}
			used[resolve.PackageName(normalized)] = struct{}{}
		}
	}

	return used
}

func normalize(specifier string) string {
	s := strings.TrimSpace(specifier)
	if idx := strings.IndexAny(s, "?#"); idx >= 0 {
		s = s[:idx]
	}
	return s
}

// Unused returns the sorted list of declared dependencies that are
// never imported. @types/* packages are always excluded; non-prod
// dependencies are only checked when includeNonProd is set.
func Unused(declared map[string]domain.DependencyKind, used map[string]struct{}, includeNonProd bool) []string {
	var out []string
	for name, kind := range declared {
		if strings.HasPrefix(name, "@types/") {
			continue
		}
		if !includeNonProd && kind != domain.DependencyProd {
			continue
		}
		if _, ok := used[name]; ok {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
