// Package graph computes which files are reachable from the discovered
// entries, and which local imports the resolver could not place.
package graph

import (
	"github.com/ludo-technologies/deadwood/domain"
	"github.com/ludo-technologies/deadwood/internal/resolve"
)

// Reachable runs a BFS from entries over each module's import edges,
// following only specifiers the resolver can place, and returns the
// full set of files reached (including the entries themselves).
func Reachable(entries []string, modules map[string]*domain.ModuleInfo, resolver *resolve.Resolver) map[string]struct{} {
	seen := make(map[string]struct{})
	queue := append([]string{}, entries...)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if _, ok := seen[current]; ok {
			continue
		}
		seen[current] = struct{}{}

		module, ok := modules[current]
		if !ok {
			continue
		}

		for _, imp := range module.Imports {
			resolved := resolver.Resolve(current, imp.Specifier)
			if resolved == "" {
				continue
			}
			if _, already := seen[resolved]; !already {
				queue = append(queue, resolved)
			}
		}
	}

	return seen
}
