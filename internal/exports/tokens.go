package exports

import (
	"os"

	"github.com/ludo-technologies/deadwood/internal/jsparse"
)

// TokenCache maps each file to the set of identifier-shaped tokens it
// contains, used to conservatively suppress unused-export findings for
// symbols that merely LOOK used elsewhere (string-match, not
// scope-aware).
type TokenCache map[string]map[string]struct{}

// BuildFileTokenCache tokenizes every file in the set.
func BuildFileTokenCache(files map[string]struct{}) TokenCache {
	cache := make(TokenCache, len(files))
	for file := range files {
		raw, err := os.ReadFile(file)
		if err != nil {
			cache[file] = map[string]struct{}{}
			continue
		}
		cache[file] = jsparse.IdentifierTokens(string(raw))
	}
	return cache
}

// CountTokensInScope tallies, for every token, how many distinct files
// within scope contain it.
func CountTokensInScope(scope map[string]struct{}, cache TokenCache) map[string]int {
	counts := make(map[string]int)
	for file := range scope {
		tokens, ok := cache[file]
		if !ok {
			continue
		}
		for token := range tokens {
			counts[token]++
		}
	}
	return counts
}

// appearsInOtherFiles reports whether exportName shows up as a token
// in some file beyond the one that defines it. A single reachable
// file containing the only occurrence is treated as "other" too, since
// a one-file project can't have an external consumer to find. Compute
// does not reach that fallback when entries come from graph.Reachable:
// a one-file scope then holds only an entry, and entries are skipped
// before this check.
func appearsInOtherFiles(tokenCounts map[string]int, exportName string, scope map[string]struct{}, file string) bool {
	if exportName == "" {
		return false
	}
	count, ok := tokenCounts[exportName]
	if !ok || count == 0 {
		return false
	}
	if count > 1 {
		return true
	}
	_, onlyFile := scope[file]
	return len(scope) == 1 && onlyFile
}
