// Package entry discovers a project's entry files: CLI hints,
// package.json fields, conventional filenames, or framework routing
// conventions.
package entry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ludo-technologies/deadwood/internal/constants"
)

// conventionalNames are tried in order whenever no hint resolves; the
// ones that exist are added alongside any package.json entries.
var conventionalNames = []string{
	"src/index.ts", "src/index.tsx", "src/index.js", "src/index.jsx",
	"src/main.ts", "src/main.tsx", "src/main.js", "src/main.jsx",
	"index.ts", "index.js",
}

// CandidateResolver probes a root+relative candidate path against the known
// file set the same way the resolver expands extensions, returning
// the canonical file or "".
type CandidateResolver func(rawCandidate string) string

// Discover returns the sorted set of entry files.
func Discover(root string, files map[string]struct{}, hints []string, resolveCandidate CandidateResolver) []string {
	if len(hints) > 0 {
		var resolved []string
		for _, h := range hints {
			if r := resolveCandidate(filepath.Join(root, h)); r != "" {
				resolved = append(resolved, r)
			} else if r := resolveCandidate(h); r != "" {
				resolved = append(resolved, r)
			}
		}
		if len(resolved) > 0 {
			return sortedUnique(resolved)
		}
	}

	set := make(map[string]struct{})

	for _, candidate := range manifestEntryCandidates(root) {
		if r := resolveCandidate(filepath.Join(root, candidate)); r != "" {
			set[r] = struct{}{}
		}
	}

	for _, name := range conventionalNames {
		if r := resolveCandidate(filepath.Join(root, name)); r != "" {
			set[r] = struct{}{}
		}
	}

	for f := range files {
		rel, err := filepath.Rel(root, f)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		if isFrameworkConventionEntry(rel) || isTestLikeFile(f) {
			set[f] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	return sortedUnique(out)
}

func sortedUnique(in []string) []string {
	set := make(map[string]struct{}, len(in))
	for _, v := range in {
		set[v] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

type packageManifest struct {
	Main    string          `json:"main"`
	Module  string          `json:"module"`
	Types   string          `json:"types"`
	Browser string          `json:"browser"`
	Bin     json.RawMessage `json:"bin"`
	Exports json.RawMessage `json:"exports"`
}

func manifestEntryCandidates(root string) []string {
	raw, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return nil
	}

	var manifest packageManifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil
	}

	var out []string
	for _, v := range []string{manifest.Main, manifest.Module, manifest.Types, manifest.Browser} {
		if v != "" {
			out = append(out, v)
		}
	}

	if len(manifest.Bin) > 0 {
		var asString string
		if err := json.Unmarshal(manifest.Bin, &asString); err == nil && asString != "" {
			out = append(out, asString)
		} else {
			var asObject map[string]string
			if err := json.Unmarshal(manifest.Bin, &asObject); err == nil {
				keys := make([]string, 0, len(asObject))
				for k := range asObject {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					out = append(out, asObject[k])
				}
			}
		}
	}

	if len(manifest.Exports) > 0 {
		out = append(out, collectStrings(manifest.Exports)...)
	}

	return out
}

// collectStrings flattens a JSON value (string, object, or array) into
// every string leaf found at any depth, mirroring package.json's
// deeply-nested "exports" conditional maps.
func collectStrings(raw json.RawMessage) []string {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return []string{asString}
	}

	var asArray []json.RawMessage
	if err := json.Unmarshal(raw, &asArray); err == nil {
		var out []string
		for _, item := range asArray {
			out = append(out, collectStrings(item)...)
		}
		return out
	}

	var asObject map[string]json.RawMessage
	if err := json.Unmarshal(raw, &asObject); err == nil {
		keys := make([]string, 0, len(asObject))
		for k := range asObject {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var out []string
		for _, k := range keys {
			out = append(out, collectStrings(asObject[k])...)
		}
		return out
	}

	return nil
}

func isFrameworkConventionEntry(relSlash string) bool {
	if strings.HasPrefix(relSlash, "pages/") || strings.HasPrefix(relSlash, "src/pages/") {
		return true
	}
	if strings.HasPrefix(relSlash, "app/") || strings.HasPrefix(relSlash, "src/app/") {
		base := filepath.Base(relSlash)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		for _, routeFile := range constants.NextAppRouteFiles {
			if stem == routeFile {
				return true
			}
		}
	}
	return false
}

func isTestLikeFile(path string) bool {
	base := filepath.Base(path)
	if strings.Contains(base, ".test.") || strings.Contains(base, ".spec.") {
		return true
	}
	return strings.Contains(filepath.ToSlash(path), "/__tests__/")
}
