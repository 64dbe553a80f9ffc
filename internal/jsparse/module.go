package jsparse

import (
	"os"
	"sort"
	"strings"

	"github.com/ludo-technologies/deadwood/domain"
)

// ParseModule reads and parses a single source file.
func ParseModule(path string) (*domain.ModuleInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewParseError(path, err)
	}
	return ParseSource(path, string(raw)), nil
}

// ParseSource parses already-read source text, attributing the result
// to path. It never returns an error: a file that doesn't look like
// JS/TS simply yields an empty ModuleInfo.
func ParseSource(path, source string) *domain.ModuleInfo {
	source = StripComments(source)

	info := &domain.ModuleInfo{Path: path}
	exports := make(map[string]struct{})

	for _, m := range importFromRe.FindAllStringSubmatch(source, -1) {
		clause, specifier := m[1], m[2]
		record := domain.ImportRecord{Specifier: specifier}
		parseImportClause(clause, &record)
		info.Imports = append(info.Imports, record)
	}

	for _, m := range importSideEffectRe.FindAllStringSubmatch(source, -1) {
		info.Imports = append(info.Imports, domain.ImportRecord{
			Specifier:      m[1],
			SideEffectOnly: true,
		})
	}

	destructured := destructureRequireRe.FindAllStringIndex(source, -1)
	for _, loc := range requireRe.FindAllStringSubmatchIndex(source, -1) {
		inDestructure := false
		for _, d := range destructured {
			if loc[0] >= d[0] && loc[1] <= d[1] {
				inDestructure = true
				break
			}
		}
		if inDestructure {
			continue
		}
		info.Imports = append(info.Imports, domain.ImportRecord{
			Specifier:     source[loc[2]:loc[3]],
			UsesNamespace: true,
		})
	}

	for _, m := range destructureRequireRe.FindAllStringSubmatch(source, -1) {
		names, specifier := m[1], m[2]
		record := domain.ImportRecord{Specifier: specifier}
		record.Named = sortedSet(parseDestructuredNames(names))
		info.Imports = append(info.Imports, record)
	}

	for _, m := range dynImportRe.FindAllStringSubmatch(source, -1) {
		info.Imports = append(info.Imports, domain.ImportRecord{
			Specifier:     m[1],
			UsesNamespace: true,
		})
	}

	for _, m := range exportDeclRe.FindAllStringSubmatch(source, -1) {
		if name := m[1]; name != "" {
			exports[name] = struct{}{}
		}
	}

	for _, m := range exportListRe.FindAllStringSubmatch(source, -1) {
		names, specifier := m[1], m[2]
		if specifier != "" {
			record := domain.ImportRecord{Specifier: specifier, IsReexport: true}
			parseExportListAsImport(names, &record)
			info.Imports = append(info.Imports, record)
		} else {
			for name := range parseAliasedNames(names) {
				exports[name] = struct{}{}
			}
		}
	}

	if exportDefaultRe.MatchString(source) {
		info.HasDefaultExport = true
	}

	for _, m := range exportAllRe.FindAllStringSubmatch(source, -1) {
		info.HasExportAll = true
		info.Imports = append(info.Imports, domain.ImportRecord{
			Specifier:     m[1],
			UsesNamespace: true,
			IsReexport:    true,
		})
	}

	info.Exports = sortedSet(exports)
	return info
}

func parseImportClause(clause string, record *domain.ImportRecord) {
	cleaned := strings.TrimSpace(clause)
	cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "type "))

	if strings.Contains(cleaned, "* as") {
		record.UsesNamespace = true
	}

	if strings.HasPrefix(cleaned, "{") {
		record.Named = mergeSorted(record.Named, parseAliasedNames(cleaned))
		return
	}

	if first, rest, ok := cutFirst(cleaned, ","); ok {
		if strings.TrimSpace(first) != "" {
			record.UsesDefault = true
		}
		if strings.Contains(rest, "*") {
			record.UsesNamespace = true
		}
		if strings.Contains(rest, "{") {
			record.Named = mergeSorted(record.Named, parseAliasedNames(rest))
		}
		return
	}

	if strings.Contains(cleaned, "{") {
		record.Named = mergeSorted(record.Named, parseAliasedNames(cleaned))
	} else if cleaned != "" && !strings.HasPrefix(cleaned, "*") {
		record.UsesDefault = true
	}
}

// parseExportListAsImport handles `export { a, b as c } from 'x'`,
// which is recorded as an import of x. The bound name kept here is the
// left-of-"as" side (the remote export's own name), since that is what
// parseExportListAsImport is reconstructing: an import record standing
// in for this re-export.
func parseExportListAsImport(names string, record *domain.ImportRecord) {
	found := make(map[string]struct{})
	for _, raw := range strings.Split(names, ",") {
		part := strings.TrimSpace(raw)
		if part == "" {
			continue
		}
		if part == "default" {
			record.UsesDefault = true
			continue
		}
		if strings.HasPrefix(part, "*") {
			record.UsesNamespace = true
			continue
		}

		importName := part
		if left, _, ok := cutFirst(part, " as "); ok {
			importName = left
		}
		importName = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(importName), "type "))
		if importName != "" {
			found[importName] = struct{}{}
		}
	}
	record.Named = mergeSorted(record.Named, found)
}

// parseAliasedNames extracts names from a `{ a, b as c }` list, keeping
// the right-of-"as" side. Used both for bare `export { ... }` lists
// (where right-of-"as" is the exposed name) and for `{...}` import
// clauses (where right-of-"as" is the locally bound name) — see
// DESIGN.md for why both cases want the same side.
func parseAliasedNames(names string) map[string]struct{} {
	out := make(map[string]struct{})

	trimmed := strings.TrimSpace(names)
	trimmed = strings.TrimPrefix(trimmed, "{")
	trimmed = strings.TrimSuffix(trimmed, "}")

	for _, raw := range strings.Split(trimmed, ",") {
		part := strings.TrimSpace(raw)
		if part == "" {
			continue
		}
		if part == "default" {
			out["default"] = struct{}{}
			continue
		}

		exported := part
		if _, right, ok := cutFirst(part, " as "); ok {
			exported = right
		}
		exported = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(exported), "type "))
		if exported != "" {
			out[exported] = struct{}{}
		}
	}

	return out
}

func parseDestructuredNames(names string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, raw := range strings.Split(names, ",") {
		item := strings.TrimSpace(raw)
		if item == "" {
			continue
		}
		left := item
		if l, _, ok := cutFirst(item, ":"); ok {
			left = l
		}
		left = strings.TrimSpace(left)
		if left != "" {
			out[left] = struct{}{}
		}
	}
	return out
}

// cutFirst splits on the first occurrence of sep, mirroring Rust's
// str::split_once (Go's strings.Cut behaves the same; kept as a named
// helper here since some call sites need the ", "-vs-"," distinction
// spelled out at the call site).
func cutFirst(s, sep string) (before, after string, found bool) {
	return strings.Cut(s, sep)
}

func sortedSet(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func mergeSorted(existing []string, extra map[string]struct{}) []string {
	set := make(map[string]struct{}, len(existing)+len(extra))
	for _, v := range existing {
		set[v] = struct{}{}
	}
	for v := range extra {
		set[v] = struct{}{}
	}
	return sortedSet(set)
}
