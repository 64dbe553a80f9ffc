// Package tsconfig discovers and reads tsconfig.json/jsconfig.json
// project configuration, following extends/references chains and
// extracting path-alias rules for the resolver.
package tsconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/ludo-technologies/deadwood/domain"
	"github.com/ludo-technologies/deadwood/internal/constants"
	"github.com/tidwall/jsonc"
)

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

type compilerOptions struct {
	BaseURL string              `json:"baseUrl"`
	Paths   map[string][]string `json:"paths"`
}

type tsconfigFile struct {
	Extends         string          `json:"extends"`
	CompilerOptions compilerOptions `json:"compilerOptions"`
	References      []struct {
		Path string `json:"path"`
	} `json:"references"`
}

// Discover finds every tsconfig/jsconfig reachable from the project
// root's seed filenames (and their extends/references chains) and
// returns the accumulated baseUrl directories and alias rules.
func Discover(root string) (baseDirs []string, aliases []domain.AliasRule) {
	configs := make(map[string]struct{})

	for _, seed := range constants.TSConfigSeedNames {
		seedPath := filepath.Join(root, seed)
		visiting := make(map[string]struct{})
		discoverRelated(seedPath, configs, visiting)
	}

	sorted := make([]string, 0, len(configs))
	for c := range configs {
		sorted = append(sorted, c)
	}
	sort.Strings(sorted)

	for _, configPath := range sorted {
		applyCompilerOptions(configPath, &baseDirs, &aliases)
	}

	return baseDirs, aliases
}

func discoverRelated(configPath string, out map[string]struct{}, visiting map[string]struct{}) {
	canon, err := filepath.Abs(configPath)
	if err != nil {
		canon = configPath
	}
	if resolved, err := filepath.EvalSymlinks(canon); err == nil {
		canon = resolved
	}

	if _, seen := visiting[canon]; seen {
		return
	}
	visiting[canon] = struct{}{}

	info, err := os.Stat(canon)
	if err != nil || info.IsDir() {
		return
	}
	if _, already := out[canon]; already {
		return
	}

	raw, err := os.ReadFile(canon)
	if err != nil {
		return
	}
	sanitized := sanitizeJSONC(string(raw))

	var cfg tsconfigFile
	if err := json.Unmarshal([]byte(sanitized), &cfg); err != nil {
		return
	}

	out[canon] = struct{}{}
	baseDir := filepath.Dir(canon)

	if cfg.Extends != "" {
		if ref := resolveReferencePath(baseDir, cfg.Extends); ref != "" {
			discoverRelated(ref, out, visiting)
		}
	}

	for _, r := range cfg.References {
		if ref := resolveReferencePath(baseDir, r.Path); ref != "" {
			discoverRelated(ref, out, visiting)
		}
	}
}

func resolveReferencePath(baseDir, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	var candidate string
	if filepath.IsAbs(raw) {
		candidate = raw
	} else {
		candidate = filepath.Join(baseDir, raw)
	}

	if info, err := os.Stat(candidate); err == nil {
		if info.IsDir() {
			return filepath.Join(candidate, "tsconfig.json")
		}
		return candidate
	}

	if filepath.Ext(candidate) == "" {
		withExt := candidate + ".json"
		if _, err := os.Stat(withExt); err == nil {
			return withExt
		}
	}

	return ""
}

func applyCompilerOptions(configPath string, baseDirs *[]string, aliases *[]domain.AliasRule) {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return
	}
	sanitized := sanitizeJSONC(string(raw))

	var cfg tsconfigFile
	if err := json.Unmarshal([]byte(sanitized), &cfg); err != nil {
		return
	}

	configDir := filepath.Dir(configPath)

	if cfg.CompilerOptions.BaseURL != "" {
		*baseDirs = append(*baseDirs, filepath.Join(configDir, cfg.CompilerOptions.BaseURL))
	}

	keys := make([]string, 0, len(cfg.CompilerOptions.Paths))
	for k := range cfg.CompilerOptions.Paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		for _, target := range cfg.CompilerOptions.Paths[key] {
			*aliases = append(*aliases, domain.AliasRule{
				Key:     key,
				Target:  target,
				BaseDir: configDir,
			})
		}
	}
}

// sanitizeJSONC strips comments then repeatedly removes trailing
// commas until no further change occurs, producing input safe for
// encoding/json.
func sanitizeJSONC(input string) string {
	stripped := string(jsonc.ToJSON([]byte(input)))
	for {
		next := trailingCommaRe.ReplaceAllString(stripped, "$1")
		if next == stripped {
			return stripped
		}
		stripped = next
	}
}

// DedupPaths canonicalizes each directory and keeps the first-seen
// occurrence of each unique path, preserving order.
func DedupPaths(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		canon, err := filepath.Abs(p)
		if err != nil {
			canon = p
		}
		if _, ok := seen[canon]; ok {
			continue
		}
		seen[canon] = struct{}{}
		out = append(out, canon)
	}
	return out
}
