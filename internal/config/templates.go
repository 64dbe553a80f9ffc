package config

// ProjectType represents the type of JavaScript/TypeScript project, used
// only to seed sensible include/exclude patterns for `deadwood init`.
type ProjectType string

const (
	ProjectTypeGeneric     ProjectType = "generic"
	ProjectTypeReact       ProjectType = "react"
	ProjectTypeVue         ProjectType = "vue"
	ProjectTypeNodeBackend ProjectType = "node"
)

// Strictness controls how readily `deadwood init` enables
// low-confidence reporting by default.
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// ProjectPreset holds include/exclude pattern presets for a project type.
type ProjectPreset struct {
	IncludePatterns []string
	ExcludePatterns []string
}

// GetProjectPresets returns presets for different project types.
func GetProjectPresets() map[ProjectType]ProjectPreset {
	return map[ProjectType]ProjectPreset{
		ProjectTypeGeneric: {
			IncludePatterns: []string{"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx", "**/*.mjs", "**/*.cjs"},
			ExcludePatterns: []string{"**/node_modules/**", "**/dist/**", "**/build/**"},
		},
		ProjectTypeReact: {
			IncludePatterns: []string{"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx"},
			ExcludePatterns: []string{"**/node_modules/**", "**/dist/**", "**/build/**", "**/.next/**", "**/coverage/**"},
		},
		ProjectTypeVue: {
			IncludePatterns: []string{"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx"},
			ExcludePatterns: []string{"**/node_modules/**", "**/dist/**", "**/build/**", "**/.nuxt/**", "**/coverage/**"},
		},
		ProjectTypeNodeBackend: {
			IncludePatterns: []string{"**/*.js", "**/*.ts", "**/*.mjs", "**/*.cjs"},
			ExcludePatterns: []string{"**/node_modules/**", "**/dist/**", "**/build/**", "**/test/**", "**/__tests__/**"},
		},
	}
}

// strictnessIncludesLowConfidence maps a strictness level to whether
// low-confidence findings should be reported by default: stricter
// setups want to see every candidate even when the graph is uncertain.
func strictnessIncludesLowConfidence(s Strictness) bool {
	return s == StrictnessStrict
}

// GetFullConfigTemplate returns a documented .deadwood.yaml template
// for the given project type and strictness.
func GetFullConfigTemplate(projectType ProjectType, strictness Strictness) string {
	preset := GetProjectPresets()[projectType]
	includeLowConfidence := strictnessIncludesLowConfidence(strictness)

	return `# deadwood configuration
# Documentation: https://github.com/ludo-technologies/deadwood

analysis:
  # Additional entry file hints, beyond what deadwood discovers on its own
  # (package.json main/module/bin/exports, index files, Next.js app routes).
  entry_hints: []

  # Glob patterns for source files. The analyze command reads this value
  # but does not apply it: every source file under the root is scanned.
  include_patterns:
` + formatYAMLList(preset.IncludePatterns, "    ") + `

  # Glob patterns for files to exclude. The analyze command reads this
  # value but does not apply it; only the fixed ignored-directory list
  # (node_modules, .git, dist, build, ...) and .gitignore are honored.
  exclude_patterns:
` + formatYAMLList(preset.ExcludePatterns, "    ") + `

  # Report unused files/exports/assets even when the dependency graph
  # has unresolved local imports (low confidence).
  include_low_confidence: ` + formatYAMLBool(includeLowConfidence) + `

output:
  # Output format: text, json, dot (dot applies only to 'deadwood deps').
  format: text

dependency:
  # Also report unused devDependencies/peerDependencies/optionalDependencies,
  # not just production dependencies.
  include_non_prod_deps: false

assets:
  # Restrict asset discovery to these project-relative roots. Empty
  # means the whole project.
  asset_roots: []
`
}

// GetMinimalConfigTemplate returns a minimal .deadwood.yaml with only
// the fields most users will want to change.
func GetMinimalConfigTemplate() string {
	return `# deadwood configuration (minimal)
# See full options: https://github.com/ludo-technologies/deadwood

analysis:
  entry_hints: []
  include_low_confidence: false

output:
  format: text

dependency:
  include_non_prod_deps: false
`
}

func formatYAMLList(items []string, indent string) string {
	if len(items) == 0 {
		return indent + "[]"
	}
	var out string
	for i, item := range items {
		out += indent + `- "` + item + `"`
		if i < len(items)-1 {
			out += "\n"
		}
	}
	return out
}

func formatYAMLBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
