package domain

import "io"

// OutputFormat selects how a report is rendered.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatDOT  OutputFormat = "dot"
)

// DependencyKind classifies where a dependency was declared.
type DependencyKind string

const (
	DependencyProd     DependencyKind = "prod"
	DependencyDev      DependencyKind = "dev"
	DependencyPeer     DependencyKind = "peer"
	DependencyOptional DependencyKind = "optional"
)

// BoolPtr returns a pointer to the given bool, used for optional
// request fields that must distinguish "unset" from "false".
func BoolPtr(b bool) *bool {
	return &b
}

// ImportRecord is one syntactic import/require/dynamic-import site.
type ImportRecord struct {
	Specifier      string   `json:"specifier"`
	UsesDefault    bool     `json:"uses_default"`
	UsesNamespace  bool     `json:"uses_namespace"`
	Named          []string `json:"named,omitempty"`
	SideEffectOnly bool     `json:"side_effect_only"`
	IsReexport     bool     `json:"is_reexport"`
}

// ModuleInfo is the parsed shape of a single source file.
type ModuleInfo struct {
	Path            string         `json:"path"`
	Imports         []ImportRecord `json:"imports"`
	Exports         []string       `json:"exports"`
	HasDefaultExport bool          `json:"has_default_export"`
	HasExportAll    bool           `json:"has_export_all"`
}

// AliasRule is one entry of compilerOptions.paths, resolved to an
// absolute base directory.
type AliasRule struct {
	Key     string `json:"key"`
	Target  string `json:"target"`
	BaseDir string `json:"base_dir"`
}

// ExportUsage accumulates how a module's exports are consumed by the
// rest of the reachable graph.
type ExportUsage struct {
	All         bool
	DefaultUsed bool
	Named       map[string]struct{}
}

func NewExportUsage() *ExportUsage {
	return &ExportUsage{Named: make(map[string]struct{})}
}

// UnresolvedImport records an import the resolver could not place.
type UnresolvedImport struct {
	FromFile  string `json:"from_file"`
	Specifier string `json:"specifier"`
}

// DependencyRecord is one declared package.json dependency.
type DependencyRecord struct {
	Name string         `json:"name"`
	Kind DependencyKind `json:"kind"`
}

// UnusedExport is one finding of an export with no discovered consumer.
type UnusedExport struct {
	File   string `json:"file"`
	Export string `json:"export"`
}

// AnalysisReport is the fully assembled output of a run.
type AnalysisReport struct {
	Root string `json:"root"`

	TotalSourceFiles       int `json:"total_source_files"`
	TotalAssetFiles        int `json:"total_asset_files"`
	TotalReachableFiles    int `json:"total_reachable_files"`
	TotalEntries           int `json:"total_entries"`
	UnresolvedLocalImports int `json:"unresolved_local_imports"`

	HighConfidence      bool `json:"high_confidence"`
	LowConfidenceShown  bool `json:"low_confidence_shown"`

	Entries []string `json:"entries"`
	Warnings []string `json:"warnings"`

	UnusedFiles        []string       `json:"unused_files"`
	UsedAssets         []string       `json:"used_assets"`
	UnusedAssets       []string       `json:"unused_assets"`
	UnusedDependencies []string       `json:"unused_dependencies"`
	UnusedExports      []UnusedExport `json:"unused_exports"`

	AssetUsageCoveragePercent float64 `json:"asset_usage_coverage_percent"`

	GeneratedAt string `json:"generated_at"`
	Version     string `json:"version"`
}

// AnalyzeRequest is the input to the analyzer use case.
type AnalyzeRequest struct {
	Paths []string `json:"paths"`

	Root string `json:"root"`

	EntryHints []string `json:"entry_hints,omitempty"`

	IncludeNonProdDeps   bool `json:"include_non_prod_deps"`
	IncludeLowConfidence bool `json:"include_low_confidence"`

	AssetRoots []string `json:"asset_roots,omitempty"`

	OutputFormat OutputFormat `json:"output_format"`
	OutputWriter io.Writer    `json:"-"`

	ConfigPath string `json:"config_path,omitempty"`
}

func (r *AnalyzeRequest) Validate() error {
	if r.Root == "" {
		return NewValidationError("root path must not be empty")
	}
	return nil
}

// DefaultAnalyzeRequest returns an AnalyzeRequest populated with the
// analyzer's default flags.
func DefaultAnalyzeRequest() *AnalyzeRequest {
	return &AnalyzeRequest{
		OutputFormat:         OutputFormatText,
		IncludeNonProdDeps:   false,
		IncludeLowConfidence: false,
	}
}

// AnalyzeResponse wraps the assembled report plus run metadata.
type AnalyzeResponse struct {
	Report   *AnalysisReport `json:"report"`
	Warnings []string        `json:"warnings,omitempty"`
}
