package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/ludo-technologies/deadwood/domain"
	"github.com/ludo-technologies/deadwood/internal/assets"
	"github.com/ludo-technologies/deadwood/internal/deps"
	"github.com/ludo-technologies/deadwood/internal/entry"
	"github.com/ludo-technologies/deadwood/internal/exports"
	"github.com/ludo-technologies/deadwood/internal/graph"
	"github.com/ludo-technologies/deadwood/internal/resolve"
	"github.com/ludo-technologies/deadwood/internal/scan"
	"github.com/ludo-technologies/deadwood/internal/tsconfig"
	"github.com/ludo-technologies/deadwood/internal/version"
	"github.com/ludo-technologies/deadwood/service"
)

// AnalyzeUseCase orchestrates the full unused-code analysis: scanning
// the project, parsing every source file, resolving imports, walking
// reachability from the discovered entries, and attributing unused
// files, exports, assets, and dependencies.
type AnalyzeUseCase struct {
	progress domain.ProgressManager
}

// NewAnalyzeUseCase creates a new analyze use case. progress may be
// nil, in which case no progress is reported.
func NewAnalyzeUseCase(progress domain.ProgressManager) *AnalyzeUseCase {
	return &AnalyzeUseCase{progress: progress}
}

// Execute runs the full analysis pipeline and returns the assembled
// report, conservative by construction: confidence gates whether
// unused_files/unused_exports/unused_assets are populated at all.
func (uc *AnalyzeUseCase) Execute(ctx context.Context, req *domain.AnalyzeRequest) (*domain.AnalyzeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(req.Root)
	if err != nil {
		return nil, domain.NewAnalysisError("failed to resolve project root", err)
	}

	var warnings []string
	warnings = append(warnings, "Analysis is conservative by default: unresolved imports and unresolvable dynamic patterns widen what counts as \"used\".")

	scanResult, err := scan.Walk(root, scan.Options{})
	if err != nil {
		return nil, domain.NewAnalysisError(fmt.Sprintf("failed to scan %s", root), err)
	}

	assetFiles := scanResult.AssetFiles
	if len(req.AssetRoots) > 0 {
		filtered := filterAssetsByRoots(root, assetFiles, req.AssetRoots)
		if len(filtered) == 0 {
			warnings = append(warnings, "No assets matched --asset-roots filter; falling back to the full asset set.")
		} else {
			assetFiles = filtered
		}
	}

	baseDirs := []string{root, filepath.Join(root, "src")}
	tsBaseDirs, aliases := tsconfig.Discover(root)
	baseDirs = tsconfig.DedupPaths(append(baseDirs, tsBaseDirs...))

	progress := uc.startTask("parse", len(scanResult.SourceFiles))
	modules, parseWarnings, err := service.NewParallelParser().ParseFiles(ctx, scanResult.SourceFiles, progress)
	progress.Complete()
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, parseWarnings...)

	resolver := resolve.New(root, baseDirs, aliases, scanResult.SourceFiles)

	entries := entry.Discover(root, scanResult.SourceFiles, req.EntryHints, resolver.ResolveCandidatePath)
	if len(entries) == 0 {
		warnings = append(warnings, "No entry files discovered. Pass --entry to improve unused file accuracy.")
	}
	entrySet := toSet(entries)

	reachable := graph.Reachable(entries, modules, resolver)

	unresolved := graph.UnresolvedLocalImports(reachable, modules, resolver)
	highConfidence := len(unresolved) == 0
	if !highConfidence {
		warnings = append(warnings, fmt.Sprintf("%d unresolved local import(s) found; graph confidence is low.", len(unresolved)))
	}
	maybeUsed := graph.InferMaybeUsedFiles(root, unresolved, scanResult.SourceFiles)
	if len(maybeUsed) > 0 {
		warnings = append(warnings, fmt.Sprintf("%d file(s) suppressed from unused_files via unresolved-import suffix matching.", len(maybeUsed)))
	}

	usedPackages := deps.UsedPackages(reachable, modules, resolver)
	declaredDeps := deps.DeclaredDependencies(root)
	unusedDeps := deps.Unused(declaredDeps, usedPackages, req.IncludeNonProdDeps)

	report := &domain.AnalysisReport{
		Root:                   displayRoot(root),
		TotalSourceFiles:       len(scanResult.SourceFiles),
		TotalAssetFiles:        len(assetFiles),
		TotalReachableFiles:    len(reachable),
		TotalEntries:           len(entries),
		UnresolvedLocalImports: len(unresolved),
		HighConfidence:         highConfidence,
		Entries:                relDisplayAll(root, entries),
		UnusedDependencies:     unusedDeps,
		GeneratedAt:            time.Now().UTC().Format(time.RFC3339),
		Version:                version.GetVersion(),
	}

	showLowConfidence := highConfidence || req.IncludeLowConfidence
	report.LowConfidenceShown = showLowConfidence

	if showLowConfidence {
		unusedFiles := unusedFiles(root, scanResult.SourceFiles, reachable, maybeUsed)
		report.UnusedFiles = unusedFiles

		used := assets.Used(root, scanResult.SourceFiles, assetFiles)
		report.UsedAssets = relDisplayAll(root, setToSlice(used))
		report.UnusedAssets = relDisplaySlice(root, assets.Unused(root, assetFiles, used))

		result := exports.Compute(root, reachable, scanResult.SourceFiles, modules, resolver, entrySet, maybeUsed, isTestLikeFile, isDeclarationFile)
		report.UnusedExports = result.Unused
		warnings = append(warnings, result.ExportAllWarnings...)
		if result.SuppressedCount > 0 {
			warnings = append(warnings, fmt.Sprintf("%d export(s) conservatively suppressed via project-wide token matches.", result.SuppressedCount))
		}
	} else {
		warnings = append(warnings,
			"unused_files and unused_exports omitted (use --include-low-confidence to force).",
			"unused_assets omitted because graph confidence is low (use --include-low-confidence to force).",
		)
	}

	if len(assetFiles) > 0 {
		report.AssetUsageCoveragePercent = float64(len(report.UsedAssets)) * 100.0 / float64(len(assetFiles))
	}

	report.Warnings = warnings

	return &domain.AnalyzeResponse{Report: report, Warnings: warnings}, nil
}

func (uc *AnalyzeUseCase) startTask(name string, total int) domain.TaskProgress {
	if uc.progress == nil {
		return noopProgress{}
	}
	return uc.progress.StartTask(name, total)
}

type noopProgress struct{}

func (noopProgress) Increment(int)        {}
func (noopProgress) Describe(string)      {}
func (noopProgress) Complete()            {}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, i := range items {
		set[i] = struct{}{}
	}
	return set
}

func setToSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	return out
}

func relDisplayAll(root string, files []string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, displayRel(root, f))
	}
	sort.Strings(out)
	return out
}

func relDisplaySlice(root string, files []string) []string {
	return relDisplayAll(root, files)
}

func displayRel(root, file string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return file
	}
	return filepath.ToSlash(rel)
}

func displayRoot(root string) string {
	return filepath.ToSlash(root)
}

func unusedFiles(root string, all, reachable, maybeUsed map[string]struct{}) []string {
	var out []string
	for f := range all {
		if _, ok := reachable[f]; ok {
			continue
		}
		if _, ok := maybeUsed[f]; ok {
			continue
		}
		if isTestLikeFile(f) || isDeclarationFile(f) || isCommonConfigFile(f) {
			continue
		}
		out = append(out, displayRel(root, f))
	}
	sort.Strings(out)
	return out
}
