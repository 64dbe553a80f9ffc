package service

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ludo-technologies/deadwood/domain"
	"github.com/ludo-technologies/deadwood/internal/version"
)

// OutputFormatter renders an AnalysisReport in the requested format.
type OutputFormatter struct{}

// NewOutputFormatter creates a new output formatter.
func NewOutputFormatter() *OutputFormatter {
	return &OutputFormatter{}
}

// WriteJSON writes data as indented JSON to the writer.
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Write renders response in the given format.
func (f *OutputFormatter) Write(response *domain.AnalyzeResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response.Report)
	case domain.OutputFormatText:
		return f.writeText(response.Report, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *OutputFormatter) writeText(report *domain.AnalysisReport, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== deadwood analysis ===\n\n")
	fmt.Fprintf(writer, "Root: %s\n", report.Root)
	fmt.Fprintf(writer, "Generated: %s\n", report.GeneratedAt)
	fmt.Fprintf(writer, "Version: %s\n\n", report.Version)

	fmt.Fprintf(writer, "Summary:\n")
	fmt.Fprintf(writer, "  Source files:       %d\n", report.TotalSourceFiles)
	fmt.Fprintf(writer, "  Asset files:        %d\n", report.TotalAssetFiles)
	fmt.Fprintf(writer, "  Reachable files:    %d\n", report.TotalReachableFiles)
	fmt.Fprintf(writer, "  Entry points:       %d\n", report.TotalEntries)
	fmt.Fprintf(writer, "  Unresolved imports: %d\n", report.UnresolvedLocalImports)
	fmt.Fprintf(writer, "  High confidence:    %t\n", report.HighConfidence)
	if report.TotalAssetFiles > 0 {
		fmt.Fprintf(writer, "  Asset usage:        %.1f%%\n", report.AssetUsageCoveragePercent)
	}
	fmt.Fprintln(writer)

	if len(report.Entries) > 0 {
		fmt.Fprintf(writer, "Entry points:\n")
		for _, e := range report.Entries {
			fmt.Fprintf(writer, "  - %s\n", e)
		}
		fmt.Fprintln(writer)
	}

	if report.LowConfidenceShown {
		writeStringSection(writer, "Unused files", report.UnusedFiles)
		writeStringSection(writer, "Unused assets", report.UnusedAssets)

		if len(report.UnusedExports) > 0 {
			fmt.Fprintf(writer, "Unused exports (%d):\n", len(report.UnusedExports))
			for _, e := range report.UnusedExports {
				fmt.Fprintf(writer, "  - %s: %s\n", e.File, e.Export)
			}
			fmt.Fprintln(writer)
		}
	}

	writeStringSection(writer, "Unused dependencies", report.UnusedDependencies)

	if len(report.Warnings) > 0 {
		fmt.Fprintf(writer, "Warnings:\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(writer, "  - %s\n", w)
		}
		fmt.Fprintln(writer)
	}

	if report.TotalSourceFiles > 0 &&
		len(report.UnusedFiles) == 0 && len(report.UnusedExports) == 0 &&
		len(report.UnusedAssets) == 0 && len(report.UnusedDependencies) == 0 &&
		report.LowConfidenceShown {
		fmt.Fprintf(writer, "No unused code found.\n")
	}

	return nil
}

func writeStringSection(writer io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(writer, "%s (%d):\n", title, len(items))
	for _, item := range items {
		fmt.Fprintf(writer, "  - %s\n", item)
	}
	fmt.Fprintln(writer)
}

// WriteDependencyGraph writes the dependency graph response in the
// specified format.
func (f *OutputFormatter) WriteDependencyGraph(response *domain.DependencyGraphResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatText:
		return f.writeDependencyGraphText(response, writer)
	case domain.OutputFormatDOT:
		return NewDOTFormatter(nil).WriteDependencyGraph(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *OutputFormatter) writeDependencyGraphText(response *domain.DependencyGraphResponse, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== deadwood dependency graph ===\n\n")
	fmt.Fprintf(writer, "Generated: %s\n", response.GeneratedAt)
	fmt.Fprintf(writer, "Version: %s\n\n", version.GetVersion())

	if response.Graph == nil {
		fmt.Fprintln(writer, "No graph data available.")
		return nil
	}

	graph := response.Graph
	fmt.Fprintln(writer, "Summary:")
	fmt.Fprintf(writer, "  Total modules:      %d\n", graph.NodeCount())
	fmt.Fprintf(writer, "  Total dependencies: %d\n", graph.EdgeCount())
	fmt.Fprintln(writer)

	entryPoints := 0
	leaves := 0
	for _, node := range graph.Nodes {
		if node.IsEntryPoint {
			entryPoints++
		}
		if node.IsLeaf {
			leaves++
		}
	}
	fmt.Fprintf(writer, "  Entry points: %d\n", entryPoints)
	fmt.Fprintf(writer, "  Leaf modules: %d\n", leaves)
	fmt.Fprintln(writer)

	if len(response.Warnings) > 0 {
		fmt.Fprintln(writer, "Warnings:")
		for _, w := range response.Warnings {
			fmt.Fprintf(writer, "  - %s\n", w)
		}
		fmt.Fprintln(writer)
	}

	return nil
}
