package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ludo-technologies/deadwood/domain"
	"github.com/ludo-technologies/deadwood/service"
	"github.com/spf13/cobra"
)

var (
	depsOutputFormat    string
	depsOutputPath      string
	depsDotFormat       bool
	depsIncludeExternal bool
	depsNoLegend        bool
	depsRankDir         string
)

func depsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps [path...]",
		Short: "Analyze and visualize module dependencies",
		Long: `Analyze JavaScript/TypeScript module dependencies and generate visualizations.

Supports multiple output formats:
  - text: Human-readable text summary
  - json: JSON format for programmatic consumption
  - dot:  Graphviz DOT format for visualization

Examples:
  # Generate DOT and render with Graphviz
  deadwood deps --dot src/ > deps.dot
  dot -Tpng deps.dot -o deps.png

  # Pipe directly to Graphviz
  deadwood deps --dot src/ | dot -Tsvg -o deps.svg

  # JSON for programmatic use
  deadwood deps --format json src/

  # Save to file
  deadwood deps --dot -o deps.dot src/`,
		RunE: runDeps,
	}

	cmd.Flags().StringVarP(&depsOutputFormat, "format", "f", "text",
		"Output format: text, json, dot")
	cmd.Flags().StringVarP(&depsOutputPath, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().BoolVar(&depsDotFormat, "dot", false,
		"Shorthand for --format dot")
	cmd.Flags().BoolVar(&depsIncludeExternal, "include-external", false,
		"Include node_modules dependencies as external nodes")
	cmd.Flags().BoolVar(&depsNoLegend, "no-legend", false,
		"Disable legend in DOT output")
	cmd.Flags().StringVar(&depsRankDir, "rank-dir", "TB",
		"Layout direction for DOT: TB, LR, BT, RL")

	return cmd
}

func runDeps(cmd *cobra.Command, args []string) (err error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	format := domain.OutputFormatText
	switch {
	case depsDotFormat || depsOutputFormat == "dot":
		format = domain.OutputFormatDOT
	case depsOutputFormat == "json":
		format = domain.OutputFormatJSON
	}

	if format != domain.OutputFormatJSON && format != domain.OutputFormatDOT {
		fmt.Printf("Analyzing %s...\n", root)
	}

	svc := service.NewDependencyGraphService()
	req := &domain.DependencyGraphRequest{
		Paths:           []string{root},
		OutputFormat:    format,
		IncludeExternal: domain.BoolPtr(depsIncludeExternal),
	}

	ctx := context.Background()
	startTime := time.Now()
	response, analyzeErr := svc.Analyze(ctx, req)
	if analyzeErr != nil {
		return fmt.Errorf("analysis failed: %w", analyzeErr)
	}
	duration := time.Since(startTime)

	if format == domain.OutputFormatText {
		for _, w := range response.Warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
		}
	}

	var writer *os.File
	if depsOutputPath != "" {
		f, createErr := os.Create(depsOutputPath)
		if createErr != nil {
			return fmt.Errorf("failed to create output file: %w", createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("failed to close output file: %w", closeErr)
			}
		}()
		writer = f
	} else {
		writer = os.Stdout
	}

	formatter := service.NewOutputFormatter()
	switch format {
	case domain.OutputFormatDOT:
		dotConfig := service.DefaultDOTFormatterConfig()
		dotConfig.ShowLegend = !depsNoLegend
		dotConfig.RankDir = depsRankDir

		dotFormatter := service.NewDOTFormatter(dotConfig)
		if writeErr := dotFormatter.WriteDependencyGraph(response, writer); writeErr != nil {
			return fmt.Errorf("failed to write DOT output: %w", writeErr)
		}

	case domain.OutputFormatJSON:
		if writeErr := formatter.WriteDependencyGraph(response, format, writer); writeErr != nil {
			return fmt.Errorf("failed to write JSON output: %w", writeErr)
		}

	default:
		if writeErr := formatter.WriteDependencyGraph(response, format, writer); writeErr != nil {
			return fmt.Errorf("failed to write output: %w", writeErr)
		}
		fmt.Fprintf(writer, "\nAnalysis completed in %dms\n", duration.Milliseconds())
	}

	if depsOutputPath != "" && format != domain.OutputFormatJSON && format != domain.OutputFormatDOT {
		absPath, _ := filepath.Abs(depsOutputPath)
		fmt.Printf("Output saved to: %s\n", absPath)
	}

	return nil
}
