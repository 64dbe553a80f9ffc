package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ludo-technologies/deadwood/app"
	"github.com/ludo-technologies/deadwood/domain"
	"github.com/ludo-technologies/deadwood/internal/logging"
	"github.com/ludo-technologies/deadwood/service"
	"github.com/spf13/cobra"
)

var (
	analyzeEntryHints           []string
	analyzeIncludeNonProdDeps   bool
	analyzeIncludeLowConfidence bool
	analyzeAssetRoots           []string
	analyzeOutputFormat         string
	analyzeJSONOutput           bool
	analyzeOutputPath           string
	analyzeConfigPath           string
	analyzeTUI                  bool
	analyzeVerbose              bool
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [path...]",
		Short: "Find unreachable files, unused assets, dependencies, and exports",
		Long: `Analyze a JavaScript/TypeScript project and report its dead wood:
source files unreachable from any entry, asset files nothing references,
declared dependencies never imported, and exports nothing consumes.

Examples:
  deadwood analyze .
  deadwood analyze --entry src/main.ts src/
  deadwood analyze --json src/ > report.json
  deadwood analyze --tui .`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringSliceVar(&analyzeEntryHints, "entry", nil,
		"Additional entry file hints (repeatable)")
	cmd.Flags().BoolVar(&analyzeIncludeNonProdDeps, "include-non-prod-deps", false,
		"Also report unused devDependencies/peerDependencies/optionalDependencies")
	cmd.Flags().BoolVar(&analyzeIncludeLowConfidence, "include-low-confidence", false,
		"Report unused files/exports/assets even when graph confidence is low")
	cmd.Flags().StringSliceVar(&analyzeAssetRoots, "asset-roots", nil,
		"Restrict asset discovery to these project-relative roots (comma-separated)")
	cmd.Flags().StringVarP(&analyzeOutputFormat, "format", "f", "text",
		"Output format: text, json")
	cmd.Flags().BoolVar(&analyzeJSONOutput, "json", false,
		"Shorthand for --format json")
	cmd.Flags().StringVarP(&analyzeOutputPath, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().StringVarP(&analyzeConfigPath, "config", "c", "",
		"Path to deadwood's own config file (default: discover .deadwood.yaml)")
	cmd.Flags().BoolVar(&analyzeTUI, "tui", false,
		"Render an interactive dashboard instead of a static report")
	cmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false,
		"Show detailed progress and warnings")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) (err error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	format := domain.OutputFormatText
	if analyzeJSONOutput || analyzeOutputFormat == "json" {
		format = domain.OutputFormatJSON
	}

	loader := service.NewConfigurationLoader()
	req, loadErr := loader.LoadConfig(analyzeConfigPath, root)
	if loadErr != nil {
		return fmt.Errorf("failed to load configuration: %w", loadErr)
	}

	override := &domain.AnalyzeRequest{
		Root:                 root,
		EntryHints:           analyzeEntryHints,
		IncludeNonProdDeps:   analyzeIncludeNonProdDeps,
		IncludeLowConfidence: analyzeIncludeLowConfidence,
		AssetRoots:           analyzeAssetRoots,
	}
	if cmd.Flags().Changed("format") || analyzeJSONOutput {
		override.OutputFormat = format
	}

	req = loader.MergeConfig(req, override)
	if err := loader.ValidateConfig(req); err != nil {
		return err
	}

	log := logging.NewFromVerbose(analyzeVerbose)
	log.Debug("resolved config: entry_hints=%v include_low_confidence=%v asset_roots=%v", req.EntryHints, req.IncludeLowConfidence, req.AssetRoots)

	if req.OutputFormat != domain.OutputFormatJSON && !analyzeTUI {
		fmt.Printf("Analyzing %s...\n", req.Root)
	}

	pm := service.NewProgressManager(req.OutputFormat != domain.OutputFormatJSON && !analyzeTUI)
	defer pm.Close()

	uc := app.NewAnalyzeUseCase(pm)
	startTime := time.Now()

	ctx := context.Background()
	resp, execErr := uc.Execute(ctx, req)
	if execErr != nil {
		return fmt.Errorf("analysis failed: %w", execErr)
	}
	duration := time.Since(startTime)
	log.Debug("analysis finished in %dms", duration.Milliseconds())

	if req.OutputFormat != domain.OutputFormatJSON {
		for _, w := range resp.Warnings {
			if strings.TrimSpace(w) != "" {
				log.Warn("%s", w)
			}
		}
	}

	if analyzeTUI {
		service.NewDashboard().Render(resp.Report)
		return nil
	}

	var writer *os.File
	if analyzeOutputPath != "" {
		f, createErr := os.Create(analyzeOutputPath)
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
	if writeErr := formatter.Write(resp, req.OutputFormat, writer); writeErr != nil {
		return fmt.Errorf("failed to write output: %w", writeErr)
	}

	if req.OutputFormat == domain.OutputFormatText {
		fmt.Fprintf(writer, "Analysis completed in %dms\n", duration.Milliseconds())
	}

	if analyzeOutputPath != "" {
		absPath, _ := filepath.Abs(analyzeOutputPath)
		fmt.Printf("Output saved to: %s\n", absPath)
	}

	return nil
}
