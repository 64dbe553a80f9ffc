package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ludo-technologies/deadwood/app"
	"github.com/ludo-technologies/deadwood/domain"
	"github.com/ludo-technologies/deadwood/internal/trash"
	"github.com/ludo-technologies/deadwood/service"
	"github.com/spf13/cobra"
)

var (
	cleanYes           bool
	cleanIncludeAssets bool
	cleanEntryHints    []string
)

func cleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [path]",
		Short: "Move unused files to the trash, with undo support",
		Long: `Analyze a project, then interactively select unused source files
and assets to move into a timestamped session under .deadwood_trash.
Nothing is deleted outright: run 'deadwood undo' to restore a session.

Examples:
  deadwood clean .
  deadwood clean --yes src/
  deadwood clean --include-assets .`,
		RunE: runClean,
	}

	cmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "Move every unused finding without prompting")
	cmd.Flags().BoolVar(&cleanIncludeAssets, "include-assets", true, "Include unused assets among the candidates")
	cmd.Flags().StringSliceVar(&cleanEntryHints, "entry", nil, "Additional entry file hints (repeatable)")

	return cmd
}

func runClean(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	req := domain.DefaultAnalyzeRequest()
	req.Root = root
	req.EntryHints = cleanEntryHints
	req.IncludeLowConfidence = true

	uc := app.NewAnalyzeUseCase(nil)
	resp, err := uc.Execute(context.Background(), req)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	report := resp.Report

	if !report.HighConfidence {
		fmt.Println("Warning: dependency graph confidence is low; candidates may include false positives.")
	}

	var candidates []string
	candidates = append(candidates, report.UnusedFiles...)
	if cleanIncludeAssets {
		candidates = append(candidates, report.UnusedAssets...)
	}

	if len(candidates) == 0 {
		fmt.Println("Nothing to clean.")
		return nil
	}

	var selected []string
	if cleanYes {
		selected = candidates
	} else {
		selected, err = service.NewDashboard().SelectFindings(candidates)
		if err != nil {
			return err
		}
		if len(selected) == 0 {
			fmt.Println("Nothing selected.")
			return nil
		}

		ok, err := service.Confirm(fmt.Sprintf("Move %d file(s) to trash?", len(selected)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	absRoot, err := filepath.Abs(report.Root)
	if err != nil {
		return domain.NewAnalysisError("failed to resolve project root", err)
	}

	absPaths := make([]string, 0, len(selected))
	for _, rel := range selected {
		absPaths = append(absPaths, filepath.Join(absRoot, filepath.FromSlash(rel)))
	}

	session, err := trash.Move(absRoot, absPaths)
	if err != nil {
		return fmt.Errorf("failed to move files to trash: %w", err)
	}

	fmt.Printf("Moved %d file(s) to %s (session %s)\n", len(absPaths), trash.Dir(absRoot), session)
	fmt.Println("Run 'deadwood undo' to restore this session.")

	return nil
}
