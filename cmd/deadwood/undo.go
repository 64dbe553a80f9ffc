package main

import (
	"fmt"
	"path/filepath"

	"github.com/ludo-technologies/deadwood/internal/trash"
	"github.com/spf13/cobra"
)

var undoRoot string

func undoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo [session]",
		Short: "Restore a previous 'deadwood clean' session",
		Long: `Restore every file moved to trash by a 'deadwood clean' session back
to its original location. Defaults to the most recent session.

Examples:
  deadwood undo
  deadwood undo 20260115-093000`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUndo,
	}

	cmd.Flags().StringVar(&undoRoot, "root", ".", "Project root whose .deadwood_trash to restore from")

	return cmd
}

func runUndo(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(undoRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve root: %w", err)
	}

	session := ""
	if len(args) > 0 {
		session = args[0]
	} else {
		session, err = trash.LatestSession(root)
		if err != nil {
			return fmt.Errorf("failed to find a trash session: %w", err)
		}
		if session == "" {
			fmt.Println("No trash sessions found.")
			return nil
		}
	}

	manifest, err := trash.Undo(root, session)
	if err != nil {
		return fmt.Errorf("failed to undo session %s: %w", session, err)
	}

	fmt.Printf("Restored %d file(s) from session %s\n", len(manifest.Entries), session)
	return nil
}
