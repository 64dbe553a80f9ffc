package main

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/deadwood/internal/version"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version = version.Version
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "deadwood",
		Short: "deadwood - reports the dead wood of a JavaScript/TypeScript project",
		Long: `deadwood finds the dead wood of a JavaScript/TypeScript project:
source files unreachable from any entry, asset files nothing references,
declared dependencies never imported, and exports nothing consumes.`,
		Version: Version,
	}

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(depsCmd())
	rootCmd.AddCommand(cleanCmd())
	rootCmd.AddCommand(undoCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("deadwood version %s\n", version.GetVersion())
			}
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}
