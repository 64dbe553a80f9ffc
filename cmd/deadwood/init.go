package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/deadwood/internal/config"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a deadwood configuration file",
		Long: `Generate a documented .deadwood.yaml with sensible defaults.

By default, creates .deadwood.yaml in the current directory with full
documentation. Use --interactive for a guided setup wizard.

Examples:
  # Create .deadwood.yaml in current directory
  deadwood init

  # Custom output path
  deadwood init --config custom.yaml

  # Overwrite existing file
  deadwood init --force

  # Generate smaller config with essential options only
  deadwood init --minimal

  # Interactive setup wizard
  deadwood init --interactive
  deadwood init -i`,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", ".deadwood.yaml", "Output path for the config file")
	cmd.Flags().BoolP("force", "f", false, "Overwrite existing config file")
	cmd.Flags().Bool("minimal", false, "Generate minimal config with essential options only")
	cmd.Flags().BoolP("interactive", "i", false, "Interactive setup wizard")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	minimal, _ := cmd.Flags().GetBool("minimal")
	interactive, _ := cmd.Flags().GetBool("interactive")

	projectType := config.ProjectTypeGeneric
	strictness := config.StrictnessStandard

	if interactive {
		var err error
		var interactiveConfigPath string
		projectType, strictness, interactiveConfigPath, err = runInteractiveSetup(configPath)
		if err != nil {
			return err
		}
		configPath = interactiveConfigPath
	}

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	var content string
	if minimal {
		content = config.GetMinimalConfigTemplate()
	} else {
		content = config.GetFullConfigTemplate(projectType, strictness)
	}

	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	fmt.Printf("Created %s\n", displayPath)
	fmt.Println("\nRun 'deadwood analyze .' to analyze your project.")

	return nil
}
