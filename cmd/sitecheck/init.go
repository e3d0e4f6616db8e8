package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed templates/sitecheck.yaml
var rulesTemplate embed.FS

// rulesFileName is the default rules file name.
const rulesFileName = ".sitecheck"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new sitecheck rules file",
		Long: `Initialize creates a new .sitecheck rules file in the current directory.

The generated file includes:
- The default page set and stylesheet path
- Navigation and contact form expectations
- Documentation for all available options

Examples:
  # Create .sitecheck in current directory
  sitecheck init

  # Create rules file at a specific path
  sitecheck init -o myrules.yaml

  # Force overwrite existing file
  sitecheck init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", rulesFileName,
		"Output file path for the rules file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing rules file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("rules file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := rulesTemplate.ReadFile("templates/sitecheck.yaml")
	if err != nil {
		return fmt.Errorf("failed to read rules template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write rules file
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write rules file: %w", err)
	}

	fmt.Printf("Created rules file: %s\n", outputPath)
	fmt.Println("\nEdit this file to configure site-specific expectations such as:")
	fmt.Println("  - The page set and shared stylesheet path")
	fmt.Println("  - Navigation active-class behavior")
	fmt.Println("  - Contact form fields and labels")

	return nil
}
