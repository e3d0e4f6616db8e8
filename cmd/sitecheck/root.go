// Package main provides the entry point for the sitecheck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for sitecheck.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitecheck",
		Short: "Validator for hand-written static HTML sites",
		Long: `Sitecheck validates a static site directory against a battery of checks:
page existence, document structure, navigation consistency, internal link
resolution, semantic HTML, the contact form contract, accessibility basics,
the shared stylesheet, and image assets.

Checks are configured through a .sitecheck rules file in the site root,
with sensible defaults for the conventional three-page layout
(index.html, about.html, contact.html).`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
