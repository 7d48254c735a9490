// Package main provides the entry point for the assetsweep CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for assetsweep.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assetsweep",
		Short: "Find and remove unused assets in app projects",
		Long: `assetsweep finds asset files (images, fonts, audio, video) that no
source file in a project references, and removes them safely on request.

It scans the asset directory for files with known asset extensions,
scans source files for string literals that reference those assets, and
reports the difference. Removal is always a separate, explicit step.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewDetectCmd())
	cmd.AddCommand(NewCleanCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInspectCmd())
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
