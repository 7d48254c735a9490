package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/assetsweep/assetsweep/internal/log"
	"github.com/assetsweep/assetsweep/internal/model"
	"github.com/assetsweep/assetsweep/internal/remover"
)

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [project-root]",
		Short: "Remove unused assets from a project",
		Long: `Clean runs detection and then removes the unused assets it found.

By default this is a dry run: the command prints what it would remove
and touches nothing. Pass --execute to actually delete files. Each
removal is independent; a file that cannot be deleted is reported and
skipped, and the remaining files are still removed.

Examples:
  # Show what would be removed (dry run, the default)
  assetsweep clean

  # Actually remove unused assets
  assetsweep clean --execute

  # Remove unused assets in a specific project
  assetsweep clean --execute ~/src/myapp`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCleanCmd,
	}

	addDetectionFlags(cmd)
	cmd.Flags().Bool("execute", false,
		"Actually delete files instead of the default dry run")

	return cmd
}

// runCleanCmd executes the clean command.
func runCleanCmd(cmd *cobra.Command, args []string) error {
	execute, err := cmd.Flags().GetBool("execute")
	if err != nil {
		return err
	}

	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.ProjectRoot, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	detectionReport, err := runDetection(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if err := outputReport(cfg, detectionReport); err != nil {
		return err
	}

	if cfg.ScriptFile != "" {
		if err := writeScriptFile(cfg.ScriptFile, detectionReport); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleanup script written to %s\n", cfg.ScriptFile)
	}

	if !detectionReport.HasUnused() {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to remove.")
		return nil
	}

	exec := remover.NewExecutor(cfg.ProjectRoot, remover.WithExecutorLogger(logger))
	outcome := exec.Execute(detectionReport, !execute)
	printOutcome(cmd, outcome)

	if cfg.SaveHistory && execute {
		if err := saveRunHistory(ctx, cfg, detectionReport, logger); err != nil {
			logger.Warn("failed to save run history", "error", err)
		}
	}

	return nil
}

// printOutcome prints the removal outcome summary.
func printOutcome(cmd *cobra.Command, outcome *model.RemovalOutcome) {
	out := cmd.OutOrStdout()

	if outcome.DryRun {
		fmt.Fprintf(out, "\nDry run: %d files (%s) would be removed.\n",
			outcome.RemovedCount, model.FormatBytes(outcome.RemovedBytes))
		fmt.Fprintln(out, "Pass --execute to delete them.")
		return
	}

	fmt.Fprintf(out, "\nRemoved %d files (%s).\n",
		outcome.RemovedCount, model.FormatBytes(outcome.RemovedBytes))

	if len(outcome.Errors) > 0 {
		fmt.Fprintf(out, "%d files could not be removed:\n", len(outcome.Errors))
		for _, msg := range outcome.Errors {
			fmt.Fprintf(out, "  * %s\n", msg)
		}
	}
}
