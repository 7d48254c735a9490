package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/assetsweep/assetsweep/internal/config"
	"github.com/assetsweep/assetsweep/internal/database"
	"github.com/assetsweep/assetsweep/internal/detect"
	"github.com/assetsweep/assetsweep/internal/log"
	"github.com/assetsweep/assetsweep/internal/model"
	"github.com/assetsweep/assetsweep/internal/pipeline"
	"github.com/assetsweep/assetsweep/internal/report"
	"github.com/assetsweep/assetsweep/internal/scanner"
)

// NewDetectCmd creates the detect command.
func NewDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect [project-root]",
		Short: "Detect unused assets in a project",
		Long: `Detect scans a project for asset files that no source file references.

It walks the asset directory to build an inventory, scans source files
for string literals that mention asset paths or file names, and reports
every asset the sources never mention. Nothing is removed; use
'assetsweep clean' for that.

Examples:
  # Detect unused assets in the current directory
  assetsweep detect

  # Detect in a specific project with a custom asset directory
  assetsweep detect --dir static ~/src/myapp

  # Output JSON report to a file
  assetsweep detect --json --output report.json

  # Also group unused assets by identical content
  assetsweep detect --duplicates

  # Write a shell cleanup script alongside the report
  assetsweep detect --script cleanup.sh

Configuration file (.assetsweep) example:
  assetDir: static
  keepAssets:
    - static/logo-dark.png
  ignoreDirs:
    - third_party`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDetectCmd,
	}

	addDetectionFlags(cmd)

	return cmd
}

// addDetectionFlags registers the flags shared by detect and clean.
func addDetectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("dir", "d", config.DefaultAssetDir,
		"Asset directory relative to the project root")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .assetsweep in project root or home directory)")
	cmd.Flags().IntP("concurrency", "n", config.DefaultScanConcurrency,
		"Number of source files read in parallel")
	cmd.Flags().Bool("duplicates", false,
		"Group unused assets by identical content")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().StringP("script", "s", "",
		"Write a shell cleanup script to specified file path")
	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the history database")
}

// runDetectCmd executes the detect command.
func runDetectCmd(cmd *cobra.Command, args []string) error {
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

	if cfg.SaveHistory {
		if err := saveRunHistory(ctx, cfg, detectionReport, logger); err != nil {
			// History is a convenience, not the deliverable.
			logger.Warn("failed to save run history", "error", err)
		}
	}

	return nil
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	projectRoot := "."
	if len(args) > 0 {
		projectRoot = args[0]
	}
	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve project root: %w", err)
	}
	cfg.ProjectRoot = absRoot

	cfg.AssetDir, err = cmd.Flags().GetString("dir")
	if err != nil {
		return nil, err
	}

	cfg.ScanConcurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.Duplicates, err = cmd.Flags().GetBool("duplicates")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.ScriptFile, err = cmd.Flags().GetString("script")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory
	cfg.HistoryDir = config.XDGDataDir()

	cfg.Verbose = getVerboseFlag(cmd)

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file, it must exist.
	// An absent default config file is not an error.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath, cfg.ProjectRoot)
	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runDetection executes the detection pipeline and returns the report.
func runDetection(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*model.DetectionReport, error) {
	logger.Info("starting detection",
		"root", cfg.ProjectRoot,
		"dir", cfg.AssetDir,
		"duplicates", cfg.Duplicates,
	)
	startTime := time.Now()

	inv := scanner.NewInventoryScanner(
		cfg.ProjectRoot,
		cfg.AssetRoot(),
		cfg.AssetExtensions,
		scanner.WithInventoryLogger(logger),
	)

	refFactory := func(inventory model.PathSet) scanner.ReferenceScanner {
		return scanner.NewSourceScanner(
			cfg.ProjectRoot,
			cfg.AssetDir,
			cfg.SourceExtensions,
			cfg.IgnoreDirs,
			cfg.AssetExtensions,
			inventory,
			scanner.WithSourceLogger(logger),
			scanner.WithConcurrency(cfg.ScanConcurrency),
			scanner.WithExtraReferences(cfg.KeepAssets),
		)
	}

	sizer := detect.NewSizer(cfg.ProjectRoot, detect.WithSizerLogger(logger))

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(pipeline.DefaultSteps(inv, refFactory, sizer, cfg.ProjectRoot, cfg.Duplicates, logger)...)

	run := &pipeline.Run{
		Report: model.NewDetectionReport(cfg.ProjectRoot, cfg.AssetRoot()),
	}
	if err := p.Execute(ctx, run); err != nil {
		return nil, err
	}

	logger.Info("detection completed",
		"elapsed", time.Since(startTime).Round(time.Millisecond),
		"assets", run.Report.Summary.TotalAssets,
		"unused", run.Report.Summary.UnusedCount,
	)

	return run.Report, nil
}

// outputReport outputs the detection report in the requested format.
func outputReport(cfg *config.Config, detectionReport *model.DetectionReport) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports can reveal project layout; keep them owner-readable.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(detectionReport)
	return err
}

// writeScriptFile writes a shell cleanup script for the report.
func writeScriptFile(path string, detectionReport *model.DetectionReport) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create script directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0700) //nolint:gosec // Script must be executable
	if err != nil {
		return fmt.Errorf("failed to create script file: %w", err)
	}
	defer f.Close()

	if _, err := report.NewScriptWriter(f).Write(detectionReport); err != nil {
		return fmt.Errorf("failed to write cleanup script: %w", err)
	}

	return nil
}

// saveRunHistory records the run in the history database.
// If the database cannot be opened or written, the run itself is still
// considered successful; callers log and move on.
func saveRunHistory(ctx context.Context, cfg *config.Config, detectionReport *model.DetectionReport, logger *slog.Logger) error {
	db, err := database.Open(cfg.HistoryDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveReport(ctx, detectionReport)
	if err != nil {
		return err
	}

	logger.Info("run saved to history", "id", id, "dir", cfg.HistoryDir)
	return nil
}
