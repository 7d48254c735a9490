package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/assetsweep/assetsweep/internal/config"
	"github.com/assetsweep/assetsweep/internal/database"
	"github.com/assetsweep/assetsweep/internal/model"
)

// Constants for trend direction in comparison output.
const (
	trendGrew      = "grew"
	trendShrank    = "shrank"
	trendUnchanged = "unchanged"
)

// NewCompareCmd creates the compare command.
// This command compares detection runs stored in the history database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [project-root]",
		Short: "Compare detection runs from the history database",
		Long: `Compare shows how a project's unused assets changed between runs.

This command retrieves past detection reports from the history database
and shows:
- Assets that became unused since the previous run
- Assets that were reclaimed (removed or referenced again)
- The change in reclaimable size

The comparison requires at least two saved runs for the project. The
detect command saves runs automatically unless --no-history is given.

Examples:
  # Compare the latest two runs for the current project
  assetsweep compare

  # List all saved runs for a project
  assetsweep compare --list ~/src/myapp

  # Compare with a specific run by ID
  assetsweep compare --with-run-id 5

  # Output comparison in JSON format
  assetsweep compare --json

  # List all projects in the history database
  assetsweep compare --list-projects`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	cmd.Flags().BoolP("list", "l", false,
		"List saved runs for the project")
	cmd.Flags().BoolP("list-projects", "L", false,
		"List all projects in the history database")
	cmd.Flags().Int64P("with-run-id", "i", 0,
		"Compare with a specific run by ID (use --list to see available IDs)")
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	listProjects, err := cmd.Flags().GetBool("list-projects")
	if err != nil {
		return err
	}

	projectRoot := "."
	if len(args) > 0 {
		projectRoot = args[0]
	}
	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return fmt.Errorf("cannot resolve project root: %w", err)
	}

	// Comparing requires existing history; never create the database here.
	db, err := database.Open(config.XDGDataDir(), database.Options{
		CreateIfNotExists: false,
		EnableWAL:         true,
	})
	if err != nil {
		return fmt.Errorf("no run history available: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listProjects {
		return listHistoryProjects(ctx, cmd, db)
	}

	listRuns, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listRuns {
		return listRunHistory(ctx, cmd, db, absRoot)
	}

	withRunID, err := cmd.Flags().GetInt64("with-run-id")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	return runComparison(ctx, cmd, db, absRoot, withRunID, jsonOutput)
}

// listHistoryProjects lists all projects that have saved runs.
func listHistoryProjects(ctx context.Context, cmd *cobra.Command, db *database.HistoryDB) error {
	projects, err := db.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(projects) == 0 {
		fmt.Fprintln(out, "No saved runs found in the history database.")
		fmt.Fprintln(out, "\nUse 'assetsweep detect' to scan a project.")
		return nil
	}

	fmt.Fprintf(out, "Projects with saved runs (%d):\n\n", len(projects))
	for _, project := range projects {
		fmt.Fprintf(out, "  %s\n", project)
	}
	fmt.Fprintln(out, "\nUse 'assetsweep compare --list <project-root>' to see runs for a project.")

	return nil
}

// listRunHistory lists all saved runs for a project.
func listRunHistory(ctx context.Context, cmd *cobra.Command, db *database.HistoryDB, projectRoot string) error {
	runs, err := db.ListRuns(ctx, projectRoot)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintf(out, "No saved runs found for %s\n", projectRoot)
		fmt.Fprintln(out, "\nUse 'assetsweep detect' to scan this project.")
		return nil
	}

	fmt.Fprintf(out, "Run history for %s (%d runs):\n\n", projectRoot, len(runs))
	fmt.Fprintf(out, "  %-6s  %-20s  %-8s  %-8s  %-10s  %s\n",
		"ID", "Date", "Assets", "Unused", "Size", "Errors")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 66))

	for _, meta := range runs {
		fmt.Fprintf(out, "  %-6d  %-20s  %-8d  %-8d  %-10s  %d\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.TotalAssets,
			meta.UnusedCount,
			model.FormatBytes(meta.UnusedBytes),
			meta.ErrorCount,
		)
	}

	fmt.Fprintln(out, "\nUse 'assetsweep compare' to compare the latest two runs.")
	fmt.Fprintln(out, "Use 'assetsweep compare --with-run-id <id>' to compare with a specific run.")

	return nil
}

// ComparisonResult holds the result of comparing two detection runs.
type ComparisonResult struct {
	// ProjectRoot is the compared project.
	ProjectRoot string `json:"project_root"`

	// PreviousRun contains summary data from the earlier run.
	PreviousRun RunSummary `json:"previous_run"`

	// CurrentRun contains summary data from the later run.
	CurrentRun RunSummary `json:"current_run"`

	// NewlyUnused lists assets unused now but not in the previous run.
	NewlyUnused []string `json:"newly_unused,omitempty"`

	// Reclaimed lists assets unused previously but not anymore.
	Reclaimed []string `json:"reclaimed,omitempty"`

	// UnchangedCount is the number of assets unused in both runs.
	UnchangedCount int `json:"unchanged_count"`

	// Trend is "grew", "shrank", or "unchanged" based on reclaimable size.
	Trend string `json:"trend"`

	// BytesDelta is the change in reclaimable bytes.
	BytesDelta int64 `json:"bytes_delta"`
}

// RunSummary contains summary data about one run for comparison display.
type RunSummary struct {
	// GeneratedAt is when the run happened.
	GeneratedAt time.Time `json:"generated_at"`

	// TotalAssets is the inventory size.
	TotalAssets int `json:"total_assets"`

	// UnusedCount is the number of unused assets.
	UnusedCount int `json:"unused_count"`

	// UnusedBytes is the reclaimable size.
	UnusedBytes int64 `json:"unused_bytes"`
}

// runComparison compares the latest run against a previous one.
func runComparison(ctx context.Context, cmd *cobra.Command, db *database.HistoryDB, projectRoot string, withRunID int64, jsonOutput bool) error {
	runs, err := db.ListRuns(ctx, projectRoot)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		return fmt.Errorf("no saved runs found for %s", projectRoot)
	}
	if len(runs) < 2 && withRunID == 0 {
		return fmt.Errorf("at least 2 runs are required for comparison (found %d)", len(runs))
	}

	current, err := db.GetReportByID(ctx, runs[0].ID)
	if err != nil {
		return fmt.Errorf("failed to load latest run: %w", err)
	}
	if current == nil {
		return fmt.Errorf("latest run %d not found", runs[0].ID)
	}

	var previous *model.DetectionReport
	if withRunID > 0 {
		if withRunID == runs[0].ID {
			return fmt.Errorf("run %d is already the latest run", withRunID)
		}
		previous, err = db.GetReportByID(ctx, withRunID)
		if err != nil {
			return fmt.Errorf("failed to load run %d: %w", withRunID, err)
		}
		if previous == nil {
			return fmt.Errorf("run with ID %d not found", withRunID)
		}
		if previous.ProjectRoot != projectRoot {
			return fmt.Errorf("run %d belongs to %s, not %s", withRunID, previous.ProjectRoot, projectRoot)
		}
	} else {
		previous, err = db.GetReportByID(ctx, runs[1].ID)
		if err != nil {
			return fmt.Errorf("failed to load previous run: %w", err)
		}
		if previous == nil {
			return fmt.Errorf("previous run %d not found", runs[1].ID)
		}
	}

	result := compareRuns(previous, current)

	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}
	return outputComparisonText(cmd, result)
}

// compareRuns diffs the unused lists of two detection reports.
func compareRuns(previous, current *model.DetectionReport) *ComparisonResult {
	result := &ComparisonResult{
		ProjectRoot: current.ProjectRoot,
		PreviousRun: RunSummary{
			GeneratedAt: previous.GeneratedAt,
			TotalAssets: previous.Summary.TotalAssets,
			UnusedCount: previous.Summary.UnusedCount,
			UnusedBytes: previous.Summary.UnusedBytes,
		},
		CurrentRun: RunSummary{
			GeneratedAt: current.GeneratedAt,
			TotalAssets: current.Summary.TotalAssets,
			UnusedCount: current.Summary.UnusedCount,
			UnusedBytes: current.Summary.UnusedBytes,
		},
	}

	previousUnused := make(map[string]struct{}, len(previous.Unused))
	for _, asset := range previous.Unused {
		previousUnused[asset.Path] = struct{}{}
	}
	currentUnused := make(map[string]struct{}, len(current.Unused))
	for _, asset := range current.Unused {
		currentUnused[asset.Path] = struct{}{}
	}

	for path := range currentUnused {
		if _, ok := previousUnused[path]; !ok {
			result.NewlyUnused = append(result.NewlyUnused, path)
		} else {
			result.UnchangedCount++
		}
	}
	for path := range previousUnused {
		if _, ok := currentUnused[path]; !ok {
			result.Reclaimed = append(result.Reclaimed, path)
		}
	}
	sort.Strings(result.NewlyUnused)
	sort.Strings(result.Reclaimed)

	result.BytesDelta = current.Summary.UnusedBytes - previous.Summary.UnusedBytes
	switch {
	case result.BytesDelta > 0:
		result.Trend = trendGrew
	case result.BytesDelta < 0:
		result.Trend = trendShrank
	default:
		result.Trend = trendUnchanged
	}

	return result
}

// outputComparisonText outputs the comparison in human-readable form.
func outputComparisonText(cmd *cobra.Command, result *ComparisonResult) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Run Comparison: %s\n", result.ProjectRoot)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	fmt.Fprintf(out, "\nReclaimable size: %s\n", formatTrend(result.Trend, result.BytesDelta))

	fmt.Fprintf(out, "\nPrevious run: %s\n", result.PreviousRun.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Current run:  %s\n", result.CurrentRun.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintln(out, "\nSummary:")
	fmt.Fprintf(out, "  %-14s  %-10s  %-10s  %-10s\n", "Metric", "Previous", "Current", "Change")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 50))
	fmt.Fprintf(out, "  %-14s  %-10d  %-10d  %-10s\n", "Assets",
		result.PreviousRun.TotalAssets, result.CurrentRun.TotalAssets,
		formatDelta(result.CurrentRun.TotalAssets-result.PreviousRun.TotalAssets))
	fmt.Fprintf(out, "  %-14s  %-10d  %-10d  %-10s\n", "Unused",
		result.PreviousRun.UnusedCount, result.CurrentRun.UnusedCount,
		formatDelta(result.CurrentRun.UnusedCount-result.PreviousRun.UnusedCount))
	fmt.Fprintf(out, "  %-14s  %-10s  %-10s  %-10s\n", "Unused size",
		model.FormatBytes(result.PreviousRun.UnusedBytes),
		model.FormatBytes(result.CurrentRun.UnusedBytes),
		formatBytesDelta(result.BytesDelta))

	if len(result.NewlyUnused) > 0 {
		fmt.Fprintf(out, "\nNewly unused (%d):\n", len(result.NewlyUnused))
		for _, path := range result.NewlyUnused {
			fmt.Fprintf(out, "  [+] %s\n", path)
		}
	}

	if len(result.Reclaimed) > 0 {
		fmt.Fprintf(out, "\nReclaimed (%d):\n", len(result.Reclaimed))
		for _, path := range result.Reclaimed {
			fmt.Fprintf(out, "  [-] %s\n", path)
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Fprintf(out, "\nUnchanged: %d assets\n", result.UnchangedCount)
	}

	return nil
}

// formatTrend formats the trend direction for display.
func formatTrend(trend string, bytesDelta int64) string {
	switch trend {
	case trendGrew:
		return fmt.Sprintf("GREW (+%s reclaimable)", model.FormatBytes(bytesDelta))
	case trendShrank:
		return fmt.Sprintf("SHRANK (-%s reclaimable)", model.FormatBytes(-bytesDelta))
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}

// formatBytesDelta formats a byte delta with sign for display.
func formatBytesDelta(delta int64) string {
	if delta > 0 {
		return "+" + model.FormatBytes(delta)
	} else if delta < 0 {
		return "-" + model.FormatBytes(-delta)
	}
	return "0 B"
}
