package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/assetsweep/assetsweep/internal/detect"
	"github.com/assetsweep/assetsweep/internal/model"
	"github.com/assetsweep/assetsweep/internal/scanner"
)

// InventoryStep scans the asset directory and records the inventory on
// the run. A missing asset root fails the step, and therefore the run.
type InventoryStep struct {
	// Scanner performs the recursive asset walk.
	Scanner *scanner.InventoryScanner
}

// Name returns the step name.
func (s *InventoryStep) Name() string { return "inventory" }

// Do executes the inventory scan.
func (s *InventoryStep) Do(_ context.Context, run *Run) error {
	inventory, scanErrors, err := s.Scanner.Scan()
	if err != nil {
		return err
	}

	for _, msg := range scanErrors {
		run.Report.AddError(msg)
	}
	run.Inventory = inventory
	return nil
}

// ReferenceStep obtains the reference set from the reference scanner.
// The scanner is built lazily via a factory because it resolves literals
// against the inventory, which only exists after the inventory step.
type ReferenceStep struct {
	// Factory builds the reference scanner for the run's inventory.
	Factory func(inventory model.PathSet) scanner.ReferenceScanner
}

// Name returns the step name.
func (s *ReferenceStep) Name() string { return "references" }

// Do obtains the reference set. A scanner failure is fatal: a correct
// diff is impossible without a reference set.
func (s *ReferenceStep) Do(ctx context.Context, run *Run) error {
	referenced, err := s.Factory(run.Inventory).ScanReferences(ctx)
	if err != nil {
		return fmt.Errorf("reference scanner failed: %w", err)
	}

	run.Referenced = referenced
	return nil
}

// DiffStep computes the unused set from inventory and references.
type DiffStep struct{}

// Name returns the step name.
func (s *DiffStep) Name() string { return "diff" }

// Do executes the set subtraction.
func (s *DiffStep) Do(_ context.Context, run *Run) error {
	run.UnusedPaths = detect.Diff(run.Inventory, run.Referenced)
	return nil
}

// SizeStep stats the unused assets and records sizes on the run.
type SizeStep struct {
	// Sizer resolves sizes relative to the project root.
	Sizer *detect.Sizer
}

// Name returns the step name.
func (s *SizeStep) Name() string { return "size" }

// Do executes the size accounting. Stat failures are non-fatal.
func (s *SizeStep) Do(_ context.Context, run *Run) error {
	unused, total, sizeErrors := s.Sizer.Size(run.UnusedPaths)
	for _, msg := range sizeErrors {
		run.Report.AddError(msg)
	}

	run.Unused = unused
	run.TotalBytes = total
	return nil
}

// DuplicateStep groups unused assets by content hash.
// It only runs when duplicate detection was requested.
type DuplicateStep struct {
	// ProjectRoot is the absolute root asset paths are relative to.
	ProjectRoot string

	// Logger for structured logging.
	Logger *slog.Logger
}

// Name returns the step name.
func (s *DuplicateStep) Name() string { return "duplicates" }

// Do executes duplicate grouping. Hash failures are non-fatal.
func (s *DuplicateStep) Do(_ context.Context, run *Run) error {
	groups, hashErrors := detect.FindDuplicates(s.ProjectRoot, run.Unused, s.Logger)
	for _, msg := range hashErrors {
		run.Report.AddError(msg)
	}

	run.Report.Duplicates = groups
	return nil
}

// BuildStep assembles the final report from the run state.
// It must be the last step; afterward the report is immutable.
type BuildStep struct {
	// Categorize maps an asset path to its category for the summary
	// breakdown. May be nil.
	Categorize func(string) string
}

// Name returns the step name.
func (s *BuildStep) Name() string { return "build" }

// Do executes report assembly.
func (s *BuildStep) Do(_ context.Context, run *Run) error {
	detect.BuildReport(run.Report, run.Inventory, run.Referenced, run.Unused, run.TotalBytes, s.Categorize)
	return nil
}

// DefaultSteps returns the detection stages in their fixed order.
// The duplicate step is included only when requested.
func DefaultSteps(inv *scanner.InventoryScanner, refFactory func(model.PathSet) scanner.ReferenceScanner, sizer *detect.Sizer, projectRoot string, duplicates bool, logger *slog.Logger) []Step {
	steps := []Step{
		&InventoryStep{Scanner: inv},
		&ReferenceStep{Factory: refFactory},
		&DiffStep{},
		&SizeStep{Sizer: sizer},
	}
	if duplicates {
		steps = append(steps, &DuplicateStep{ProjectRoot: projectRoot, Logger: logger})
	}
	return append(steps, &BuildStep{Categorize: inv.Category})
}
