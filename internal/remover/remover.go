package remover

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/assetsweep/assetsweep/internal/model"
)

// Executor removes the unused assets listed in a detection report.
// It only ever consumes a fully built report: detection always completes
// before any destructive action is attempted.
type Executor struct {
	// projectRoot is the absolute root asset paths are relative to.
	projectRoot string

	// logger for structured logging.
	logger *slog.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithExecutorLogger sets a custom logger for the executor.
func WithExecutorLogger(logger *slog.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = logger
	}
}

// NewExecutor creates an Executor anchored at the given project root.
func NewExecutor(projectRoot string, opts ...ExecutorOption) *Executor {
	e := &Executor{
		projectRoot: projectRoot,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Execute iterates the report's unused list and deletes each file, or
// only logs the would-be action when dryRun is true.
//
// Each deletion is isolated: a failure is recorded in the outcome and
// the remaining assets are still attempted. An empty unused list is a
// no-op success. In dry-run mode the filesystem is never touched.
func (e *Executor) Execute(report *model.DetectionReport, dryRun bool) *model.RemovalOutcome {
	outcome := &model.RemovalOutcome{DryRun: dryRun}

	for _, asset := range report.Unused {
		abs := filepath.Join(e.projectRoot, filepath.FromSlash(asset.Path))

		if dryRun {
			e.logger.Info("would remove", "path", abs, "size", asset.SizeHuman)
			outcome.RemovedCount++
			outcome.RemovedBytes += asset.SizeBytes
			continue
		}

		if err := os.Remove(abs); err != nil {
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("cannot remove %s: %v", asset.Path, err))
			e.logger.Warn("failed to remove asset", "path", abs, "error", err)
			continue
		}

		e.logger.Info("removed", "path", abs, "size", asset.SizeHuman)
		outcome.RemovedCount++
		outcome.RemovedBytes += asset.SizeBytes
	}

	return outcome
}
