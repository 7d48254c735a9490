package pipeline

import (
	"context"
	"log/slog"

	"github.com/assetsweep/assetsweep/internal/model"
)

// Run is the mutable state threaded through the pipeline stages.
// One Run exists per invocation and is discarded after the report is
// emitted, so there is no shared state between runs.
type Run struct {
	// Report is the in-progress detection report. It accumulates
	// non-fatal errors during the run and becomes immutable once the
	// build step has executed.
	Report *model.DetectionReport

	// Inventory is the asset inventory produced by the inventory step.
	Inventory model.PathSet

	// Referenced is the reference set produced by the reference step.
	Referenced model.PathSet

	// UnusedPaths is the set difference produced by the diff step.
	UnusedPaths model.PathSet

	// Unused is the sized unused list produced by the size step.
	Unused []model.UnusedAsset

	// TotalBytes is the sum of unused asset sizes.
	TotalBytes int64
}

// Step is one stage of a detection run. Steps execute in sequence; a
// returned error is fatal and unwinds immediately, while non-fatal
// problems are recorded on the run's report and return nil.
type Step interface {
	// Do executes the step against the run state.
	Do(ctx context.Context, run *Run) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline executes an ordered list of steps over a single run.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps are added with AddSteps after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddSteps appends steps to the pipeline in execution order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

// Execute runs all steps in sequence against the run state.
// Cancellation is checked between steps; a cancelled context or a fatal
// step error aborts the run immediately, before any later stage.
func (p *Pipeline) Execute(ctx context.Context, run *Run) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("run cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step", "step", step.Name())

		if err := step.Do(ctx, run); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"error", err,
			)
			return err
		}
	}

	return nil
}
