package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/compcheck/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the check
// populated by the previous steps.
type Step interface {
	// Do executes the pipeline step.
	// Returning an error stops the pipeline; the error is returned to the
	// caller unchanged.
	Do(ctx context.Context, check *model.Check) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
// A Pipeline holds no per-check state and may run concurrent checks once
// its steps have been added.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
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

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
// Cancellation is checked before each step; a step is expected to honor
// ctx itself while it runs. The first step error is returned.
func (p *Pipeline) Execute(ctx context.Context, check *model.Check) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"target", check.RawInput,
		)

		if err := step.Do(ctx, check); err != nil {
			p.logger.Debug("step failed",
				"step", step.Name(),
				"target", check.RawInput,
				"error", err,
			)
			return err
		}

		check.Steps = append(check.Steps, step.Name())
	}

	return nil
}

// Check runs the pipeline for a raw target and returns its report.
func (p *Pipeline) Check(ctx context.Context, rawInput string) (*model.CompressionReport, error) {
	check := model.NewCheck(rawInput)
	if err := p.Execute(ctx, check); err != nil {
		return nil, err
	}
	if check.Report == nil {
		return nil, ErrNoReport
	}
	return check.Report, nil
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
