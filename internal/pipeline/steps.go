package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/compcheck/internal/codec"
	"github.com/nao1215/compcheck/internal/model"
	"github.com/nao1215/compcheck/internal/target"
)

// Fetcher retrieves a normalized URL.
// *fetch.Fetcher implements it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*model.FetchOutcome, error)
}

// NormalizeStep validates the raw target and sets Check.NormalizedURL.
type NormalizeStep struct{}

// NewNormalizeStep creates a new normalization step.
func NewNormalizeStep() *NormalizeStep {
	return &NormalizeStep{}
}

// Name returns the step name.
func (s *NormalizeStep) Name() string {
	return "normalize"
}

// Do executes the normalization step.
func (s *NormalizeStep) Do(_ context.Context, check *model.Check) error {
	normalized, err := target.Normalize(check.RawInput)
	if err != nil {
		return err
	}
	check.NormalizedURL = normalized
	return nil
}

// FetchStep retrieves the normalized URL and sets Check.Outcome.
type FetchStep struct {
	fetcher Fetcher
}

// NewFetchStep creates a new fetch step.
func NewFetchStep(fetcher Fetcher) *FetchStep {
	return &FetchStep{fetcher: fetcher}
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do executes the fetch step.
func (s *FetchStep) Do(ctx context.Context, check *model.Check) error {
	outcome, err := s.fetcher.Fetch(ctx, check.NormalizedURL)
	if err != nil {
		return err
	}
	check.Outcome = outcome
	return nil
}

// DecodeStep decodes the fetched body according to its Content-Encoding
// and sets Check.Decoded. Decode failures are recorded, never returned.
type DecodeStep struct {
	maxDecodedSize int64
	logger         *slog.Logger
}

// DecodeStepOption configures a DecodeStep.
type DecodeStepOption func(*DecodeStep)

// WithMaxDecodedSize caps the decoded body size. Zero disables the cap.
func WithMaxDecodedSize(n int64) DecodeStepOption {
	return func(s *DecodeStep) {
		s.maxDecodedSize = n
	}
}

// WithDecodeLogger sets a custom logger for the decode step.
func WithDecodeLogger(logger *slog.Logger) DecodeStepOption {
	return func(s *DecodeStep) {
		s.logger = logger
	}
}

// NewDecodeStep creates a new decode step.
func NewDecodeStep(opts ...DecodeStepOption) *DecodeStep {
	s := &DecodeStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *DecodeStep) Name() string {
	return "decode"
}

// Do executes the decode step.
func (s *DecodeStep) Do(_ context.Context, check *model.Check) error {
	if check.Outcome == nil {
		return ErrMissingOutcome
	}

	check.Decoded = codec.Dispatch(check.Outcome.ContentEncoding(), check.Outcome.Body, s.maxDecodedSize)
	if check.Decoded.Note != "" {
		s.logger.Warn("body not decoded",
			"url", check.Outcome.FinalURL,
			"content_encoding", check.Outcome.ContentEncoding(),
			"note", check.Decoded.Note,
		)
	}
	return nil
}

// ReportStep builds the compression report and sets Check.Report.
type ReportStep struct{}

// NewReportStep creates a new report step.
func NewReportStep() *ReportStep {
	return &ReportStep{}
}

// Name returns the step name.
func (s *ReportStep) Name() string {
	return "report"
}

// Do executes the report step.
func (s *ReportStep) Do(_ context.Context, check *model.Check) error {
	if check.Outcome == nil {
		return ErrMissingOutcome
	}
	check.Report = model.NewCompressionReport(check.Outcome, check.Decoded)
	return nil
}

// NewCompressionCheck creates the standard pipeline:
// normalize, fetch, decode and report.
func NewCompressionCheck(fetcher Fetcher, maxDecodedSize int64, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddSteps(
		NewNormalizeStep(),
		NewFetchStep(fetcher),
		NewDecodeStep(WithMaxDecodedSize(maxDecodedSize), WithDecodeLogger(p.logger)),
		NewReportStep(),
	)
	return p
}
