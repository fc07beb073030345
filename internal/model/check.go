package model

// Check holds the state of a single compression check as it moves through
// the pipeline. Each step fills in the fields it owns:
// the normalizer sets NormalizedURL, the fetcher sets Outcome, the codec
// dispatcher sets Decoded and the report builder sets Report.
type Check struct {
	// RawInput is the target exactly as the caller supplied it.
	RawInput string

	// NormalizedURL is the absolute URL that will be fetched.
	NormalizedURL string

	// Outcome is the fetched response. It is nil until the fetch succeeds
	// and must not be modified afterwards.
	Outcome *FetchOutcome

	// Decoded is the result of decoding Outcome.Body.
	Decoded DecompressionResult

	// Report is the final report, set by the last step.
	Report *CompressionReport

	// Steps lists the names of the steps that completed.
	Steps []string
}

// NewCheck creates a Check for the given raw target.
func NewCheck(rawInput string) *Check {
	return &Check{
		RawInput: rawInput,
		Steps:    make([]string, 0, 4),
	}
}
