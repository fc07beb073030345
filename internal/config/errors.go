package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and FetchConfig.Validate()
// so callers can use errors.Is for programmatic handling.
var (
	// ErrInvalidTimeout is returned when the fetch timeout is outside
	// MinTimeout..MaxTimeout.
	ErrInvalidTimeout = errors.New("invalid timeout: must be between 1s and 2m")

	// ErrEmptyUserAgent is returned when the User-Agent is empty.
	ErrEmptyUserAgent = errors.New("invalid user agent: must not be empty")

	// ErrEmptyAcceptEncoding is returned when the Accept-Encoding value is empty.
	ErrEmptyAcceptEncoding = errors.New("invalid accept encoding: must not be empty")

	// ErrInvalidRedirectPolicy is returned for a policy other than
	// "follow" or "report".
	ErrInvalidRedirectPolicy = errors.New("invalid redirect policy: must be \"follow\" or \"report\"")

	// ErrInvalidMaxRedirects is returned when the hop limit is out of range
	// while following redirects.
	ErrInvalidMaxRedirects = errors.New("invalid max redirects: must be between 1 and 20")

	// ErrInvalidMaxDecodedSize is returned when the decoded size cap is negative.
	// Use 0 to disable the cap.
	ErrInvalidMaxDecodedSize = errors.New("invalid max decoded size: must be non-negative")

	// ErrInvalidProxyAddress is returned when the proxy address is not
	// in "host:port" form.
	ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")

	// ErrInvalidListenAddr is returned when the listen address is empty.
	ErrInvalidListenAddr = errors.New("invalid listen address: must not be empty")

	// ErrInvalidServerTimeout is returned when a server timeout is not positive.
	ErrInvalidServerTimeout = errors.New("invalid server timeout: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
