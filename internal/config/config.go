package config

import (
	"net"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "compcheck"

	// DefaultTimeout bounds one whole fetch, including reading the body.
	DefaultTimeout = 8 * time.Second

	// MinTimeout and MaxTimeout bound the accepted fetch timeout.
	MinTimeout = 1 * time.Second
	MaxTimeout = 120 * time.Second

	// DefaultUserAgent is sent with every outbound request. It mimics a
	// desktop browser so origins serve the same encodings they serve users.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// DefaultAcceptEncoding lists every codec the dispatcher can decode.
	DefaultAcceptEncoding = "gzip, deflate, br"

	// DefaultMaxRedirects is the hop limit when redirects are followed.
	DefaultMaxRedirects = 5

	// MaxRedirectsLimit is the largest accepted hop limit.
	MaxRedirectsLimit = 20

	// DefaultMaxDecodedSize caps the decoded body size. A body that decodes
	// past this limit is treated as a failed decode.
	DefaultMaxDecodedSize = 64 * 1024 * 1024 // 64MB

	// DefaultListenAddr is the address the HTTP endpoint listens on.
	DefaultListenAddr = ":8080"

	// DefaultReadHeaderTimeout bounds reading inbound request headers.
	DefaultReadHeaderTimeout = 5 * time.Second

	// DefaultShutdownTimeout bounds graceful shutdown of the server.
	DefaultShutdownTimeout = 10 * time.Second
)

// RedirectPolicy selects how the fetcher treats 3xx responses.
// A deployment uses exactly one policy for every check.
type RedirectPolicy string

const (
	// RedirectFollow follows up to MaxRedirects hops and reports the final
	// response.
	RedirectFollow RedirectPolicy = "follow"

	// RedirectReport stops at the first 3xx response and reports it as the
	// result, including its Location header.
	RedirectReport RedirectPolicy = "report"
)

// Valid reports whether p is a known policy.
func (p RedirectPolicy) Valid() bool {
	return p == RedirectFollow || p == RedirectReport
}

// String implements fmt.Stringer.
func (p RedirectPolicy) String() string {
	return string(p)
}

// FetchConfig holds the immutable settings of the fetcher and codec
// dispatcher. It is passed by value so the fetcher keeps its own copy.
type FetchConfig struct {
	// Timeout is the overall deadline of one fetch.
	Timeout time.Duration

	// UserAgent is the User-Agent header of outbound requests.
	UserAgent string

	// AcceptEncoding is the Accept-Encoding header of outbound requests.
	AcceptEncoding string

	// Redirect is the redirect policy.
	Redirect RedirectPolicy

	// MaxRedirects is the hop limit under RedirectFollow.
	MaxRedirects int

	// ProxyAddress is an optional SOCKS5 proxy in "host:port" form.
	// When empty, proxies from the environment (HTTP_PROXY etc.) are used.
	ProxyAddress string

	// MaxDecodedSize caps the decoded body size in bytes. Zero disables
	// the cap.
	MaxDecodedSize int64
}

// ServerConfig holds the settings of the HTTP endpoint.
type ServerConfig struct {
	// Addr is the listen address in "host:port" form.
	Addr string

	// ReadHeaderTimeout bounds reading inbound request headers.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// Config holds all configuration options for compcheck.
// It is populated from defaults, the configuration file and CLI flags, in
// that order, and passed through the application explicitly.
type Config struct {
	// Fetch holds the fetcher settings.
	Fetch FetchConfig

	// Server holds the HTTP endpoint settings.
	Server ServerConfig

	// Verbose enables debug logging.
	Verbose bool

	// JSONLog switches log output to JSON.
	JSONLog bool

	// ConfigFilePath is an explicit configuration file path.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// JSONReport selects JSON output for the check command.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output for the check command.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file of the check command.
	// When empty, the report is written to stdout.
	ReportFile string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Fetch: FetchConfig{
			Timeout:        DefaultTimeout,
			UserAgent:      DefaultUserAgent,
			AcceptEncoding: DefaultAcceptEncoding,
			Redirect:       RedirectFollow,
			MaxRedirects:   DefaultMaxRedirects,
			MaxDecodedSize: DefaultMaxDecodedSize,
		},
		Server: ServerConfig{
			Addr:              DefaultListenAddr,
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
			ShutdownTimeout:   DefaultShutdownTimeout,
		},
	}
}

// XDGConfigDir returns the XDG config directory for compcheck.
// On Linux: ~/.config/compcheck
// On macOS: ~/Library/Application Support/compcheck
// On Windows: %APPDATA%\compcheck
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGConfigFile returns the path of the configuration file inside the XDG
// config directory.
func XDGConfigFile() string {
	return filepath.Join(XDGConfigDir(), "config.yaml")
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if err := c.Fetch.Validate(); err != nil {
		return err
	}

	if c.Server.Addr == "" {
		return ErrInvalidListenAddr
	}
	if c.Server.ReadHeaderTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		return ErrInvalidServerTimeout
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}

// Validate checks the fetch settings.
func (f FetchConfig) Validate() error {
	if f.Timeout < MinTimeout || f.Timeout > MaxTimeout {
		return ErrInvalidTimeout
	}

	if f.UserAgent == "" {
		return ErrEmptyUserAgent
	}

	if f.AcceptEncoding == "" {
		return ErrEmptyAcceptEncoding
	}

	if !f.Redirect.Valid() {
		return ErrInvalidRedirectPolicy
	}

	if f.Redirect == RedirectFollow && (f.MaxRedirects < 1 || f.MaxRedirects > MaxRedirectsLimit) {
		return ErrInvalidMaxRedirects
	}

	if f.MaxDecodedSize < 0 {
		return ErrInvalidMaxDecodedSize
	}

	if f.ProxyAddress != "" && !isValidProxyAddress(f.ProxyAddress) {
		return ErrInvalidProxyAddress
	}

	return nil
}

// isValidProxyAddress checks for a "host:port" address with a port in
// the range 1-65535.
func isValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return false
	}
	return n >= 1 && n <= 65535
}
