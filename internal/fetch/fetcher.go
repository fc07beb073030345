package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nao1215/compcheck/internal/config"
	"github.com/nao1215/compcheck/internal/model"
)

// Fetcher performs the outbound request of a compression check.
// It is safe for concurrent use; its configuration is fixed at creation.
type Fetcher struct {
	client *http.Client
	cfg    config.FetchConfig
	logger *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithTransport replaces the outbound transport. The redirect policy and
// timeout from the configuration still apply.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) {
		f.client.Transport = rt
	}
}

// New creates a Fetcher for cfg.
func New(cfg config.FetchConfig, opts ...Option) (*Fetcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fetch configuration: %w", err)
	}

	transport, err := newTransport(cfg)
	if err != nil {
		return nil, err
	}

	f := &Fetcher{
		client: &http.Client{
			Transport:     transport,
			CheckRedirect: redirectPolicy(cfg),
		},
		cfg:    cfg,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// redirectPolicy returns the CheckRedirect function for cfg.
func redirectPolicy(cfg config.FetchConfig) func(*http.Request, []*http.Request) error {
	if cfg.Redirect == config.RedirectReport {
		return func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	limit := cfg.MaxRedirects
	return func(_ *http.Request, via []*http.Request) error {
		if len(via) > limit {
			return fmt.Errorf("%w (limit %d)", ErrTooManyRedirects, limit)
		}
		return nil
	}
}

// Fetch requests rawURL and returns the terminal response with its body
// read in full and left encoded.
//
// A terminal status outside 2xx fails with model.ErrHTTPStatus (or
// model.ErrAccessDenied for 403). Under the report redirect policy, 3xx is
// a successful terminal status too.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*model.FetchOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, model.NewCheckError(model.ErrInvalidURL, "The URL could not be requested.", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept-Encoding", f.cfg.AcceptEncoding)

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Debug("fetch failed", "url", rawURL, "error", err)
		return nil, classify(ctx, err)
	}
	defer resp.Body.Close()

	if !f.successful(resp.StatusCode) {
		f.logger.Debug("upstream returned non-success status", "url", rawURL, "status", resp.StatusCode)
		return nil, model.NewHTTPStatusError(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		f.logger.Debug("reading body failed", "url", rawURL, "error", err)
		return nil, classify(ctx, err)
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	f.logger.Debug("fetched",
		"url", finalURL,
		"status", resp.StatusCode,
		"bytes", len(body),
		"content_encoding", resp.Header.Get("Content-Encoding"),
	)

	return &model.FetchOutcome{
		FinalURL: finalURL,
		Status:   resp.StatusCode,
		Headers:  flattenHeaders(resp.Header),
		Body:     body,
	}, nil
}

// successful reports whether status is a successful terminal status.
func (f *Fetcher) successful(status int) bool {
	if status >= 200 && status < 300 {
		return true
	}
	return f.cfg.Redirect == config.RedirectReport && status >= 300 && status < 400
}

// flattenHeaders lowercases header names and joins repeated values.
func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		out[strings.ToLower(name)] = strings.Join(values, ", ")
	}
	return out
}
