package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/compcheck/internal/codec/codectest"
	"github.com/nao1215/compcheck/internal/config"
	"github.com/nao1215/compcheck/internal/fetch"
	"github.com/nao1215/compcheck/internal/model"
)

// fetcherFunc adapts a function to the Fetcher interface.
type fetcherFunc func(ctx context.Context, url string) (*model.FetchOutcome, error)

func (f fetcherFunc) Fetch(ctx context.Context, url string) (*model.FetchOutcome, error) {
	return f(ctx, url)
}

func staticFetcher(outcome *model.FetchOutcome) fetcherFunc {
	return func(context.Context, string) (*model.FetchOutcome, error) {
		return outcome, nil
	}
}

// TestNormalizeStep tests the normalization step.
func TestNormalizeStep(t *testing.T) {
	t.Parallel()

	t.Run("sets the normalized URL", func(t *testing.T) {
		t.Parallel()

		check := model.NewCheck("Example.COM/path")
		if err := NewNormalizeStep().Do(context.Background(), check); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if check.NormalizedURL != "http://example.com/path" {
			t.Errorf("NormalizedURL = %q", check.NormalizedURL)
		}
	})

	t.Run("rejects a missing target", func(t *testing.T) {
		t.Parallel()

		err := NewNormalizeStep().Do(context.Background(), model.NewCheck("  "))
		if !errors.Is(err, model.ErrMissingParameter) {
			t.Errorf("expected ErrMissingParameter, got %v", err)
		}
	})
}

// TestFetchStep tests the fetch step.
func TestFetchStep(t *testing.T) {
	t.Parallel()

	t.Run("passes the normalized URL to the fetcher", func(t *testing.T) {
		t.Parallel()

		var gotURL string
		step := NewFetchStep(fetcherFunc(func(_ context.Context, url string) (*model.FetchOutcome, error) {
			gotURL = url
			return &model.FetchOutcome{FinalURL: url, Status: 200}, nil
		}))

		check := model.NewCheck("example.com")
		check.NormalizedURL = "http://example.com"

		if err := step.Do(context.Background(), check); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotURL != "http://example.com" {
			t.Errorf("fetcher got %q", gotURL)
		}
		if check.Outcome == nil || check.Outcome.Status != 200 {
			t.Errorf("unexpected outcome: %+v", check.Outcome)
		}
	})

	t.Run("returns fetch errors unchanged", func(t *testing.T) {
		t.Parallel()

		want := model.NewHTTPStatusError(403)
		step := NewFetchStep(fetcherFunc(func(context.Context, string) (*model.FetchOutcome, error) {
			return nil, want
		}))

		err := step.Do(context.Background(), model.NewCheck("example.com"))
		if !errors.Is(err, model.ErrAccessDenied) {
			t.Errorf("expected ErrAccessDenied, got %v", err)
		}
	})
}

// TestDecodeStep tests that decode failures never fail the step.
func TestDecodeStep(t *testing.T) {
	t.Parallel()

	payload := codectest.Payload(4096)

	tests := []struct {
		name      string
		encoding  string
		body      []byte
		limit     int64
		attempted bool
		succeeded bool
	}{
		{name: "no encoding", encoding: "", body: payload},
		{name: "gzip", encoding: "gzip", body: codectest.Gzip(t, payload), attempted: true, succeeded: true},
		{name: "corrupt gzip", encoding: "gzip", body: payload, attempted: true},
		{name: "over the size limit", encoding: "gzip", body: codectest.Gzip(t, payload), limit: 16, attempted: true},
		{name: "unsupported encoding", encoding: "zstd", body: payload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			check := model.NewCheck("example.com")
			check.Outcome = &model.FetchOutcome{
				Status:  200,
				Headers: map[string]string{"content-encoding": tt.encoding},
				Body:    tt.body,
			}

			if err := NewDecodeStep(WithMaxDecodedSize(tt.limit)).Do(context.Background(), check); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if check.Decoded.Attempted != tt.attempted || check.Decoded.Succeeded != tt.succeeded {
				t.Errorf("Decoded = {Attempted:%v Succeeded:%v}, want {Attempted:%v Succeeded:%v}",
					check.Decoded.Attempted, check.Decoded.Succeeded, tt.attempted, tt.succeeded)
			}
		})
	}

	t.Run("requires a fetched response", func(t *testing.T) {
		t.Parallel()

		err := NewDecodeStep().Do(context.Background(), model.NewCheck("example.com"))
		if !errors.Is(err, ErrMissingOutcome) {
			t.Errorf("expected ErrMissingOutcome, got %v", err)
		}
	})
}

// TestCompressionCheck tests the standard pipeline against fake fetchers.
func TestCompressionCheck(t *testing.T) {
	t.Parallel()

	payload := codectest.Payload(10000)

	t.Run("decode failure falls back to the transferred size", func(t *testing.T) {
		t.Parallel()

		body := []byte("this is not gzip data")
		p := NewCompressionCheck(staticFetcher(&model.FetchOutcome{
			FinalURL: "http://example.com",
			Status:   200,
			Headers:  map[string]string{"content-encoding": "gzip"},
			Body:     body,
		}), config.DefaultMaxDecodedSize)

		report, err := p.Check(context.Background(), "example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := &model.CompressionReport{
			URL:              "http://example.com",
			Status:           200,
			IsCompressed:     false,
			CompressionType:  model.CompressionTypeNone,
			CompressedSize:   len(body),
			UncompressedSize: len(body),
			SavingsPercent:   0,
			Headers:          map[string]string{"content-encoding": "gzip"},
		}
		if diff := cmp.Diff(want, report); diff != "" {
			t.Errorf("report mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("invalid target never reaches the fetcher", func(t *testing.T) {
		t.Parallel()

		called := false
		p := NewCompressionCheck(fetcherFunc(func(context.Context, string) (*model.FetchOutcome, error) {
			called = true
			return nil, nil
		}), 0)

		_, err := p.Check(context.Background(), "http://")
		if !errors.Is(err, model.ErrInvalidURL) {
			t.Errorf("expected ErrInvalidURL, got %v", err)
		}
		if called {
			t.Error("fetcher must not be called for an invalid target")
		}
	})

	t.Run("records every step", func(t *testing.T) {
		t.Parallel()

		p := NewCompressionCheck(staticFetcher(&model.FetchOutcome{
			FinalURL: "http://example.com",
			Status:   200,
			Headers:  map[string]string{},
			Body:     payload,
		}), 0)

		check := model.NewCheck("example.com")
		if err := p.Execute(context.Background(), check); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"normalize", "fetch", "decode", "report"}
		if diff := cmp.Diff(want, check.Steps); diff != "" {
			t.Errorf("Steps mismatch (-want +got):\n%s", diff)
		}
	})
}

// TestCompressionCheckEndToEnd runs the standard pipeline against real
// upstreams serving each supported encoding.
func TestCompressionCheckEndToEnd(t *testing.T) {
	t.Parallel()

	payload := codectest.Payload(20000)

	tests := []struct {
		name     string
		encoding string
		body     []byte
		want     string
	}{
		{name: "gzip", encoding: "gzip", body: codectest.Gzip(t, payload), want: "gzip"},
		{name: "brotli", encoding: "br", body: codectest.Brotli(t, payload), want: "br"},
		{name: "zlib deflate", encoding: "deflate", body: codectest.Zlib(t, payload), want: "deflate"},
		{name: "raw deflate", encoding: "deflate", body: codectest.RawDeflate(t, payload), want: "deflate"},
		{name: "identity", encoding: "", body: payload, want: model.CompressionTypeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tt.encoding != "" {
					w.Header().Set("Content-Encoding", tt.encoding)
				}
				_, _ = w.Write(tt.body) //nolint:errcheck
			}))
			t.Cleanup(srv.Close)

			f, err := fetch.New(config.NewConfig().Fetch)
			if err != nil {
				t.Fatalf("fetch.New() error = %v", err)
			}

			report, err := NewCompressionCheck(f, config.DefaultMaxDecodedSize).Check(context.Background(), srv.URL)
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}

			if report.CompressionType != tt.want {
				t.Errorf("CompressionType = %q, want %q", report.CompressionType, tt.want)
			}
			if report.CompressedSize != len(tt.body) {
				t.Errorf("CompressedSize = %d, want %d", report.CompressedSize, len(tt.body))
			}
			if report.UncompressedSize != len(payload) {
				t.Errorf("UncompressedSize = %d, want %d", report.UncompressedSize, len(payload))
			}
			if tt.encoding != "" && (!report.IsCompressed || report.SavingsPercent <= 0) {
				t.Errorf("expected a compressed report, got %+v", report)
			}
			if tt.encoding == "" && (report.IsCompressed || report.SavingsPercent != 0) {
				t.Errorf("expected an uncompressed report, got %+v", report)
			}
		})
	}
}
