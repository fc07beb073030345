package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default Timeout is 8 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Fetch.Timeout != 8*time.Second {
			t.Errorf("expected Timeout to be 8s, got %v", cfg.Fetch.Timeout)
		}
	})

	t.Run("default AcceptEncoding lists all supported codecs", func(t *testing.T) {
		t.Parallel()
		if cfg.Fetch.AcceptEncoding != "gzip, deflate, br" {
			t.Errorf("expected 'gzip, deflate, br', got %q", cfg.Fetch.AcceptEncoding)
		}
	})

	t.Run("default redirect policy is follow with 5 hops", func(t *testing.T) {
		t.Parallel()
		if cfg.Fetch.Redirect != RedirectFollow {
			t.Errorf("expected follow, got %q", cfg.Fetch.Redirect)
		}
		if cfg.Fetch.MaxRedirects != 5 {
			t.Errorf("expected 5 redirects, got %d", cfg.Fetch.MaxRedirects)
		}
	})

	t.Run("default UserAgent is set", func(t *testing.T) {
		t.Parallel()
		if cfg.Fetch.UserAgent == "" {
			t.Error("expected non-empty UserAgent")
		}
	})

	t.Run("default listen address is :8080", func(t *testing.T) {
		t.Parallel()
		if cfg.Server.Addr != ":8080" {
			t.Errorf("expected ':8080', got %q", cfg.Server.Addr)
		}
	})

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected defaults to validate, got %v", err)
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name:    "zero timeout returns ErrInvalidTimeout",
			modify:  func(c *Config) { c.Fetch.Timeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "too long timeout returns ErrInvalidTimeout",
			modify:  func(c *Config) { c.Fetch.Timeout = 10 * time.Minute },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "15 second timeout is valid",
			modify:  func(c *Config) { c.Fetch.Timeout = 15 * time.Second },
			wantErr: nil,
		},
		{
			name:    "empty user agent returns ErrEmptyUserAgent",
			modify:  func(c *Config) { c.Fetch.UserAgent = "" },
			wantErr: ErrEmptyUserAgent,
		},
		{
			name:    "empty accept encoding returns ErrEmptyAcceptEncoding",
			modify:  func(c *Config) { c.Fetch.AcceptEncoding = "" },
			wantErr: ErrEmptyAcceptEncoding,
		},
		{
			name:    "unknown redirect policy returns ErrInvalidRedirectPolicy",
			modify:  func(c *Config) { c.Fetch.Redirect = "sometimes" },
			wantErr: ErrInvalidRedirectPolicy,
		},
		{
			name:    "report policy ignores max redirects",
			modify:  func(c *Config) { c.Fetch.Redirect = RedirectReport; c.Fetch.MaxRedirects = 0 },
			wantErr: nil,
		},
		{
			name:    "zero max redirects while following returns ErrInvalidMaxRedirects",
			modify:  func(c *Config) { c.Fetch.MaxRedirects = 0 },
			wantErr: ErrInvalidMaxRedirects,
		},
		{
			name:    "negative max decoded size returns ErrInvalidMaxDecodedSize",
			modify:  func(c *Config) { c.Fetch.MaxDecodedSize = -1 },
			wantErr: ErrInvalidMaxDecodedSize,
		},
		{
			name:    "zero max decoded size disables the cap",
			modify:  func(c *Config) { c.Fetch.MaxDecodedSize = 0 },
			wantErr: nil,
		},
		{
			name:    "proxy without port returns ErrInvalidProxyAddress",
			modify:  func(c *Config) { c.Fetch.ProxyAddress = "127.0.0.1" },
			wantErr: ErrInvalidProxyAddress,
		},
		{
			name:    "proxy with out of range port returns ErrInvalidProxyAddress",
			modify:  func(c *Config) { c.Fetch.ProxyAddress = "127.0.0.1:70000" },
			wantErr: ErrInvalidProxyAddress,
		},
		{
			name:    "valid proxy address",
			modify:  func(c *Config) { c.Fetch.ProxyAddress = "127.0.0.1:9050" },
			wantErr: nil,
		},
		{
			name:    "empty listen address returns ErrInvalidListenAddr",
			modify:  func(c *Config) { c.Server.Addr = "" },
			wantErr: ErrInvalidListenAddr,
		},
		{
			name:    "zero shutdown timeout returns ErrInvalidServerTimeout",
			modify:  func(c *Config) { c.Server.ShutdownTimeout = 0 },
			wantErr: ErrInvalidServerTimeout,
		},
		{
			name:    "json and markdown both enabled returns ErrConflictingReportFormats",
			modify:  func(c *Config) { c.JSONReport = true; c.MarkdownReport = true },
			wantErr: ErrConflictingReportFormats,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestFileApply tests merging file values into a Config.
func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("set values override defaults", func(t *testing.T) {
		t.Parallel()

		zero := int64(0)
		file := &File{
			Server: ServerFile{Addr: "127.0.0.1:9000"},
			Fetch: FetchFile{
				Timeout:        12 * time.Second,
				UserAgent:      "compcheck-test/1.0",
				Redirect:       "report",
				Proxy:          "127.0.0.1:9050",
				MaxDecodedSize: &zero,
			},
		}

		cfg := NewConfig()
		file.Apply(cfg)

		if cfg.Server.Addr != "127.0.0.1:9000" {
			t.Errorf("expected addr override, got %q", cfg.Server.Addr)
		}
		if cfg.Fetch.Timeout != 12*time.Second {
			t.Errorf("expected timeout override, got %v", cfg.Fetch.Timeout)
		}
		if cfg.Fetch.UserAgent != "compcheck-test/1.0" {
			t.Errorf("expected user agent override, got %q", cfg.Fetch.UserAgent)
		}
		if cfg.Fetch.Redirect != RedirectReport {
			t.Errorf("expected report policy, got %q", cfg.Fetch.Redirect)
		}
		if cfg.Fetch.ProxyAddress != "127.0.0.1:9050" {
			t.Errorf("expected proxy override, got %q", cfg.Fetch.ProxyAddress)
		}
		if cfg.Fetch.MaxDecodedSize != 0 {
			t.Errorf("expected explicit zero cap, got %d", cfg.Fetch.MaxDecodedSize)
		}
	})

	t.Run("unset values keep defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		(&File{}).Apply(cfg)

		if cfg.Fetch.MaxRedirects != DefaultMaxRedirects {
			t.Errorf("expected default max redirects, got %d", cfg.Fetch.MaxRedirects)
		}
		if cfg.Fetch.MaxDecodedSize != DefaultMaxDecodedSize {
			t.Errorf("expected default cap, got %d", cfg.Fetch.MaxDecodedSize)
		}
	})

	t.Run("nil file is a no-op", func(t *testing.T) {
		t.Parallel()

		var file *File
		cfg := NewConfig()
		file.Apply(cfg)

		if cfg.Fetch.Timeout != DefaultTimeout {
			t.Errorf("expected default timeout, got %v", cfg.Fetch.Timeout)
		}
	})
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.compcheck")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("parses durations and nested sections", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".compcheck")
		content := `server:
  addr: "127.0.0.1:9999"
fetch:
  timeout: 15s
  redirect: report
  maxDecodedSize: 1048576
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		file, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if file.Server.Addr != "127.0.0.1:9999" {
			t.Errorf("expected addr, got %q", file.Server.Addr)
		}
		if file.Fetch.Timeout != 15*time.Second {
			t.Errorf("expected 15s, got %v", file.Fetch.Timeout)
		}
		if file.Fetch.Redirect != "report" {
			t.Errorf("expected report, got %q", file.Fetch.Redirect)
		}
		if file.Fetch.MaxDecodedSize == nil || *file.Fetch.MaxDecodedSize != 1048576 {
			t.Errorf("expected max decoded size 1048576, got %v", file.Fetch.MaxDecodedSize)
		}
	})

	t.Run("invalid yaml returns error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".compcheck")
		if err := os.WriteFile(path, []byte("fetch: [unclosed"), 0600); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected parse error")
		}
	})
}

// TestLoad tests building a Config from an explicit file path.
func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("explicit missing file is an error", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("explicit file is applied", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "compcheck.yaml")
		if err := os.WriteFile(path, []byte("fetch:\n  maxRedirects: 3\n"), 0600); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Fetch.MaxRedirects != 3 {
			t.Errorf("expected 3, got %d", cfg.Fetch.MaxRedirects)
		}
		if cfg.ConfigFilePath != path {
			t.Errorf("expected config path %q, got %q", path, cfg.ConfigFilePath)
		}
	})
}

// TestFindConfigFile tests explicit path handling.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path is returned", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
			t.Fatal(err)
		}

		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "nope")); got != "" {
			t.Errorf("expected empty, got %q", got)
		}
	})
}

// TestXDGPaths tests XDG directory helpers.
func TestXDGPaths(t *testing.T) {
	t.Parallel()

	if dir := XDGConfigDir(); filepath.Base(dir) != AppName {
		t.Errorf("expected config dir to end with %q, got %q", AppName, dir)
	}
	if file := XDGConfigFile(); filepath.Base(file) != "config.yaml" {
		t.Errorf("expected config.yaml, got %q", file)
	}
}
