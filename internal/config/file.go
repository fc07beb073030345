package config

import "time"

// File represents the structure of the .compcheck configuration file.
// Zero values mean "not set" and leave the current setting unchanged.
type File struct {
	// Server holds endpoint settings.
	Server ServerFile `yaml:"server,omitempty"`

	// Fetch holds fetcher settings.
	Fetch FetchFile `yaml:"fetch,omitempty"`
}

// ServerFile is the server section of the configuration file.
type ServerFile struct {
	Addr              string        `yaml:"addr,omitempty"`
	ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout,omitempty"`
	ShutdownTimeout   time.Duration `yaml:"shutdownTimeout,omitempty"`
}

// FetchFile is the fetch section of the configuration file.
type FetchFile struct {
	Timeout        time.Duration `yaml:"timeout,omitempty"`
	UserAgent      string        `yaml:"userAgent,omitempty"`
	AcceptEncoding string        `yaml:"acceptEncoding,omitempty"`
	Redirect       string        `yaml:"redirect,omitempty"`
	MaxRedirects   int           `yaml:"maxRedirects,omitempty"`
	Proxy          string        `yaml:"proxy,omitempty"`

	// MaxDecodedSize is a pointer so that an explicit 0 (no cap) can be
	// told apart from an absent key.
	MaxDecodedSize *int64 `yaml:"maxDecodedSize,omitempty"`
}

// Apply copies every value set in the file into c.
func (f *File) Apply(c *Config) {
	if f == nil || c == nil {
		return
	}

	if f.Server.Addr != "" {
		c.Server.Addr = f.Server.Addr
	}
	if f.Server.ReadHeaderTimeout != 0 {
		c.Server.ReadHeaderTimeout = f.Server.ReadHeaderTimeout
	}
	if f.Server.ShutdownTimeout != 0 {
		c.Server.ShutdownTimeout = f.Server.ShutdownTimeout
	}

	if f.Fetch.Timeout != 0 {
		c.Fetch.Timeout = f.Fetch.Timeout
	}
	if f.Fetch.UserAgent != "" {
		c.Fetch.UserAgent = f.Fetch.UserAgent
	}
	if f.Fetch.AcceptEncoding != "" {
		c.Fetch.AcceptEncoding = f.Fetch.AcceptEncoding
	}
	if f.Fetch.Redirect != "" {
		c.Fetch.Redirect = RedirectPolicy(f.Fetch.Redirect)
	}
	if f.Fetch.MaxRedirects != 0 {
		c.Fetch.MaxRedirects = f.Fetch.MaxRedirects
	}
	if f.Fetch.Proxy != "" {
		c.Fetch.ProxyAddress = f.Fetch.Proxy
	}
	if f.Fetch.MaxDecodedSize != nil {
		c.Fetch.MaxDecodedSize = *f.Fetch.MaxDecodedSize
	}
}
