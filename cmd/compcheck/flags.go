package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/compcheck/internal/config"
	applog "github.com/nao1215/compcheck/internal/log"
)

// addFetchFlags registers the flags shared by check and serve.
// Defaults shown in help are the built-in defaults; a configuration file
// changes them unless the flag is given explicitly.
func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Overall deadline of one fetch, including reading the body")
	cmd.Flags().StringP("user-agent", "u", config.DefaultUserAgent,
		"User-Agent header of outbound requests")
	cmd.Flags().String("redirect", string(config.RedirectFollow),
		"Redirect policy: follow (report the final response) or report (report the 3xx itself)")
	cmd.Flags().Int("max-redirects", config.DefaultMaxRedirects,
		"Maximum number of redirects to follow")
	cmd.Flags().Int64("max-decoded-size", config.DefaultMaxDecodedSize,
		"Maximum decoded body size in bytes (0 disables the limit)")
	cmd.Flags().StringP("proxy", "x", "",
		"SOCKS5 proxy address in host:port form (default: HTTP_PROXY/HTTPS_PROXY from the environment)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .compcheck in current directory, XDG config dir or home)")
}

// buildConfig loads the configuration file and applies explicitly set
// flags on top of it.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if flags.Changed("timeout") {
		if cfg.Fetch.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("user-agent") {
		if cfg.Fetch.UserAgent, err = flags.GetString("user-agent"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("redirect") {
		policy, err := flags.GetString("redirect")
		if err != nil {
			return nil, err
		}
		cfg.Fetch.Redirect = config.RedirectPolicy(policy)
	}
	if flags.Changed("max-redirects") {
		if cfg.Fetch.MaxRedirects, err = flags.GetInt("max-redirects"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("max-decoded-size") {
		if cfg.Fetch.MaxDecodedSize, err = flags.GetInt64("max-decoded-size"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("proxy") {
		if cfg.Fetch.ProxyAddress, err = flags.GetString("proxy"); err != nil {
			return nil, err
		}
	}

	cfg.Verbose = getBoolFlag(cmd, "verbose")
	cfg.JSONLog = getBoolFlag(cmd, "json-log")

	return cfg, nil
}

// getBoolFlag retrieves a boolean flag from the command or the root's
// persistent flags.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		value, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return value
}

// newLogger creates the logger of a command. Verbose mode selects debug,
// otherwise base is used.
func newLogger(w io.Writer, cfg *config.Config, base slog.Level) *slog.Logger {
	return applog.New(w, applog.Options{
		Level: applog.Level(cfg.Verbose, base),
		JSON:  cfg.JSONLog,
	})
}
