package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/compcheck/internal/config"
	"github.com/nao1215/compcheck/internal/fetch"
	"github.com/nao1215/compcheck/internal/pipeline"
	"github.com/nao1215/compcheck/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the compression check as an HTTP endpoint",
		Long: `Serve answers GET /api/check?url=<target> with the JSON compression report
of the target. The endpoint sends permissive CORS headers and answers
OPTIONS preflight requests, so it can be called from any web page.

Errors are answered with {"error": ..., "details": ...}:
  400  missing or invalid url, or the page answered with an error status
  500  the page could not be reached
  504  the page did not answer before the timeout

GET /healthz answers {"status":"ok"}.

Examples:
  # Listen on the default address
  compcheck serve

  # Listen on localhost only, with a shorter timeout
  compcheck serve --addr 127.0.0.1:9000 --timeout 5s`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	addFetchFlags(cmd)

	cmd.Flags().StringP("addr", "a", config.DefaultListenAddr,
		"Listen address in host:port form")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("addr") {
		if cfg.Server.Addr, err = cmd.Flags().GetString("addr"); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg, slog.LevelInfo)
	slog.SetDefault(logger)

	fetcher, err := fetch.New(cfg.Fetch, fetch.WithLogger(logger))
	if err != nil {
		return err
	}

	checker := pipeline.NewCompressionCheck(fetcher, cfg.Fetch.MaxDecodedSize, pipeline.WithLogger(logger))
	handler := server.NewHandler(checker, server.WithLogger(logger))
	srv := server.New(cfg.Server, server.NewMux(handler, logger), logger)

	logger.Info("configuration",
		"addr", cfg.Server.Addr,
		"timeout", cfg.Fetch.Timeout,
		"redirect", cfg.Fetch.Redirect.String(),
		"max_redirects", cfg.Fetch.MaxRedirects,
		"max_decoded_size", cfg.Fetch.MaxDecodedSize,
		"proxy", cfg.Fetch.ProxyAddress,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
