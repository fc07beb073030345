package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/compcheck/internal/config"
	"github.com/nao1215/compcheck/internal/fetch"
	"github.com/nao1215/compcheck/internal/model"
	"github.com/nao1215/compcheck/internal/pipeline"
	"github.com/nao1215/compcheck/internal/report"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <url>",
		Short: "Check the compression of a single URL",
		Long: `Check fetches the URL, decodes its body according to Content-Encoding and
reports the transferred size, the decoded size and the savings.

A URL without scheme is fetched over http. A body that cannot be decoded is
reported as uncompressed; the check itself only fails when the page cannot be
fetched or answers with an error status.

Examples:
  # Check a page
  compcheck check example.com

  # Output the JSON report served by "compcheck serve"
  compcheck check --json https://example.com/

  # Write a Markdown report to a file
  compcheck check --markdown -o report.md https://example.com/

  # Report redirects instead of following them
  compcheck check --redirect report http://example.com/`,
		Args: cobra.ExactArgs(1),
		RunE: runCheckCmd,
	}

	addFetchFlags(cmd)

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("headers", false,
		"List the response headers in the text report")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return err
	}
	showHeaders, err := cmd.Flags().GetBool("headers")
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg, slog.LevelWarn)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	check, err := runCheck(ctx, cfg, args[0], logger)
	if err != nil {
		return err
	}

	return outputReport(cmd.OutOrStdout(), cfg, check, showHeaders)
}

// runCheck runs the compression check pipeline for target.
func runCheck(ctx context.Context, cfg *config.Config, target string, logger *slog.Logger) (*model.Check, error) {
	fetcher, err := fetch.New(cfg.Fetch, fetch.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	p := pipeline.NewCompressionCheck(fetcher, cfg.Fetch.MaxDecodedSize, pipeline.WithLogger(logger))

	check := model.NewCheck(target)
	if err := p.Execute(ctx, check); err != nil {
		return nil, err
	}
	return check, nil
}

// outputReport writes the report in the requested format to stdout or the
// report file.
func outputReport(stdout io.Writer, cfg *config.Config, check *model.Check, showHeaders bool) error {
	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithHeaders(showHeaders))
	}

	_, err := writer.Write(check)
	return err
}
