package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for compcheck.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compcheck",
		Short: "Check how well a web page is compressed",
		Long: `compcheck fetches a URL the way a browser does, asking for gzip, deflate
and Brotli, and reports whether the response is compressed, its transferred
and decoded sizes, and the share of bytes saved.

Run a single check from the terminal with "compcheck check", or expose the
same check as a JSON endpoint with "compcheck serve".`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json-log", false, "Write logs as JSON")

	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
