// Command mdview is a single-session web backend bridging a browser to
// Google Drive and Docs: it runs the OAuth2 authorization-code flow, keeps
// the resulting bearer token in memory, and serves document routes scoped to
// a lazily provisioned app folder.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	flagVerbose bool
	flagQuiet   bool
)

// newRootCmd builds the root command. Running it starts the server.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mdview",
		Short:   "Google Drive/Docs web backend",
		Long:    "A single-session web backend for browsing and editing Google Docs in a dedicated Drive folder.",
		Version: version,
		// Errors are printed by exitOnError, not by cobra.
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress informational output")

	return cmd
}

// buildLogger creates an slog.Logger at the configured level. The --verbose
// and --quiet flags override LOG_LEVEL.
func buildLogger(configured string) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(configured)); err != nil {
		level = slog.LevelInfo
	}

	if flagVerbose {
		level = slog.LevelDebug
	}

	if flagQuiet {
		level = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
