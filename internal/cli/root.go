// Package cli implements the stepper command-line interface.
//
// # Commands
//
//   - render: lay out a step document (YAML or TOML) and write PNG, SVG or
//     terminal output
//   - random: render a random sequence, handy for eyeballing layouts
//   - demo: interactive terminal preview that follows the window size
//   - backends: list the registered output backends
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The
// charmbracelet/log logger is attached to the command context and also
// installed as the stepper library's slog handler.
package cli

import (
	"context"
	"fmt"
	"io"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the stepper CLI and returns an error if any command fails.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "stepper",
		Short:        "Stepper draws horizontal progress steppers",
		Long:         `Stepper lays out a row of step circles joined by lines, with optional labels, shadows and gradients, and renders it as PNG, SVG or terminal output.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			installLogger(logger)
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate(fmt.Sprintf("stepper %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newRandomCmd())
	root.AddCommand(newDemoCmd())
	root.AddCommand(newBackendsCmd())

	return root
}
