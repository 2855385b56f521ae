package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gvmanaged/pkg/buildinfo"
)

// appName is the binary name used in help output and cache paths.
const appName = "gvmanaged"

// debugEnv turns on debug logging when set to a non-empty value.
const debugEnv = "DEBUG"

// Execute runs the gvmanaged CLI and returns an error if any command fails.
// Cancelling ctx aborts long-running commands such as serve.
//
// Logging goes to stderr at info level; --verbose or a non-empty DEBUG
// environment variable switches to debug level. The logger is attached to the
// command context and retrieved with loggerFromContext.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   appName,
		Short: "gvmanaged renders declarative graph manifests with Graphviz",
		Long: `gvmanaged builds directed graphs and architecture diagrams from TOML, YAML
or JSON manifests and renders them to DOT, SVG, PNG or JPG with Graphviz.`,
		Version:      buildinfo.Resolved(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logLevel(verbose, os.Getenv(debugEnv))
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newKindsCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newCompletionCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func logLevel(verbose bool, debug string) charmlog.Level {
	if verbose || debug != "" {
		return charmlog.DebugLevel
	}
	return charmlog.InfoLevel
}
