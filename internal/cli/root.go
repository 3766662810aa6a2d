package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/reqspec/internal/config"
	"github.com/wesleyorama2/reqspec/internal/logging"
	"github.com/wesleyorama2/reqspec/internal/output"
)

var version = "0.1.0"

// NewRootCmd builds the reqspec command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "reqspec",
		Short:   "Build, inspect and send HTTP requests from a request description",
		Version: version,
		Long: `reqspec assembles an HTTP request from a URI template, named segments,
query parameters, headers, authentication and a body, then either prints
the resolved request or sends it.

Every persistent flag can also be set through a REQSPEC_ environment
variable, e.g. REQSPEC_TIMEOUT=5s or REQSPEC_LOG_LEVEL=debug.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Enable verbose output")
	flags.Bool("no-color", false, "Disable colored output")
	flags.DurationP("timeout", "t", config.DefaultTimeout, "Request timeout")
	flags.BoolP("insecure", "k", false, "Skip TLS certificate verification")
	flags.StringP("output", "o", config.DefaultOutput, "Output format: text, json or yaml")
	flags.String("log-level", config.DefaultLogLevel, "Log level: trace, debug, info, warn, error")
	flags.String("log-format", config.DefaultLogFormat, "Log format: text or json")
	flags.String("log-file", "", "Also write logs to this file, rotated by size")

	root.AddCommand(newSendCmd())
	root.AddCommand(newResolveCmd())
	return root
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// runtime bundles what a command needs after the global flags are parsed.
type runtime struct {
	settings  *config.Settings
	logger    *logging.Logger
	formatter output.FormatProvider
	out       io.Writer
}

func newRuntime(cmd *cobra.Command) (*runtime, error) {
	settings, err := config.LoadSettings(cmd.Flags())
	if err != nil {
		return nil, err
	}

	format, err := output.ParseFormat(settings.Output)
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	stdout, _ := out.(*os.File)
	noColor := !output.ShouldColor(stdout, settings.NoColor)

	stderr := cmd.ErrOrStderr()
	stderrFile, _ := stderr.(*os.File)
	logger, err := logging.New(logging.Config{
		Level:   settings.LogLevel,
		Format:  settings.LogFormat,
		Color:   output.ShouldColor(stderrFile, settings.NoColor),
		Console: stderr,
		File:    settings.LogFile,
	})
	if err != nil {
		return nil, err
	}

	return &runtime{
		settings:  settings,
		logger:    logger,
		formatter: output.GetFormatter(format, settings.Verbose, noColor),
		out:       out,
	}, nil
}

func (rt *runtime) print(s string) {
	if s != "" {
		fmt.Fprint(rt.out, s)
	}
}

func (rt *runtime) close() {
	if err := rt.logger.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to close log file:", err)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
