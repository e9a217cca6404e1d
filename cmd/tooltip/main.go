package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tooltip/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		errors.Print(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "tooltip",
		Short: "Tooltip controller playground and tools",
		Long: `tooltip drives the hover-intent tooltip controller.

  init     Write a tooltip.yaml with the defaults
  serve    Run the browser playground over a websocket
  replay   Run a scripted pointer timeline on a virtual clock
  gen      Generate a component package preset with tooltip options`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor || os.Getenv("NO_COLOR") != "" {
				errors.DisableColors()
			} else {
				errors.EnableColors()
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(
		initCmd(),
		serveCmd(),
		replayCmd(),
		genCmd(),
		versionCmd(),
	)

	return cmd
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// compact renders err on one line, with its location when it has one.
func compact(err error) string {
	var te *errors.Error
	if stderrors.As(err, &te) {
		return te.FormatCompact()
	}
	return err.Error()
}
