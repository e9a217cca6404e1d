package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/internal/replay"
)

func replayCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "replay <script.yaml>...",
		Short: "Run replay scripts on a virtual clock",
		Long: `Run one or more replay scripts and print their timelines.

A script lists pointer events at virtual timestamps and optional
expectations. The command fails when any expectation is not met.

Examples:
  tooltip replay internal/replay/testdata/hide_after_delay.yaml
  tooltip replay -v scripts/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), cmd.OutOrStdout(), args, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log controller debug output")

	return cmd
}

func runReplay(ctx context.Context, out io.Writer, paths []string, verbose bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	failed := 0
	for _, path := range paths {
		script, err := replay.LoadFile(path)
		if err != nil {
			fmt.Fprintf(out, "%s\n  ✗ %s\n\n", path, compact(err))
			failed++
			continue
		}
		tl, err := replay.Run(ctx, script, replay.WithLogger(logger))
		if err != nil {
			return err
		}

		name := script.Name
		if name == "" {
			name = path
		}
		fmt.Fprintf(out, "%s\n", name)
		if _, err := tl.WriteTo(out); err != nil {
			return err
		}

		problems := tl.Check(script.Expect)
		for _, p := range problems {
			fmt.Fprintf(out, "  ✗ %s\n", p)
		}
		if len(problems) > 0 {
			failed++
		}
		fmt.Fprintln(out)
	}

	if failed > 0 {
		return errors.Newf(errors.CategoryReplay, "%d of %d scripts did not meet their expectations", failed, len(paths))
	}
	return nil
}
