package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tooltip/internal/scaffold"
	"github.com/vango-dev/tooltip/pkg/geometry"
)

func genCmd() *cobra.Command {
	var (
		dir       string
		outDir    string
		placement string
		delay     time.Duration
		content   string
	)

	cmd := &cobra.Command{
		Use:   "gen <name>",
		Short: "Generate a tooltip component package",
		Long: `Generate a component package wrapping the tooltip controller with
preset options, plus a test that drives it on a virtual clock.

Examples:
  tooltip gen HelpHint                        # components/help-hint/
  tooltip gen save-hint --placement=bottom    # components/save-hint/
  tooltip gen Hint --out=internal/ui/tips     # internal/ui/tips/hint/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := scaffold.Generate(scaffold.Options{
				Name:       args[0],
				Dir:        dir,
				OutDir:     outDir,
				Placement:  geometry.Placement(placement),
				HoverDelay: delay,
				Content:    content,
			})
			if err != nil {
				return err
			}
			success("Generated %s", res.ImportPath)
			for _, f := range res.Files {
				info("%s", f)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory inside the target module")
	cmd.Flags().StringVarP(&outDir, "out", "o", scaffold.DefaultOutDir, "Parent directory, relative to the module root")
	cmd.Flags().StringVar(&placement, "placement", "", "Preset placement (default: top)")
	cmd.Flags().DurationVar(&delay, "delay", 0, "Preset hover delay (default: 100ms)")
	cmd.Flags().StringVar(&content, "content", "", "Preset tooltip text")

	return cmd
}
