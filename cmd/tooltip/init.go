package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tooltip/internal/config"
	"github.com/vango-dev/tooltip/internal/errors"
)

func initCmd() *cobra.Command {
	var (
		dir   string
		json  bool
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the defaults",
		Long: `Write tooltip.yaml (or tooltip.json with --json) holding the default
tooltip, server and log settings.

Examples:
  tooltip init
  tooltip init --json
  tooltip init --dir=playground --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := runInit(dir, json, force)
			if err != nil {
				return err
			}
			success("Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to write the config to")
	cmd.Flags().BoolVar(&json, "json", false, "Write tooltip.json instead of tooltip.yaml")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config")

	return cmd
}

func runInit(dir string, json, force bool) (string, error) {
	if !force && config.Exists(dir) {
		return "", errors.Newf(errors.CategoryConfig, "a config file already exists in %s", dir).
			WithSuggestion("Pass --force to overwrite it")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.New("T002").Wrap(err)
	}

	name := config.YAMLFileName
	if json {
		name = config.JSONFileName
	}
	path := filepath.Join(dir, name)
	if err := config.New().SaveTo(path); err != nil {
		return "", err
	}
	return path, nil
}
