package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tooltip/internal/config"
	"github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		host       string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the playground server",
		Long: `Start the playground server.

The page at / renders a trigger and a tooltip whose behaviour is driven
by a server-side controller over a websocket. Prometheus metrics are
served on /metrics.

Configuration is read from tooltip.json or tooltip.yaml in the working
directory when present.

Examples:
  tooltip serve
  tooltip serve --port=9000
  tooltip serve --config=examples/bottom.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath, host, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default: tooltip.json or tooltip.yaml)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")

	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.New("T080").Wrap(err)
	}
	if !config.Exists(wd) {
		return config.New(), nil
	}
	return config.Load(wd)
}

func runServe(ctx context.Context, configPath, host string, port int) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if port > 0 {
		cfg.Server.Port = port
	}

	if err := cfg.Validate(); err != nil {
		errors.Print(os.Stderr, err)
		info("continuing with corrected values")
	}

	logger := cfg.Logger(os.Stderr)
	if p := cfg.Path(); p != "" {
		logger.Info("config loaded", "path", filepath.Clean(p))
	}

	scfg := server.DefaultConfig()
	scfg.Address = cfg.Address()
	scfg.Tooltip = cfg.TooltipConfig()
	scfg.Logger = logger

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	success("Playground on http://%s", scfg.Address)
	if err := server.New(scfg).Run(ctx); err != nil {
		return errors.FromError(err, "T080")
	}
	return nil
}
