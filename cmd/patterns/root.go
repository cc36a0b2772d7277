package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/patterns/internal/config"
	"github.com/vango-dev/patterns/internal/errors"
	"github.com/vango-dev/patterns/internal/telemetry"
	"github.com/vango-dev/patterns/pkg/catalog"
)

// app is the state shared by every command once flags are parsed.
type app struct {
	configPath  string
	catalogPath string
	logLevel    string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "patterns",
		Short: "Design patterns you can see and play with",
		Long: `patterns serves an interactive catalog of software design patterns.

Patterns are grouped as creational, structural and behavioral. Each one
has a description, an ASCII diagram and a quick reference. Browse them
in the browser with 'patterns serve' or in the terminal with
'patterns browse'.

Configuration comes from patterns.json (or --config) and PATTERNS_*
environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (default ./patterns.json when present)")
	rootCmd.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "YAML catalog file (default built-in patterns)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		serveCmd(a),
		listCmd(a),
		showCmd(a),
		browseCmd(a),
		configCmd(a),
		versionCmd(),
	)

	return rootCmd
}

// load resolves configuration and applies flag overrides.
func (a *app) load() error {
	cfg, err := config.Resolve(a.configPath)
	if err != nil {
		return err
	}
	if a.catalogPath != "" {
		cfg.Catalog.File = a.catalogPath
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	a.cfg = cfg
	a.logger = telemetry.NewLogger(os.Stderr, cfg.Log)
	slog.SetDefault(a.logger)
	return nil
}

// catalog opens the configured data source.
func (a *app) catalog() (catalog.Service, error) {
	var svc catalog.Service = catalog.Builtin()
	if path := a.cfg.Catalog.File; path != "" {
		static, err := catalog.LoadFile(path)
		if err != nil {
			return nil, errors.New("P002").
				WithDetail("Could not load " + path).
				WithSuggestion("Check the file against the catalog format: a top-level 'patterns' list with id, name and category").
				Wrap(err)
		}
		a.logger.Debug("catalog loaded", "path", path, "patterns", static.Len())
		svc = static
	}
	if latency := a.cfg.Catalog.Latency.Std(); latency > 0 {
		svc = catalog.Delayed(svc, latency)
	}
	return svc, nil
}

// timeout bounds one-shot CLI queries.
const timeout = 30 * time.Second
