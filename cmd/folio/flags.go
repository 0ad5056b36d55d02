package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vango-dev/folio"
	"github.com/vango-dev/folio/internal/config"
	"github.com/vango-dev/folio/internal/errors"
	"github.com/vango-dev/folio/pkg/router"
)

// siteFlags are the flags shared by every command that builds the site.
type siteFlags struct {
	configDir string
	history   string
	base      string
}

func (f *siteFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configDir, "config", "c", ".", "Directory containing folio.json")
	cmd.Flags().StringVar(&f.history, "history", "", "History mode: path or hash (default from folio.json)")
	cmd.Flags().StringVar(&f.base, "base", "", "Path prefix the site is mounted under (default from folio.json)")
}

// load reads folio.json, falling back to defaults when there is none, and
// applies the flag overrides.
func (f *siteFlags) load() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(f.configDir)
	if err != nil {
		return nil, err
	}

	if f.history != "" {
		mode, err := router.ParseHistoryMode(f.history)
		if err != nil {
			return nil, errors.FromRouteError(err).
				WithSuggestion("Use --history=path or --history=hash")
		}
		cfg.Router.History = mode
	}
	if f.base != "" {
		cfg.Router.Base = f.base
	}
	return cfg, cfg.Validate()
}

// app builds the site quietly, for commands that do not serve.
func (f *siteFlags) app() (*folio.App, error) {
	cfg, err := f.load()
	if err != nil {
		return nil, err
	}
	cfg.Metrics.Enabled = false
	return folio.NewApp(cfg, folio.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}
