package folio

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/folio/internal/config"
	"github.com/vango-dev/folio/internal/errors"
	"github.com/vango-dev/folio/internal/views"
	"github.com/vango-dev/folio/pkg/router"
	"github.com/vango-dev/folio/pkg/server"
)

// App is the site: configuration, views, the route table and the host.
type App struct {
	config  *config.Config
	logger  *slog.Logger
	views   *views.Set
	profile *views.Profile
	table   *router.Table
	server  *server.Server
}

// AppOption configures an App.
type AppOption func(*appOptions)

type appOptions struct {
	logger   *slog.Logger
	registry *prometheus.Registry
}

// WithLogger sets the logger. By default the logger described by the
// configuration is used, writing to stderr.
func WithLogger(logger *slog.Logger) AppOption {
	return func(o *appOptions) {
		o.logger = logger
	}
}

// WithRegistry sets the Prometheus registry the server registers its
// collectors with.
func WithRegistry(reg *prometheus.Registry) AppOption {
	return func(o *appOptions) {
		o.registry = reg
	}
}

// NewApp builds the site from cfg. A nil cfg uses defaults.
func NewApp(cfg *config.Config, opts ...AppOption) (*App, error) {
	if cfg == nil {
		cfg = config.New()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = cfg.NewLogger(os.Stderr)
	}

	set, err := views.NewSet()
	if err != nil {
		return nil, err
	}

	profile := views.DefaultProfile()
	if path := cfg.ProfilePath(); path != "" {
		profile, err = views.LoadProfile(path)
		if err != nil {
			return nil, errors.New("E107").
				WithDetail("Profile: " + path).
				WithSuggestion("Check the profile path in folio.json or remove it to use the built-in profile").
				Wrap(err)
		}
	}

	table, err := NewTable(set.Home, set.CV)
	if err != nil {
		return nil, errors.FromRouteError(err)
	}

	srv, err := server.New(&server.Config{
		Address:          cfg.Address(),
		SiteName:         profile.Name,
		Table:            table,
		Views:            set,
		Profile:          profile,
		History:          cfg.Router.History,
		Base:             cfg.Router.Base,
		Logger:           logger,
		Metrics:          cfg.Metrics.Enabled,
		MetricsNamespace: cfg.Metrics.Namespace,
		Registry:         o.registry,
		TracerName:       cfg.Name,
		ShutdownTimeout:  cfg.ShutdownTimeout(),
	})
	if err != nil {
		return nil, errors.FromRouteError(err)
	}

	return &App{
		config:  cfg,
		logger:  logger,
		views:   set,
		profile: profile,
		table:   table,
		server:  srv,
	}, nil
}

// Config returns the configuration.
func (a *App) Config() *config.Config {
	return a.config
}

// Table returns the route table.
func (a *App) Table() *router.Table {
	return a.table
}

// Profile returns the CV content.
func (a *App) Profile() *views.Profile {
	return a.profile
}

// Server returns the HTTP/WebSocket host.
func (a *App) Server() *server.Server {
	return a.server
}

// Handler returns the HTTP handler.
func (a *App) Handler() http.Handler {
	return a.server.Handler()
}

// Router returns a router over the route table configured like the
// server's, starting with no current route.
func (a *App) Router() (*router.Router, error) {
	return router.New(a.table,
		router.WithHistory(a.config.Router.History),
		router.WithBase(a.config.Router.Base),
		router.WithLogger(a.logger),
	)
}

// Run serves until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("serving", "url", a.config.URL(), "routes", a.table.Len())
	if err := a.server.ListenAndServe(ctx); err != nil {
		return errors.New("E300").
			WithDetail("Address: " + a.config.Address()).
			WithSuggestion("Choose another port with --port").
			Wrap(err)
	}
	return nil
}
