package server

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/folio/internal/views"
	"github.com/vango-dev/folio/pkg/router"
)

// Reserved paths served by the host itself.
const (
	WebSocketPath    = "/_folio/ws"
	ClientScriptPath = "/_folio/client.js"
	MetricsPath      = "/metrics"
	HealthPath       = "/healthz"
)

// Config configures a Server.
type Config struct {
	// Address is the listen address (e.g., "localhost:3000").
	Address string

	// SiteName is shown in page titles.
	SiteName string

	// Table is the route table. Every route's Component must be a
	// views.View.
	Table *router.Table

	// Views holds the page shell and the not-found view.
	Views *views.Set

	// Profile is the CV content passed to every view.
	Profile *views.Profile

	// History is the history mode used for hrefs and locations.
	History router.HistoryMode

	// Base is the path prefix the site is mounted under.
	Base string

	// Logger is the structured logger. If nil, slog.Default() is used.
	Logger *slog.Logger

	// Metrics enables the Prometheus collectors and the /metrics endpoint.
	Metrics bool

	// MetricsNamespace prefixes metric names (default: "folio").
	MetricsNamespace string

	// Registry receives the collectors. If nil, a fresh registry is used.
	Registry *prometheus.Registry

	// TracerName names the OpenTelemetry tracer (default: "folio").
	TracerName string

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin validates WebSocket origins. Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	// ReadTimeout closes a WebSocket session that sends nothing for this
	// long. The client pings well inside it.
	ReadTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with defaults. Table, Views and Profile
// still need to be set.
func DefaultConfig() *Config {
	return &Config{
		Address:          "localhost:3000",
		SiteName:         "folio",
		History:          router.HistoryPath,
		Metrics:          true,
		MetricsNamespace: "folio",
		TracerName:       "folio",
		ReadBufferSize:   4096,
		WriteBufferSize:  4096,
		CheckOrigin:      SameOriginCheck,
		ReadTimeout:      90 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

// applyDefaults fills zero fields from DefaultConfig.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.SiteName == "" {
		c.SiteName = d.SiteName
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.MetricsNamespace == "" {
		c.MetricsNamespace = d.MetricsNamespace
	}
	if c.Registry == nil {
		c.Registry = prometheus.NewRegistry()
	}
	if c.TracerName == "" {
		c.TracerName = d.TracerName
	}
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = d.ReadBufferSize
	}
	if c.WriteBufferSize == 0 {
		c.WriteBufferSize = d.WriteBufferSize
	}
	if c.CheckOrigin == nil {
		c.CheckOrigin = d.CheckOrigin
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
}

// SameOriginCheck accepts WebSocket requests whose Origin host matches the
// request host, and requests without an Origin header.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := r.Host
	if host == "" {
		return false
	}
	return originURL.Host == host
}
