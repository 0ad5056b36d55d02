package config

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/folio/internal/errors"
	"github.com/vango-dev/folio/pkg/router"
	"github.com/vango-dev/folio/pkg/routepath"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "folio.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = "10s"

	// DefaultMetricsNamespace prefixes every exported metric.
	DefaultMetricsNamespace = "folio"
)

// Config represents the complete folio.json configuration.
type Config struct {
	// Name is the site name, shown in page titles.
	Name string `json:"name,omitempty"`

	// Server contains HTTP server configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Router contains navigation configuration.
	Router RouterConfig `json:"router,omitempty"`

	// Profile is the path to the CV profile YAML file, relative to the
	// config file. Empty uses the built-in profile.
	Profile string `json:"profile,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`

	// ShutdownTimeout is a Go duration string (e.g., "10s").
	ShutdownTimeout string `json:"shutdownTimeout,omitempty"`
}

// RouterConfig contains navigation configuration.
type RouterConfig struct {
	// History is the history mode: "path" (default) or "hash".
	History router.HistoryMode `json:"history"`

	// Base is the path prefix the site is mounted under.
	Base string `json:"base,omitempty"`
}

// MetricsConfig contains Prometheus configuration.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled"`
	Namespace string `json:"namespace,omitempty"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty"`
}

// New returns a configuration with defaults.
func New() *Config {
	return &Config{
		Name: "folio",
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Router: RouterConfig{
			History: router.HistoryPath,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultMetricsNamespace,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for folio.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadOrDefault is like Load but returns defaults when the directory has
// no folio.json.
func LoadOrDefault(dir string) (*Config, error) {
	if !Exists(dir) {
		return New(), nil
	}
	return Load(dir)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail("No folio.json found in " + filepath.Dir(path)).
				WithSuggestion("Create folio.json or run without --config to use defaults")
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		if stderrors.Is(err, router.ErrUnknownHistoryMode) {
			return nil, errors.New("E103").
				Wrap(err).
				WithSuggestion(`Set "router": {"history": "path"} or {"history": "hash"}`)
		}
		return nil, errors.New("E101").
			WithDetail("Failed to parse folio.json: " + err.Error()).
			WithSuggestion("Check that folio.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E101").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E101").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "folio"
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsNamespace
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E102").
			WithDetail("Port must be between 0 and 65535, got " + strconv.Itoa(c.Server.Port))
	}
	if _, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil {
		return errors.New("E101").
			WithDetail(`"server.shutdownTimeout" is not a duration`).
			Wrap(err)
	}
	if _, err := router.ParseHistoryMode(c.Router.History.String()); err != nil {
		return errors.New("E103").Wrap(err)
	}
	if _, err := routepath.NormalizeBase(c.Router.Base); err != nil {
		return errors.New("E106").Wrap(err)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return errors.New("E105").
			WithDetail(`Unknown log format "` + c.Log.Format + `"`)
	}
	return nil
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// URL returns the base URL of the running site.
func (c *Config) URL() string {
	base, _ := routepath.NormalizeBase(c.Router.Base)
	return "http://" + c.Address() + base + "/"
}

// ShutdownTimeout returns the parsed shutdown timeout.
func (c *Config) ShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// ProfilePath returns the absolute path of the profile file, resolved
// against the config directory, or "" if none is configured.
func (c *Config) ProfilePath() string {
	if c.Profile == "" {
		return ""
	}
	if filepath.IsAbs(c.Profile) || c.configPath == "" {
		return c.Profile
	}
	return filepath.Join(c.Dir(), c.Profile)
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, errors.New("E104").
			WithDetail(`Unknown log level "` + c.Log.Level + `"`).
			Wrap(err)
	}
	return level, nil
}

// NewLogger builds the structured logger described by the configuration.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.LogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(c.Log.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("app", c.Name)
}

// Exists checks if a folio.json exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}
