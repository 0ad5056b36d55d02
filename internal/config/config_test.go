package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/folio/pkg/router"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Router.History != router.HistoryPath {
		t.Errorf("Router.History = %v, want path", cfg.Router.History)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Namespace != DefaultMetricsNamespace {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Test loading non-existent config
	_, err := Load(tmpDir)
	if err == nil || !strings.Contains(err.Error(), "E100") {
		t.Errorf("Expected E100 for missing config, got %v", err)
	}

	dir := writeConfig(t, `{
  "name": "jane",
  "server": {
    "host": "0.0.0.0",
    "port": 8080
  },
  "router": {
    "history": "hash",
    "base": "/site/"
  },
  "profile": "me.yaml",
  "metrics": {
    "enabled": false
  },
  "log": {
    "level": "debug",
    "format": "json"
  }
}
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Name != "jane" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Server.Port != 8080 || cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Router.History != router.HistoryHash {
		t.Errorf("Router.History = %v, want hash", cfg.Router.History)
	}
	if cfg.Router.Base != "/site/" {
		t.Errorf("Router.Base = %q", cfg.Router.Base)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be false")
	}
	if cfg.Metrics.Namespace != DefaultMetricsNamespace {
		t.Errorf("Metrics.Namespace = %q, want default", cfg.Metrics.Namespace)
	}
	if cfg.ShutdownTimeout() != 10*time.Second {
		t.Errorf("ShutdownTimeout() = %v", cfg.ShutdownTimeout())
	}
	if cfg.ProfilePath() != filepath.Join(dir, "me.yaml") {
		t.Errorf("ProfilePath() = %q", cfg.ProfilePath())
	}
	if cfg.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), dir)
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOrDefault error: %v", err)
	}
	if cfg.Path() != "" || cfg.Server.Port != DefaultPort {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode string
	}{
		{name: "invalid json", content: "not valid json", wantCode: "E101"},
		{name: "bad port", content: `{"server":{"port":70000}}`, wantCode: "E102"},
		{name: "bad history", content: `{"router":{"history":"memory"}}`, wantCode: "E103"},
		{name: "bad log level", content: `{"log":{"level":"loud"}}`, wantCode: "E104"},
		{name: "bad log format", content: `{"log":{"format":"xml"}}`, wantCode: "E105"},
		{name: "bad base", content: `{"router":{"base":"/../x"}}`, wantCode: "E106"},
		{name: "bad timeout", content: `{"server":{"shutdownTimeout":"soon"}}`, wantCode: "E101"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeConfig(t, tt.content)
			_, err := Load(dir)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantCode) {
				t.Errorf("expected %s error, got: %v", tt.wantCode, err)
			}
		})
	}
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	cfg.Server.Port = 9000
	cfg.Router.History = router.HistoryHash

	// Save should fail without configPath set
	if err := cfg.Save(); err == nil {
		t.Error("Expected error when saving without path")
	}

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"history": "hash"`) {
		t.Errorf("saved config should spell the history mode:\n%s", data)
	}

	loaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want %d", loaded.Server.Port, 9000)
	}
	if loaded.Router.History != router.HistoryHash {
		t.Errorf("Router.History = %v", loaded.Router.History)
	}
	if err := loaded.Save(); err != nil {
		t.Errorf("Save after load failed: %v", err)
	}
}

func TestAddressAndURL(t *testing.T) {
	cfg := New()
	if cfg.Address() != "localhost:3000" {
		t.Errorf("Address() = %q", cfg.Address())
	}
	if cfg.URL() != "http://localhost:3000/" {
		t.Errorf("URL() = %q", cfg.URL())
	}

	cfg.Server.Host = "::1"
	cfg.Router.Base = "site"
	if cfg.Address() != "[::1]:3000" {
		t.Errorf("Address() = %q", cfg.Address())
	}
	if cfg.URL() != "http://[::1]:3000/site/" {
		t.Errorf("URL() = %q", cfg.URL())
	}
}

func TestProfilePath(t *testing.T) {
	cfg := New()
	if cfg.ProfilePath() != "" {
		t.Errorf("ProfilePath() = %q, want empty", cfg.ProfilePath())
	}
	cfg.Profile = "rel.yaml"
	if cfg.ProfilePath() != "rel.yaml" {
		t.Errorf("ProfilePath() without config dir = %q", cfg.ProfilePath())
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	cfg := New()
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"
	logger := cfg.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "route", "cv")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info should be filtered at warn level")
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"app":"folio"`) {
		t.Errorf("unexpected log output: %s", out)
	}

	level, err := cfg.LogLevel()
	if err != nil || level != slog.LevelWarn {
		t.Errorf("LogLevel() = %v, %v", level, err)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	if Exists(dir) {
		t.Error("Exists should be false for empty dir")
	}
	dir = writeConfig(t, "{}")
	if !Exists(dir) {
		t.Error("Exists should be true after writing folio.json")
	}
}
