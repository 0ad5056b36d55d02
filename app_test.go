package folio

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/folio/internal/config"
	ferrors "github.com/vango-dev/folio/internal/errors"
	"github.com/vango-dev/folio/internal/views"
	"github.com/vango-dev/folio/pkg/router"
)

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	app, err := NewApp(cfg,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithRegistry(prometheus.NewRegistry()),
	)
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	return app
}

func TestNewAppDefaults(t *testing.T) {
	app := newTestApp(t, nil)

	if app.Table().Len() != 2 {
		t.Errorf("Table().Len() = %d, want 2", app.Table().Len())
	}
	if app.Profile().Name == "" {
		t.Error("default profile has no name")
	}

	for _, tt := range []struct {
		target string
		status int
	}{
		{"/", http.StatusOK},
		{"/cv", http.StatusOK},
		{"/nope", http.StatusNotFound},
	} {
		rec := httptest.NewRecorder()
		app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
		if rec.Code != tt.status {
			t.Errorf("GET %s status = %d, want %d", tt.target, rec.Code, tt.status)
		}
	}
}

func TestNewAppRouteComponentsAreViews(t *testing.T) {
	app := newTestApp(t, nil)

	r, err := app.Router()
	if err != nil {
		t.Fatalf("Router() error = %v", err)
	}
	if _, err := r.Navigate("/cv"); err != nil {
		t.Fatalf("Navigate(/cv) error = %v", err)
	}
	current, _ := r.Current()
	v, ok := current.Component.(views.View)
	if !ok || v.Name() != "cv" {
		t.Errorf("current component = %T, want the cv view", current.Component)
	}
}

func TestNewAppProfileOverride(t *testing.T) {
	dir := t.TempDir()
	profile := "name: Sam Rivera\nheadline: Site reliability engineer\n"
	if err := os.WriteFile(filepath.Join(dir, "me.yaml"), []byte(profile), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := config.New()
	cfg.Profile = "me.yaml"
	if err := cfg.SaveTo(filepath.Join(dir, config.ConfigFileName)); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	app := newTestApp(t, loaded)
	if app.Profile().Name != "Sam Rivera" {
		t.Errorf("Profile().Name = %q, want Sam Rivera", app.Profile().Name)
	}

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(rec.Body.String(), "Sam Rivera") {
		t.Error("home page does not show the configured profile")
	}
}

func TestNewAppMissingProfile(t *testing.T) {
	cfg := config.New()
	cfg.Profile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := NewApp(cfg, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	var fe *ferrors.FolioError
	if !errors.As(err, &fe) || fe.Code != "E107" {
		t.Fatalf("NewApp() error = %v, want E107", err)
	}
}

func TestNewAppInvalidConfig(t *testing.T) {
	cfg := config.New()
	cfg.Server.Port = 70000

	_, err := NewApp(cfg)
	var fe *ferrors.FolioError
	if !errors.As(err, &fe) || fe.Code != "E102" {
		t.Fatalf("NewApp() error = %v, want E102", err)
	}
}

func TestNewAppHashMode(t *testing.T) {
	cfg := config.New()
	cfg.Router.History = router.HistoryHash
	app := newTestApp(t, cfg)

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(rec.Body.String(), `href="/#/cv"`) {
		t.Error("hash-mode page does not link to /#/cv")
	}
}
