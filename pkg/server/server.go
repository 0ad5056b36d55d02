package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/folio/internal/views"
	"github.com/vango-dev/folio/pkg/router"
	"github.com/vango-dev/folio/pkg/routepath"
)

// Server is the HTTP/WebSocket host for the route table.
type Server struct {
	config   *Config
	base     string
	handler  http.Handler
	upgrader websocket.Upgrader
	metrics  *metrics
	tracer   trace.Tracer
	logger   *slog.Logger

	mu         sync.Mutex
	sessions   map[string]*Session
	httpServer *http.Server
}

// New creates a server. The config is copied; zero fields take defaults.
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	c.applyDefaults()

	if c.Table == nil {
		return nil, router.ErrNilTable
	}
	if c.Views == nil {
		return nil, errors.New("server: views are required")
	}
	if c.Profile == nil {
		c.Profile = views.DefaultProfile()
	}
	for _, route := range c.Table.Routes() {
		if _, ok := route.Component.(views.View); !ok {
			return nil, fmt.Errorf("server: route %q component %T is not a views.View", route.Name, route.Component)
		}
	}

	// Validates mode and base once so per-request routers cannot fail.
	h, err := router.NewHistory(c.History, c.Base)
	if err != nil {
		return nil, err
	}

	var reg prometheus.Registerer
	if c.Metrics {
		reg = c.Registry
	}

	s := &Server{
		config: &c,
		base:   h.Base(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  c.ReadBufferSize,
			WriteBufferSize: c.WriteBufferSize,
			CheckOrigin:     c.CheckOrigin,
		},
		metrics:  newMetrics(reg, c.MetricsNamespace),
		tracer:   newTracer(c.TracerName),
		logger:   c.Logger.With("component", "server"),
		sessions: make(map[string]*Session),
	}
	s.handler = s.routes()
	return s, nil
}

// routes builds the chi router.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get(HealthPath, s.handleHealth)
	if s.config.Metrics {
		r.Method(http.MethodGet, MetricsPath, promhttp.HandlerFor(s.config.Registry, promhttp.HandlerOpts{}))
	}
	r.Get(s.path(ClientScriptPath), s.handleClientScript)
	r.Get(s.path(WebSocketPath), s.HandleWebSocket)
	r.Get("/*", s.handlePage)

	return r
}

// path places a reserved path under the base.
func (s *Server) path(p string) string {
	return routepath.JoinBase(s.base, p)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Config returns the effective configuration.
func (s *Server) Config() *Config {
	return s.config
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// newRouter creates the router for one page load or UI session.
func (s *Server) newRouter() *router.Router {
	r, err := router.New(s.config.Table,
		router.WithHistory(s.config.History),
		router.WithBase(s.config.Base),
		router.WithLogger(s.config.Logger),
	)
	if err != nil {
		// New validated the table, mode and base.
		panic(fmt.Sprintf("server: router: %v", err))
	}
	return r
}

// ListenAndServe listens on the configured address and serves until ctx
// is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String(), "history", s.config.History.String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every WebSocket session and gracefully stops the HTTP
// server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.closeSessions()

	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()

	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// SessionCount returns the number of open WebSocket sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) addSession(sess *Session) {
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	s.metrics.activeSessions.Inc()
	s.metrics.sessionsTotal.Inc()
}

func (s *Server) removeSession(sess *Session) {
	s.mu.Lock()
	_, ok := s.sessions[sess.ID]
	delete(s.sessions, sess.ID)
	s.mu.Unlock()
	if ok {
		s.metrics.activeSessions.Dec()
	}
}

func (s *Server) closeSessions() {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// logRequests logs each request with its status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			// Hijacked (WebSocket upgrade) or nothing written.
			status = http.StatusSwitchingProtocols
		}
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
