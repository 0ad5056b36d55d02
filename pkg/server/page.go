package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vango-dev/folio/internal/views"
	"github.com/vango-dev/folio/pkg/router"
)

// handlePage serves an initial page load. The location is resolved with a
// fresh router; an unmatched location renders the not-found view with 404.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	rt := s.newRouter()

	ctx, span := s.startNavigationSpan(r.Context(), "folio.page", sourceHTTP,
		attribute.String("http.target", r.URL.RequestURI()))
	nav, err := rt.Start(r.URL.RequestURI())
	endNavigationSpan(span, nav, err)

	status := http.StatusOK
	result := resultFound
	if err != nil {
		status = http.StatusNotFound
		result = resultNotFound
		if !errors.Is(err, router.ErrNotFound) {
			// Malformed locations (e.g., "//host") render as not found too.
			s.logger.Debug("invalid location", "target", r.URL.RequestURI(), "error", err)
		}
	}
	s.metrics.recordNavigation(nav.To.Name, result, sourceHTTP)
	if nav.Location == "" {
		nav.Location = r.URL.Path
	}

	var buf bytes.Buffer
	if err := s.renderPage(ctx, &buf, rt, nav); err != nil {
		s.logger.Error("render failed", "target", r.URL.RequestURI(), "error", err)
		s.metrics.recordNavigation(nav.To.Name, resultError, sourceHTTP)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// renderPage writes the shell with the view for nav.
func (s *Server) renderPage(ctx context.Context, buf *bytes.Buffer, rt *router.Router, nav router.Navigation) error {
	view := s.viewFor(nav)
	shell := views.Shell{
		SiteName:     s.config.SiteName,
		Title:        view.Title(),
		History:      rt.Mode().String(),
		Base:         rt.Base(),
		Route:        nav.To.Name,
		WebSocket:    s.path(WebSocketPath),
		ClientScript: s.path(ClientScriptPath),
		Nav:          s.navItems(rt, nav),
	}

	_, span := s.tracer.Start(ctx, "folio.render")
	defer span.End()

	start := time.Now()
	err := s.config.Views.RenderPage(buf, shell, view, s.viewData(rt, nav))
	s.observeRender(nav, sourceHTTP, start)
	return err
}

// renderFragment renders only the view region for nav.
func (s *Server) renderFragment(rt *router.Router, nav router.Navigation, source string) (views.View, string, error) {
	view := s.viewFor(nav)
	start := time.Now()
	html, err := s.config.Views.Fragment(view, s.viewData(rt, nav))
	s.observeRender(nav, source, start)
	return view, html, err
}

func (s *Server) observeRender(nav router.Navigation, source string, start time.Time) {
	route := nav.To.Name
	if !nav.Found {
		route = notFoundRoute
	}
	s.metrics.renderDuration.WithLabelValues(route, source).Observe(time.Since(start).Seconds())
}

// viewFor returns the view bound to the matched route, or the not-found
// view.
func (s *Server) viewFor(nav router.Navigation) views.View {
	if nav.Found {
		if v, ok := nav.To.Component.(views.View); ok {
			return v
		}
	}
	return s.config.Views.NotFound
}

func (s *Server) viewData(rt *router.Router, nav router.Navigation) views.Data {
	return views.Data{
		Path:    nav.Location,
		Profile: s.config.Profile,
		Hrefs: func(name string) string {
			href, err := rt.Href(name)
			if err != nil {
				return "#"
			}
			return href
		},
	}
}

// navItems lists every route in table order.
func (s *Server) navItems(rt *router.Router, nav router.Navigation) []views.NavItem {
	routes := s.config.Table.Routes()
	items := make([]views.NavItem, 0, len(routes))
	for _, route := range routes {
		label := route.Name
		if v, ok := route.Component.(views.View); ok {
			label = v.Title()
		}
		href, _ := rt.Href(route.Name)
		items = append(items, views.NavItem{
			Name:   route.Name,
			Label:  label,
			Href:   href,
			Active: nav.Found && nav.To.Name == route.Name,
		})
	}
	return items
}
