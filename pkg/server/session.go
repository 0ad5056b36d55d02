package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vango-dev/folio/pkg/router"
)

// Client message types.
const (
	msgStart    = "start"
	msgNavigate = "navigate"
	msgBack     = "back"
	msgForward  = "forward"
	msgPing     = "ping"
)

// Server message types.
const (
	msgHello  = "hello"
	msgRender = "render"
	msgError  = "error"
	msgPong   = "pong"
)

const (
	maxMessageSize = 16 * 1024
	writeWait      = 10 * time.Second
)

// clientMessage is a message from the thin client.
type clientMessage struct {
	Type    string `json:"type"`
	Path    string `json:"path,omitempty"`
	Href    string `json:"href,omitempty"`
	Replace bool   `json:"replace,omitempty"`
}

// serverMessage is a message to the thin client.
type serverMessage struct {
	Type string `json:"type"`

	// hello
	Session string `json:"session,omitempty"`
	History string `json:"history,omitempty"`
	Base    string `json:"base,omitempty"`

	// render
	Route        string `json:"route,omitempty"`
	Location     string `json:"location,omitempty"`
	Href         string `json:"href,omitempty"`
	Navigation   string `json:"navigation,omitempty"`
	Found        bool   `json:"found,omitempty"`
	Title        string `json:"title,omitempty"`
	HTML         string `json:"html,omitempty"`
	CanGoBack    bool   `json:"canGoBack,omitempty"`
	CanGoForward bool   `json:"canGoForward,omitempty"`

	// error
	Message string `json:"message,omitempty"`
}

// Session is one WebSocket UI session with its own router.
type Session struct {
	ID string

	server *Server
	conn   *websocket.Conn
	router *router.Router
	logger *slog.Logger

	writeMu     sync.Mutex
	closeOnce   sync.Once
	unsubscribe func()
}

// Router returns the session's router.
func (sess *Session) Router() *router.Router {
	return sess.router
}

// HandleWebSocket upgrades the connection and runs a navigation session
// until the client goes away.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		s.metrics.wsErrors.WithLabelValues("upgrade").Inc()
		return
	}
	conn.SetReadLimit(maxMessageSize)

	id := uuid.New().String()
	sess := &Session{
		ID:     id,
		server: s,
		conn:   conn,
		router: s.newRouter(),
		logger: s.logger.With("session", id),
	}
	sess.unsubscribe = sess.router.Subscribe(sess.onNavigate)

	s.addSession(sess)
	defer func() {
		s.removeSession(sess)
		sess.Close()
	}()

	sess.logger.Info("session opened", "remote", r.RemoteAddr)
	if err := sess.send(serverMessage{
		Type:    msgHello,
		Session: id,
		History: sess.router.Mode().String(),
		Base:    sess.router.Base(),
	}); err != nil {
		sess.logger.Debug("hello write failed", "error", err)
		return
	}

	sess.readLoop(r.Context())
}

// readLoop reads client messages until the connection closes.
func (sess *Session) readLoop(ctx context.Context) {
	timeout := sess.server.config.ReadTimeout
	for {
		if err := sess.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			sess.logger.Debug("set read deadline failed", "error", err)
			sess.server.metrics.wsErrors.WithLabelValues("read").Inc()
			return
		}
		_, data, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				sess.logger.Warn("session read failed", "error", err)
				sess.server.metrics.wsErrors.WithLabelValues("read").Inc()
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			sess.server.metrics.wsErrors.WithLabelValues("decode").Inc()
			sess.sendError(fmt.Sprintf("invalid message: %v", err))
			continue
		}

		if err := sess.handle(ctx, msg); err != nil {
			sess.logger.Debug("session write failed", "error", err)
			return
		}
	}
}

// handle dispatches one client message. Only write failures are returned.
func (sess *Session) handle(ctx context.Context, msg clientMessage) error {
	switch msg.Type {
	case msgPing:
		return sess.send(serverMessage{Type: msgPong})

	case msgStart:
		return sess.navigate(ctx, msg.Type, msg.Href, func() (router.Navigation, error) {
			return sess.router.Start(msg.Href)
		})

	case msgNavigate:
		location := msg.Path
		if location == "" && msg.Href != "" {
			loc, ok := sess.router.LocationFor(msg.Href)
			if !ok {
				return sess.renderMiss(msg.Href)
			}
			location = loc
		}
		var opts []router.NavigateOption
		if msg.Replace {
			opts = append(opts, router.WithReplace())
		}
		return sess.navigate(ctx, msg.Type, location, func() (router.Navigation, error) {
			return sess.router.Navigate(location, opts...)
		})

	case msgBack:
		return sess.navigate(ctx, msg.Type, "", sess.router.Back)

	case msgForward:
		return sess.navigate(ctx, msg.Type, "", sess.router.Forward)

	default:
		return sess.sendError(fmt.Sprintf("unknown message type %q", msg.Type))
	}
}

// navigate runs op inside a span. Matched and unmatched navigations are
// rendered by onNavigate; other failures become error messages.
func (sess *Session) navigate(ctx context.Context, typ, target string, op func() (router.Navigation, error)) error {
	_, span := sess.server.startNavigationSpan(ctx, "folio.navigate", sourceWS,
		attribute.String("folio.message", typ),
		attribute.String("folio.target", target),
		attribute.String("folio.session", sess.ID),
	)
	nav, err := op()
	endNavigationSpan(span, nav, err)

	switch {
	case err == nil:
		sess.server.metrics.recordNavigation(nav.To.Name, resultFound, sourceWS)
		return nil

	case errors.Is(err, router.ErrNotFound):
		sess.server.metrics.recordNavigation("", resultNotFound, sourceWS)
		if nav.Location == "" {
			// Start with an href outside the base: nothing was recorded.
			return sess.renderMiss(target)
		}
		return nil

	default:
		sess.server.metrics.recordNavigation("", resultError, sourceWS)
		return sess.sendError(err.Error())
	}
}

// onNavigate renders every navigation the router commits.
func (sess *Session) onNavigate(nav router.Navigation) {
	if err := sess.sendRender(nav); err != nil {
		sess.logger.Debug("render write failed", "error", err)
	}
}

// renderMiss renders the not-found view for an href the router could not
// place in history.
func (sess *Session) renderMiss(href string) error {
	return sess.sendRender(router.Navigation{Location: href, Href: href})
}

func (sess *Session) sendRender(nav router.Navigation) error {
	view, html, err := sess.server.renderFragment(sess.router, nav, sourceWS)
	if err != nil {
		sess.logger.Error("render failed", "location", nav.Location, "error", err)
		sess.server.metrics.wsErrors.WithLabelValues("render").Inc()
		return sess.sendError("render failed")
	}

	return sess.send(serverMessage{
		Type:         msgRender,
		Route:        nav.To.Name,
		Location:     nav.Location,
		Href:         nav.Href,
		Navigation:   nav.Type.String(),
		Found:        nav.Found,
		Title:        view.Title(),
		HTML:         html,
		CanGoBack:    sess.router.CanGoBack(),
		CanGoForward: sess.router.CanGoForward(),
	})
}

func (sess *Session) sendError(message string) error {
	return sess.send(serverMessage{Type: msgError, Message: message})
}

// send writes one JSON message.
func (sess *Session) send(msg serverMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	if err := sess.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		sess.server.metrics.wsErrors.WithLabelValues("write").Inc()
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := sess.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		sess.server.metrics.wsErrors.WithLabelValues("write").Inc()
		return fmt.Errorf("write %s: %w", msg.Type, err)
	}
	return nil
}

// Close ends the session. It is safe to call more than once.
func (sess *Session) Close() {
	sess.closeOnce.Do(func() {
		if sess.unsubscribe != nil {
			sess.unsubscribe()
		}

		sess.writeMu.Lock()
		_ = sess.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		sess.writeMu.Unlock()
		sess.conn.Close()

		sess.logger.Info("session closed")
	})
}
