// Package ws implements the live-update fanout channel for admin dashboards.
// Connected sessions receive every change event; delivery is best effort and a
// slow or dead session is dropped rather than allowed to stall the broadcast.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/luminett/booking-api/internal/api/metrics"
	"github.com/luminett/booking-api/internal/core/domain"
)

const (
	writeTimeout = 5 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 45 * time.Second

	// sendBuffer bounds the per-session backlog. A session that falls this
	// far behind is evicted instead of backing up the broadcaster.
	sendBuffer = 32
)

// session is one connected dashboard. The writer goroutine is the only one
// allowed to touch conn for writes; everyone else goes through send.
type session struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected websocket sessions and fans change events out to them.
// It implements ports.Notifier. Broadcast never blocks on a session: each
// session has a buffered send channel drained by its own writer goroutine.
type Hub struct {
	log      zerolog.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[*session]struct{}
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		log: log.With().Str("component", "ws-hub").Logger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Dashboard and API are served from different origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sessions: make(map[*session]struct{}),
	}
}

// Handle upgrades GET /ws to a websocket session. The Auth middleware has
// already validated the token by the time this runs.
func (h *Hub) Handle(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		return nil
	}

	s := &session{conn: conn, send: make(chan []byte, sendBuffer)}
	h.add(s)
	h.log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("websocket session opened")

	go h.writeLoop(s)
	h.readLoop(s)
	return nil
}

// Broadcast queues the event on every connected session. It never returns an
// error and never blocks on a connection; sessions whose backlog is full are
// evicted.
func (h *Hub) Broadcast(event domain.ChangeEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Str("event", event.Name).Msg("failed to encode change event")
		return
	}

	var dropped []*session
	h.mu.Lock()
	for s := range h.sessions {
		select {
		case s.send <- payload:
		default:
			delete(h.sessions, s)
			metrics.WebsocketSessions.Dec()
			dropped = append(dropped, s)
		}
	}
	h.mu.Unlock()

	// Closing send outside the lock tells each writer goroutine to shut the
	// connection down.
	for _, s := range dropped {
		h.log.Debug().Msg("dropping websocket session with full backlog")
		close(s.send)
	}
}

// Close terminates all sessions, typically during shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	closing := make([]*session, 0, len(h.sessions))
	for s := range h.sessions {
		delete(h.sessions, s)
		metrics.WebsocketSessions.Dec()
		closing = append(closing, s)
	}
	h.mu.Unlock()

	for _, s := range closing {
		close(s.send)
	}
}

// sessionCount reports the number of live sessions.
func (h *Hub) sessionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

func (h *Hub) add(s *session) {
	h.mu.Lock()
	h.sessions[s] = struct{}{}
	h.mu.Unlock()
	metrics.WebsocketSessions.Inc()
}

// evict removes the session and closes its send channel exactly once. The
// delete-then-close order matters: Broadcast only sends to sessions still in
// the map, and does so while holding the same mutex.
func (h *Hub) evict(s *session) {
	h.mu.Lock()
	_, open := h.sessions[s]
	if open {
		delete(h.sessions, s)
		metrics.WebsocketSessions.Dec()
	}
	h.mu.Unlock()

	if open {
		close(s.send)
	}
}

// writeLoop owns all writes to the connection, including pings, and closes it
// on the way out. It ends when the session is evicted (send closed) or a
// write fails.
func (h *Hub) writeLoop(s *session) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-s.send:
			if !ok {
				s.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "connection closed by server"),
					time.Now().Add(writeTimeout))
				return
			}
			s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.log.Debug().Err(err).Str("remote", s.conn.RemoteAddr().String()).
					Msg("dropping websocket session after failed write")
				h.evict(s)
				return
			}
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				h.evict(s)
				return
			}
		}
	}
}

// readLoop drains inbound frames so ping/pong and close handshakes are
// processed. Clients do not send application messages on this channel.
func (h *Hub) readLoop(s *session) {
	defer h.evict(s)

	s.conn.SetReadLimit(512)
	s.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}
