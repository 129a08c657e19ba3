package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/luminett/booking-api/internal/core/domain"
)

func startHubServer(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub(zerolog.Nop())
	e := echo.New()
	e.GET("/ws", hub.Handle)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	t.Cleanup(hub.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dialAndWait(t *testing.T, hub *Hub, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// The session registers just after the handshake completes.
	deadline := time.Now().Add(2 * time.Second)
	for hub.sessionCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("session never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func TestHubBroadcastReachesSubscriber(t *testing.T) {
	hub, url := startHubServer(t)
	conn := dialAndWait(t, hub, url)

	hub.Broadcast(domain.ChangeEvent{
		Name: domain.EventNewOrder,
		Data: map[string]any{"id": 1},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got domain.ChangeEvent
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Name != domain.EventNewOrder {
		t.Fatalf("expected %q, got %q", domain.EventNewOrder, got.Name)
	}
}

func TestHubBroadcastFansOutToAllSubscribers(t *testing.T) {
	hub, url := startHubServer(t)
	first := dialAndWait(t, hub, url)

	second, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial second: %v", err)
	}
	t.Cleanup(func() { second.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for hub.sessionCount() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("second session never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.Broadcast(domain.ChangeEvent{Name: domain.EventOrderUpdated, Data: nil})

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var got domain.ChangeEvent
		if err := conn.ReadJSON(&got); err != nil {
			t.Fatalf("read: %v", err)
		}
		if got.Name != domain.EventOrderUpdated {
			t.Fatalf("expected %q, got %q", domain.EventOrderUpdated, got.Name)
		}
	}
}

func TestHubDropsDisconnectedSubscriber(t *testing.T) {
	hub, url := startHubServer(t)
	conn := dialAndWait(t, hub, url)

	conn.Close()

	// The first write after the close fails and evicts the session.
	deadline := time.Now().Add(2 * time.Second)
	for hub.sessionCount() > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("dead session never evicted")
		}
		hub.Broadcast(domain.ChangeEvent{Name: domain.EventOrderDeleted, Data: nil})
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHubShedsSlowConsumer(t *testing.T) {
	hub, url := startHubServer(t)
	healthy := dialAndWait(t, hub, url)

	// A session whose backlog is already full and whose writer never drains.
	stuck := &session{send: make(chan []byte, 1)}
	stuck.send <- []byte(`{}`)
	hub.add(stuck)

	start := time.Now()
	hub.Broadcast(domain.ChangeEvent{Name: domain.EventNewOrder, Data: nil})
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("broadcast blocked on stuck session for %s", elapsed)
	}

	// The healthy session is unaffected by its stuck neighbour.
	healthy.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got domain.ChangeEvent
	if err := healthy.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Name != domain.EventNewOrder {
		t.Fatalf("expected %q, got %q", domain.EventNewOrder, got.Name)
	}

	// The stuck one was evicted and its channel closed.
	if hub.sessionCount() != 1 {
		t.Fatalf("expected stuck session evicted, have %d sessions", hub.sessionCount())
	}
	<-stuck.send
	if _, open := <-stuck.send; open {
		t.Fatalf("send channel left open after eviction")
	}
}

func TestHubBroadcastWithoutSubscribersIsNoop(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	// Must not panic or block.
	hub.Broadcast(domain.ChangeEvent{Name: domain.EventNewQuote, Data: nil})
}

func TestHubRejectsPlainHTTP(t *testing.T) {
	_, url := startHubServer(t)

	resp, err := http.Get("http" + strings.TrimPrefix(url, "ws"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-upgrade request, got %d", resp.StatusCode)
	}
}
