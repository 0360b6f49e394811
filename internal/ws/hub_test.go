package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"palauncher/internal/domain"
)

func readEvent(t *testing.T, conn *websocket.Conn) domain.Event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	var event domain.Event
	if err := json.Unmarshal(msg, &event); err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	return event
}

func TestHistoryReplayThenLiveBroadcast(t *testing.T) {
	hub := NewHub(8)
	go hub.Run()
	defer hub.Stop()

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer srv.Close()

	hub.Emit(domain.EventUpdateProgress, "Downloading app...")

	// The emit is async; wait for the hub loop to record it before
	// connecting so the client must receive it through replay.
	deadline := time.Now().Add(time.Second)
	for {
		hub.mu.RLock()
		recorded := len(hub.history)
		hub.mu.RUnlock()
		if recorded == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("event never reached the history buffer")
		}
		time.Sleep(5 * time.Millisecond)
	}

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	replayed := readEvent(t, conn)
	if replayed.Type != domain.EventUpdateProgress {
		t.Errorf("expected replayed %s event, got %s", domain.EventUpdateProgress, replayed.Type)
	}
	if replayed.Data != "Downloading app..." {
		t.Errorf("unexpected replayed payload: %v", replayed.Data)
	}

	// Receiving the replay means the client is registered; a fresh emit
	// must now arrive live.
	hub.Emit(domain.EventServerStarted, nil)

	live := readEvent(t, conn)
	if live.Type != domain.EventServerStarted {
		t.Errorf("expected live %s event, got %s", domain.EventServerStarted, live.Type)
	}
}
