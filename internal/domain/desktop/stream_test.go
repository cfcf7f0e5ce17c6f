package desktop

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/webtop-os/backend/internal/shared/types"
)

func TestStreamTriggersImmediatePoll(t *testing.T) {
	svc := &fakeBroadcastSvc{}
	d := newTestDesktop(t, svc)
	login(t, d, "formateur1", "01012000")

	upgrader := websocket.Upgrader{}
	connected := make(chan *websocket.Conn, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		connected <- conn
	}))
	defer ts.Close()

	stream := NewStream("ws"+strings.TrimPrefix(ts.URL, "http"), d, nil)
	stream.Start()
	defer stream.Stop()

	var conn *websocket.Conn
	select {
	case conn = <-connected:
	case <-time.After(2 * time.Second):
		t.Fatal("stream never connected")
	}
	defer conn.Close()

	// The watchdog polls hourly in this test, so only the push can make the
	// broadcast appear.
	svc.setActive(&types.Broadcast{ID: "b1", Title: "Maintenance", IsActive: true})
	if err := conn.WriteJSON(map[string]string{"type": "broadcast_created"}); err != nil {
		t.Fatalf("write event: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for d.ActiveBroadcast() == nil {
		if time.Now().After(deadline) {
			t.Fatal("push event never triggered a poll")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStreamIgnoresUnknownEvents(t *testing.T) {
	svc := &fakeBroadcastSvc{}
	d := newTestDesktop(t, svc)
	login(t, d, "formateur1", "01012000")

	upgrader := websocket.Upgrader{}
	connected := make(chan *websocket.Conn, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		connected <- conn
	}))
	defer ts.Close()

	stream := NewStream("ws"+strings.TrimPrefix(ts.URL, "http"), d, nil)
	stream.Start()
	defer stream.Stop()

	conn := <-connected
	defer conn.Close()

	svc.setActive(&types.Broadcast{ID: "b1", IsActive: true})
	conn.WriteJSON(map[string]string{"type": "user_updated"})

	time.Sleep(50 * time.Millisecond)
	if d.ActiveBroadcast() != nil {
		t.Error("expected unknown event types to be ignored")
	}
}
