package live

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"playlist-manager/internal/view"

	"github.com/gorilla/websocket"
)

type inputRecorder struct {
	mu     sync.Mutex
	inputs []view.Input
	got    chan struct{}
}

func newInputRecorder() *inputRecorder {
	return &inputRecorder{got: make(chan struct{}, 16)}
}

func (r *inputRecorder) Dispatch(_ context.Context, in view.Input) error {
	r.mu.Lock()
	r.inputs = append(r.inputs, in)
	r.mu.Unlock()
	r.got <- struct{}{}
	return nil
}

// resyncRecorder answers every new connection with ops.
type resyncRecorder struct {
	*inputRecorder
	ops []view.Op
}

func (r *resyncRecorder) Resync(_ context.Context, send func([]view.Op)) error {
	send(r.ops)
	return nil
}

func dial(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	waitFor(t, func() bool { return hub.Clients() == 1 })
	return conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// =============================================================================
// Hub Tests
// =============================================================================

func TestHubBroadcastsOps(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	conn := dial(t, hub)

	hub.Apply(
		view.Op{Action: view.ActionTitle, Text: "Mix | SoundCloud Playlist"},
		view.Op{Action: view.ActionToggleClass, Target: "#t1", Class: "playing", On: true},
	)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if len(msg.Ops) != 2 || msg.Ops[0].Text != "Mix | SoundCloud Playlist" || !msg.Ops[1].On {
		t.Errorf("unexpected message: %+v", msg)
	}
}

func TestHubApplyWithoutOps(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	conn := dial(t, hub)

	hub.Apply()
	hub.Apply(view.Op{Action: view.ActionShow, Target: "#x"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if len(msg.Ops) != 1 || msg.Ops[0].Action != view.ActionShow {
		t.Errorf("empty Apply must not send, first message = %+v", msg)
	}
}

func TestHubForwardsInput(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	rec := newInputRecorder()
	hub.SetHandler(rec)
	conn := dial(t, hub)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(view.Input{Kind: view.InputWidget, ID: "t1", Event: "finish"}); err != nil {
		t.Fatal(err)
	}

	select {
	case <-rec.got:
	case <-time.After(2 * time.Second):
		t.Fatal("input never dispatched")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.inputs) != 1 || rec.inputs[0].Event != "finish" || rec.inputs[0].ID != "t1" {
		t.Errorf("inputs = %+v", rec.inputs)
	}
}

func TestHubResyncsNewClient(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	hub.SetHandler(&resyncRecorder{
		inputRecorder: newInputRecorder(),
		ops:           []view.Op{{Action: view.ActionReplace, Target: "#t1-player", HTML: "<div></div>"}},
	})
	conn := dial(t, hub)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var first Message
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatal(err)
	}
	if len(first.Ops) != 1 || first.Ops[0].Target != "#t1-player" {
		t.Errorf("first message should be the resync, got %+v", first)
	}

	// Broadcasts still reach the client afterwards.
	hub.Apply(view.Op{Action: view.ActionShow, Target: "#later"})
	var second Message
	if err := conn.ReadJSON(&second); err != nil {
		t.Fatal(err)
	}
	if len(second.Ops) != 1 || second.Ops[0].Target != "#later" {
		t.Errorf("second message = %+v", second)
	}
}

func TestHubSendToSkipsGoneClient(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	c := &client{hub: hub, send: make(chan []byte, 1), addr: "gone"}
	hub.add(c)
	hub.remove(c)

	hub.sendTo(c, []byte(`{"ops":[]}`))
	if _, ok := <-c.send; ok {
		t.Error("nothing should be queued for a removed client")
	}
}

func TestHubClientDisconnect(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	conn := dial(t, hub)

	conn.Close()
	waitFor(t, func() bool { return hub.Clients() == 0 })
}

func TestHubDropsSlowClient(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	slow := &client{hub: hub, send: make(chan []byte, 1), addr: "slow"}
	hub.add(slow)

	hub.Apply(view.Op{Action: view.ActionShow, Target: "#a"})
	if hub.Clients() != 1 {
		t.Fatal("client with room should stay")
	}
	hub.Apply(view.Op{Action: view.ActionShow, Target: "#b"})
	if hub.Clients() != 0 {
		t.Error("client with a full queue should be dropped")
	}

	first, ok := <-slow.send
	if !ok || !json.Valid(first) {
		t.Error("queued message should still be readable")
	}
	if _, ok := <-slow.send; ok {
		t.Error("send channel should be closed after the drop")
	}
}

func TestHubClose(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	conn := dial(t, hub)

	hub.Close()
	if hub.Clients() != 0 {
		t.Error("Close should remove every client")
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected the connection to be closed")
	}
}
