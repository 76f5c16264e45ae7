package ws

import (
	"encoding/json"
	"testing"

	"github.com/chathaven/chathaven/internal/app"
	"github.com/chathaven/chathaven/internal/domain"
)

func newTestConn(buffer int) *Conn {
	return &Conn{send: make(chan []byte, buffer)}
}

func drain(c *Conn) [][]byte {
	var out [][]byte
	for {
		select {
		case b := <-c.send:
			out = append(out, b)
		default:
			return out
		}
	}
}

func TestHubRoomIsolation(t *testing.T) {
	directory := app.NewDirectory()
	hub := NewHub(directory)

	directory.Join("h1", "Alice", "Lobby")
	directory.Join("h2", "Bob", "Lobby")
	directory.Join("h3", "Carol", "Den")

	c1, c2, c3 := newTestConn(4), newTestConn(4), newTestConn(4)
	hub.Bind("h1", c1)
	hub.Bind("h2", c2)
	hub.Bind("h3", c3)

	hub.ToRoom("Lobby", map[string]string{"type": "message"})

	if got := len(drain(c1)); got != 1 {
		t.Errorf("h1 received %d frames, want 1", got)
	}
	if got := len(drain(c2)); got != 1 {
		t.Errorf("h2 received %d frames, want 1", got)
	}
	if got := len(drain(c3)); got != 0 {
		t.Errorf("h3 in another room received %d frames, want 0", got)
	}
}

func TestHubToRoomExcept(t *testing.T) {
	directory := app.NewDirectory()
	hub := NewHub(directory)

	directory.Join("h1", "Alice", "Lobby")
	directory.Join("h2", "Bob", "Lobby")

	c1, c2 := newTestConn(4), newTestConn(4)
	hub.Bind("h1", c1)
	hub.Bind("h2", c2)

	hub.ToRoomExcept("h1", "Lobby", app.TypingEvent{Type: app.EventTyping, Username: "Alice"})

	if got := len(drain(c1)); got != 0 {
		t.Errorf("sender received %d frames, want 0", got)
	}
	frames := drain(c2)
	if len(frames) != 1 {
		t.Fatalf("h2 received %d frames, want 1", len(frames))
	}
	var ev app.TypingEvent
	if err := json.Unmarshal(frames[0], &ev); err != nil {
		t.Fatalf("bad frame: %v", err)
	}
	if ev.Type != app.EventTyping || ev.Username != "Alice" {
		t.Errorf("frame = %+v", ev)
	}
}

func TestHubToUser(t *testing.T) {
	directory := app.NewDirectory()
	hub := NewHub(directory)

	c1 := newTestConn(4)
	hub.Bind("h1", c1)

	hub.ToUser("h1", map[string]string{"type": "pong"})
	hub.ToUser("nope", map[string]string{"type": "pong"}) // unknown handle is a no-op

	if got := len(drain(c1)); got != 1 {
		t.Errorf("h1 received %d frames, want 1", got)
	}
}

func TestHubUnbindStopsDelivery(t *testing.T) {
	directory := app.NewDirectory()
	hub := NewHub(directory)

	directory.Join("h1", "Alice", "Lobby")
	c1 := newTestConn(4)
	hub.Bind("h1", c1)
	hub.Unbind("h1")

	hub.ToRoom("Lobby", map[string]string{"type": "message"})

	if got := len(drain(c1)); got != 0 {
		t.Errorf("unbound conn received %d frames, want 0", got)
	}
}

func TestConnBackpressure(t *testing.T) {
	c := newTestConn(1)

	if err := c.TrySend([]byte("a")); err != nil {
		t.Fatalf("first send failed: %v", err)
	}
	if err := c.TrySend([]byte("b")); err != ErrBackpressure {
		t.Errorf("second send err = %v, want ErrBackpressure", err)
	}
}

func TestConnClosedSend(t *testing.T) {
	c := newTestConn(1)
	c.Close()

	if err := c.TrySend([]byte("a")); err == nil {
		t.Error("send on closed conn should fail")
	}
	// Double close must not panic.
	c.Close()
}

func TestHubOrderingPerRecipient(t *testing.T) {
	directory := app.NewDirectory()
	hub := NewHub(directory)

	directory.Join("h1", "Alice", "Lobby")
	c1 := newTestConn(8)
	hub.Bind("h1", c1)

	domainRoom := domain.RoomName("Lobby")
	hub.ToRoom(domainRoom, map[string]string{"seq": "1"})
	hub.ToRoom(domainRoom, map[string]string{"seq": "2"})
	hub.ToRoom(domainRoom, map[string]string{"seq": "3"})

	frames := drain(c1)
	if len(frames) != 3 {
		t.Fatalf("received %d frames, want 3", len(frames))
	}
	for i, want := range []string{"1", "2", "3"} {
		var got map[string]string
		if err := json.Unmarshal(frames[i], &got); err != nil {
			t.Fatalf("bad frame %d: %v", i, err)
		}
		if got["seq"] != want {
			t.Errorf("frame %d seq = %q, want %q", i, got["seq"], want)
		}
	}
}
