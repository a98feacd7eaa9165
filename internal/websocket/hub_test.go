package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// mockClient creates a Client with a send channel but no real connection.
func mockClient(hub *Hub, familyCode string) *Client {
	return &Client{
		hub:        hub,
		conn:       nil,
		familyCode: familyCode,
		send:       make(chan []byte, sendBufferSize),
	}
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub(slog.Default())

	c1 := mockClient(hub, "AAAA1111")
	c2 := mockClient(hub, "BBBB2222")

	hub.Register(c1)
	hub.Register(c2)

	if got := hub.ClientCount(); got != 2 {
		t.Fatalf("expected 2 clients, got %d", got)
	}

	hub.Unregister(c1)

	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("expected 1 client after unregister, got %d", got)
	}

	hub.Unregister(c2)

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestDoubleUnregister(t *testing.T) {
	hub := NewHub(slog.Default())
	c := mockClient(hub, "AAAA1111")
	hub.Register(c)
	hub.Unregister(c)
	// Should not panic
	hub.Unregister(c)

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestBroadcastReachesFamily(t *testing.T) {
	hub := NewHub(slog.Default())

	c1 := mockClient(hub, "AAAA1111")
	c2 := mockClient(hub, "AAAA1111")
	hub.Register(c1)
	hub.Register(c2)

	msg := NewMessage("announcement", "created", 42, nil)
	hub.Broadcast("AAAA1111", msg)

	for _, c := range []*Client{c1, c2} {
		select {
		case data := <-c.send:
			var got Message
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Type != "announcement_created" {
				t.Errorf("expected type announcement_created, got %s", got.Type)
			}
			if got.ID != 42 {
				t.Errorf("expected id 42, got %d", got.ID)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatal("timeout waiting for message")
		}
	}

	hub.Unregister(c1)
	hub.Unregister(c2)
}

func TestBroadcastIsolatedByFamily(t *testing.T) {
	hub := NewHub(slog.Default())

	smith := mockClient(hub, "AAAA1111")
	jones := mockClient(hub, "BBBB2222")
	hub.Register(smith)
	hub.Register(jones)

	hub.Broadcast("AAAA1111", NewMessage("message", "created", 1, nil))

	select {
	case <-smith.send:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("same-family client should have received the message")
	}

	select {
	case <-jones.send:
		t.Fatal("other family's client must not receive the message")
	default:
	}

	hub.Unregister(smith)
	hub.Unregister(jones)
}

func TestBroadcastEmptyHub(t *testing.T) {
	hub := NewHub(slog.Default())
	// Should not panic
	hub.Broadcast("AAAA1111", NewMessage("task", "completed", 1, nil))
}

func TestBroadcastFullBuffer(t *testing.T) {
	hub := NewHub(slog.Default())

	c := mockClient(hub, "AAAA1111")
	hub.Register(c)

	// Fill the send buffer
	for i := 0; i < sendBufferSize; i++ {
		hub.Broadcast("AAAA1111", NewMessage("test", "fill", int64(i), nil))
	}

	// This should drop the message, not panic or block
	hub.Broadcast("AAAA1111", NewMessage("test", "dropped", 999, nil))

	// Drain to verify buffer was full
	count := 0
	for {
		select {
		case <-c.send:
			count++
		default:
			goto done
		}
	}
done:
	if count != sendBufferSize {
		t.Errorf("expected %d messages, got %d", sendBufferSize, count)
	}

	hub.Unregister(c)
}

func TestNewMessage(t *testing.T) {
	msg := NewMessage("poll", "voted", 5, nil)
	if msg.Type != "poll_voted" {
		t.Errorf("expected type poll_voted, got %s", msg.Type)
	}
	if msg.Entity != "poll" {
		t.Errorf("expected entity poll, got %s", msg.Entity)
	}
	if msg.Action != "voted" {
		t.Errorf("expected action voted, got %s", msg.Action)
	}
	if msg.ID != 5 {
		t.Errorf("expected id 5, got %d", msg.ID)
	}
}

func TestConcurrentAccess(t *testing.T) {
	hub := NewHub(slog.Default())
	var wg sync.WaitGroup

	// Spawn goroutines that register, broadcast, and unregister concurrently
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := mockClient(hub, "AAAA1111")
			hub.Register(c)
			hub.Broadcast("AAAA1111", NewMessage("test", "concurrent", 0, nil))
			// Drain any messages
			for {
				select {
				case <-c.send:
				default:
					hub.Unregister(c)
					return
				}
			}
		}()
	}

	wg.Wait()

	if got := hub.ClientCount(); got != 0 {
		t.Errorf("expected 0 clients after concurrent test, got %d", got)
	}
}
