package chat

import (
	"testing"
	"time"
)

func waitForOnline(t *testing.T, hub *Hub, userID int64) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if hub.IsOnline(userID) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("user %d never came online", userID)
}

func TestHubDeliversToConnectedUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	client := &Client{hub: hub, userID: 7, send: make(chan []byte, 4)}
	hub.register <- client
	waitForOnline(t, hub, 7)

	if !hub.SendToUser(7, []byte("ping")) {
		t.Fatal("SendToUser returned false for a connected user")
	}

	select {
	case frame := <-client.send:
		if string(frame) != "ping" {
			t.Errorf("frame = %q, want %q", frame, "ping")
		}
	case <-time.After(time.Second):
		t.Fatal("frame never arrived")
	}
}

func TestHubOfflineUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	if hub.SendToUser(999, []byte("ping")) {
		t.Error("SendToUser returned true for an offline user")
	}
	if hub.IsOnline(999) {
		t.Error("offline user reported online")
	}
}

func TestHubDropsFrameWhenBufferFull(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	client := &Client{hub: hub, userID: 7, send: make(chan []byte, 1)}
	hub.register <- client
	waitForOnline(t, hub, 7)

	if !hub.SendToUser(7, []byte("one")) {
		t.Fatal("first frame rejected")
	}
	if hub.SendToUser(7, []byte("two")) {
		t.Error("second frame accepted with a full buffer")
	}
}

func TestHubSecondConnectionReplacesFirst(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	first := &Client{hub: hub, userID: 7, send: make(chan []byte, 1)}
	hub.register <- first
	waitForOnline(t, hub, 7)

	second := &Client{hub: hub, userID: 7, send: make(chan []byte, 1)}
	hub.register <- second

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, open := <-first.send; !open {
			break
		}
	}

	hub.SendToUser(7, []byte("ping"))
	select {
	case frame := <-second.send:
		if string(frame) != "ping" {
			t.Errorf("frame = %q, want %q", frame, "ping")
		}
	case <-time.After(time.Second):
		t.Fatal("replacement connection never received the frame")
	}
}

func TestHubUnregisterRemovesClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	client := &Client{hub: hub, userID: 7, send: make(chan []byte, 1)}
	hub.register <- client
	waitForOnline(t, hub, 7)

	hub.unregister <- client

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if !hub.IsOnline(7) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("user still online after unregister")
}
