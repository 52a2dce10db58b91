// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("hub did not stop")
		}
	})
	return hub, cancel
}

// waitForClients polls until the hub reports the expected client count.
func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count = %d, want %d", hub.ClientCount(), want)
}

func TestHubRegisterUnregister(t *testing.T) {
	hub, _ := startHub(t)

	client := &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message, 1)}
	hub.Register <- client
	waitForClients(t, hub, 1)

	hub.Unregister <- client
	waitForClients(t, hub, 0)

	// The hub closed the client's send channel on unregister.
	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("send channel received a message, want closed")
		}
	case <-time.After(time.Second):
		t.Error("send channel not closed")
	}
}

func TestHubBroadcastDelivers(t *testing.T) {
	hub, _ := startHub(t)

	a := &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message, 4)}
	b := &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message, 4)}
	hub.Register <- a
	hub.Register <- b
	waitForClients(t, hub, 2)

	hub.BroadcastThreatUpdate("ELEVATED", 0.45, 7, 3)

	for _, client := range []*Client{a, b} {
		select {
		case msg := <-client.send:
			if msg.Type != MessageTypeThreatUpdate {
				t.Errorf("message type = %q", msg.Type)
			}
			data, ok := msg.Data.(ThreatUpdateData)
			if !ok {
				t.Fatalf("data type = %T", msg.Data)
			}
			if data.ThreatLevel != "ELEVATED" || data.ThreatScore != 0.45 {
				t.Errorf("data = %+v", data)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("client did not receive broadcast")
		}
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub, _ := startHub(t)

	// Unbuffered send channel with no reader: the first broadcast cannot
	// be delivered and the client is dropped.
	slow := &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message)}
	hub.Register <- slow
	waitForClients(t, hub, 1)

	hub.Broadcast(MessageTypeThreatUpdate, nil)
	waitForClients(t, hub, 0)
}

func TestHubShutdownClosesClients(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.Run(ctx) }()

	client := &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message, 1)}
	hub.Register <- client
	waitForClients(t, hub, 1)

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("clients remaining after shutdown: %d", hub.ClientCount())
	}
}

func TestServeWSRoundTrip(t *testing.T) {
	hub, _ := startHub(t)

	srv := httptest.NewServer(http.HandlerFunc(ServeWS(hub)))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if resp != nil {
		defer resp.Body.Close()
	}

	waitForClients(t, hub, 1)

	hub.BroadcastThreatUpdate("GUARDED", 0.25, 0, 3)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != MessageTypeThreatUpdate {
		t.Errorf("message type = %q", msg.Type)
	}
}

func TestServeWSPingPong(t *testing.T) {
	hub, _ := startHub(t)

	srv := httptest.NewServer(http.HandlerFunc(ServeWS(hub)))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if resp != nil {
		defer resp.Body.Close()
	}

	waitForClients(t, hub, 1)

	if err := conn.WriteJSON(Message{Type: MessageTypePing}); err != nil {
		t.Fatalf("write ping: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read pong: %v", err)
	}
	if msg.Type != MessageTypePong {
		t.Errorf("message type = %q, want pong", msg.Type)
	}
}

func TestServeWSSubscribeAck(t *testing.T) {
	hub, _ := startHub(t)

	srv := httptest.NewServer(http.HandlerFunc(ServeWS(hub)))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if resp != nil {
		defer resp.Body.Close()
	}

	waitForClients(t, hub, 1)

	if err := conn.WriteJSON(Message{Type: MessageTypeSubscribe}); err != nil {
		t.Fatalf("write subscribe: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read ack: %v", err)
	}
	if msg.Type != MessageTypeSubscribed {
		t.Errorf("message type = %q, want subscribed", msg.Type)
	}
}
