// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package websocket

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/borderwatch/internal/logging"
	"github.com/tomtom215/borderwatch/internal/metrics"
)

// Message types for dashboard push updates.
const (
	MessageTypeThreatUpdate = "threat_update"
	MessageTypeAnomalyAlert = "anomaly_alert"
	MessageTypeSubscribe    = "subscribe"
	MessageTypeSubscribed   = "subscribed"
	MessageTypePing         = "ping"
	MessageTypePong         = "pong"
)

// Message is one WebSocket frame payload.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub maintains the set of active clients and fans broadcast messages out
// to them. Clients register and unregister through channels so all state
// changes happen on the hub goroutine or under the lock.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
}

// NewHub builds an idle hub; call Run to start it.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan Message, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run services the hub until the context is canceled, then closes every
// client and returns ctx.Err(). Lifecycle events are drained before
// broadcasts so client state is consistent when a message fans out.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

		// Drain lifecycle events before handling broadcasts.
		select {
		case client := <-h.Register:
			h.addClient(client)
			continue
		case client := <-h.Unregister:
			h.removeClient(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.addClient(client)
		case client := <-h.Unregister:
			h.removeClient(client)
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(total))
	logging.Info().Int("total_clients", total).Msg("websocket client connected")
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(total))
	logging.Info().Int("total_clients", total).Msg("websocket client disconnected")
}

// broadcastToClients delivers one message to every client in client-ID
// order. Clients whose send buffer is full are dropped; a stalled consumer
// must not block the others.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	var toRemove []*Client
	for _, client := range clients {
		select {
		case client.send <- message:
			metrics.WSMessagesSent.Inc()
		default:
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		close(client.send)
		delete(h.clients, client)
	}
	if len(toRemove) > 0 {
		metrics.WSConnections.Set(float64(len(h.clients)))
		logging.Warn().Int("dropped", len(toRemove)).Msg("dropped slow websocket clients")
	}
}

func (h *Hub) shutdown(ctx context.Context) {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	for _, client := range clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.mu.Unlock()

	metrics.WSConnections.Set(0)
	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", ctx.Err().Error()).
		Int("clients_closed", len(clients)).
		Msg("websocket hub stopped")
}

// Broadcast queues a message for delivery to all clients. If the broadcast
// buffer is full the message is dropped rather than blocking the caller.
func (h *Hub) Broadcast(messageType string, data interface{}) {
	message := Message{Type: messageType, Data: data}
	select {
	case h.broadcast <- message:
	default:
		logging.Warn().Str("message_type", messageType).Msg("broadcast channel full, dropping message")
	}
}

// ThreatUpdateData is the payload pushed after each feed refresh.
type ThreatUpdateData struct {
	Timestamp   string  `json:"timestamp"`
	ThreatLevel string  `json:"threat_level"`
	ThreatScore float64 `json:"threat_score"`
	Hotspots    int     `json:"active_hotspots"`
	Reports     int     `json:"intel_reports"`
}

// BroadcastThreatUpdate pushes the refreshed headline threat picture.
func (h *Hub) BroadcastThreatUpdate(threatLevel string, threatScore float64, hotspots, reports int) {
	h.Broadcast(MessageTypeThreatUpdate, ThreatUpdateData{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		ThreatLevel: threatLevel,
		ThreatScore: threatScore,
		Hotspots:    hotspots,
		Reports:     reports,
	})
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
