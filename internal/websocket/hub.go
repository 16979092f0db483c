// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package websocket

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/menuwise/internal/metrics"
	"github.com/tomtom215/menuwise/internal/session"
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled is the normal graceful shutdown path.
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline may indicate a hung operation during shutdown.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message types for WebSocket communication
const (
	MessageTypeState         = "state"
	MessageTypeSessionClosed = "session_closed"
	MessageTypePing          = "ping"
	MessageTypePong          = "pong"
)

// Message represents a WebSocket message
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// SessionClosedData is sent when a session is deleted or expires.
type SessionClosedData struct {
	SessionID string `json:"session_id"`
}

// ErrHubStopped is returned by Register after the hub has shut down.
var ErrHubStopped = errors.New("websocket hub stopped")

// StateSource opens a stream of state snapshots for one session. The
// stream is closed when the session goes away.
type StateSource interface {
	Subscribe(sessionID string) (<-chan session.State, func(), error)
}

// relayed is a snapshot (or end of stream) forwarded from a session relay
// into the hub loop.
type relayed struct {
	relay     *relay
	sessionID string
	state     session.State
	closed    bool
}

// relay tracks the single upstream subscription shared by every client
// watching the same session.
type relay struct {
	cancel context.CancelFunc
	last   *Message
}

// Hub fans session state snapshots out to WebSocket clients. Clients
// watching the same session share one upstream subscription; the most
// recent snapshot is replayed to clients that join late.
type Hub struct {
	source StateSource
	logger zerolog.Logger

	clients map[*Client]bool
	relays  map[string]*relay
	mu      sync.RWMutex

	Register   chan *Client
	Unregister chan *Client
	updates    chan relayed
	done       chan struct{}
	stopOnce   sync.Once

	// relayCtx parents all relay goroutines and is cancelled on shutdown.
	relayCtx    context.Context
	relayCancel context.CancelFunc
}

// NewHub creates a hub reading snapshots from source.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHub(source StateSource, logger zerolog.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		source:      source,
		logger:      logger.With().Str("component", "websocket-hub").Logger(),
		clients:     make(map[*Client]bool),
		relays:      make(map[string]*relay),
		Register:    make(chan *Client),
		Unregister:  make(chan *Client),
		updates:     make(chan relayed, 64),
		done:        make(chan struct{}),
		relayCtx:    ctx,
		relayCancel: cancel,
	}
}

// RunWithContext runs the hub until ctx is cancelled, then closes every
// client and upstream subscription. Designed for suture supervision.
//
// Client lifecycle events are drained before snapshots so a client never
// misses the snapshot that follows its registration.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

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
		case u := <-h.updates:
			h.deliver(u)
		}
	}
}

// Done is closed once the hub has shut down.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Serve is the suture.Service entry point.
func (h *Hub) Serve(ctx context.Context) error {
	return h.RunWithContext(ctx)
}

// String implements fmt.Stringer for suture logging.
func (h *Hub) String() string {
	return "websocket-hub"
}

// addClient registers a client and attaches it to its session's relay,
// opening the upstream subscription for the first watcher.
func (h *Hub) addClient(client *Client) {
	r, ok := h.relays[client.sessionID]
	if !ok {
		updates, cancel, err := h.source.Subscribe(client.sessionID)
		if err != nil {
			h.logger.Debug().Err(err).Str("session_id", client.sessionID).Msg("session unavailable for websocket client")
			h.sendOrDrop(client, Message{Type: MessageTypeSessionClosed, Data: SessionClosedData{SessionID: client.sessionID}})
			close(client.send)
			return
		}
		relayCtx, stop := context.WithCancel(h.relayCtx)
		r = &relay{cancel: func() { stop(); cancel() }}
		h.relays[client.sessionID] = r
		go h.forward(relayCtx, r, client.sessionID, updates)
	}

	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()
	metrics.WSConnectionsActive.Inc()

	if r.last != nil {
		h.sendOrDrop(client, *r.last)
	}

	h.logger.Debug().
		Str("session_id", client.sessionID).
		Int("total_clients", h.GetClientCount()).
		Msg("websocket client connected")
}

// removeClient unregisters a client and releases the relay once nobody
// watches the session anymore.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		close(client.send)
	}
	h.mu.Unlock()
	if !ok {
		return
	}
	metrics.WSConnectionsActive.Dec()

	if h.SessionClientCount(client.sessionID) == 0 {
		h.dropRelay(client.sessionID)
	}

	h.logger.Debug().
		Str("session_id", client.sessionID).
		Int("total_clients", h.GetClientCount()).
		Msg("websocket client disconnected")
}

func (h *Hub) dropRelay(sessionID string) {
	if r, ok := h.relays[sessionID]; ok {
		r.cancel()
		delete(h.relays, sessionID)
	}
}

// forward copies snapshots from one session subscription into the hub loop.
func (h *Hub) forward(ctx context.Context, r *relay, sessionID string, updates <-chan session.State) {
	for {
		select {
		case <-ctx.Done():
			return
		case state, ok := <-updates:
			u := relayed{relay: r, sessionID: sessionID, state: state, closed: !ok}
			select {
			case h.updates <- u:
			case <-ctx.Done():
				return
			}
			if !ok {
				return
			}
		}
	}
}

// deliver sends a snapshot to every client of the session, or closes
// them when the session stream ended.
func (h *Hub) deliver(u relayed) {
	r, ok := h.relays[u.sessionID]
	if !ok || r != u.relay {
		// Stale update from a relay that was already dropped.
		return
	}

	if u.closed {
		h.closeSession(u.sessionID)
		return
	}

	msg := Message{Type: MessageTypeState, Data: u.state}
	r.last = &msg

	var toRemove []*Client
	for _, client := range h.sessionClients(u.sessionID) {
		if !h.trySend(client, msg) {
			toRemove = append(toRemove, client)
		}
	}
	for _, client := range toRemove {
		h.logger.Warn().Str("session_id", u.sessionID).Uint64("client_id", client.id).Msg("websocket client too slow, disconnecting")
		h.removeClient(client)
	}
}

// closeSession notifies and disconnects every client of a session that
// no longer exists.
func (h *Hub) closeSession(sessionID string) {
	msg := Message{Type: MessageTypeSessionClosed, Data: SessionClosedData{SessionID: sessionID}}
	for _, client := range h.sessionClients(sessionID) {
		h.sendOrDrop(client, msg)
		h.removeClient(client)
	}
	h.dropRelay(sessionID)
}

// sessionClients returns the clients watching a session ordered by ID.
func (h *Hub) sessionClients(sessionID string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := make([]*Client, 0, 2)
	for client := range h.clients {
		if client.sessionID == sessionID {
			clients = append(clients, client)
		}
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients
}

func (h *Hub) trySend(client *Client, msg Message) bool {
	select {
	case client.send <- msg:
		metrics.WSMessagesSent.Inc()
		return true
	default:
		return false
	}
}

func (h *Hub) sendOrDrop(client *Client, msg Message) {
	if !h.trySend(client, msg) {
		h.logger.Debug().Uint64("client_id", client.id).Str("type", msg.Type).Msg("dropping websocket message")
	}
}

// shutdown closes every client and relay.
func (h *Hub) shutdown(ctx context.Context) {
	h.stopOnce.Do(func() {
		clientCount := h.GetClientCount()

		h.relayCancel()
		for id, r := range h.relays {
			r.cancel()
			delete(h.relays, id)
		}

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
		metrics.WSConnectionsActive.Sub(float64(len(clients)))

		close(h.done)

		h.logger.Info().
			Str("reason", string(getShutdownReason(ctx))).
			Int("clients_closed", clientCount).
			Msg("websocket hub stopped")
	})
}

// getShutdownReason determines the shutdown reason from the context error.
func getShutdownReason(ctx context.Context) ShutdownReason {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// SessionClientCount returns the number of clients watching a session.
func (h *Hub) SessionClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for client := range h.clients {
		if client.sessionID == sessionID {
			n++
		}
	}
	return n
}
