// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/tomtom215/menuwise/internal/session"
)

// fakeSource hands out one controllable channel per subscription.
type fakeSource struct {
	mu      sync.Mutex
	streams map[string]chan session.State
	opened  map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		streams: make(map[string]chan session.State),
		opened:  make(map[string]int),
	}
}

func (f *fakeSource) Subscribe(id string) (<-chan session.State, func(), error) {
	if id == "missing" {
		return nil, nil, session.ErrNotFound
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan session.State, 4)
	f.streams[id] = ch
	f.opened[id]++
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.streams[id] == ch {
				delete(f.streams, id)
			}
		})
	}, nil
}

func (f *fakeSource) push(t *testing.T, id string, st session.State) {
	t.Helper()
	f.mu.Lock()
	ch, ok := f.streams[id]
	f.mu.Unlock()
	if !ok {
		t.Fatalf("no open stream for %s", id)
	}
	ch <- st
}

func (f *fakeSource) end(t *testing.T, id string) {
	t.Helper()
	f.mu.Lock()
	ch, ok := f.streams[id]
	delete(f.streams, id)
	f.mu.Unlock()
	if !ok {
		t.Fatalf("no open stream for %s", id)
	}
	close(ch)
}

func (f *fakeSource) openCount(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opened[id]
}

type wireMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type testEnv struct {
	hub    *Hub
	source *fakeSource
	server *httptest.Server
	cancel context.CancelFunc
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	source := newFakeSource()
	hub := NewHub(source, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = hub.RunWithContext(ctx) }()

	upgrader := NewUpgrader(nil)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		_ = NewClient(hub, conn, r.URL.Query().Get("session")).Attach()
	}))

	t.Cleanup(func() {
		cancel()
		server.Close()
	})
	return &testEnv{hub: hub, source: source, server: server, cancel: cancel}
}

func (e *testEnv) dial(t *testing.T, sessionID string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(e.server.URL, "http") + "/?session=" + sessionID
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) wireMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg wireMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return msg
}

func readState(t *testing.T, conn *websocket.Conn) session.State {
	t.Helper()
	msg := readMessage(t, conn)
	if msg.Type != MessageTypeState {
		t.Fatalf("message type = %q, want %q", msg.Type, MessageTypeState)
	}
	var st session.State
	if err := json.Unmarshal(msg.Data, &st); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return st
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_FanOutSharesOneSubscription(t *testing.T) {
	env := newTestEnv(t)

	a := env.dial(t, "s1")
	b := env.dial(t, "s1")
	waitFor(t, "two clients", func() bool { return env.hub.SessionClientCount("s1") == 2 })

	env.source.push(t, "s1", session.State{Step: session.StepInput, IsExtracting: true, Generation: 1})

	for _, conn := range []*websocket.Conn{a, b} {
		st := readState(t, conn)
		if st.Step != session.StepInput || !st.IsExtracting || st.Generation != 1 {
			t.Errorf("unexpected state %+v", st)
		}
	}

	if got := env.source.openCount("s1"); got != 1 {
		t.Errorf("subscriptions opened = %d, want 1", got)
	}
}

func TestHub_LateJoinerGetsLastSnapshot(t *testing.T) {
	env := newTestEnv(t)

	first := env.dial(t, "s2")
	waitFor(t, "first client", func() bool { return env.hub.SessionClientCount("s2") == 1 })
	env.source.push(t, "s2", session.State{Step: session.StepQuestionnaire})
	readState(t, first)

	late := env.dial(t, "s2")
	if st := readState(t, late); st.Step != session.StepQuestionnaire {
		t.Errorf("late joiner step = %s, want %s", st.Step, session.StepQuestionnaire)
	}
}

func TestHub_SessionsAreIsolated(t *testing.T) {
	env := newTestEnv(t)

	a := env.dial(t, "sa")
	b := env.dial(t, "sb")
	waitFor(t, "both clients", func() bool { return env.hub.GetClientCount() == 2 })

	env.source.push(t, "sb", session.State{Step: session.StepResults})
	if st := readState(t, b); st.Step != session.StepResults {
		t.Errorf("sb step = %s", st.Step)
	}

	_ = a.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	if _, _, err := a.ReadMessage(); err == nil {
		t.Error("client of sa received a snapshot of sb")
	}
}

func TestHub_SessionEndClosesClients(t *testing.T) {
	env := newTestEnv(t)

	conn := env.dial(t, "s3")
	waitFor(t, "client", func() bool { return env.hub.SessionClientCount("s3") == 1 })

	env.source.end(t, "s3")

	if msg := readMessage(t, conn); msg.Type != MessageTypeSessionClosed {
		t.Fatalf("message type = %q, want %q", msg.Type, MessageTypeSessionClosed)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("read after session end = %v, want normal close", err)
	}
	waitFor(t, "client removed", func() bool { return env.hub.GetClientCount() == 0 })
}

func TestHub_UnknownSession(t *testing.T) {
	env := newTestEnv(t)

	conn := env.dial(t, "missing")
	if msg := readMessage(t, conn); msg.Type != MessageTypeSessionClosed {
		t.Errorf("message type = %q, want %q", msg.Type, MessageTypeSessionClosed)
	}
	if env.hub.GetClientCount() != 0 {
		t.Errorf("client count = %d, want 0", env.hub.GetClientCount())
	}
}

func TestHub_LastClientReleasesSubscription(t *testing.T) {
	env := newTestEnv(t)

	conn := env.dial(t, "s4")
	waitFor(t, "client", func() bool { return env.hub.SessionClientCount("s4") == 1 })
	_ = conn.Close()

	waitFor(t, "subscription released", func() bool {
		env.source.mu.Lock()
		defer env.source.mu.Unlock()
		_, open := env.source.streams["s4"]
		return !open
	})

	env.dial(t, "s4")
	waitFor(t, "resubscribe", func() bool { return env.source.openCount("s4") == 2 })
}

func TestHub_PingPong(t *testing.T) {
	env := newTestEnv(t)

	conn := env.dial(t, "s5")
	waitFor(t, "client", func() bool { return env.hub.SessionClientCount("s5") == 1 })

	if err := conn.WriteJSON(Message{Type: MessageTypePing}); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	if msg := readMessage(t, conn); msg.Type != MessageTypePong {
		t.Errorf("message type = %q, want %q", msg.Type, MessageTypePong)
	}
}

func TestHub_Shutdown(t *testing.T) {
	env := newTestEnv(t)

	conn := env.dial(t, "s6")
	waitFor(t, "client", func() bool { return env.hub.SessionClientCount("s6") == 1 })

	env.cancel()
	select {
	case <-env.hub.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("connection still open after hub shutdown")
	}

	// New connections are closed right after the upgrade.
	late := env.dial(t, "s6")
	_ = late.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := late.ReadMessage(); err == nil {
		t.Error("connection accepted after hub shutdown")
	}
}

func TestGetShutdownReason(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := getShutdownReason(ctx); got != ShutdownReasonContextCanceled {
		t.Errorf("reason = %s, want %s", got, ShutdownReasonContextCanceled)
	}

	ctx, cancel = context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()
	if got := getShutdownReason(ctx); got != ShutdownReasonContextDeadline {
		t.Errorf("reason = %s, want %s", got, ShutdownReasonContextDeadline)
	}
}

func TestNewUpgrader_CheckOrigin(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"no list allows all", nil, "https://evil.test", true},
		{"wildcard", []string{"*"}, "https://any.test", true},
		{"listed origin", []string{"https://menuwise.app"}, "https://menuwise.app", true},
		{"unlisted origin", []string{"https://menuwise.app"}, "https://evil.test", false},
		{"no origin header", []string{"https://menuwise.app"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := NewUpgrader(tt.allowed)
			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if got := up.CheckOrigin(req); got != tt.want {
				t.Errorf("CheckOrigin(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}
