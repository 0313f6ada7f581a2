package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"ice-breaker/internal/model"
	"ice-breaker/internal/platform"
)

// feedServer accepts realtime connections and exposes the frames clients
// send, plus a way to push row notifications back.
type feedServer struct {
	t        *testing.T
	upgrader websocket.Upgrader

	queries chan url.Values
	frames  chan frame
	conns   chan *websocket.Conn
}

func newFeedServer(t *testing.T) (*feedServer, *Manager) {
	t.Helper()
	fs := &feedServer{
		t:       t,
		queries: make(chan url.Values, 4),
		frames:  make(chan frame, 16),
		conns:   make(chan *websocket.Conn, 4),
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/realtime/v1/websocket" {
			http.NotFound(w, r)
			return
		}
		fs.queries <- r.URL.Query()
		conn, err := fs.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		fs.conns <- conn
		go func() {
			for {
				var f frame
				if err := conn.ReadJSON(&f); err != nil {
					return
				}
				fs.frames <- f
			}
		}()
	}))
	t.Cleanup(ts.Close)

	client, err := platform.New(platform.Config{URL: ts.URL, AnonKey: "anon-key"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	manager := New(client)
	t.Cleanup(manager.UnsubscribeAll)
	return fs, manager
}

func (fs *feedServer) nextFrame() frame {
	fs.t.Helper()
	select {
	case f := <-fs.frames:
		return f
	case <-time.After(5 * time.Second):
		fs.t.Fatal("no frame received")
		return frame{}
	}
}

func (fs *feedServer) nextConn() *websocket.Conn {
	fs.t.Helper()
	select {
	case conn := <-fs.conns:
		return conn
	case <-time.After(5 * time.Second):
		fs.t.Fatal("no connection received")
		return nil
	}
}

func (fs *feedServer) push(conn *websocket.Conn, topic string, c change) {
	fs.t.Helper()
	payload, err := json.Marshal(c)
	if err != nil {
		fs.t.Fatalf("marshal change: %v", err)
	}
	if err := conn.WriteJSON(frame{Event: eventPostgresChanges, Topic: topic, Payload: payload}); err != nil {
		fs.t.Fatalf("push change: %v", err)
	}
}

func TestSubscribeToPlayersWireShape(t *testing.T) {
	fs, manager := newFeedServer(t)

	sub, err := manager.SubscribeToPlayers("g1", PlayerHandlers{})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer manager.Unsubscribe(sub)

	query := <-fs.queries
	if query.Get("apikey") != "anon-key" {
		t.Fatalf("apikey = %q", query.Get("apikey"))
	}
	if query.Get("events_per_second") != "10" {
		t.Fatalf("events_per_second = %q", query.Get("events_per_second"))
	}

	f := fs.nextFrame()
	if f.Event != eventSubscribe || f.Topic != "game-g1-players" {
		t.Fatalf("frame = %+v", f)
	}
	if len(f.Changes) != 2 {
		t.Fatalf("specs = %+v", f.Changes)
	}
	for _, spec := range f.Changes {
		if spec.Table != "players" || spec.Filter != "game_id=eq.g1" {
			t.Fatalf("spec = %+v", spec)
		}
	}
}

func TestPlayerFeedDispatch(t *testing.T) {
	fs, manager := newFeedServer(t)

	joined := make(chan PlayerJoinedEvent, 1)
	sub, err := manager.SubscribeToPlayers("g1", PlayerHandlers{
		OnJoined: func(event PlayerJoinedEvent) { joined <- event },
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer manager.Unsubscribe(sub)

	conn := fs.nextConn()
	fs.nextFrame()
	fs.push(conn, sub.Topic, change{
		Type:   changeInsert,
		Table:  "players",
		Record: json.RawMessage(`{"id":"p1","display_name":"Ada"}`),
	})

	select {
	case event := <-joined:
		if event.Player.DisplayName != "Ada" {
			t.Fatalf("event = %+v", event)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("joined handler never ran")
	}
}

func TestDispatchSurvivesHandlerPanic(t *testing.T) {
	fs, manager := newFeedServer(t)

	calls := make(chan string, 2)
	sub, err := manager.SubscribeToReactions("g1", func(event ReactionAddedEvent) {
		calls <- string(event.Reaction.ReactionType)
		if event.Reaction.ReactionType == model.ReactionSkip {
			panic("handler bug")
		}
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer manager.Unsubscribe(sub)

	conn := fs.nextConn()
	fs.nextFrame()
	fs.push(conn, sub.Topic, change{Type: changeInsert, Table: "reactions", Record: json.RawMessage(`{"reaction_type":"skip"}`)})
	fs.push(conn, sub.Topic, change{Type: changeInsert, Table: "reactions", Record: json.RawMessage(`{"reaction_type":"fire"}`)})

	for _, want := range []string{"skip", "fire"} {
		select {
		case got := <-calls:
			if got != want {
				t.Fatalf("call = %q, want %q", got, want)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("feed stopped dispatching after panic; missing %q", want)
		}
	}
}

func TestUnsubscribeSendsFrameAndIsIdempotent(t *testing.T) {
	fs, manager := newFeedServer(t)

	sub, err := manager.SubscribeToGame("g1", GameHandlers{})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	fs.nextFrame()

	manager.Unsubscribe(sub)
	f := fs.nextFrame()
	if f.Event != eventUnsubscribe || f.Topic != "game-g1" {
		t.Fatalf("frame = %+v", f)
	}

	// Repeat and nil teardown are no-ops, not errors.
	manager.Unsubscribe(sub)
	manager.Unsubscribe(nil)
}

func TestUnsubscribeAll(t *testing.T) {
	fs, manager := newFeedServer(t)

	if _, err := manager.SubscribeToGame("g1", GameHandlers{}); err != nil {
		t.Fatalf("subscribe game: %v", err)
	}
	if _, err := manager.SubscribeToRounds("g1", RoundHandlers{}); err != nil {
		t.Fatalf("subscribe rounds: %v", err)
	}
	fs.nextFrame()
	fs.nextFrame()

	manager.UnsubscribeAll()

	topics := map[string]bool{}
	for i := 0; i < 2; i++ {
		f := fs.nextFrame()
		if f.Event != eventUnsubscribe {
			t.Fatalf("frame = %+v", f)
		}
		topics[f.Topic] = true
	}
	if !topics["game-g1"] || !topics["game-g1-rounds"] {
		t.Fatalf("unsubscribed topics = %v", topics)
	}

	manager.mu.Lock()
	open := len(manager.subs)
	manager.mu.Unlock()
	if open != 0 {
		t.Fatalf("open feeds after UnsubscribeAll = %d", open)
	}
}

func TestSubscribeDialFailure(t *testing.T) {
	client, err := platform.New(platform.Config{URL: "http://127.0.0.1:1", AnonKey: "anon"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	manager := New(client)
	if _, err := manager.SubscribeToGame("g1", GameHandlers{}); err == nil {
		t.Fatal("expected dial error")
	}
}
