// Package realtime opens per-game change-feed subscriptions against the
// platform's websocket endpoint and classifies raw row notifications into
// semantic events before invoking caller handlers.
//
// Each named feed is its own connection. Notifications within one feed are
// dispatched in wire order, but no ordering is guaranteed across feeds: a
// game "started" event and the first round's "changed" event may arrive in
// either relative order.
package realtime

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"

	"ice-breaker/internal/platform"
)

const (
	eventSubscribe       = "subscribe"
	eventUnsubscribe     = "unsubscribe"
	eventPostgresChanges = "postgres_changes"

	changeInsert = "INSERT"
	changeUpdate = "UPDATE"
)

// changeSpec tells the backend which row events a feed wants.
type changeSpec struct {
	Event  string `json:"event"`
	Schema string `json:"schema"`
	Table  string `json:"table"`
	Filter string `json:"filter,omitempty"`
}

// frame is the wire envelope in both directions.
type frame struct {
	Event   string          `json:"event"`
	Topic   string          `json:"topic"`
	Changes []changeSpec    `json:"postgres_changes,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// change is one row notification.
type change struct {
	Type   string          `json:"type"`
	Table  string          `json:"table"`
	Record json.RawMessage `json:"record"`
	Old    json.RawMessage `json:"old_record,omitempty"`
}

// Subscription is an opaque handle on one open feed.
type Subscription struct {
	Topic string

	conn   *websocket.Conn
	mu     sync.Mutex
	closed bool
}

func (s *Subscription) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	_ = s.conn.WriteJSON(frame{Event: eventUnsubscribe, Topic: s.Topic})
	_ = s.conn.Close()
}

// Manager tracks open feeds for teardown.
type Manager struct {
	client *platform.Client
	dialer *websocket.Dialer

	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func New(client *platform.Client) *Manager {
	return &Manager{
		client: client,
		dialer: websocket.DefaultDialer,
		subs:   make(map[*Subscription]struct{}),
	}
}

// socketURL derives the websocket endpoint from the platform base URL.
func (m *Manager) socketURL() string {
	endpoint := m.client.BaseURL()
	switch endpoint.Scheme {
	case "https":
		endpoint.Scheme = "wss"
	default:
		endpoint.Scheme = "ws"
	}
	endpoint.Path = "/realtime/v1/websocket"
	query := url.Values{}
	query.Set("apikey", m.client.AnonKey())
	query.Set("events_per_second", strconv.Itoa(m.client.Settings().EventsPerSecond))
	endpoint.RawQuery = query.Encode()
	return endpoint.String()
}

// subscribe dials one feed, sends the subscribe frame, and starts the read
// loop. dispatch is invoked for every row notification in wire order.
func (m *Manager) subscribe(topic string, specs []changeSpec, dispatch func(change)) (*Subscription, error) {
	conn, _, err := m.dialer.Dial(m.socketURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial realtime feed %s: %w", topic, err)
	}
	if err := conn.WriteJSON(frame{Event: eventSubscribe, Topic: topic, Changes: specs}); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("subscribe to feed %s: %w", topic, err)
	}

	sub := &Subscription{Topic: topic, conn: conn}
	m.mu.Lock()
	m.subs[sub] = struct{}{}
	m.mu.Unlock()

	go m.readLoop(sub, dispatch)
	return sub, nil
}

func (m *Manager) readLoop(sub *Subscription, dispatch func(change)) {
	defer m.drop(sub)
	for {
		var f frame
		if err := sub.conn.ReadJSON(&f); err != nil {
			sub.mu.Lock()
			closed := sub.closed
			sub.mu.Unlock()
			if !closed {
				log.Printf("realtime feed %s closed: %v", sub.Topic, err)
			}
			return
		}
		if f.Event != eventPostgresChanges {
			continue
		}
		var c change
		if err := json.Unmarshal(f.Payload, &c); err != nil {
			log.Printf("realtime feed %s: bad payload: %v", sub.Topic, err)
			continue
		}
		m.dispatchSafely(sub.Topic, c, dispatch)
	}
}

// dispatchSafely keeps one misbehaving handler from killing the feed.
func (m *Manager) dispatchSafely(topic string, c change, dispatch func(change)) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("realtime feed %s: handler panic: %v", topic, r)
		}
	}()
	dispatch(c)
}

func (m *Manager) drop(sub *Subscription) {
	sub.close()
	m.mu.Lock()
	delete(m.subs, sub)
	m.mu.Unlock()
}

// Unsubscribe tears down one feed. Safe to call on an already-closed or nil
// handle; that is a no-op, not an error.
func (m *Manager) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	m.drop(sub)
}

// UnsubscribeAll tears down every open feed.
func (m *Manager) UnsubscribeAll() {
	m.mu.Lock()
	subs := make([]*Subscription, 0, len(m.subs))
	for sub := range m.subs {
		subs = append(subs, sub)
	}
	m.mu.Unlock()
	for _, sub := range subs {
		m.drop(sub)
	}
}

// SubscribeToPlayers opens the player feed for a game. Inserts classify as
// "joined"; an update whose left_at transitions to non-null classifies as
// "left", any other update as "updated".
func (m *Manager) SubscribeToPlayers(gameID string, handlers PlayerHandlers) (*Subscription, error) {
	topic := fmt.Sprintf("game-%s-players", gameID)
	filter := "game_id=eq." + gameID
	specs := []changeSpec{
		{Event: changeInsert, Schema: "public", Table: "players", Filter: filter},
		{Event: changeUpdate, Schema: "public", Table: "players", Filter: filter},
	}
	return m.subscribe(topic, specs, func(c change) {
		classifyPlayerChange(topic, c, handlers)
	})
}

// SubscribeToGame opens the game-status feed. lobby→playing classifies as
// "started", any transition to finished as "finished", the rest as "updated".
func (m *Manager) SubscribeToGame(gameID string, handlers GameHandlers) (*Subscription, error) {
	topic := fmt.Sprintf("game-%s", gameID)
	specs := []changeSpec{
		{Event: changeUpdate, Schema: "public", Table: "games", Filter: "id=eq." + gameID},
	}
	return m.subscribe(topic, specs, func(c change) {
		classifyGameChange(topic, c, handlers)
	})
}

// SubscribeToRounds opens the round feed. Inserts classify as "round
// changed"; an update to completed status as "round completed".
func (m *Manager) SubscribeToRounds(gameID string, handlers RoundHandlers) (*Subscription, error) {
	topic := fmt.Sprintf("game-%s-rounds", gameID)
	filter := "game_id=eq." + gameID
	specs := []changeSpec{
		{Event: changeInsert, Schema: "public", Table: "rounds", Filter: filter},
		{Event: changeUpdate, Schema: "public", Table: "rounds", Filter: filter},
	}
	return m.subscribe(topic, specs, func(c change) {
		classifyRoundChange(topic, c, handlers)
	})
}

// SubscribeToReactions opens the reaction feed. Every insert classifies as
// "reaction added".
func (m *Manager) SubscribeToReactions(gameID string, handler ReactionHandler) (*Subscription, error) {
	topic := fmt.Sprintf("game-%s-reactions", gameID)
	specs := []changeSpec{
		{Event: changeInsert, Schema: "public", Table: "reactions"},
	}
	return m.subscribe(topic, specs, func(c change) {
		classifyReactionChange(topic, c, handler)
	})
}
