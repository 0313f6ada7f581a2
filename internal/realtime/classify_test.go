package realtime

import (
	"encoding/json"
	"testing"

	"ice-breaker/internal/model"
)

func playerChange(t *testing.T, changeType string, record, old string) change {
	t.Helper()
	c := change{Type: changeType, Table: "players", Record: json.RawMessage(record)}
	if old != "" {
		c.Old = json.RawMessage(old)
	}
	return c
}

func TestClassifyPlayerInsert(t *testing.T) {
	var joined *PlayerJoinedEvent
	handlers := PlayerHandlers{
		OnJoined: func(event PlayerJoinedEvent) { joined = &event },
		OnLeft:   func(PlayerLeftEvent) { t.Fatal("unexpected left event") },
	}
	classifyPlayerChange("t", playerChange(t, changeInsert, `{"id":"p1","display_name":"Ada"}`, ""), handlers)
	if joined == nil || joined.Player.DisplayName != "Ada" {
		t.Fatalf("joined = %+v", joined)
	}
	if joined.TotalPlayers != nil {
		t.Fatal("player totals are not carried on the event; they must stay nil")
	}
}

func TestClassifyPlayerLeft(t *testing.T) {
	var left *PlayerLeftEvent
	handlers := PlayerHandlers{
		OnLeft:    func(event PlayerLeftEvent) { left = &event },
		OnUpdated: func(model.Player) { t.Fatal("unexpected updated event") },
	}
	c := playerChange(t, changeUpdate,
		`{"id":"p1","left_at":"2026-09-01T10:00:00Z"}`,
		`{"id":"p1"}`)
	classifyPlayerChange("t", c, handlers)
	if left == nil || left.PlayerID != "p1" {
		t.Fatalf("left = %+v", left)
	}
}

func TestClassifyPlayerLeftWithoutPriorState(t *testing.T) {
	// The feed may omit old_record; a set left_at still classifies as left.
	var left *PlayerLeftEvent
	handlers := PlayerHandlers{
		OnLeft:    func(event PlayerLeftEvent) { left = &event },
		OnUpdated: func(model.Player) { t.Fatal("unexpected updated event") },
	}
	classifyPlayerChange("t", playerChange(t, changeUpdate, `{"id":"p1","left_at":"2026-09-01T10:00:00Z"}`, ""), handlers)
	if left == nil {
		t.Fatal("expected left event")
	}
}

func TestClassifyPlayerAlreadyLeftIsUpdate(t *testing.T) {
	// A row whose prior state already carried left_at is a plain update,
	// not a second departure.
	var updated *model.Player
	handlers := PlayerHandlers{
		OnLeft:    func(PlayerLeftEvent) { t.Fatal("unexpected left event") },
		OnUpdated: func(player model.Player) { updated = &player },
	}
	c := playerChange(t, changeUpdate,
		`{"id":"p1","left_at":"2026-09-01T10:00:00Z","connection_status":"offline"}`,
		`{"id":"p1","left_at":"2026-09-01T09:00:00Z"}`)
	classifyPlayerChange("t", c, handlers)
	if updated == nil {
		t.Fatal("expected updated event")
	}
}

func TestClassifyPlayerUpdate(t *testing.T) {
	var updated *model.Player
	handlers := PlayerHandlers{
		OnUpdated: func(player model.Player) { updated = &player },
	}
	c := playerChange(t, changeUpdate,
		`{"id":"p1","connection_status":"away"}`,
		`{"id":"p1","connection_status":"online"}`)
	classifyPlayerChange("t", c, handlers)
	if updated == nil || updated.ConnectionStatus != model.ConnectionAway {
		t.Fatalf("updated = %+v", updated)
	}
}

func TestClassifyPlayerNilHandlers(t *testing.T) {
	// Absent handlers must not panic.
	classifyPlayerChange("t", playerChange(t, changeInsert, `{"id":"p1"}`, ""), PlayerHandlers{})
	classifyPlayerChange("t", playerChange(t, changeUpdate, `{"id":"p1","left_at":"2026-09-01T10:00:00Z"}`, ""), PlayerHandlers{})
}

func gameChange(record, old string) change {
	c := change{Type: changeUpdate, Table: "games", Record: json.RawMessage(record)}
	if old != "" {
		c.Old = json.RawMessage(old)
	}
	return c
}

func TestClassifyGameStarted(t *testing.T) {
	var started *GameStartedEvent
	handlers := GameHandlers{
		OnStarted: func(event GameStartedEvent) { started = &event },
		OnUpdated: func(model.Game) { t.Fatal("unexpected updated event") },
	}
	classifyGameChange("t", gameChange(`{"id":"g1","status":"playing"}`, `{"id":"g1","status":"lobby"}`), handlers)
	if started == nil || started.Game.ID != "g1" {
		t.Fatalf("started = %+v", started)
	}
	if started.FirstRound != nil {
		t.Fatal("the first round is not carried on the event; it must stay nil")
	}
}

func TestClassifyGameFinished(t *testing.T) {
	var finished *model.Game
	handlers := GameHandlers{
		OnFinished: func(game model.Game) { finished = &game },
	}
	classifyGameChange("t", gameChange(`{"id":"g1","status":"finished"}`, `{"id":"g1","status":"playing"}`), handlers)
	if finished == nil {
		t.Fatal("expected finished event")
	}
}

func TestClassifyGamePlainUpdate(t *testing.T) {
	var updated *model.Game
	handlers := GameHandlers{
		OnStarted: func(GameStartedEvent) { t.Fatal("unexpected started event") },
		OnUpdated: func(game model.Game) { updated = &game },
	}
	classifyGameChange("t", gameChange(`{"id":"g1","status":"playing","current_round":4}`, `{"id":"g1","status":"playing","current_round":3}`), handlers)
	if updated == nil || updated.CurrentRound != 4 {
		t.Fatalf("updated = %+v", updated)
	}
}

func TestClassifyGamePlayingWithoutPriorLobbyIsUpdate(t *testing.T) {
	// Without a prior lobby status the playing row is a plain update.
	var updated *model.Game
	handlers := GameHandlers{
		OnStarted: func(GameStartedEvent) { t.Fatal("unexpected started event") },
		OnUpdated: func(game model.Game) { updated = &game },
	}
	classifyGameChange("t", gameChange(`{"id":"g1","status":"playing"}`, ""), handlers)
	if updated == nil {
		t.Fatal("expected updated event")
	}
}

func TestClassifyRoundInsert(t *testing.T) {
	var changed *RoundChangedEvent
	handlers := RoundHandlers{
		OnRoundChanged: func(event RoundChangedEvent) { changed = &event },
	}
	c := change{Type: changeInsert, Table: "rounds", Record: json.RawMessage(`{"id":"r2","round_number":2,"status":"active"}`)}
	classifyRoundChange("t", c, handlers)
	if changed == nil || changed.Round.RoundNumber != 2 {
		t.Fatalf("changed = %+v", changed)
	}
	if changed.NextPlayer != nil {
		t.Fatal("the next player is not carried on the event; it must stay nil")
	}
}

func TestClassifyRoundCompleted(t *testing.T) {
	var completed *model.Round
	handlers := RoundHandlers{
		OnRoundChanged:   func(RoundChangedEvent) { t.Fatal("unexpected round-changed event") },
		OnRoundCompleted: func(round model.Round) { completed = &round },
	}
	c := change{Type: changeUpdate, Table: "rounds", Record: json.RawMessage(`{"id":"r2","round_number":2,"status":"completed"}`)}
	classifyRoundChange("t", c, handlers)
	if completed == nil {
		t.Fatal("expected round-completed event")
	}
}

func TestClassifyRoundActiveUpdateIgnored(t *testing.T) {
	handlers := RoundHandlers{
		OnRoundChanged:   func(RoundChangedEvent) { t.Fatal("unexpected round-changed event") },
		OnRoundCompleted: func(model.Round) { t.Fatal("unexpected round-completed event") },
	}
	c := change{Type: changeUpdate, Table: "rounds", Record: json.RawMessage(`{"id":"r2","status":"active"}`)}
	classifyRoundChange("t", c, handlers)
}

func TestClassifyReaction(t *testing.T) {
	var added *ReactionAddedEvent
	handler := func(event ReactionAddedEvent) { added = &event }
	c := change{Type: changeInsert, Table: "reactions", Record: json.RawMessage(`{"id":"rx1","reaction_type":"laugh"}`)}
	classifyReactionChange("t", c, handler)
	if added == nil || added.Reaction.ReactionType != model.ReactionLaugh {
		t.Fatalf("added = %+v", added)
	}
	if added.Player != nil {
		t.Fatal("the reacting player is not carried on the event; it must stay nil")
	}
}

func TestClassifyReactionIgnoresUpdates(t *testing.T) {
	handler := func(ReactionAddedEvent) { t.Fatal("unexpected reaction event") }
	c := change{Type: changeUpdate, Table: "reactions", Record: json.RawMessage(`{"id":"rx1"}`)}
	classifyReactionChange("t", c, handler)
}

func TestClassifyBadRecordIgnored(t *testing.T) {
	handlers := PlayerHandlers{
		OnJoined: func(PlayerJoinedEvent) { t.Fatal("unexpected joined event") },
	}
	classifyPlayerChange("t", change{Type: changeInsert, Record: json.RawMessage(`not json`)}, handlers)
}
