package server

import (
	"net/http"
	"testing"
)

func TestCreateGameRequiresAuth(t *testing.T) {
	backend, ts := newTestApp(t)
	backend.rpc("create_game", `{"id":"g1","code":"ABC123","status":"lobby"}`)
	tc := newTestClient(t, ts)

	resp := tc.postJSON("/api/games", map[string]any{"name": "Friday"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous create, status = %d", resp.StatusCode)
	}

	signIn(t, tc)
	resp = tc.postJSON("/api/games", map[string]any{"name": "Friday", "game_mode": "party"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("host create, status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["code"] != "ABC123" {
		t.Fatalf("body = %#v", body)
	}
}

func TestJoinGameValidation(t *testing.T) {
	backend, ts := newTestApp(t)
	backend.rpc("join_game", `{"id":"p1","game_id":"g1","display_name":"Ada"}`)
	tc := newTestClient(t, ts)

	cases := []struct {
		name    string
		payload map[string]any
		message string
	}{
		{"missing code", map[string]any{"name": "Ada"}, "join code is required"},
		{"short code", map[string]any{"code": "AB", "name": "Ada"}, "join codes are six letters or digits"},
		{"missing name", map[string]any{"code": "ABC123"}, "display name is required"},
		{"long name", map[string]any{"code": "ABC123", "name": "this display name is far too long"}, "display name must be 20 characters or fewer"},
	}
	for _, tcase := range cases {
		t.Run(tcase.name, func(t *testing.T) {
			resp := tc.postJSON("/api/games/join", tcase.payload)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			body := decodeBody(t, resp)
			if body["error"] != tcase.message {
				t.Fatalf("error = %q, want %q", body["error"], tcase.message)
			}
		})
	}

	resp := tc.postJSON("/api/games/join", map[string]any{"code": "abc123", "name": "  Ada   Lovelace "})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("join status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["game_id"] != "g1" {
		t.Fatalf("body = %#v", body)
	}
}

func TestGameSnapshot(t *testing.T) {
	backend, ts := newTestApp(t)
	backend.table("games", `[{"id":"g1","code":"ABC123","status":"playing"}]`)
	backend.table("players", `[{"id":"p1","display_name":"Ada"}]`)
	backend.table("rounds", `[{"id":"r1","round_number":1,"status":"active"}]`)
	tc := newTestClient(t, ts)

	resp := tc.get("/api/games/g1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	game, ok := body["game"].(map[string]any)
	if !ok || game["code"] != "ABC123" {
		t.Fatalf("game = %#v", body["game"])
	}
	players, ok := body["players"].([]any)
	if !ok || len(players) != 1 {
		t.Fatalf("players = %#v", body["players"])
	}
	round, ok := body["round"].(map[string]any)
	if !ok || round["round_number"] != float64(1) {
		t.Fatalf("round = %#v", body["round"])
	}
}

func TestGameSnapshotWithoutActiveRound(t *testing.T) {
	backend, ts := newTestApp(t)
	backend.table("games", `[{"id":"g1","code":"ABC123","status":"lobby"}]`)
	backend.table("rounds", `[]`)
	tc := newTestClient(t, ts)

	resp := tc.get("/api/games/g1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if _, present := body["round"]; present {
		t.Fatal("lobby snapshot must omit the round")
	}
}

func TestGameSnapshotSurfacesRoundReadFailure(t *testing.T) {
	backend, ts := newTestApp(t)
	backend.table("games", `[{"id":"g1","code":"ABC123","status":"playing"}]`)
	backend.table("players", `[{"id":"p1","display_name":"Ada"}]`)
	backend.tableError("rounds", `{"message":"backend unavailable","code":"XX000"}`)
	tc := newTestClient(t, ts)

	resp := tc.get("/api/games/g1")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d; a failed round read must not look like a lobby", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "backend unavailable" {
		t.Fatalf("error = %q", body["error"])
	}
}

func TestSnapshotUnknownGame(t *testing.T) {
	backend, ts := newTestApp(t)
	backend.table("games", `[]`)
	tc := newTestClient(t, ts)

	resp := tc.get("/api/games/missing")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "Not found" {
		t.Fatalf("error = %q", body["error"])
	}
}

func TestAddReactionRejectsUnknownType(t *testing.T) {
	backend, ts := newTestApp(t)
	backend.rpc("add_reaction", `{"id":"rx1","reaction_type":"fire"}`)
	tc := newTestClient(t, ts)

	resp := tc.postJSON("/api/games/g1/react", map[string]any{
		"card_play_id":  "cp1",
		"reaction_type": "thumbs_up",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "unknown reaction type" {
		t.Fatalf("error = %q", body["error"])
	}

	resp = tc.postJSON("/api/games/g1/react", map[string]any{
		"card_play_id":  "cp1",
		"reaction_type": "fire",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestLeaveGame(t *testing.T) {
	backend, ts := newTestApp(t)
	backend.rpc("leave_game", `true`)
	tc := newTestClient(t, ts)

	resp := tc.postJSON("/api/games/g1/leave", map[string]any{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["left"] != true {
		t.Fatalf("body = %#v", body)
	}
}
