package model

import "time"

// GameSettings is the settings blob stored on a game. It is written by the
// backend when the game is created and read-only from here on.
type GameSettings struct {
	CategoriesEnabled []CategoryName `json:"categories_enabled,omitempty"`
	AllowSkip         bool           `json:"allow_skip"`
	RoundTimerSeconds int            `json:"round_timer_seconds"`
	AutoNextRound     bool           `json:"auto_next_round"`
	ShowPlayerStats   bool           `json:"show_player_stats,omitempty"`
}

// Game mirrors the games table. Join codes are six characters, unique, and
// stable for the game's lifetime. Status transitions happen remotely and are
// never re-validated here.
type Game struct {
	ID               string       `json:"id"`
	Code             string       `json:"code"`
	Name             string       `json:"name,omitempty"`
	HostID           string       `json:"host_id,omitempty"`
	Status           GameStatus   `json:"status"`
	GameMode         GameMode     `json:"game_mode"`
	MaxPlayers       int          `json:"max_players"`
	CurrentRound     int          `json:"current_round"`
	TotalRounds      int          `json:"total_rounds,omitempty"`
	Settings         GameSettings `json:"settings"`
	StartedAt        *time.Time   `json:"started_at,omitempty"`
	FinishedAt       *time.Time   `json:"finished_at,omitempty"`
	TotalCardsPlayed int          `json:"total_cards_played"`
	TotalReactions   int          `json:"total_reactions"`
	CreatedAt        time.Time    `json:"created_at"`
}
