package model

import "time"

// Round mirrors the rounds table. The backend keeps exactly one round active
// per game at a time; that invariant is assumed here, not enforced.
type Round struct {
	ID              string      `json:"id"`
	GameID          string      `json:"game_id"`
	RoundNumber     int         `json:"round_number"`
	CurrentPlayerID string      `json:"current_player_id,omitempty"`
	CurrentCardID   string      `json:"current_card_id,omitempty"`
	CardCategoryID  string      `json:"card_category_id,omitempty"`
	Status          RoundStatus `json:"status"`
	StartedAt       time.Time   `json:"started_at"`
	CompletedAt     *time.Time  `json:"completed_at,omitempty"`
}
