package model

import "time"

// Reaction mirrors the reactions table.
type Reaction struct {
	ID           string       `json:"id"`
	CardPlayID   string       `json:"card_play_id"`
	PlayerID     string       `json:"player_id"`
	ReactionType ReactionType `json:"reaction_type"`
	CreatedAt    time.Time    `json:"created_at"`
}
