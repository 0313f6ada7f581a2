package model

import "time"

// Player mirrors the players table. Rows are append-only: leaving a game sets
// left_at rather than deleting the row, and a left_at becoming non-null is the
// only "player left" signal the change feed carries.
type Player struct {
	ID                string           `json:"id"`
	GameID            string           `json:"game_id"`
	UserID            string           `json:"user_id,omitempty"`
	DisplayName       string           `json:"display_name"`
	AvatarURL         string           `json:"avatar_url,omitempty"`
	IsHost            bool             `json:"is_host"`
	IsGuest           bool             `json:"is_guest"`
	ConnectionStatus  ConnectionStatus `json:"connection_status"`
	CardsDrawn        int              `json:"cards_drawn"`
	ReactionsGiven    int              `json:"reactions_given"`
	ReactionsReceived int              `json:"reactions_received"`
	JoinedAt          time.Time        `json:"joined_at"`
	LeftAt            *time.Time       `json:"left_at,omitempty"`
	LastSeenAt        time.Time        `json:"last_seen_at"`
}
