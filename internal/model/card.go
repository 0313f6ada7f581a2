package model

import "time"

// CardCategory mirrors the card_categories table.
type CardCategory struct {
	ID          string       `json:"id"`
	Name        CategoryName `json:"name"`
	DisplayName string       `json:"display_name"`
	Description string       `json:"description,omitempty"`
	Icon        string       `json:"icon,omitempty"`
	Color       string       `json:"color,omitempty"`
	IsActive    bool         `json:"is_active"`
	SortOrder   int          `json:"sort_order"`
	CreatedAt   time.Time    `json:"created_at"`
}

// QuestionCard mirrors the question_cards table. Content is immutable from
// this layer's perspective. CardPlayID is only present on cards returned by
// draw_card, which records the play as it deals the card.
type QuestionCard struct {
	ID            string    `json:"id"`
	CardPlayID    string    `json:"card_play_id,omitempty"`
	Text          string    `json:"text"`
	CategoryID    string    `json:"category_id,omitempty"`
	Difficulty    int       `json:"difficulty,omitempty"`
	SpiceLevel    int       `json:"spice_level,omitempty"`
	IsActive      bool      `json:"is_active"`
	UsesCount     int       `json:"uses_count"`
	AverageRating float64   `json:"average_rating,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CardPlay mirrors the card_plays table.
type CardPlay struct {
	ID               string    `json:"id"`
	GameID           string    `json:"game_id"`
	RoundID          string    `json:"round_id"`
	CardID           string    `json:"card_id"`
	PlayerID         string    `json:"player_id,omitempty"`
	WasSkipped       bool      `json:"was_skipped"`
	TimeSpentSeconds int       `json:"time_spent_seconds,omitempty"`
	PlayedAt         time.Time `json:"played_at"`
}
