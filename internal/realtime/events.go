package realtime

import "ice-breaker/internal/model"

// Classified events. Auxiliary fields the change feed cannot cheaply supply
// (player totals, the next player, the first round, the reacting player) are
// nil rather than fabricated empty records: callers that need them must
// re-fetch through the data-access layer.

type PlayerJoinedEvent struct {
	Player model.Player
	// TotalPlayers is nil; re-fetch the player list if the count matters.
	TotalPlayers *int
}

type PlayerLeftEvent struct {
	PlayerID string
	// TotalPlayers is nil; re-fetch the player list if the count matters.
	TotalPlayers *int
}

type GameStartedEvent struct {
	Game model.Game
	// FirstRound is nil; fetch the current round after a start event.
	FirstRound *model.Round
}

type RoundChangedEvent struct {
	Round model.Round
	// NextPlayer is nil; resolve it from the round's current_player_id.
	NextPlayer *model.Player
}

type ReactionAddedEvent struct {
	Reaction model.Reaction
	// Player is nil; resolve it from the reaction's player_id.
	Player *model.Player
}

// PlayerHandlers receive classified player-feed events. Any handler may be
// nil.
type PlayerHandlers struct {
	OnJoined  func(PlayerJoinedEvent)
	OnLeft    func(PlayerLeftEvent)
	OnUpdated func(model.Player)
}

// GameHandlers receive classified game-status events.
type GameHandlers struct {
	OnStarted  func(GameStartedEvent)
	OnUpdated  func(model.Game)
	OnFinished func(model.Game)
}

// RoundHandlers receive classified round events.
type RoundHandlers struct {
	OnRoundChanged   func(RoundChangedEvent)
	OnRoundCompleted func(model.Round)
}

// ReactionHandler receives reaction-added events.
type ReactionHandler func(ReactionAddedEvent)
