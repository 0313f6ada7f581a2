package realtime

import (
	"encoding/json"
	"log"

	"ice-breaker/internal/model"
)

func classifyPlayerChange(topic string, c change, handlers PlayerHandlers) {
	var player model.Player
	if err := json.Unmarshal(c.Record, &player); err != nil {
		log.Printf("realtime feed %s: bad player record: %v", topic, err)
		return
	}
	switch c.Type {
	case changeInsert:
		if handlers.OnJoined != nil {
			handlers.OnJoined(PlayerJoinedEvent{Player: player})
		}
	case changeUpdate:
		if player.LeftAt != nil && !hadLeftAt(c.Old) {
			if handlers.OnLeft != nil {
				handlers.OnLeft(PlayerLeftEvent{PlayerID: player.ID})
			}
			return
		}
		if handlers.OnUpdated != nil {
			handlers.OnUpdated(player)
		}
	}
}

// hadLeftAt reports whether the row's prior state already carried a left_at.
// An absent old record counts as not-left, so a late-arriving update still
// classifies the transition once.
func hadLeftAt(old json.RawMessage) bool {
	if len(old) == 0 {
		return false
	}
	var prior model.Player
	if err := json.Unmarshal(old, &prior); err != nil {
		return false
	}
	return prior.LeftAt != nil
}

func classifyGameChange(topic string, c change, handlers GameHandlers) {
	if c.Type != changeUpdate {
		return
	}
	var game model.Game
	if err := json.Unmarshal(c.Record, &game); err != nil {
		log.Printf("realtime feed %s: bad game record: %v", topic, err)
		return
	}
	var prior model.Game
	if len(c.Old) > 0 {
		if err := json.Unmarshal(c.Old, &prior); err != nil {
			log.Printf("realtime feed %s: bad prior game record: %v", topic, err)
		}
	}
	switch {
	case game.Status == model.GameStatusPlaying && prior.Status == model.GameStatusLobby:
		if handlers.OnStarted != nil {
			handlers.OnStarted(GameStartedEvent{Game: game})
		}
	case game.Status == model.GameStatusFinished:
		if handlers.OnFinished != nil {
			handlers.OnFinished(game)
		}
	default:
		if handlers.OnUpdated != nil {
			handlers.OnUpdated(game)
		}
	}
}

func classifyRoundChange(topic string, c change, handlers RoundHandlers) {
	var round model.Round
	if err := json.Unmarshal(c.Record, &round); err != nil {
		log.Printf("realtime feed %s: bad round record: %v", topic, err)
		return
	}
	switch c.Type {
	case changeInsert:
		if handlers.OnRoundChanged != nil {
			handlers.OnRoundChanged(RoundChangedEvent{Round: round})
		}
	case changeUpdate:
		if round.Status == model.RoundStatusCompleted && handlers.OnRoundCompleted != nil {
			handlers.OnRoundCompleted(round)
		}
	}
}

func classifyReactionChange(topic string, c change, handler ReactionHandler) {
	if c.Type != changeInsert || handler == nil {
		return
	}
	var reaction model.Reaction
	if err := json.Unmarshal(c.Record, &reaction); err != nil {
		log.Printf("realtime feed %s: bad reaction record: %v", topic, err)
		return
	}
	handler(ReactionAddedEvent{Reaction: reaction})
}
