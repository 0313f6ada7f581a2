package server

import (
	"log"
	"sync"

	"github.com/gin-gonic/gin"

	"ice-breaker/internal/model"
	"ice-breaker/internal/realtime"
)

// feedBridge attaches one set of backend change feeds per watched game and
// rebroadcasts the classified events to the game's browser sockets. Watchers
// are counted under the bridge's own mutex so a departing socket can never
// tear feeds down underneath one that just arrived: feeds open when the count
// goes to one and close only when it returns to zero.
type feedBridge struct {
	mu    sync.Mutex
	rt    *realtime.Manager
	hub   *wsHub
	games map[string]*gameFeeds
}

type gameFeeds struct {
	watchers int
	subs     []*realtime.Subscription
}

func newFeedBridge(rt *realtime.Manager, hub *wsHub) *feedBridge {
	return &feedBridge{
		rt:    rt,
		hub:   hub,
		games: make(map[string]*gameFeeds),
	}
}

// Acquire registers one watcher for the game and attaches the feeds if none
// are live yet. Every Acquire must be paired with a Release, including when
// the attach fails; a later Acquire retries the attach.
func (b *feedBridge) Acquire(gameID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	state := b.games[gameID]
	if state == nil {
		state = &gameFeeds{}
		b.games[gameID] = state
	}
	state.watchers++
	if len(state.subs) > 0 {
		return nil
	}
	subs, err := b.attach(gameID)
	if err != nil {
		return err
	}
	state.subs = subs
	log.Printf("change feeds attached game_id=%s feeds=%d", gameID, len(subs))
	return nil
}

func (b *feedBridge) attach(gameID string) ([]*realtime.Subscription, error) {
	subs := make([]*realtime.Subscription, 0, 4)
	keep := func(sub *realtime.Subscription, err error) error {
		if err != nil {
			return err
		}
		subs = append(subs, sub)
		return nil
	}

	err := keep(b.rt.SubscribeToPlayers(gameID, realtime.PlayerHandlers{
		OnJoined: func(event realtime.PlayerJoinedEvent) {
			b.hub.Broadcast(gameID, gin.H{"event": "player_joined", "data": event.Player})
		},
		OnLeft: func(event realtime.PlayerLeftEvent) {
			b.hub.Broadcast(gameID, gin.H{"event": "player_left", "data": gin.H{"player_id": event.PlayerID}})
		},
		OnUpdated: func(player model.Player) {
			b.hub.Broadcast(gameID, gin.H{"event": "player_updated", "data": player})
		},
	}))
	if err == nil {
		err = keep(b.rt.SubscribeToGame(gameID, realtime.GameHandlers{
			OnStarted: func(event realtime.GameStartedEvent) {
				b.hub.Broadcast(gameID, gin.H{"event": "game_started", "data": event.Game})
			},
			OnUpdated: func(game model.Game) {
				b.hub.Broadcast(gameID, gin.H{"event": "game_updated", "data": game})
			},
			OnFinished: func(game model.Game) {
				b.hub.Broadcast(gameID, gin.H{"event": "game_finished", "data": game})
			},
		}))
	}
	if err == nil {
		err = keep(b.rt.SubscribeToRounds(gameID, realtime.RoundHandlers{
			OnRoundChanged: func(event realtime.RoundChangedEvent) {
				b.hub.Broadcast(gameID, gin.H{"event": "round_changed", "data": event.Round})
			},
			OnRoundCompleted: func(round model.Round) {
				b.hub.Broadcast(gameID, gin.H{"event": "round_completed", "data": round})
			},
		}))
	}
	if err == nil {
		err = keep(b.rt.SubscribeToReactions(gameID, func(event realtime.ReactionAddedEvent) {
			b.hub.Broadcast(gameID, gin.H{"event": "reaction_added", "data": event.Reaction})
		}))
	}
	if err != nil {
		for _, sub := range subs {
			b.rt.Unsubscribe(sub)
		}
		return nil, err
	}
	return subs, nil
}

// Release drops one watcher and tears the feeds down when the last one
// leaves.
func (b *feedBridge) Release(gameID string) {
	b.mu.Lock()
	state := b.games[gameID]
	if state == nil {
		b.mu.Unlock()
		return
	}
	state.watchers--
	if state.watchers > 0 {
		b.mu.Unlock()
		return
	}
	subs := state.subs
	delete(b.games, gameID)
	b.mu.Unlock()
	for _, sub := range subs {
		b.rt.Unsubscribe(sub)
	}
	if len(subs) > 0 {
		log.Printf("change feeds released game_id=%s", gameID)
	}
}
