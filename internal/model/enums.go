package model

type GameStatus string

const (
	GameStatusLobby     GameStatus = "lobby"
	GameStatusPlaying   GameStatus = "playing"
	GameStatusPaused    GameStatus = "paused"
	GameStatusFinished  GameStatus = "finished"
	GameStatusAbandoned GameStatus = "abandoned"
)

type GameMode string

const (
	GameModeClassic  GameMode = "classic"
	GameModeSpeed    GameMode = "speed"
	GameModeDeepDive GameMode = "deep-dive"
	GameModeParty    GameMode = "party"
)

type ConnectionStatus string

const (
	ConnectionOnline  ConnectionStatus = "online"
	ConnectionOffline ConnectionStatus = "offline"
	ConnectionAway    ConnectionStatus = "away"
)

type RoundStatus string

const (
	RoundStatusActive    RoundStatus = "active"
	RoundStatusCompleted RoundStatus = "completed"
	RoundStatusSkipped   RoundStatus = "skipped"
)

type ReactionType string

const (
	ReactionLove      ReactionType = "love"
	ReactionLaugh     ReactionType = "laugh"
	ReactionMindBlown ReactionType = "mind_blown"
	ReactionFire      ReactionType = "fire"
	ReactionSkip      ReactionType = "skip"
	ReactionSave      ReactionType = "save"
)

type CategoryName string

const (
	CategoryLaugh CategoryName = "laugh"
	CategoryThink CategoryName = "think"
	CategoryFlirt CategoryName = "flirt"
	CategoryWild  CategoryName = "wild"
)

// ReactionLabels maps reaction types to the labels shown next to the emoji.
var ReactionLabels = map[ReactionType]string{
	ReactionLove:      "Love it!",
	ReactionLaugh:     "Hilarious",
	ReactionMindBlown: "Mind Blown",
	ReactionFire:      "Spicy!",
	ReactionSkip:      "Skip",
	ReactionSave:      "Save",
}

func ValidReactionType(value string) bool {
	switch ReactionType(value) {
	case ReactionLove, ReactionLaugh, ReactionMindBlown, ReactionFire, ReactionSkip, ReactionSave:
		return true
	}
	return false
}
