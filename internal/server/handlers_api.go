package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"ice-breaker/internal/games"
	"ice-breaker/internal/model"
	"ice-breaker/internal/platform"
)

type createGameRequest struct {
	Name        string `json:"name"`
	GameMode    string `json:"game_mode"`
	MaxPlayers  int    `json:"max_players"`
	TotalRounds int    `json:"total_rounds"`
}

type joinGameRequest struct {
	Code string `json:"code" binding:"required,joincode"`
	Name string `json:"name" binding:"required,displayname"`
}

type drawCardRequest struct {
	Category string `json:"category"`
}

type playCardRequest struct {
	CardID           string `json:"card_id" binding:"required"`
	WasSkipped       bool   `json:"was_skipped"`
	TimeSpentSeconds int    `json:"time_spent_seconds"`
}

type addReactionRequest struct {
	CardPlayID   string `json:"card_play_id" binding:"required"`
	ReactionType string `json:"reaction_type" binding:"required,reaction"`
}

func (s *Server) handleCreateGame(c *gin.Context) {
	var req createGameRequest
	if !bindJSON(c, &req, nil, "invalid game settings") {
		return
	}
	svc := s.games.WithToken(s.currentToken(c))
	game, err := svc.CreateGame(c.Request.Context(), games.CreateGameParams{
		Name:        normalizeText(req.Name),
		GameMode:    model.GameMode(req.GameMode),
		MaxPlayers:  req.MaxPlayers,
		TotalRounds: req.TotalRounds,
	})
	if err != nil {
		respondPlatformError(c, err)
		return
	}
	log.Printf("game created game_id=%s join_code=%s", game.ID, game.Code)
	writeJSON(c.Writer, http.StatusCreated, game)
}

func (s *Server) handleJoinGame(c *gin.Context) {
	var req joinGameRequest
	messages := bindMessages{
		"Code": {"required": "join code is required", "joincode": "join codes are six letters or digits"},
		"Name": {"required": "display name is required", "displayname": "display name must be 20 characters or fewer"},
	}
	if !bindJSON(c, &req, messages, "invalid join request") {
		return
	}
	code, _ := validateJoinCode(req.Code)
	player, err := s.games.JoinGame(c.Request.Context(), code, normalizeText(req.Name), "")
	if err != nil {
		respondPlatformError(c, err)
		return
	}
	s.sessions.SetName(c, player.DisplayName)
	log.Printf("player joined game_id=%s player_id=%s", player.GameID, player.ID)
	writeJSON(c.Writer, http.StatusCreated, player)
}

func (s *Server) handleStartGame(c *gin.Context) {
	svc := s.games.WithToken(s.currentToken(c))
	game, err := svc.StartGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondPlatformError(c, err)
		return
	}
	log.Printf("game started game_id=%s", game.ID)
	writeJSON(c.Writer, http.StatusOK, game)
}

func (s *Server) handleDrawCard(c *gin.Context) {
	var req drawCardRequest
	if !bindJSON(c, &req, nil, "invalid draw request") {
		return
	}
	svc := s.games.WithToken(s.currentToken(c))
	card, err := svc.DrawCard(c.Request.Context(), c.Param("id"), model.CategoryName(req.Category))
	if err != nil {
		respondPlatformError(c, err)
		return
	}
	writeJSON(c.Writer, http.StatusOK, card)
}

func (s *Server) handlePlayCard(c *gin.Context) {
	var req playCardRequest
	if !bindJSON(c, &req, nil, "invalid play request") {
		return
	}
	svc := s.games.WithToken(s.currentToken(c))
	round, err := svc.PlayCard(c.Request.Context(), c.Param("id"), req.CardID, req.WasSkipped, req.TimeSpentSeconds)
	if err != nil {
		respondPlatformError(c, err)
		return
	}
	writeJSON(c.Writer, http.StatusOK, round)
}

func (s *Server) handleAddReaction(c *gin.Context) {
	var req addReactionRequest
	messages := bindMessages{
		"ReactionType": {"required": "reaction type is required", "reaction": "unknown reaction type"},
	}
	if !bindJSON(c, &req, messages, "invalid reaction") {
		return
	}
	svc := s.games.WithToken(s.currentToken(c))
	reaction, err := svc.AddReaction(c.Request.Context(), req.CardPlayID, model.ReactionType(req.ReactionType))
	if err != nil {
		respondPlatformError(c, err)
		return
	}
	writeJSON(c.Writer, http.StatusCreated, reaction)
}

func (s *Server) handleLeaveGame(c *gin.Context) {
	svc := s.games.WithToken(s.currentToken(c))
	left, err := svc.LeaveGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondPlatformError(c, err)
		return
	}
	writeJSON(c.Writer, http.StatusOK, map[string]bool{"left": left})
}

// handleGameSnapshot serves the page JS one consistent read of a game: the
// record, its players, and the active round when one exists.
func (s *Server) handleGameSnapshot(c *gin.Context) {
	ctx := c.Request.Context()
	gameID := c.Param("id")
	game, err := s.games.GetGame(ctx, gameID)
	if err != nil {
		respondPlatformError(c, err)
		return
	}
	players, err := s.games.GetGamePlayers(ctx, gameID)
	if err != nil {
		respondPlatformError(c, err)
		return
	}
	snapshot := gin.H{
		"game":    game,
		"players": players,
	}
	round, err := s.games.GetCurrentRound(ctx, gameID)
	switch {
	case err == nil:
		snapshot["round"] = round
	case platform.IsNotFound(err):
		// no active round yet; the snapshot just omits it
	default:
		respondPlatformError(c, err)
		return
	}
	writeJSON(c.Writer, http.StatusOK, snapshot)
}

// respondPlatformError surfaces the normalized message with a sensible HTTP
// status; the backend's own codes never leak through raw.
func respondPlatformError(c *gin.Context, err error) {
	status := http.StatusBadGateway
	var perr *platform.Error
	if errors.As(err, &perr) && perr.Status >= 400 {
		status = perr.Status
	}
	if platform.IsAuthError(err) {
		status = http.StatusForbidden
	}
	if platform.IsValidationError(err) {
		status = http.StatusUnprocessableEntity
	}
	writeError(c.Writer, status, err.Error())
}
