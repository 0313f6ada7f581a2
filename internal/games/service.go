// Package games invokes the remote procedures and table reads that make up
// the game lifecycle. Game rules live entirely in the backend; this layer
// only shapes requests and normalizes outcomes. No raw transport error
// escapes it: every failure comes back as a *platform.Error, and every call
// yields data or an error, never both.
package games

import (
	"context"
	"net/url"
	"strconv"

	"ice-breaker/internal/model"
	"ice-breaker/internal/platform"
)

type Service struct {
	client *platform.Client
}

func New(client *platform.Client) *Service {
	return &Service{client: client}
}

// WithToken returns a service bound to a user access token, for calls made
// on behalf of a signed-in host.
func (s *Service) WithToken(token string) *Service {
	return &Service{client: s.client.WithToken(token)}
}

// CreateGameParams are the optional knobs for create_game. Zero values are
// omitted so the backend's defaults apply.
type CreateGameParams struct {
	Name        string              `json:"p_name,omitempty"`
	GameMode    model.GameMode      `json:"p_game_mode,omitempty"`
	MaxPlayers  int                 `json:"p_max_players,omitempty"`
	TotalRounds int                 `json:"p_total_rounds,omitempty"`
	Settings    *model.GameSettings `json:"p_settings,omitempty"`
}

func (s *Service) CreateGame(ctx context.Context, params CreateGameParams) (*model.Game, error) {
	var game model.Game
	if err := s.client.Rpc(ctx, "create_game", params, &game); err != nil {
		return nil, platform.Normalize(err)
	}
	return &game, nil
}

type joinGameRequest struct {
	GameCode    string `json:"p_game_code"`
	DisplayName string `json:"p_display_name"`
	AvatarURL   string `json:"p_avatar_url,omitempty"`
}

func (s *Service) JoinGame(ctx context.Context, gameCode, displayName, avatarURL string) (*model.Player, error) {
	req := joinGameRequest{GameCode: gameCode, DisplayName: displayName, AvatarURL: avatarURL}
	var player model.Player
	if err := s.client.Rpc(ctx, "join_game", req, &player); err != nil {
		return nil, platform.Normalize(err)
	}
	return &player, nil
}

func (s *Service) StartGame(ctx context.Context, gameID string) (*model.Game, error) {
	req := map[string]string{"p_game_id": gameID}
	var game model.Game
	if err := s.client.Rpc(ctx, "start_game", req, &game); err != nil {
		return nil, platform.Normalize(err)
	}
	return &game, nil
}

func (s *Service) DrawCard(ctx context.Context, gameID string, categoryName model.CategoryName) (*model.QuestionCard, error) {
	req := map[string]any{"p_game_id": gameID}
	if categoryName != "" {
		req["p_category_name"] = categoryName
	}
	var card model.QuestionCard
	if err := s.client.Rpc(ctx, "draw_card", req, &card); err != nil {
		return nil, platform.Normalize(err)
	}
	return &card, nil
}

type playCardRequest struct {
	GameID           string `json:"p_game_id"`
	CardID           string `json:"p_card_id"`
	WasSkipped       bool   `json:"p_was_skipped"`
	TimeSpentSeconds int    `json:"p_time_spent_seconds,omitempty"`
}

func (s *Service) PlayCard(ctx context.Context, gameID, cardID string, wasSkipped bool, timeSpentSeconds int) (*model.Round, error) {
	req := playCardRequest{
		GameID:           gameID,
		CardID:           cardID,
		WasSkipped:       wasSkipped,
		TimeSpentSeconds: timeSpentSeconds,
	}
	var round model.Round
	if err := s.client.Rpc(ctx, "play_card", req, &round); err != nil {
		return nil, platform.Normalize(err)
	}
	return &round, nil
}

func (s *Service) AddReaction(ctx context.Context, cardPlayID string, reactionType model.ReactionType) (*model.Reaction, error) {
	req := map[string]any{
		"p_card_play_id":  cardPlayID,
		"p_reaction_type": reactionType,
	}
	var reaction model.Reaction
	if err := s.client.Rpc(ctx, "add_reaction", req, &reaction); err != nil {
		return nil, platform.Normalize(err)
	}
	return &reaction, nil
}

func (s *Service) LeaveGame(ctx context.Context, gameID string) (bool, error) {
	req := map[string]string{"p_game_id": gameID}
	var left bool
	if err := s.client.Rpc(ctx, "leave_game", req, &left); err != nil {
		return false, platform.Normalize(err)
	}
	return left, nil
}

func (s *Service) GetGame(ctx context.Context, gameID string) (*model.Game, error) {
	query := url.Values{}
	query.Set("id", "eq."+gameID)
	query.Set("limit", "1")
	return s.selectGame(ctx, query, gameID)
}

func (s *Service) GetGameByCode(ctx context.Context, code string) (*model.Game, error) {
	query := url.Values{}
	query.Set("code", "eq."+code)
	query.Set("limit", "1")
	return s.selectGame(ctx, query, code)
}

func (s *Service) selectGame(ctx context.Context, query url.Values, ref string) (*model.Game, error) {
	var rows []model.Game
	if err := s.client.Select(ctx, "games", query, &rows); err != nil {
		return nil, platform.Normalize(err)
	}
	if len(rows) == 0 {
		return nil, notFound("game " + ref)
	}
	return &rows[0], nil
}

// GetGamePlayers lists a game's players, excluding soft-deleted rows, in
// join order. The filtering happens remotely.
func (s *Service) GetGamePlayers(ctx context.Context, gameID string) ([]model.Player, error) {
	query := url.Values{}
	query.Set("game_id", "eq."+gameID)
	query.Set("left_at", "is.null")
	query.Set("order", "joined_at.asc")
	var rows []model.Player
	if err := s.client.Select(ctx, "players", query, &rows); err != nil {
		return nil, platform.Normalize(err)
	}
	return rows, nil
}

// GetCurrentRound fetches the single active round. The status filter, the
// ordering by round number, and the limit all run remotely.
func (s *Service) GetCurrentRound(ctx context.Context, gameID string) (*model.Round, error) {
	query := url.Values{}
	query.Set("game_id", "eq."+gameID)
	query.Set("status", "eq.active")
	query.Set("order", "round_number.desc")
	query.Set("limit", "1")
	var rows []model.Round
	if err := s.client.Select(ctx, "rounds", query, &rows); err != nil {
		return nil, platform.Normalize(err)
	}
	if len(rows) == 0 {
		return nil, notFound("active round for game " + gameID)
	}
	return &rows[0], nil
}

// GetCardCategories lists the active card categories in display order.
func (s *Service) GetCardCategories(ctx context.Context) ([]model.CardCategory, error) {
	query := url.Values{}
	query.Set("is_active", "eq.true")
	query.Set("order", "sort_order.asc")
	var rows []model.CardCategory
	if err := s.client.Select(ctx, "card_categories", query, &rows); err != nil {
		return nil, platform.Normalize(err)
	}
	return rows, nil
}

// GetGamePlays lists a game's most recent card plays, newest first.
func (s *Service) GetGamePlays(ctx context.Context, gameID string, limit int) ([]model.CardPlay, error) {
	query := url.Values{}
	query.Set("game_id", "eq."+gameID)
	query.Set("order", "played_at.desc")
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var rows []model.CardPlay
	if err := s.client.Select(ctx, "card_plays", query, &rows); err != nil {
		return nil, platform.Normalize(err)
	}
	return rows, nil
}

func notFound(detail string) *platform.Error {
	return platform.Normalize(&platform.Error{
		Message: "row not found",
		Code:    "PGRST116",
		Status:  404,
		Details: detail,
	})
}
