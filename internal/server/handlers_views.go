package server

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"

	"ice-breaker/internal/web"
)

func (s *Server) handleHome(c *gin.Context) {
	flash := s.sessions.PopFlash(c)
	name := s.sessions.GetName(c)
	signedIn := s.sessions.Current(c).Authenticated()
	templ.Handler(web.Home(flash, name, signedIn)).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleJoinView(c *gin.Context) {
	code := c.Param("code")
	if _, err := validateJoinCode(code); err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	name := s.sessions.GetName(c)
	templ.Handler(web.Join(code, name)).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleGameView(c *gin.Context) {
	gameID := c.Param("id")
	game, err := s.games.GetGame(c.Request.Context(), gameID)
	if err != nil {
		log.Printf("game view missing game_id=%s: %v", gameID, err)
		s.sessions.SetFlash(c, "That game could not be found.")
		c.Redirect(http.StatusFound, "/")
		return
	}
	isHost := false
	if record := s.sessions.Current(c); record.Authenticated() && game.HostID != "" {
		isHost = record.UserID == game.HostID
	}
	templ.Handler(web.GameView(*game, isHost)).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleHostView(c *gin.Context) {
	record := s.sessions.Current(c)
	templ.Handler(web.Host(record.Email)).ServeHTTP(c.Writer, c.Request)
}

// handleAdminView renders the admin dashboard, optionally resolving a game
// by join code with its player roster.
func (s *Server) handleAdminView(c *gin.Context) {
	data := web.AdminData{Email: s.sessions.Current(c).Email}
	code := c.Query("code")
	if code != "" {
		if trimmed, err := validateJoinCode(code); err != nil {
			data.Error = err.Error()
		} else {
			svc := s.games.WithToken(s.currentToken(c))
			game, err := svc.GetGameByCode(c.Request.Context(), trimmed)
			if err != nil {
				data.Error = err.Error()
			} else {
				data.Game = game
				players, err := svc.GetGamePlayers(c.Request.Context(), game.ID)
				if err != nil {
					data.Error = err.Error()
				} else {
					data.Players = players
				}
				plays, err := svc.GetGamePlays(c.Request.Context(), game.ID, 20)
				if err != nil {
					data.Error = err.Error()
				} else {
					data.Plays = plays
				}
			}
		}
		data.Code = code
	}
	templ.Handler(web.Admin(data)).ServeHTTP(c.Writer, c.Request)
}
