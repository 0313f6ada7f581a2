// Package server is the web client for IceBreaker. It renders the thin
// views, keeps per-browser sessions, and proxies every game action to the
// hosted backend; no game rule is evaluated here.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ice-breaker/internal/config"
	"ice-breaker/internal/games"
	"ice-breaker/internal/platform"
	"ice-breaker/internal/realtime"
)

type Server struct {
	cfg      config.Config
	client   *platform.Client
	games    *games.Service
	sessions *sessionStore
	hub      *wsHub
	feeds    *feedBridge
}

func New(conn *gorm.DB, cfg config.Config, client *platform.Client) *Server {
	hub := newWSHub()
	return &Server{
		cfg:      cfg,
		client:   client,
		games:    games.New(client),
		sessions: newSessionStore(conn),
		hub:      hub,
		feeds:    newFeedBridge(realtime.New(client), hub),
	}
}

func (s *Server) Handler() http.Handler {
	registerValidators()
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", s.handleHome)
	router.GET("/join/:code", s.handleJoinView)
	router.GET("/signup", s.handleSignupView)
	router.POST("/signup", s.handleSignup)
	router.GET("/login", s.handleLoginView)
	router.POST("/login", s.handleLogin)
	router.POST("/logout", s.handleLogout)
	router.GET("/games/:id", s.handleGameView)

	router.POST("/api/games/join", s.handleJoinGame)
	router.GET("/api/games/:id", s.handleGameSnapshot)
	router.POST("/api/games/:id/draw", s.handleDrawCard)
	router.POST("/api/games/:id/play", s.handlePlayCard)
	router.POST("/api/games/:id/react", s.handleAddReaction)
	router.POST("/api/games/:id/leave", s.handleLeaveGame)
	router.GET("/ws/games/:id", s.handleGameSocket)

	guarded := router.Group("", s.requireAuth)
	guarded.GET("/host", s.handleHostView)
	guarded.GET("/admin", s.handleAdminView)
	guarded.POST("/api/games", s.handleCreateGame)
	guarded.POST("/api/games/:id/start", s.handleStartGame)

	router.StaticFile("/static/styles.css", "static/styles.css")
	router.StaticFile("/static/game.js", "static/game.js")
	return router
}
