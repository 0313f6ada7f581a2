package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// wsHub fans backend change-feed events out to every browser watching a
// game. Browsers never write game state over these sockets; the read loop
// exists only to notice disconnects. All writes happen under h.mu: four feed
// loops plus the handler goroutine can target the same connection, and
// gorilla allows one concurrent writer per connection.
type wsHub struct {
	mu     sync.Mutex
	groups map[string]map[*websocket.Conn]struct{}
}

func newWSHub() *wsHub {
	return &wsHub{
		groups: make(map[string]map[*websocket.Conn]struct{}),
	}
}

func (h *wsHub) Add(gameID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[gameID]
	if group == nil {
		group = make(map[*websocket.Conn]struct{})
		h.groups[gameID] = group
	}
	group[conn] = struct{}{}
}

func (h *wsHub) Remove(gameID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[gameID]
	if group == nil {
		return
	}
	delete(group, conn)
	_ = conn.Close()
	if len(group) == 0 {
		delete(h.groups, gameID)
	}
}

func (h *wsHub) Send(conn *websocket.Conn, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.Lock()
	_ = conn.WriteMessage(websocket.TextMessage, data)
	h.mu.Unlock()
}

func (h *wsHub) Broadcast(gameID string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.Lock()
	var failed []*websocket.Conn
	for conn := range h.groups[gameID] {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			failed = append(failed, conn)
		}
	}
	h.mu.Unlock()
	for _, conn := range failed {
		h.Remove(gameID, conn)
	}
}

func (s *Server) handleGameSocket(c *gin.Context) {
	gameID := c.Param("id")
	svc := s.games.WithToken(s.currentToken(c))
	game, err := svc.GetGame(c.Request.Context(), gameID)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	log.Printf("ws connected game_id=%s remote=%s", game.ID, c.Request.RemoteAddr)
	s.hub.Add(game.ID, conn)
	if err := s.feeds.Acquire(game.ID); err != nil {
		log.Printf("feed attach failed game_id=%s error=%v", game.ID, err)
	}
	s.hub.Send(conn, gin.H{"event": "game_state", "data": game})
	go s.readWS(game.ID, conn)
}

func (s *Server) readWS(gameID string, conn *websocket.Conn) {
	defer func() {
		s.hub.Remove(gameID, conn)
		s.feeds.Release(gameID)
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Printf("ws disconnected game_id=%s error=%v", gameID, err)
			return
		}
	}
}
