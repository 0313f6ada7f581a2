package server

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ice-breaker/internal/db"
)

// sessionStore keeps per-browser sessions: platform tokens for signed-in
// hosts, the guest display name, and a one-shot flash message. Records live
// in Postgres when a connection is available and in memory otherwise.
type sessionStore struct {
	db       *gorm.DB
	mu       sync.Mutex
	sessions map[string]db.Session
}

func newSessionStore(conn *gorm.DB) *sessionStore {
	return &sessionStore{
		db:       conn,
		sessions: make(map[string]db.Session),
	}
}

func (s *sessionStore) Current(c *gin.Context) db.Session {
	id := s.ensureSessionID(c)
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		record := s.sessions[id]
		record.ID = id
		return record
	}
	var record db.Session
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		return db.Session{ID: id}
	}
	return record
}

// Update mutates the current session record and saves it.
func (s *sessionStore) Update(c *gin.Context, mutate func(*db.Session)) {
	id := s.ensureSessionID(c)
	if s.db == nil {
		s.mu.Lock()
		record := s.sessions[id]
		record.ID = id
		mutate(&record)
		s.sessions[id] = record
		s.mu.Unlock()
		return
	}
	var record db.Session
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		record = db.Session{ID: id}
	}
	mutate(&record)
	if err := s.db.Save(&record).Error; err != nil && isUniqueViolation(err) {
		_ = s.db.Where("id = ?", id).Updates(&record).Error
	}
}

func (s *sessionStore) SetFlash(c *gin.Context, message string) {
	if message == "" {
		return
	}
	s.Update(c, func(record *db.Session) {
		record.Flash = message
	})
}

func (s *sessionStore) PopFlash(c *gin.Context) string {
	record := s.Current(c)
	if record.Flash == "" {
		return ""
	}
	message := record.Flash
	s.Update(c, func(record *db.Session) {
		record.Flash = ""
	})
	return message
}

func (s *sessionStore) SetName(c *gin.Context, name string) {
	if strings.TrimSpace(name) == "" {
		return
	}
	s.Update(c, func(record *db.Session) {
		record.PlayerName = name
	})
}

func (s *sessionStore) GetName(c *gin.Context) string {
	return s.Current(c).PlayerName
}

// StoreTokens records a signed-in host's platform session.
func (s *sessionStore) StoreTokens(c *gin.Context, accessToken, refreshToken string, expiresAt time.Time, userID, email string, meta []byte) {
	s.Update(c, func(record *db.Session) {
		record.AccessToken = accessToken
		record.RefreshToken = refreshToken
		if expiresAt.IsZero() {
			record.ExpiresAt = nil
		} else {
			at := expiresAt
			record.ExpiresAt = &at
		}
		record.UserID = userID
		record.Email = email
		record.UserMeta = meta
	})
}

// ClearTokens drops the platform session but keeps the browser session row.
func (s *sessionStore) ClearTokens(c *gin.Context) {
	s.Update(c, func(record *db.Session) {
		record.AccessToken = ""
		record.RefreshToken = ""
		record.ExpiresAt = nil
		record.UserID = ""
		record.Email = ""
		record.UserMeta = nil
	})
}

func (s *sessionStore) ensureSessionID(c *gin.Context) string {
	cookie, err := c.Request.Cookie("ib_session")
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := newSessionID()
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "ib_session",
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	c.Request.AddCookie(&http.Cookie{Name: "ib_session", Value: id})
	return id
}

func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("sess-%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("%x", buf)
}
