package db

import (
	"time"

	"gorm.io/datatypes"
)

// Session is one browser session. It ties a cookie id to the platform tokens
// of a signed-in host (empty for guests) plus a little per-browser state.
type Session struct {
	ID           string `gorm:"primaryKey;size:64"`
	AccessToken  string `gorm:"size:4096"`
	RefreshToken string `gorm:"size:512"`
	ExpiresAt    *time.Time
	UserID       string         `gorm:"size:64"`
	Email        string         `gorm:"size:255"`
	UserMeta     datatypes.JSON `gorm:"type:jsonb"`
	PlayerName   string         `gorm:"size:64"`
	Flash        string         `gorm:"size:280"`
	CreatedAt    time.Time      `gorm:"not null"`
	UpdatedAt    time.Time      `gorm:"not null"`
}

// Authenticated reports whether this browser session carries platform tokens.
func (s Session) Authenticated() bool {
	return s.AccessToken != ""
}
