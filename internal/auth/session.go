package auth

import (
	"context"
	"net/url"
	"time"

	"ice-breaker/internal/platform"
)

// User is the authenticated principal as the auth provider reports it.
type User struct {
	ID       string         `json:"id"`
	Email    string         `json:"email,omitempty"`
	Metadata map[string]any `json:"user_metadata,omitempty"`
}

// Session carries the token material for an authenticated principal. It is
// owned by the auth provider and cached transiently here.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         *User     `json:"user,omitempty"`
}

// Expired reports whether the access token is past (or within a minute of)
// its expiry.
func (s *Session) Expired() bool {
	if s == nil {
		return true
	}
	if s.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(s.ExpiresAt.Add(-time.Minute))
}

// tokenResponse is the auth provider's token-grant payload.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	User         *User  `json:"user"`
}

func (t tokenResponse) session() *Session {
	return &Session{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		ExpiresAt:    time.Now().Add(time.Duration(t.ExpiresIn) * time.Second),
		User:         t.User,
	}
}

// SignUp registers a new account and returns the created identity payload.
func SignUp(ctx context.Context, client *platform.Client, email, password, displayName string) (*User, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
	}
	if displayName != "" {
		body["data"] = map[string]string{"display_name": displayName}
	}
	var user User
	if err := client.Post(ctx, "/auth/v1/signup", nil, body, &user); err != nil {
		return nil, platform.Normalize(err)
	}
	return &user, nil
}

// SignIn exchanges email/password credentials for a session.
func SignIn(ctx context.Context, client *platform.Client, email, password string) (*Session, error) {
	query := url.Values{"grant_type": []string{"password"}}
	body := map[string]string{"email": email, "password": password}
	var resp tokenResponse
	if err := client.Post(ctx, "/auth/v1/token", query, body, &resp); err != nil {
		return nil, platform.Normalize(err)
	}
	return resp.session(), nil
}

// SignOut revokes an access token with the auth provider.
func SignOut(ctx context.Context, client *platform.Client, accessToken string) error {
	if err := client.WithToken(accessToken).Post(ctx, "/auth/v1/logout", nil, nil, nil); err != nil {
		return platform.Normalize(err)
	}
	return nil
}

// Refresh exchanges a refresh token for a fresh session. Exported because the
// web app refreshes stored browser sessions outside any Manager.
func Refresh(ctx context.Context, client *platform.Client, refreshToken string) (*Session, error) {
	query := url.Values{"grant_type": []string{"refresh_token"}}
	body := map[string]string{"refresh_token": refreshToken}
	var resp tokenResponse
	if err := client.Post(ctx, "/auth/v1/token", query, body, &resp); err != nil {
		return nil, platform.Normalize(err)
	}
	return resp.session(), nil
}

// FetchUser asks the auth provider who the given access token belongs to.
func FetchUser(ctx context.Context, client *platform.Client, accessToken string) (*User, error) {
	var user User
	if err := client.WithToken(accessToken).GetJSON(ctx, "/auth/v1/user", nil, &user); err != nil {
		return nil, platform.Normalize(err)
	}
	return &user, nil
}
