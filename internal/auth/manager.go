package auth

import (
	"context"
	"log"
	"sync"
	"time"

	"ice-breaker/internal/platform"
)

// State is the session manager lifecycle:
// Uninitialized → Loading → {Authenticated, Anonymous}.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateAuthenticated
	StateAnonymous
)

// SessionStore persists a session across process restarts. It is only
// consulted when the client's PersistSession setting is on.
type SessionStore interface {
	Load() (*Session, error)
	Save(*Session) error
	Clear() error
}

// Manager caches the current session for the process lifetime and fans out
// session-change notifications. Construction kicks off an asynchronous
// restore of any persisted session; Ready is closed once the initial round
// trip settles.
type Manager struct {
	client *platform.Client
	store  SessionStore

	mu        sync.Mutex
	state     State
	session   *Session
	listeners []func(*User)

	ready     chan struct{}
	readyOnce sync.Once
}

// NewManager builds a manager and starts the initial session restore. store
// may be nil for a purely in-memory session.
func NewManager(client *platform.Client, store SessionStore) *Manager {
	m := &Manager{
		client: client,
		store:  store,
		state:  StateLoading,
		ready:  make(chan struct{}),
	}
	go m.restore()
	return m
}

// restore loads a persisted session, refreshing or validating it as needed,
// then settles into Authenticated or Anonymous.
func (m *Manager) restore() {
	defer m.readyOnce.Do(func() { close(m.ready) })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	session := m.loadPersisted()
	if session == nil {
		m.setSession(nil, false)
		return
	}
	if session.Expired() {
		if !m.client.Settings().AutoRefreshToken || session.RefreshToken == "" {
			m.setSession(nil, true)
			return
		}
		refreshed, err := Refresh(ctx, m.client, session.RefreshToken)
		if err != nil {
			log.Printf("session refresh failed during restore: %v", err)
			m.setSession(nil, true)
			return
		}
		m.setSession(refreshed, true)
		return
	}
	user, err := FetchUser(ctx, m.client, session.AccessToken)
	if err != nil {
		log.Printf("session validation failed during restore: %v", err)
		m.setSession(nil, true)
		return
	}
	session.User = user
	m.setSession(session, true)
}

func (m *Manager) loadPersisted() *Session {
	if m.store == nil || !m.client.Settings().PersistSession {
		return nil
	}
	session, err := m.store.Load()
	if err != nil {
		log.Printf("failed to load persisted session: %v", err)
		return nil
	}
	return session
}

// Ready is closed once the initial session fetch has settled.
func (m *Manager) Ready() <-chan struct{} {
	return m.ready
}

// Loading reports whether the initial session fetch is still in flight.
func (m *Manager) Loading() bool {
	select {
	case <-m.ready:
		return false
	default:
		return true
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsAuthenticated is a pure read of cached state; no network call.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateAuthenticated
}

// CurrentUser returns the cached user, or nil when anonymous.
func (m *Manager) CurrentUser() *User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil
	}
	return m.session.User
}

// Session returns the cached session, or nil when anonymous.
func (m *Manager) Session() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// OnChange registers a session-change listener for the remainder of the
// process lifetime. There is no unsubscribe; acceptable for a singleton
// session manager.
func (m *Manager) OnChange(fn func(*User)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// setSession updates cached state and notifies listeners. This notification
// path, not the sign-in call's return value, is the source of truth for
// authenticated state.
func (m *Manager) setSession(session *Session, persist bool) {
	m.mu.Lock()
	m.session = session
	if session != nil {
		m.state = StateAuthenticated
	} else {
		m.state = StateAnonymous
	}
	listeners := make([]func(*User), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	if persist && m.store != nil && m.client.Settings().PersistSession {
		var err error
		if session == nil {
			err = m.store.Clear()
		} else {
			err = m.store.Save(session)
		}
		if err != nil {
			log.Printf("failed to persist session: %v", err)
		}
	}

	var user *User
	if session != nil {
		user = session.User
	}
	for _, fn := range listeners {
		fn(user)
	}
}

// SignUp registers a new account and returns the created identity payload.
// It does not change the cached session.
func (m *Manager) SignUp(ctx context.Context, email, password, displayName string) (*User, error) {
	return SignUp(ctx, m.client, email, password, displayName)
}

// SignIn exchanges credentials for a session. On success the session-change
// notification drives the state to Authenticated.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*Session, error) {
	session, err := SignIn(ctx, m.client, email, password)
	if err != nil {
		return nil, err
	}
	m.setSession(session, true)
	return session, nil
}

// SignOut revokes the session remotely, then drives the state back to
// Anonymous via the session-change notification.
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	session := m.session
	m.mu.Unlock()
	if session != nil {
		if err := SignOut(ctx, m.client, session.AccessToken); err != nil {
			return err
		}
	}
	m.setSession(nil, true)
	return nil
}

// AccessToken returns a fresh access token, refreshing first when the cached
// one is stale and auto-refresh is enabled.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	session := m.session
	m.mu.Unlock()
	if session == nil {
		return "", platform.Normalize(&platform.Error{Message: "not signed in", Status: 401})
	}
	if !session.Expired() {
		return session.AccessToken, nil
	}
	if !m.client.Settings().AutoRefreshToken || session.RefreshToken == "" {
		return "", platform.Normalize(&platform.Error{Message: "session expired", Status: 401})
	}
	refreshed, err := Refresh(ctx, m.client, session.RefreshToken)
	if err != nil {
		return "", err
	}
	m.setSession(refreshed, true)
	return refreshed.AccessToken, nil
}
