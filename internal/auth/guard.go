package auth

import (
	"context"
	"log"
	"time"
)

// DefaultGuardTimeout bounds how long a guard waits for the initial session
// restore before proceeding to the authorization check anyway.
const DefaultGuardTimeout = 5 * time.Second

// WaitUntilReady blocks until the manager's initial session fetch settles, or
// the timeout elapses, whichever comes first. It returns false on timeout
// after logging a diagnostic; callers should still proceed to their
// authorization check rather than failing the navigation outright.
func WaitUntilReady(ctx context.Context, m *Manager, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = DefaultGuardTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-m.Ready():
		return true
	case <-timer.C:
		log.Printf("auth guard timed out after %s waiting for session restore", timeout)
		return false
	case <-ctx.Done():
		return false
	}
}
