package platform

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrInvalidConfig reports a missing or malformed endpoint URL or key.
var ErrInvalidConfig = errors.New("invalid platform config")

// Config describes a backend platform connection. URL and AnonKey are
// required; Options fields left nil fall back to defaults at merge time.
type Config struct {
	URL     string  `json:"url"`
	AnonKey string  `json:"anonKey"`
	Options Options `json:"options,omitempty"`
}

// Options are caller overrides. Pointer fields distinguish "not supplied"
// from an explicit false/zero so merging stays per-field.
type Options struct {
	Auth     AuthOptions     `json:"auth,omitempty"`
	Realtime RealtimeOptions `json:"realtime,omitempty"`
}

type AuthOptions struct {
	AutoRefreshToken   *bool `json:"autoRefreshToken,omitempty"`
	PersistSession     *bool `json:"persistSession,omitempty"`
	DetectSessionInURL *bool `json:"detectSessionInUrl,omitempty"`
}

type RealtimeOptions struct {
	EventsPerSecond *int `json:"eventsPerSecond,omitempty"`
}

// Settings is the fully merged, concrete form of Options.
type Settings struct {
	AutoRefreshToken   bool
	PersistSession     bool
	DetectSessionInURL bool
	EventsPerSecond    int
}

// DefaultSettings match the platform client defaults: token auto-refresh on,
// session persistence on, URL session detection on, ten realtime events/sec.
func DefaultSettings() Settings {
	return Settings{
		AutoRefreshToken:   true,
		PersistSession:     true,
		DetectSessionInURL: true,
		EventsPerSecond:    10,
	}
}

// MergeOptions overlays supplied options onto the defaults one field at a
// time. A partial auth override never disturbs realtime settings and vice
// versa.
func MergeOptions(opts Options) Settings {
	merged := DefaultSettings()
	if opts.Auth.AutoRefreshToken != nil {
		merged.AutoRefreshToken = *opts.Auth.AutoRefreshToken
	}
	if opts.Auth.PersistSession != nil {
		merged.PersistSession = *opts.Auth.PersistSession
	}
	if opts.Auth.DetectSessionInURL != nil {
		merged.DetectSessionInURL = *opts.Auth.DetectSessionInURL
	}
	if opts.Realtime.EventsPerSecond != nil {
		merged.EventsPerSecond = *opts.Realtime.EventsPerSecond
	}
	return merged
}

// Validate checks the required connection parameters.
func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("%w: missing endpoint URL", ErrInvalidConfig)
	}
	parsed, err := url.Parse(c.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%w: malformed endpoint URL %q", ErrInvalidConfig, c.URL)
	}
	if c.AnonKey == "" {
		return fmt.Errorf("%w: missing anon key", ErrInvalidConfig)
	}
	return nil
}
