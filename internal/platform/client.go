package platform

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// ErrNotInitialized reports use of the shared client before Initialize.
var ErrNotInitialized = errors.New("platform client not initialized; call platform.Initialize first")

// Client is a handle on the hosted backend: remote procedures, table reads,
// auth endpoints, and realtime feeds all go through it. Construct one per
// process with New and pass it to the consumers that need it.
type Client struct {
	baseURL  *url.URL
	anonKey  string
	settings Settings
	http     *http.Client
	token    string
}

// New validates cfg, merges options onto defaults, and returns a client.
func New(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, ErrInvalidConfig
	}
	return &Client{
		baseURL:  parsed,
		anonKey:  cfg.AnonKey,
		settings: MergeOptions(cfg.Options),
		http:     &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// WithToken returns a copy of the client that authenticates requests with the
// given user access token instead of the anon key. The receiver is unchanged,
// so one base client can serve many principals.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// Settings returns the merged client settings.
func (c *Client) Settings() Settings {
	return c.settings
}

// BaseURL returns a copy of the endpoint URL.
func (c *Client) BaseURL() *url.URL {
	clone := *c.baseURL
	return &clone
}

// AnonKey returns the public API key.
func (c *Client) AnonKey() string {
	return c.anonKey
}

var (
	sharedMu sync.Mutex
	shared   *Client
)

// Initialize creates the process-wide shared client. A second call is
// non-fatal: it warns and returns the handle from the first call unchanged,
// whatever config it is given.
func Initialize(cfg Config) (*Client, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if shared != nil {
		log.Printf("platform client already initialized; returning existing instance")
		return shared, nil
	}
	client, err := New(cfg)
	if err != nil {
		return nil, err
	}
	shared = client
	return shared, nil
}

// Get returns the shared client, or ErrNotInitialized before Initialize.
func Get() (*Client, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if shared == nil {
		return nil, ErrNotInitialized
	}
	return shared, nil
}

// Initialized reports whether the shared client exists.
func Initialized() bool {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	return shared != nil
}

// Reset clears the shared client. Test escape hatch only.
func Reset() {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	shared = nil
}
