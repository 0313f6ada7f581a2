package config

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"ice-breaker/internal/platform"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	Addr        string
	DatabaseURL string
	Platform    platform.Config
}

func Default() Config {
	return Config{
		Addr: ":8080",
	}
}

// artifact is the config file cmd/genconfig writes for each app.
type artifact struct {
	Platform struct {
		URL     string `json:"url"`
		AnonKey string `json:"anonKey"`
	} `json:"platform"`
}

// Load resolves the configuration: defaults, then the generated artifact at
// artifactPath (if present), then environment variables on top.
func Load(artifactPath string) Config {
	cfg := Default()
	if artifactPath != "" {
		if data, err := os.ReadFile(artifactPath); err == nil {
			var art artifact
			if err := json.Unmarshal(data, &art); err == nil {
				cfg.Platform.URL = art.Platform.URL
				cfg.Platform.AnonKey = art.Platform.AnonKey
			}
		}
	}
	if raw := os.Getenv("PORT"); raw != "" {
		cfg.Addr = ":" + raw
	}
	if raw := os.Getenv("DATABASE_URL"); raw != "" {
		cfg.DatabaseURL = raw
	}
	if raw := os.Getenv("PLATFORM_URL"); raw != "" {
		cfg.Platform.URL = raw
	}
	if raw := os.Getenv("PLATFORM_ANON_KEY"); raw != "" {
		cfg.Platform.AnonKey = raw
	}
	if raw := os.Getenv("PLATFORM_EVENTS_PER_SECOND"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.Platform.Options.Realtime.EventsPerSecond = &value
		}
	}
	if raw := os.Getenv("PLATFORM_PERSIST_SESSION"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.Platform.Options.Auth.PersistSession = &value
		}
	}
	if raw := os.Getenv("PLATFORM_AUTO_REFRESH_TOKEN"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.Platform.Options.Auth.AutoRefreshToken = &value
		}
	}
	return cfg
}
