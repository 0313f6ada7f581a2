// Command genconfig writes the per-app runtime config artifacts from
// environment variables. It runs at build time so the binaries never need
// credentials baked in.
package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"

	"ice-breaker/internal/config"
)

type artifact struct {
	Platform struct {
		URL     string `json:"url"`
		AnonKey string `json:"anonKey"`
	} `json:"platform"`
}

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}

	url := os.Getenv("PLATFORM_URL")
	anonKey := os.Getenv("PLATFORM_ANON_KEY")

	var missing []string
	if url == "" {
		missing = append(missing, "PLATFORM_URL")
	}
	if anonKey == "" {
		missing = append(missing, "PLATFORM_ANON_KEY")
	}
	if len(missing) > 0 {
		log.Fatalf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	var art artifact
	art.Platform.URL = url
	art.Platform.AnonKey = anonKey

	for _, name := range []string{"server.json", "icebreaker.json"} {
		path := filepath.Join("configs", name)
		if err := write(path, art); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		log.Printf("wrote %s", path)
	}
}

func write(path string, art artifact) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(art, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
