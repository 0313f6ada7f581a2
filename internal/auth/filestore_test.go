package auth

import (
	"path/filepath"
	"testing"
	"time"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := &FileStore{Path: filepath.Join(t.TempDir(), "nested", "session.json")}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load missing file: %v", err)
	}
	if loaded != nil {
		t.Fatal("missing file must load as nil session")
	}

	session := &Session{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Add(time.Hour).Truncate(time.Second),
		User:         &User{ID: "u1", Email: "ada@example.test"},
	}
	if err := store.Save(session); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err = store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil || loaded.AccessToken != "access-1" || loaded.User.Email != "ada@example.test" {
		t.Fatalf("loaded = %+v", loaded)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	loaded, err = store.Load()
	if err != nil {
		t.Fatalf("load after clear: %v", err)
	}
	if loaded != nil {
		t.Fatal("cleared store must load as nil session")
	}
	if err := store.Clear(); err != nil {
		t.Fatal("clearing an already-clear store must not error")
	}
}
