package session

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestSaveLoadClear(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "nested", "session.json"))

	if _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("Load on empty store: err = %v, want ErrNoSession", err)
	}

	in := Session{
		Token: "tok-abc", Role: "patient", UserID: "u1",
		Email: "jane@example.com", FirstName: "Jane", LastName: "Roe",
	}
	if err := store.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.Token != in.Token || out.Email != in.Email || out.Role != in.Role {
		t.Errorf("round trip mismatch: %+v", out)
	}
	if out.SavedAt.IsZero() {
		t.Error("SavedAt not stamped")
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Load after clear: err = %v, want ErrNoSession", err)
	}
	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func TestLoadEmptyTokenIsNoSession(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "session.json"))
	if err := store.Save(Session{Role: "patient"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Errorf("err = %v, want ErrNoSession for empty token", err)
	}
}
