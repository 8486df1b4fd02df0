package store

import (
	"context"
	"testing"
	"time"
)

type savedEntry struct {
	Content string    `json:"content"`
	SavedAt time.Time `json:"savedAt"`
}

func TestMemory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	saved := []savedEntry{{Content: "breathe in for four counts", SavedAt: time.Now()}}
	if err := Save(ctx, m, "a@example.com", KeySavedMessages, saved); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var got []savedEntry
	if err := Load(ctx, m, "a@example.com", KeySavedMessages, &got); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("entries = %d, want 1", len(got))
	}
	if got[0].Content != "breathe in for four counts" {
		t.Errorf("content = %q", got[0].Content)
	}
	if got[0].SavedAt.IsZero() {
		t.Error("savedAt must survive the round trip")
	}
}

func TestMemory_MissingKeyLeavesDestinationUntouched(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	got := []savedEntry{}
	if err := Load(ctx, m, "a@example.com", KeyChatHistory, &got); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("entries = %d, want 0", len(got))
	}
}

func TestMemory_NamespaceIsolation(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := Save(ctx, m, "a@example.com", KeySavedMessages, []savedEntry{{Content: "mine"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var other []savedEntry
	if err := Load(ctx, m, "b@example.com", KeySavedMessages, &other); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(other) != 0 {
		t.Fatal("collections must not leak across user namespaces")
	}
}

func TestMemory_LastWriterWins(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	Save(ctx, m, "a@example.com", KeyPreferences, map[string]string{"theme": "light"})
	Save(ctx, m, "a@example.com", KeyPreferences, map[string]string{"theme": "dark"})

	var prefs map[string]string
	if err := Load(ctx, m, "a@example.com", KeyPreferences, &prefs); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if prefs["theme"] != "dark" {
		t.Errorf("theme = %q, want dark", prefs["theme"])
	}
}

func TestEnvelope_VersionTag(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	Save(ctx, m, "a@example.com", KeyMoodHistory, []int{7})

	env, err := m.Read(ctx, "a@example.com", KeyMoodHistory)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if env.Version != CurrentVersion {
		t.Errorf("version = %d, want %d", env.Version, CurrentVersion)
	}
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	Save(ctx, m, "a@example.com", KeySavedMessages, []savedEntry{{Content: "x"}})

	if err := m.Delete(ctx, "a@example.com", KeySavedMessages); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Read(ctx, "a@example.com", KeySavedMessages); err != ErrNotFound {
		t.Errorf("Read after delete = %v, want ErrNotFound", err)
	}
}
