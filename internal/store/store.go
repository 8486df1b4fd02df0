// Package store is the per-user persistence port: JSON collections keyed
// by the owning user's namespace with last-writer-wins semantics.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection keys. Every key is scoped by a user namespace; nothing is
// shared across users.
const (
	KeySavedMessages      = "saved-messages"
	KeyChatHistory        = "chat-history"
	KeyMoodHistory        = "mood-history"
	KeyExerciseDays       = "exercise-days"
	KeyPreferences        = "preferences"
	KeyActiveConversation = "active-conversation"
)

// CurrentVersion is stamped on every written envelope. The original
// client stored bare collections; the tag is the forward-migration hook.
const CurrentVersion = 1

var ErrNotFound = errors.New("store key not found")

// Envelope wraps a stored collection with its schema version.
type Envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// Store reads and writes whole documents. Mutations are read-modify-write
// replaces; concurrent writers are last-writer-wins.
type Store interface {
	Read(ctx context.Context, namespace, key string) (*Envelope, error)
	Write(ctx context.Context, namespace, key string, env *Envelope) error
	Delete(ctx context.Context, namespace, key string) error
}

// Load reads the collection at key into dst. A missing key leaves dst
// untouched and returns nil, so callers start from their zero collection.
func Load(ctx context.Context, s Store, namespace, key string, dst any) error {
	env, err := s.Read(ctx, namespace, key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// Save replaces the collection at key with src under the current version.
func Save(ctx context.Context, s Store, namespace, key string, src any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Write(ctx, namespace, key, &Envelope{Version: CurrentVersion, Data: data})
}
