package service

import (
	"context"

	"github.com/solacehq/solace/internal/domain"
	"github.com/solacehq/solace/internal/store"
)

// PreferencesService persists per-user UI state across sessions.
type PreferencesService struct {
	store store.Store
}

func NewPreferencesService(st store.Store) *PreferencesService {
	return &PreferencesService{store: st}
}

// Get returns the stored preferences, or the defaults for a fresh user.
func (s *PreferencesService) Get(ctx context.Context, ns string) (*domain.Preferences, error) {
	prefs := domain.Preferences{Theme: "light"}
	if err := store.Load(ctx, s.store, ns, store.KeyPreferences, &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (s *PreferencesService) Set(ctx context.Context, ns string, prefs domain.Preferences) error {
	if prefs.Theme != "dark" {
		prefs.Theme = "light"
	}
	return store.Save(ctx, s.store, ns, store.KeyPreferences, &prefs)
}
