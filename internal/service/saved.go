package service

import (
	"context"
	"time"

	"github.com/solacehq/solace/internal/domain"
	"github.com/solacehq/solace/internal/store"
)

// SavedService manages the per-user bookmarked messages collection.
type SavedService struct {
	store store.Store
	now   func() time.Time
}

func NewSavedService(st store.Store) *SavedService {
	return &SavedService{store: st, now: time.Now}
}

func (s *SavedService) List(ctx context.Context, ns string) ([]domain.SavedMessage, error) {
	var saved []domain.SavedMessage
	if err := store.Load(ctx, s.store, ns, store.KeySavedMessages, &saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// Save bookmarks a message. Saving the same content twice is allowed;
// the list is a log, not a set.
func (s *SavedService) Save(ctx context.Context, ns string, msg domain.Message) (*domain.SavedMessage, error) {
	saved, err := s.List(ctx, ns)
	if err != nil {
		return nil, err
	}
	entry := domain.SavedMessage{Message: msg, SavedAt: s.now()}
	saved = append([]domain.SavedMessage{entry}, saved...)
	if err := store.Save(ctx, s.store, ns, store.KeySavedMessages, saved); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Remove drops the saved entry at index, counting from the newest.
func (s *SavedService) Remove(ctx context.Context, ns string, index int) error {
	saved, err := s.List(ctx, ns)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(saved) {
		return nil
	}
	saved = append(saved[:index], saved[index+1:]...)
	return store.Save(ctx, s.store, ns, store.KeySavedMessages, saved)
}
