package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/solacehq/solace/internal/domain"
	"github.com/solacehq/solace/internal/store"
)

// ConversationService manages the active conversation and the frozen
// history list. History entries are immutable records of finished chats.
type ConversationService struct {
	store store.Store
	now   func() time.Time
}

func NewConversationService(st store.Store) *ConversationService {
	return &ConversationService{store: st, now: time.Now}
}

// Active returns the in-progress conversation, which may be empty.
func (s *ConversationService) Active(ctx context.Context, ns string) (*domain.Conversation, error) {
	var conv domain.Conversation
	if err := store.Load(ctx, s.store, ns, store.KeyActiveConversation, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// StartNew freezes the active conversation into history and clears it.
// An empty active conversation is not frozen; starting fresh is still
// allowed, it just leaves no record.
func (s *ConversationService) StartNew(ctx context.Context, ns string) (*domain.Conversation, error) {
	active, err := s.Active(ctx, ns)
	if err != nil {
		return nil, err
	}

	if len(active.Messages) > 0 {
		var history []domain.Conversation
		if err := store.Load(ctx, s.store, ns, store.KeyChatHistory, &history); err != nil {
			return nil, err
		}
		if active.ID == "" {
			active.ID = uuid.NewString()
		}
		active.Timestamp = s.now()
		// Newest first.
		history = append([]domain.Conversation{*active}, history...)
		if err := store.Save(ctx, s.store, ns, store.KeyChatHistory, history); err != nil {
			return nil, err
		}
	}

	fresh := &domain.Conversation{ID: uuid.NewString(), Timestamp: s.now()}
	if err := store.Save(ctx, s.store, ns, store.KeyActiveConversation, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// History lists frozen conversations, newest first.
func (s *ConversationService) History(ctx context.Context, ns string) ([]domain.Conversation, error) {
	var history []domain.Conversation
	if err := store.Load(ctx, s.store, ns, store.KeyChatHistory, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// HistoryByID fetches one frozen conversation.
func (s *ConversationService) HistoryByID(ctx context.Context, ns, id string) (*domain.Conversation, error) {
	history, err := s.History(ctx, ns)
	if err != nil {
		return nil, err
	}
	for i := range history {
		if history[i].ID == id {
			return &history[i], nil
		}
	}
	return nil, domain.ErrHistoryNotFound
}

// DeleteHistory removes one frozen conversation. Deleting an unknown ID
// is a no-op.
func (s *ConversationService) DeleteHistory(ctx context.Context, ns, id string) error {
	history, err := s.History(ctx, ns)
	if err != nil {
		return err
	}
	kept := history[:0]
	for _, c := range history {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	return store.Save(ctx, s.store, ns, store.KeyChatHistory, kept)
}
