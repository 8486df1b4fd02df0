package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/solacehq/solace/internal/config"
	"github.com/solacehq/solace/internal/crisis"
	"github.com/solacehq/solace/internal/domain"
	"github.com/solacehq/solace/internal/store"
)

// Locker is the single-in-flight submit lock. Implemented by
// repository.Locks in production.
type Locker interface {
	TryAcquire(ctx context.Context, userID int64) error
	Release(ctx context.Context, userID int64) error
}

// Pipeline runs a user message through the submit sequence: lock, optimistic
// persist, local crisis screen, oracle dispatch, authoritative crisis signal,
// reply persist. One submission per user at a time; concurrent submits are
// rejected, never queued.
type Pipeline struct {
	oracle Oracle
	locks  Locker
	store  store.Store
	center *crisis.Center
	now    func() time.Time
}

func NewPipeline(oracle Oracle, locks Locker, st store.Store, center *crisis.Center) *Pipeline {
	return &Pipeline{
		oracle: oracle,
		locks:  locks,
		store:  st,
		center: center,
		now:    time.Now,
	}
}

// SubmitResult is what the handler renders after a completed round trip.
type SubmitResult struct {
	UserMessage      domain.Message
	AssistantMessage domain.Message
	Crisis           bool
	Fallback         bool
	ConversationID   string
}

// Submit runs one message through the pipeline. The lock is released on
// every path, including oracle failure and the crisis path. An oracle
// failure does not fail the submission: the user gets the fallback reply
// and the conversation stays consistent.
func (p *Pipeline) Submit(ctx context.Context, user *domain.User, text string) (*SubmitResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}

	if err := p.locks.TryAcquire(ctx, user.ID); err != nil {
		return nil, err
	}
	defer func() {
		if err := p.locks.Release(context.WithoutCancel(ctx), user.ID); err != nil {
			slog.Error("release submit lock", "user_id", user.ID, "error", err)
		}
	}()

	ns := user.Namespace()

	var conv domain.Conversation
	if err := store.Load(ctx, p.store, ns, store.KeyActiveConversation, &conv); err != nil {
		return nil, err
	}
	if conv.ID == "" {
		conv.ID = uuid.NewString()
		conv.Timestamp = p.now()
	}

	// Optimistic persist: the user's message lands before the oracle is
	// consulted, so it survives a failed round trip.
	userMsg := domain.Message{Role: domain.RoleUser, Content: text, SentAt: p.now()}
	conv.Messages = append(conv.Messages, userMsg)
	if err := store.Save(ctx, p.store, ns, store.KeyActiveConversation, &conv); err != nil {
		return nil, err
	}

	// Local keyword screen arms the interstitial immediately, before any
	// network round trip.
	crisisHit := crisis.Classify(text)
	if crisisHit {
		p.center.Arm(ns)
	}

	result := &SubmitResult{UserMessage: userMsg, ConversationID: conv.ID}

	answer, err := p.oracle.Ask(ctx, text, user.ResponseMode)
	if err != nil {
		slog.Error("oracle dispatch failed", "user_id", user.ID, "error", err)
		answer = &domain.Answer{Answer: config.FallbackAnswer}
		result.Fallback = true
	}

	// The oracle's classification is authoritative: it arms the
	// interstitial even when the local screen missed, and only it carries
	// the guardian signal.
	if answer.IsCrisis() {
		crisisHit = true
		inter := p.center.Arm(ns)
		inter.SetServerSignal(answer.GuardianAlerted, answer.CrisisLevel)
	}
	result.Crisis = crisisHit

	asstMsg := domain.Message{
		Role:    domain.RoleAssistant,
		Content: answer.Answer,
		Sources: answer.Sources,
		SentAt:  p.now(),
	}
	conv.Messages = append(conv.Messages, asstMsg)
	if err := store.Save(ctx, p.store, ns, store.KeyActiveConversation, &conv); err != nil {
		return nil, err
	}
	result.AssistantMessage = asstMsg

	return result, nil
}
