package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/solacehq/solace/internal/config"
	"github.com/solacehq/solace/internal/crisis"
	"github.com/solacehq/solace/internal/domain"
	"github.com/solacehq/solace/internal/store"
)

type fakeOracle struct {
	answer *domain.Answer
	err    error
	calls  int
}

func (f *fakeOracle) Ask(_ context.Context, _ string, _ domain.ResponseMode) (*domain.Answer, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

type fakeLocks struct {
	held     map[int64]bool
	busy     bool
	acquired int
	released int
}

func newFakeLocks() *fakeLocks {
	return &fakeLocks{held: make(map[int64]bool)}
}

func (f *fakeLocks) TryAcquire(_ context.Context, userID int64) error {
	if f.busy || f.held[userID] {
		return domain.ErrActiveRequest
	}
	f.held[userID] = true
	f.acquired++
	return nil
}

func (f *fakeLocks) Release(_ context.Context, userID int64) error {
	delete(f.held, userID)
	f.released++
	return nil
}

func testUser() *domain.User {
	return &domain.User{ID: 7, Email: "mira@example.com", ResponseMode: domain.ModeTraining}
}

func newTestPipeline(oracle Oracle, locks Locker) (*Pipeline, store.Store, *crisis.Center) {
	st := store.NewMemory()
	center := crisis.NewCenter(config.DefaultCrisisCountdown, config.InterstitialMaxAge)
	return NewPipeline(oracle, locks, st, center), st, center
}

func TestSubmitOrdersMessages(t *testing.T) {
	oracle := &fakeOracle{answer: &domain.Answer{Answer: "hello there"}}
	p, st, _ := newTestPipeline(oracle, newFakeLocks())
	user := testUser()

	for i := 0; i < 2; i++ {
		if _, err := p.Submit(context.Background(), user, fmt.Sprintf("message %d", i+1)); err != nil {
			t.Fatalf("submit %d: %v", i+1, err)
		}
	}

	var conv domain.Conversation
	if err := store.Load(context.Background(), st, user.Namespace(), store.KeyActiveConversation, &conv); err != nil {
		t.Fatal(err)
	}
	wantRoles := []string{domain.RoleUser, domain.RoleAssistant, domain.RoleUser, domain.RoleAssistant}
	if len(conv.Messages) != len(wantRoles) {
		t.Fatalf("got %d messages, want %d", len(conv.Messages), len(wantRoles))
	}
	for i, want := range wantRoles {
		if conv.Messages[i].Role != want {
			t.Errorf("message %d role = %q, want %q", i, conv.Messages[i].Role, want)
		}
	}
	if conv.Messages[0].Content != "message 1" || conv.Messages[2].Content != "message 2" {
		t.Errorf("user messages out of order: %q, %q", conv.Messages[0].Content, conv.Messages[2].Content)
	}
}

func TestSubmitRejectsEmptyMessage(t *testing.T) {
	oracle := &fakeOracle{answer: &domain.Answer{Answer: "unused"}}
	locks := newFakeLocks()
	p, _, _ := newTestPipeline(oracle, locks)

	_, err := p.Submit(context.Background(), testUser(), "   \n\t ")
	if !errors.Is(err, domain.ErrEmptyMessage) {
		t.Fatalf("err = %v, want ErrEmptyMessage", err)
	}
	if locks.acquired != 0 {
		t.Error("empty message should be rejected before the lock is taken")
	}
	if oracle.calls != 0 {
		t.Error("empty message should never reach the oracle")
	}
}

func TestSubmitRejectsWhenBusy(t *testing.T) {
	oracle := &fakeOracle{answer: &domain.Answer{Answer: "unused"}}
	locks := newFakeLocks()
	locks.busy = true
	p, st, _ := newTestPipeline(oracle, locks)
	user := testUser()

	_, err := p.Submit(context.Background(), user, "hello")
	if !errors.Is(err, domain.ErrActiveRequest) {
		t.Fatalf("err = %v, want ErrActiveRequest", err)
	}
	if oracle.calls != 0 {
		t.Error("busy submission should never reach the oracle")
	}

	var conv domain.Conversation
	if err := store.Load(context.Background(), st, user.Namespace(), store.KeyActiveConversation, &conv); err != nil {
		t.Fatal(err)
	}
	if len(conv.Messages) != 0 {
		t.Error("busy submission must not persist the message")
	}
}

func TestSubmitReleasesLockOnEveryPath(t *testing.T) {
	tests := []struct {
		name   string
		oracle *fakeOracle
	}{
		{"success", &fakeOracle{answer: &domain.Answer{Answer: "ok"}}},
		{"oracle failure", &fakeOracle{err: errors.New("boom")}},
		{"crisis", &fakeOracle{answer: &domain.Answer{Answer: "help is available", Type: domain.AnswerTypeCrisis}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locks := newFakeLocks()
			p, _, _ := newTestPipeline(tt.oracle, locks)
			user := testUser()

			if _, err := p.Submit(context.Background(), user, "hello"); err != nil {
				t.Fatalf("submit: %v", err)
			}
			if locks.released != 1 {
				t.Errorf("released = %d, want 1", locks.released)
			}
			// A second submit must succeed against the same lock.
			if _, err := p.Submit(context.Background(), user, "again"); err != nil {
				t.Fatalf("second submit: %v", err)
			}
		})
	}
}

func TestSubmitFallbackOnOracleError(t *testing.T) {
	oracle := &fakeOracle{err: errors.New("status 500")}
	p, st, _ := newTestPipeline(oracle, newFakeLocks())
	user := testUser()

	res, err := p.Submit(context.Background(), user, "how are you")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !res.Fallback {
		t.Error("expected fallback flag")
	}
	if res.AssistantMessage.Content != config.FallbackAnswer {
		t.Errorf("assistant content = %q, want fallback text", res.AssistantMessage.Content)
	}
	if len(res.AssistantMessage.Sources) != 0 {
		t.Error("fallback reply must carry no sources")
	}

	var conv domain.Conversation
	if err := store.Load(context.Background(), st, user.Namespace(), store.KeyActiveConversation, &conv); err != nil {
		t.Fatal(err)
	}
	if len(conv.Messages) != 2 {
		t.Fatalf("got %d messages, want user message plus fallback", len(conv.Messages))
	}
	if conv.Messages[0].Content != "how are you" {
		t.Error("user message must persist before the oracle round trip")
	}
}

func TestSubmitLocalCrisisSurvivesOracleFailure(t *testing.T) {
	oracle := &fakeOracle{err: errors.New("unreachable")}
	p, _, center := newTestPipeline(oracle, newFakeLocks())
	user := testUser()

	res, err := p.Submit(context.Background(), user, "I want to end it all")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !res.Crisis {
		t.Error("keyword hit must flag crisis even when the oracle is down")
	}
	inter, err := center.Get(user.Namespace())
	if err != nil {
		t.Fatalf("interstitial not armed: %v", err)
	}
	if inter.ShowGuardianBanner() {
		t.Error("guardian banner must not show without a server signal")
	}
}

func TestSubmitServerCrisisSignalIsAuthoritative(t *testing.T) {
	alerted := true
	oracle := &fakeOracle{answer: &domain.Answer{
		Answer:          "please reach out to someone you trust",
		Type:            domain.AnswerTypeCrisis,
		GuardianAlerted: &alerted,
		CrisisLevel:     "high",
	}}
	p, _, center := newTestPipeline(oracle, newFakeLocks())
	user := testUser()

	// No local keyword: only the oracle flags it.
	res, err := p.Submit(context.Background(), user, "everything feels heavy lately")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !res.Crisis {
		t.Error("server signal must flag crisis regardless of local screen")
	}
	inter, err := center.Get(user.Namespace())
	if err != nil {
		t.Fatalf("interstitial not armed: %v", err)
	}
	if !inter.ShowGuardianBanner() {
		t.Error("guardian banner must show when the server says so")
	}
	if inter.CrisisLevel() != "high" {
		t.Errorf("crisis level = %q, want high", inter.CrisisLevel())
	}
}
