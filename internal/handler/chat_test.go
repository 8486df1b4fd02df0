package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/solacehq/solace/internal/config"
	"github.com/solacehq/solace/internal/crisis"
	"github.com/solacehq/solace/internal/domain"
	"github.com/solacehq/solace/internal/service"
	"github.com/solacehq/solace/internal/store"
)

type stubOracle struct {
	answer *domain.Answer
}

func (s *stubOracle) Ask(_ context.Context, _ string, _ domain.ResponseMode) (*domain.Answer, error) {
	return s.answer, nil
}

type stubLocks struct{}

func (stubLocks) TryAcquire(_ context.Context, _ int64) error { return nil }
func (stubLocks) Release(_ context.Context, _ int64) error    { return nil }

func newTestRouter(t *testing.T, oracle service.Oracle) (*gin.Engine, *crisis.Center) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemory()
	center := crisis.NewCenter(3, config.InterstitialMaxAge)
	h := New(Deps{
		Cfg:           &config.Config{},
		Pipeline:      service.NewPipeline(oracle, stubLocks{}, st, center),
		Conversations: service.NewConversationService(st),
		Center:        center,
	})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user", &domain.User{ID: 1, Email: "mira@example.com", ResponseMode: domain.ModeTraining})
	})
	r.POST("/api/chat", h.SubmitMessage)
	r.GET("/api/chat", h.ActiveConversation)
	r.GET("/api/crisis", h.CrisisState)
	r.POST("/api/crisis/dismiss", h.DismissCrisis)
	return r, center
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("parse response %q: %v", w.Body.String(), err)
		}
	}
	return w, parsed
}

func TestSubmitMessageRendersReply(t *testing.T) {
	r, _ := newTestRouter(t, &stubOracle{answer: &domain.Answer{Answer: "## Grounding\nTry the **5-4-3-2-1** method."}})

	w, body := doJSON(t, r, "POST", "/api/chat", `{"message":"I feel anxious"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	reply := body["reply"].(map[string]any)
	blocks, ok := reply["blocks"].([]any)
	if !ok || len(blocks) != 2 {
		t.Fatalf("blocks = %v, want heading plus paragraph", reply["blocks"])
	}
	if body["crisis"].(bool) {
		t.Error("plain reply must not flag crisis")
	}

	// The round trip shows up on page reload.
	w, body = doJSON(t, r, "GET", "/api/chat", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if msgs := body["messages"].([]any); len(msgs) != 2 {
		t.Errorf("got %d messages, want 2", len(msgs))
	}
}

func TestCrisisFlowOverHTTP(t *testing.T) {
	r, center := newTestRouter(t, &stubOracle{answer: &domain.Answer{
		Answer: "You are not alone.",
		Type:   domain.AnswerTypeCrisis,
	}})

	w, body := doJSON(t, r, "POST", "/api/chat", `{"message":"I want to end it all"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !body["crisis"].(bool) {
		t.Fatal("crisis submission must flag crisis")
	}
	inter := body["interstitial"].(map[string]any)
	if len(inter["contacts"].([]any)) == 0 {
		t.Error("contacts must render with the interstitial")
	}

	// Dismiss is rejected while the countdown runs.
	w, _ = doJSON(t, r, "POST", "/api/crisis/dismiss", "")
	if w.Code != http.StatusConflict {
		t.Errorf("dismiss during countdown = %d, want 409", w.Code)
	}

	for i := 0; i < 3; i++ {
		center.Tick()
	}
	w, _ = doJSON(t, r, "POST", "/api/crisis/dismiss", "")
	if w.Code != http.StatusOK {
		t.Errorf("dismiss after countdown = %d, want 200", w.Code)
	}

	// Once dismissed there is nothing to fetch.
	w, _ = doJSON(t, r, "GET", "/api/crisis", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("crisis state after dismissal = %d, want 404", w.Code)
	}
}

func TestSubmitMessageEmptyRejected(t *testing.T) {
	r, _ := newTestRouter(t, &stubOracle{answer: &domain.Answer{Answer: "unused"}})
	w, _ := doJSON(t, r, "POST", "/api/chat", `{"message":"   "}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestReplyCapsCompactSources(t *testing.T) {
	sources := make([]domain.Source, 5)
	for i := range sources {
		sources[i] = domain.Source{Title: "Sleep hygiene", URL: "https://example.com", Type: domain.SourceWebAugmented}
	}
	r, _ := newTestRouter(t, &stubOracle{answer: &domain.Answer{
		Answer:  "Keep a steady schedule.",
		Sources: sources,
	}})

	w, body := doJSON(t, r, "POST", "/api/chat", `{"message":"How can I sleep better?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	reply := body["reply"].(map[string]any)
	if got := len(reply["sources"].([]any)); got != 5 {
		t.Errorf("full sources = %d, want 5", got)
	}
	if got := len(reply["compactSources"].([]any)); got != 3 {
		t.Errorf("compact sources = %d, want 3", got)
	}
}
