package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solacehq/solace/internal/domain"
	"github.com/solacehq/solace/internal/store"
)

// MoodService records mood check-ins and derives simple statistics for
// the wellness dashboard.
type MoodService struct {
	store store.Store
	now   func() time.Time
}

func NewMoodService(st store.Store) *MoodService {
	return &MoodService{store: st, now: time.Now}
}

// MoodStats summarises the log for the dashboard card.
type MoodStats struct {
	Entries     int               `json:"entries"`
	Average     decimal.Decimal   `json:"average"`
	WeekAverage decimal.Decimal   `json:"weekAverage"`
	Latest      *domain.MoodEntry `json:"latest,omitempty"`
}

func (s *MoodService) List(ctx context.Context, ns string) ([]domain.MoodEntry, error) {
	var entries []domain.MoodEntry
	if err := store.Load(ctx, s.store, ns, store.KeyMoodHistory, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Record appends a check-in. Scores are clamped to 1..10 rather than
// rejected; the slider in the client cannot produce anything else anyway.
func (s *MoodService) Record(ctx context.Context, ns string, score int, note string) (*domain.MoodEntry, error) {
	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	entries, err := s.List(ctx, ns)
	if err != nil {
		return nil, err
	}
	entry := domain.MoodEntry{Score: score, Note: note, RecordedAt: s.now()}
	entries = append(entries, entry)
	if err := store.Save(ctx, s.store, ns, store.KeyMoodHistory, entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Stats computes overall and trailing-7-day averages, rounded to two
// places so the dashboard shows e.g. 6.33 rather than a float tail.
func (s *MoodService) Stats(ctx context.Context, ns string) (*MoodStats, error) {
	entries, err := s.List(ctx, ns)
	if err != nil {
		return nil, err
	}
	stats := &MoodStats{Entries: len(entries)}
	if len(entries) == 0 {
		return stats, nil
	}
	stats.Latest = &entries[len(entries)-1]

	weekCutoff := s.now().AddDate(0, 0, -7)
	total := decimal.Zero
	weekTotal := decimal.Zero
	weekCount := 0
	for _, e := range entries {
		score := decimal.NewFromInt(int64(e.Score))
		total = total.Add(score)
		if e.RecordedAt.After(weekCutoff) {
			weekTotal = weekTotal.Add(score)
			weekCount++
		}
	}
	stats.Average = total.Div(decimal.NewFromInt(int64(len(entries)))).Round(2)
	if weekCount > 0 {
		stats.WeekAverage = weekTotal.Div(decimal.NewFromInt(int64(weekCount))).Round(2)
	}
	return stats, nil
}
