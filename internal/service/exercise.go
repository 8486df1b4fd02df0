package service

import (
	"context"
	"sort"
	"time"

	"github.com/solacehq/solace/internal/domain"
	"github.com/solacehq/solace/internal/store"
)

const dayLayout = "2006-01-02"

// ExerciseService tracks which calendar days the user completed a guided
// exercise. One mark per day; repeating an exercise the same day is a
// no-op.
type ExerciseService struct {
	store store.Store
	now   func() time.Time
}

func NewExerciseService(st store.Store) *ExerciseService {
	return &ExerciseService{store: st, now: time.Now}
}

func (s *ExerciseService) List(ctx context.Context, ns string) ([]domain.ExerciseDay, error) {
	var days []domain.ExerciseDay
	if err := store.Load(ctx, s.store, ns, store.KeyExerciseDays, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// MarkToday records today as completed.
func (s *ExerciseService) MarkToday(ctx context.Context, ns string) (*domain.ExerciseDay, error) {
	now := s.now()
	day := now.Format(dayLayout)

	days, err := s.List(ctx, ns)
	if err != nil {
		return nil, err
	}
	for i := range days {
		if days[i].Day == day {
			return &days[i], nil
		}
	}
	entry := domain.ExerciseDay{Day: day, CompletedAt: now}
	days = append(days, entry)
	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	if err := store.Save(ctx, s.store, ns, store.KeyExerciseDays, days); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Streak counts consecutive completed days ending today or yesterday.
func (s *ExerciseService) Streak(ctx context.Context, ns string) (int, error) {
	days, err := s.List(ctx, ns)
	if err != nil {
		return 0, err
	}
	marked := make(map[string]bool, len(days))
	for _, d := range days {
		marked[d.Day] = true
	}

	cursor := s.now()
	if !marked[cursor.Format(dayLayout)] {
		cursor = cursor.AddDate(0, 0, -1)
	}
	streak := 0
	for marked[cursor.Format(dayLayout)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak, nil
}
