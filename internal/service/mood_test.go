package service

import (
	"context"
	"testing"
	"time"

	"github.com/solacehq/solace/internal/store"
)

func TestMoodStats(t *testing.T) {
	st := store.NewMemory()
	svc := NewMoodService(st)
	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	ns := "mira@example.com"
	ctx := context.Background()

	// An old entry outside the 7-day window, then two recent ones.
	svc.now = func() time.Time { return base.AddDate(0, 0, -10) }
	if _, err := svc.Record(ctx, ns, 3, "rough day"); err != nil {
		t.Fatal(err)
	}
	svc.now = func() time.Time { return base.AddDate(0, 0, -2) }
	if _, err := svc.Record(ctx, ns, 7, ""); err != nil {
		t.Fatal(err)
	}
	svc.now = func() time.Time { return base }
	if _, err := svc.Record(ctx, ns, 8, "better"); err != nil {
		t.Fatal(err)
	}

	stats, err := svc.Stats(ctx, ns)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 3 {
		t.Errorf("entries = %d, want 3", stats.Entries)
	}
	if got := stats.Average.String(); got != "6" {
		t.Errorf("average = %s, want 6", got)
	}
	if got := stats.WeekAverage.String(); got != "7.5" {
		t.Errorf("week average = %s, want 7.5", got)
	}
	if stats.Latest == nil || stats.Latest.Score != 8 {
		t.Errorf("latest = %+v, want score 8", stats.Latest)
	}
}

func TestMoodStatsEmpty(t *testing.T) {
	svc := NewMoodService(store.NewMemory())
	stats, err := svc.Stats(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 0 || stats.Latest != nil {
		t.Errorf("empty log should report zero entries, got %+v", stats)
	}
}

func TestMoodRecordClampsScore(t *testing.T) {
	svc := NewMoodService(store.NewMemory())
	ctx := context.Background()
	ns := "mira@example.com"

	entry, err := svc.Record(ctx, ns, 42, "")
	if err != nil {
		t.Fatal(err)
	}
	if entry.Score != 10 {
		t.Errorf("score = %d, want clamp to 10", entry.Score)
	}
	entry, err = svc.Record(ctx, ns, -1, "")
	if err != nil {
		t.Fatal(err)
	}
	if entry.Score != 1 {
		t.Errorf("score = %d, want clamp to 1", entry.Score)
	}
}
