package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/solacehq/solace/internal/domain"
)

// Locks implements the single-in-flight submit lock and the per-minute
// rate limit counters.
type Locks struct {
	db *pgxpool.Pool
}

func NewLocks(db *pgxpool.Pool) *Locks {
	return &Locks{db: db}
}

// TryAcquire inserts the user's active-request row. A conflicting row
// means a submission is already pending; the caller gets ErrActiveRequest
// instead of queueing.
func (r *Locks) TryAcquire(ctx context.Context, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO active_requests (user_id) VALUES ($1) ON CONFLICT DO NOTHING`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("acquire request lock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrActiveRequest
	}
	return nil
}

// Release drops the lock. Unconditional; callers defer it so the lock is
// released on success, failure, and the crisis path alike.
func (r *Locks) Release(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM active_requests WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("release request lock: %w", err)
	}
	return nil
}

// CleanupStale removes locks abandoned by crashed or timed-out requests.
func (r *Locks) CleanupStale(ctx context.Context, age time.Duration) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM active_requests WHERE started_at < now() - $1::interval`,
		fmt.Sprintf("%d seconds", int(age.Seconds())),
	)
	if err != nil {
		return fmt.Errorf("cleanup stale requests: %w", err)
	}
	return nil
}

// CheckAndIncrement bumps the user's counter for the current minute window
// and returns the new count.
func (r *Locks) CheckAndIncrement(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`INSERT INTO rate_limits (user_id, window_start, request_count)
		 VALUES ($1, date_trunc('minute', now()), 1)
		 ON CONFLICT (user_id, window_start)
		 DO UPDATE SET request_count = rate_limits.request_count + 1
		 RETURNING request_count`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("rate limit increment: %w", err)
	}
	return count, nil
}

// CleanupWindows drops rate-limit rows older than a few windows.
func (r *Locks) CleanupWindows(ctx context.Context) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM rate_limits WHERE window_start < now() - interval '5 minutes'`)
	if err != nil {
		return fmt.Errorf("cleanup rate limit windows: %w", err)
	}
	return nil
}
