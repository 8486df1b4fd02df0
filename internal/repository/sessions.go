package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/solacehq/solace/internal/domain"
)

type Sessions struct {
	db *pgxpool.Pool
}

func NewSessions(db *pgxpool.Pool) *Sessions {
	return &Sessions{db: db}
}

func (r *Sessions) Create(ctx context.Context, userID int64, ttl time.Duration) (*domain.AuthSession, error) {
	token := uuid.NewString()
	expires := time.Now().Add(ttl)
	_, err := r.db.Exec(ctx,
		`INSERT INTO auth_sessions (token, user_id, expires_at) VALUES ($1, $2, $3)`,
		token, userID, expires,
	)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &domain.AuthSession{Token: token, UserID: userID, ExpiresAt: expires}, nil
}

func (r *Sessions) GetByToken(ctx context.Context, token string) (*domain.AuthSession, error) {
	var s domain.AuthSession
	err := r.db.QueryRow(ctx,
		`SELECT token, user_id, expires_at, created_at FROM auth_sessions WHERE token = $1`,
		token,
	).Scan(&s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

func (r *Sessions) Delete(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM auth_sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *Sessions) DeleteExpired(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM auth_sessions WHERE expires_at < now()`)
	if err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	return nil
}
