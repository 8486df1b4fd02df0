package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores envelopes as jsonb rows keyed by (namespace, key).
// The upsert makes writes last-writer-wins.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Read(ctx context.Context, namespace, key string) (*Envelope, error) {
	var raw []byte
	err := p.db.QueryRow(ctx,
		`SELECT value FROM user_store WHERE namespace = $1 AND key = $2`,
		namespace, key,
	).Scan(&raw)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", namespace, key, err)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode envelope %s/%s: %w", namespace, key, err)
	}
	return &env, nil
}

func (p *Postgres) Write(ctx context.Context, namespace, key string, env *Envelope) error {
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode envelope %s/%s: %w", namespace, key, err)
	}
	_, err = p.db.Exec(ctx,
		`INSERT INTO user_store (namespace, key, value, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (namespace, key)
		 DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		namespace, key, raw,
	)
	if err != nil {
		return fmt.Errorf("write %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, namespace, key string) error {
	_, err := p.db.Exec(ctx,
		`DELETE FROM user_store WHERE namespace = $1 AND key = $2`,
		namespace, key,
	)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", namespace, key, err)
	}
	return nil
}
