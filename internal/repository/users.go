package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/solacehq/solace/internal/domain"
)

type Users struct {
	db *pgxpool.Pool
}

func NewUsers(db *pgxpool.Pool) *Users {
	return &Users{db: db}
}

const userColumns = `id, email, name, gender, guardian_phone, your_phone,
	password_hash, response_mode, email_verified, last_interaction,
	created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var mode string
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Gender, &u.GuardianPhone,
		&u.YourPhone, &u.PasswordHash, &mode, &u.EmailVerified,
		&u.LastInteraction, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.ResponseMode = domain.ResponseMode(mode)
	return &u, nil
}

func (r *Users) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (email, name, gender, guardian_phone, your_phone, password_hash, response_mode, email_verified)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+userColumns,
		strings.ToLower(u.Email), u.Name, u.Gender, u.GuardianPhone,
		u.YourPhone, u.PasswordHash, string(u.ResponseMode), u.EmailVerified,
	)
	created, err := scanUser(row)
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (r *Users) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		strings.ToLower(email),
	)
	u, err := scanUser(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *Users) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

func (r *Users) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		strings.ToLower(email),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

func (r *Users) SetResponseMode(ctx context.Context, userID int64, mode domain.ResponseMode) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET response_mode = $2, updated_at = now() WHERE id = $1`,
		userID, string(mode),
	)
	if err != nil {
		return fmt.Errorf("set response mode: %w", err)
	}
	return nil
}

func (r *Users) SetPasswordHash(ctx context.Context, userID int64, hash string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
		userID, hash,
	)
	if err != nil {
		return fmt.Errorf("set password hash: %w", err)
	}
	return nil
}

func (r *Users) UpdateLastInteraction(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET last_interaction = now() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("update last interaction: %w", err)
	}
	return nil
}
