package domain

import "time"

type User struct {
	ID            int64
	Email         string
	Name          string
	Gender        string
	GuardianPhone string
	YourPhone     string
	PasswordHash  string
	ResponseMode  ResponseMode
	EmailVerified bool

	LastInteraction time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Namespace is the key under which all of the user's persisted collections
// live. Collections are isolated per user; nothing crosses namespaces.
func (u *User) Namespace() string {
	return u.Email
}

type AuthSession struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s *AuthSession) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
