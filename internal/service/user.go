package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/solacehq/solace/internal/config"
	"github.com/solacehq/solace/internal/domain"
	"github.com/solacehq/solace/internal/repository"
)

// Mailer delivers verification codes. The dev implementation just logs.
type Mailer interface {
	SendCode(ctx context.Context, email, code string) error
}

// LogMailer writes codes to the log instead of sending mail. Used until a
// real provider is configured.
type LogMailer struct{}

func (LogMailer) SendCode(_ context.Context, email, code string) error {
	slog.Info("verification code issued", "email", email, "code", code)
	return nil
}

type SignupInput struct {
	Email         string
	Name          string
	Gender        string
	GuardianPhone string
	YourPhone     string
	Password      string
}

type UserService struct {
	users      *repository.Users
	sessions   *repository.Sessions
	codes      *CodesCache
	mailer     Mailer
	sessionTTL time.Duration
}

func NewUserService(users *repository.Users, sessions *repository.Sessions, codes *CodesCache, mailer Mailer, sessionTTL time.Duration) *UserService {
	return &UserService{
		users:      users,
		sessions:   sessions,
		codes:      codes,
		mailer:     mailer,
		sessionTTL: sessionTTL,
	}
}

// Signup creates the account and opens a session. Email verification is
// expected to have happened first; an unverified signup still succeeds but
// the account is flagged.
func (s *UserService) Signup(ctx context.Context, in SignupInput, verified bool) (*domain.User, *domain.AuthSession, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.users.Create(ctx, &domain.User{
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		Name:          in.Name,
		Gender:        in.Gender,
		GuardianPhone: in.GuardianPhone,
		YourPhone:     in.YourPhone,
		PasswordHash:  string(hash),
		ResponseMode:  domain.DefaultMode,
		EmailVerified: verified,
	})
	if err != nil {
		return nil, nil, err
	}
	session, err := s.sessions.Create(ctx, user.ID, s.sessionTTL)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, *domain.AuthSession, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, nil, domain.ErrBadCredentials
		}
		return nil, nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrBadCredentials
	}
	session, err := s.sessions.Create(ctx, user.ID, s.sessionTTL)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *UserService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ByToken resolves a session cookie to its user. Expired sessions count
// as not found.
func (s *UserService) ByToken(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.Expired() {
		return nil, domain.ErrSessionNotFound
	}
	return s.users.GetByID(ctx, session.UserID)
}

func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.users.EmailExists(ctx, email)
}

// SendVerification issues a code for the email and hands it to the mailer.
func (s *UserService) SendVerification(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	code, err := s.codes.Issue(email, config.VerificationCodeLen)
	if err != nil {
		return err
	}
	return s.mailer.SendCode(ctx, email, code)
}

// VerifyCode checks and consumes the outstanding code for the email.
func (s *UserService) VerifyCode(_ context.Context, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	ok, expired := s.codes.Check(email, code)
	if expired {
		return domain.ErrCodeExpired
	}
	if !ok {
		return domain.ErrCodeMismatch
	}
	return nil
}

// ResetPassword sets a new password after a verified forgot-password code.
func (s *UserService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := s.VerifyCode(ctx, email, code); err != nil {
		return err
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.SetPasswordHash(ctx, user.ID, string(hash))
}

// SetResponseMode validates and persists the user's answering strategy.
func (s *UserService) SetResponseMode(ctx context.Context, userID int64, raw string) (domain.ResponseMode, error) {
	mode, err := domain.ParseResponseMode(raw)
	if err != nil {
		return "", err
	}
	if err := s.users.SetResponseMode(ctx, userID, mode); err != nil {
		return "", err
	}
	return mode, nil
}

func (s *UserService) TouchInteraction(ctx context.Context, userID int64) {
	if err := s.users.UpdateLastInteraction(ctx, userID); err != nil {
		slog.Error("update last interaction", "user_id", userID, "error", err)
	}
}
