package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/luisjesusbernal/Geek-News/app/database"
)

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordTooShort   = errors.New("password must be at least 4 characters")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const MinPasswordLength = 4

// Service implements registration, login, and session resolution over the
// user and session repositories.
type Service struct {
	users      database.UserRepository
	sessions   database.SessionRepository
	sessionTTL time.Duration
}

func NewService(users database.UserRepository, sessions database.SessionRepository, sessionTTL time.Duration) *Service {
	return &Service{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// Register creates a user with role "user". The email key is the folded
// form, so addresses differing only in case collide.
func (s *Service) Register(email, password string) (int64, error) {
	key := NormalizeEmail(email)
	if !IsValidEmail(key) {
		return 0, ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return 0, ErrPasswordTooShort
	}

	existing, err := s.users.GetByEmail(key)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrEmailTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return 0, err
	}

	id, err := s.users.Create(key, hash, "user")
	if err != nil {
		// A concurrent register for the same address loses the race at
		// the uniqueness constraint
		if database.IsUniqueViolation(err) {
			return 0, ErrEmailTaken
		}
		return 0, err
	}

	return id, nil
}

// Login verifies credentials and starts a session, returning its token.
func (s *Service) Login(email, password string) (string, *database.User, error) {
	key := NormalizeEmail(email)

	user, err := s.users.GetByEmail(key)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !CheckPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := NewSessionToken()
	if err != nil {
		return "", nil, err
	}

	expiresAt := time.Now().UTC().Add(s.sessionTTL)
	if err := s.sessions.Create(token, user.ID, expiresAt); err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Logout destroys the session for the given token. Unknown tokens are a
// no-op.
func (s *Service) Logout(token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(token)
}

// Resolve maps a session token to its authenticated identity. Missing,
// unknown, and expired tokens all resolve to nil.
func (s *Service) Resolve(token string) (*database.Session, error) {
	if token == "" {
		return nil, nil
	}
	return s.sessions.Get(token)
}

// SeedAdmin creates the administrator account on first boot when absent.
// An existing account is never modified.
func (s *Service) SeedAdmin(email, password string) error {
	key := NormalizeEmail(email)

	existing, err := s.users.GetByEmail(key)
	if err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	if _, err := s.users.Create(key, hash, "admin"); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	slog.Info("Administrator account seeded", "email", key)
	return nil
}
