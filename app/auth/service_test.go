package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/luisjesusbernal/Geek-News/app/database"
)

type memoryUserRepo struct {
	users  map[string]*database.User
	nextID int64
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*database.User), nextID: 1}
}

func (r *memoryUserRepo) GetByEmail(email string) (*database.User, error) {
	return r.users[email], nil
}

func (r *memoryUserRepo) Create(email, passwordHash, role string) (int64, error) {
	if _, ok := r.users[email]; ok {
		return 0, errors.New("UNIQUE constraint failed: users.email")
	}
	id := r.nextID
	r.nextID++
	r.users[email] = &database.User{ID: id, Email: email, PasswordHash: passwordHash, Role: role}
	return id, nil
}

func (r *memoryUserRepo) GetCount() (int, error) {
	return len(r.users), nil
}

type memorySessionRepo struct {
	sessions map[string]*database.Session
	users    *memoryUserRepo
}

func newMemorySessionRepo(users *memoryUserRepo) *memorySessionRepo {
	return &memorySessionRepo{sessions: make(map[string]*database.Session), users: users}
}

func (r *memorySessionRepo) Create(token string, userID int64, expiresAt time.Time) error {
	var user *database.User
	for _, u := range r.users.users {
		if u.ID == userID {
			user = u
		}
	}
	if user == nil {
		return errors.New("unknown user")
	}
	r.sessions[token] = &database.Session{
		Token:     token,
		UserID:    userID,
		Email:     user.Email,
		Role:      user.Role,
		ExpiresAt: expiresAt,
	}
	return nil
}

func (r *memorySessionRepo) Get(token string) (*database.Session, error) {
	session, ok := r.sessions[token]
	if !ok {
		return nil, nil
	}
	if time.Now().UTC().After(session.ExpiresAt) {
		delete(r.sessions, token)
		return nil, nil
	}
	return session, nil
}

func (r *memorySessionRepo) Delete(token string) error {
	delete(r.sessions, token)
	return nil
}

func (r *memorySessionRepo) DeleteExpired() (int64, error) {
	removed := int64(0)
	now := time.Now().UTC()
	for token, session := range r.sessions {
		if now.After(session.ExpiresAt) {
			delete(r.sessions, token)
			removed++
		}
	}
	return removed, nil
}

func newTestService() (*Service, *memoryUserRepo, *memorySessionRepo) {
	users := newMemoryUserRepo()
	sessions := newMemorySessionRepo(users)
	return NewService(users, sessions, 24*time.Hour), users, sessions
}

func TestRegisterAndLogin(t *testing.T) {
	service, _, _ := newTestService()

	id, err := service.Register("reader@example.com", "secret1")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if id == 0 {
		t.Error("Expected a non-zero user id")
	}

	token, user, err := service.Login("reader@example.com", "secret1")
	if err != nil {
		t.Fatalf("Expected successful login, got: %v", err)
	}
	if token == "" {
		t.Error("Expected a session token")
	}
	if user.Role != "user" {
		t.Errorf("Expected role 'user', got %q", user.Role)
	}

	session, err := service.Resolve(token)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if session == nil {
		t.Fatal("Expected token to resolve to a session")
	}
	if session.Email != "reader@example.com" {
		t.Errorf("Expected session email to match, got %q", session.Email)
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"missing at sign", "not-an-email", "secret1", ErrInvalidEmail},
		{"missing domain dot", "user@host", "secret1", ErrInvalidEmail},
		{"empty email", "", "secret1", ErrInvalidEmail},
		{"short password", "user@example.com", "abc", ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newTestService()
			_, err := service.Register(tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _, _ := newTestService()

	if _, err := service.Register("reader@example.com", "secret1"); err != nil {
		t.Fatalf("Expected first registration to succeed, got: %v", err)
	}

	_, err := service.Register("reader@example.com", "other-password")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got: %v", err)
	}

	// Case-folded addresses collide with the original
	_, err = service.Register("READER@Example.COM", "other-password")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken for case variant, got: %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	service, _, _ := newTestService()

	if _, err := service.Register("reader@example.com", "secret1"); err != nil {
		t.Fatalf("Expected registration to succeed, got: %v", err)
	}

	if _, _, err := service.Login("reader@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong password, got: %v", err)
	}

	if _, _, err := service.Login("nobody@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown user, got: %v", err)
	}
}

func TestLogoutDestroysSession(t *testing.T) {
	service, _, _ := newTestService()

	if _, err := service.Register("reader@example.com", "secret1"); err != nil {
		t.Fatalf("Expected registration to succeed, got: %v", err)
	}
	token, _, err := service.Login("reader@example.com", "secret1")
	if err != nil {
		t.Fatalf("Expected login to succeed, got: %v", err)
	}

	if err := service.Logout(token); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	session, err := service.Resolve(token)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if session != nil {
		t.Error("Expected session to be gone after logout")
	}

	// Logging out an unknown token is a no-op
	if err := service.Logout("no-such-token"); err != nil {
		t.Errorf("Expected no error for unknown token, got: %v", err)
	}
}

func TestSeedAdmin(t *testing.T) {
	service, users, _ := newTestService()

	if err := service.SeedAdmin("admin@geek.news", "admin123"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	admin := users.users["admin@geek.news"]
	if admin == nil {
		t.Fatal("Expected admin account to exist")
	}
	if admin.Role != "admin" {
		t.Errorf("Expected role 'admin', got %q", admin.Role)
	}

	// Seeding again must not replace the existing account
	if err := service.SeedAdmin("admin@geek.news", "different"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if users.users["admin@geek.news"].PasswordHash != admin.PasswordHash {
		t.Error("Expected existing admin account to be left untouched")
	}

	_, _, err := service.Login("admin@geek.news", "admin123")
	if err != nil {
		t.Errorf("Expected seeded admin to log in, got: %v", err)
	}
}
