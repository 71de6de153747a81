package database

import (
	"database/sql"
	"fmt"
	"time"
)

// sessionRepository handles database operations for server-side sessions
type sessionRepository struct {
	db *DB
}

func NewSessionRepository(db *DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(token string, userID int64, expiresAt time.Time) error {
	_, err := r.db.Exec(`
		INSERT INTO sessions (token, user_id, expires_at, created_at)
		VALUES (?, ?, ?, ?)
	`, token, userID, expiresAt.UTC(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Get resolves a token to its session joined with the owning user.
// Expired or unknown tokens resolve to nil.
func (r *sessionRepository) Get(token string) (*Session, error) {
	var session Session
	err := r.db.QueryRow(`
		SELECT s.token, s.user_id, u.email, u.role, s.expires_at, s.created_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = ?
	`, token).Scan(&session.Token, &session.UserID, &session.Email, &session.Role,
		&session.ExpiresAt, &session.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if time.Now().UTC().After(session.ExpiresAt) {
		if _, err := r.db.Exec("DELETE FROM sessions WHERE token = ?", token); err != nil {
			return nil, fmt.Errorf("failed to remove expired session: %w", err)
		}
		return nil, nil
	}

	return &session, nil
}

func (r *sessionRepository) Delete(token string) error {
	if _, err := r.db.Exec("DELETE FROM sessions WHERE token = ?", token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *sessionRepository) DeleteExpired() (int64, error) {
	result, err := r.db.Exec("DELETE FROM sessions WHERE expires_at < ?", time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count removed sessions: %w", err)
	}

	return removed, nil
}
