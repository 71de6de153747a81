package database

import (
	"fmt"
	"time"
)

// subscriberRepository handles database operations for newsletter subscribers
type subscriberRepository struct {
	db *DB
}

func NewSubscriberRepository(db *DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

// Add inserts a subscriber email. A duplicate email surfaces as a
// uniqueness violation; callers should branch on IsUniqueViolation.
func (r *subscriberRepository) Add(email string) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO subscriptions (email, created_at)
		VALUES (?, ?)
	`, email, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to add subscriber: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get new subscriber id: %w", err)
	}

	return id, nil
}

func (r *subscriberRepository) List(limit int) ([]Subscriber, error) {
	rows, err := r.db.Query(`
		SELECT id, email, created_at
		FROM subscriptions
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	subscribers := make([]Subscriber, 0)
	for rows.Next() {
		var s Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber row: %w", err)
		}
		subscribers = append(subscribers, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriber rows: %w", err)
	}

	return subscribers, nil
}

func (r *subscriberRepository) Delete(id int64) (bool, error) {
	result, err := r.db.Exec("DELETE FROM subscriptions WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete subscriber: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to count deleted subscribers: %w", err)
	}

	return affected > 0, nil
}

// GetEmails returns every subscriber email, newest-first. The campaign
// dispatcher reads this fresh at send time rather than snapshotting.
func (r *subscriberRepository) GetEmails() ([]string, error) {
	rows, err := r.db.Query("SELECT email FROM subscriptions ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to get subscriber emails: %w", err)
	}
	defer rows.Close()

	emails := make([]string, 0)
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber email: %w", err)
		}
		emails = append(emails, email)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriber emails: %w", err)
	}

	return emails, nil
}

func (r *subscriberRepository) GetCount() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM subscriptions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get subscriber count: %w", err)
	}
	return count, nil
}
