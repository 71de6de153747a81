package database

import (
	"database/sql"
	"fmt"
	"time"
)

// favoriteRepository handles the user/article favorites relation
type favoriteRepository struct {
	db *DB
}

func NewFavoriteRepository(db *DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Toggle flips membership of the (user, article) pair and returns the
// action taken plus the user's complete favorite set after the mutation,
// so callers can re-sync without a second round trip. The check and the
// mutation run in one transaction; a concurrent duplicate insert surfaces
// as a uniqueness violation rather than corruption.
func (r *favoriteRepository) Toggle(userID, articleID int64) (string, []int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return "", nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var one int
	err = tx.QueryRow(`
		SELECT 1 FROM favorites WHERE user_id = ? AND article_id = ?
	`, userID, articleID).Scan(&one)

	var action string
	switch {
	case err == sql.ErrNoRows:
		action = "added"
		_, err = tx.Exec(`
			INSERT INTO favorites (user_id, article_id, created_at)
			VALUES (?, ?, ?)
		`, userID, articleID, time.Now().UTC())
		if err != nil {
			return "", nil, fmt.Errorf("failed to add favorite: %w", err)
		}
	case err != nil:
		return "", nil, fmt.Errorf("failed to check favorite: %w", err)
	default:
		action = "removed"
		_, err = tx.Exec(`
			DELETE FROM favorites WHERE user_id = ? AND article_id = ?
		`, userID, articleID)
		if err != nil {
			return "", nil, fmt.Errorf("failed to remove favorite: %w", err)
		}
	}

	items, err := listFavorites(tx, userID)
	if err != nil {
		return "", nil, err
	}

	if err := tx.Commit(); err != nil {
		return "", nil, fmt.Errorf("failed to commit favorite toggle: %w", err)
	}

	return action, items, nil
}

func (r *favoriteRepository) List(userID int64) ([]int64, error) {
	return listFavorites(r.db, userID)
}

type querier interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

func listFavorites(q querier, userID int64) ([]int64, error) {
	rows, err := q.Query(`
		SELECT article_id FROM favorites WHERE user_id = ? ORDER BY article_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	items := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan favorite row: %w", err)
		}
		items = append(items, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorite rows: %w", err)
	}

	return items, nil
}
