package database

import (
	"database/sql"
	"fmt"
	"time"
)

// articleRepository handles database operations for articles
type articleRepository struct {
	db *DB
}

func NewArticleRepository(db *DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(a Article) (int64, error) {
	published := 0
	if a.Published {
		published = 1
	}

	// An unset author is stored as NULL; zero would trip the users FK
	authorID := sql.NullInt64{Int64: a.AuthorID, Valid: a.AuthorID != 0}

	result, err := r.db.Exec(`
		INSERT INTO articles (title, section, image_url, excerpt, content, published, author_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, a.Title, a.Section, a.ImageURL, a.Excerpt, a.Content, published, authorID, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to create article: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get new article id: %w", err)
	}

	return id, nil
}

// ListPublished returns published articles newest-first, optionally limited
// to a single section. Content is omitted from listings.
func (r *articleRepository) ListPublished(filter ArticleFilter) ([]Article, error) {
	query := `
		SELECT id, title, section, image_url, excerpt, published, created_at
		FROM articles
		WHERE published = 1`
	args := []interface{}{}

	if filter.Section != "" {
		query += " AND section = ?"
		args = append(args, filter.Section)
	}

	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, filter.Limit)

	return r.queryArticles(query, args...)
}

func (r *articleRepository) ListAll(limit int) ([]Article, error) {
	return r.queryArticles(`
		SELECT id, title, section, image_url, excerpt, published, created_at
		FROM articles
		ORDER BY id DESC
		LIMIT ?
	`, limit)
}

// GetPublished returns the article only when its published flag is set;
// drafts resolve to nil even when the row exists.
func (r *articleRepository) GetPublished(id int64) (*Article, error) {
	var a Article
	var published int
	var authorID sql.NullInt64

	err := r.db.QueryRow(`
		SELECT id, title, section, image_url, excerpt, content, published, author_id, created_at
		FROM articles
		WHERE id = ? AND published = 1
	`, id).Scan(&a.ID, &a.Title, &a.Section, &a.ImageURL, &a.Excerpt, &a.Content,
		&published, &authorID, &a.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	a.Published = published == 1
	a.AuthorID = authorID.Int64

	return &a, nil
}

func (r *articleRepository) GetByTitle(section, title string) (*Article, error) {
	var a Article
	var published int

	err := r.db.QueryRow(`
		SELECT id, title, section, image_url, excerpt, published, created_at
		FROM articles
		WHERE section = ? AND title = ?
		LIMIT 1
	`, section, title).Scan(&a.ID, &a.Title, &a.Section, &a.ImageURL, &a.Excerpt,
		&published, &a.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article by title: %w", err)
	}

	a.Published = published == 1

	return &a, nil
}

// Delete removes the article together with any favorites rows referencing
// it. Both deletes run in a single transaction so a crash cannot leave
// orphaned favorites behind.
func (r *articleRepository) Delete(id int64) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM favorites WHERE article_id = ?", id); err != nil {
		return false, fmt.Errorf("failed to delete article favorites: %w", err)
	}

	result, err := tx.Exec("DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete article: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to count deleted articles: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit article delete: %w", err)
	}

	return affected > 0, nil
}

func (r *articleRepository) GetCount() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get article count: %w", err)
	}
	return count, nil
}

func (r *articleRepository) queryArticles(query string, args ...interface{}) ([]Article, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	articles := make([]Article, 0)
	for rows.Next() {
		var a Article
		var published int
		err := rows.Scan(&a.ID, &a.Title, &a.Section, &a.ImageURL, &a.Excerpt,
			&published, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		a.Published = published == 1
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, nil
}
