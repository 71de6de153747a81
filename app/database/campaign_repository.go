package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// campaignRepository handles database operations for newsletter campaigns
// and their append-only send logs
type campaignRepository struct {
	db *DB
}

func NewCampaignRepository(db *DB) CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) Create(subject, body string) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO campaigns (subject, body, created_at)
		VALUES (?, ?, ?)
	`, subject, body, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to create campaign: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get new campaign id: %w", err)
	}

	return id, nil
}

func (r *campaignRepository) List(limit int) ([]Campaign, error) {
	rows, err := r.db.Query(`
		SELECT id, subject, body, created_at
		FROM campaigns
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := make([]Campaign, 0)
	for rows.Next() {
		var c Campaign
		if err := rows.Scan(&c.ID, &c.Subject, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan campaign row: %w", err)
		}
		campaigns = append(campaigns, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating campaign rows: %w", err)
	}

	return campaigns, nil
}

func (r *campaignRepository) Get(id int64) (*Campaign, error) {
	var c Campaign
	err := r.db.QueryRow(`
		SELECT id, subject, body, created_at
		FROM campaigns
		WHERE id = ?
	`, id).Scan(&c.ID, &c.Subject, &c.Body, &c.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return &c, nil
}

// AppendLog records one send attempt. Preview links are kept as a JSON
// array in a single text column, matching their opaque, inspect-only use.
func (r *campaignRepository) AppendLog(campaignID int64, sentTo, successCount int, previewLinks []string) (int64, error) {
	if previewLinks == nil {
		previewLinks = []string{}
	}

	linksJSON, err := json.Marshal(previewLinks)
	if err != nil {
		return 0, fmt.Errorf("failed to encode preview links: %w", err)
	}

	result, err := r.db.Exec(`
		INSERT INTO campaign_logs (campaign_id, sent_to, success_count, preview_links_json, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, campaignID, sentTo, successCount, string(linksJSON), time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to append campaign log: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get new campaign log id: %w", err)
	}

	return id, nil
}

// ListLogs returns the campaign's send history, newest-first.
func (r *campaignRepository) ListLogs(campaignID int64) ([]CampaignLog, error) {
	rows, err := r.db.Query(`
		SELECT id, campaign_id, sent_to, success_count, preview_links_json, created_at
		FROM campaign_logs
		WHERE campaign_id = ?
		ORDER BY id DESC
	`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaign logs: %w", err)
	}
	defer rows.Close()

	logs := make([]CampaignLog, 0)
	for rows.Next() {
		var entry CampaignLog
		var linksJSON string
		err := rows.Scan(&entry.ID, &entry.CampaignID, &entry.SentTo, &entry.SuccessCount,
			&linksJSON, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign log row: %w", err)
		}
		if err := json.Unmarshal([]byte(linksJSON), &entry.PreviewLinks); err != nil {
			return nil, fmt.Errorf("failed to decode preview links: %w", err)
		}
		logs = append(logs, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating campaign log rows: %w", err)
	}

	return logs, nil
}
