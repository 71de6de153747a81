package database

import (
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"` // user | admin
	CreatedAt    time.Time `json:"created_at"`
}

type Session struct {
	Token     string    `json:"-"`
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

type Article struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Section   string    `json:"section"`
	ImageURL  string    `json:"image_url"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content,omitempty"`
	Published bool      `json:"published"`
	AuthorID  int64     `json:"author_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Subscriber struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Campaign struct {
	ID        int64     `json:"id"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type CampaignLog struct {
	ID           int64     `json:"id"`
	CampaignID   int64     `json:"campaign_id"`
	SentTo       int       `json:"sent_to"`
	SuccessCount int       `json:"success_count"`
	PreviewLinks []string  `json:"preview_links"`
	CreatedAt    time.Time `json:"created_at"`
}
