package database

import (
	"time"
)

type UserRepository interface {
	GetByEmail(email string) (*User, error)
	Create(email, passwordHash, role string) (int64, error)
	GetCount() (int, error)
}

type SessionRepository interface {
	Create(token string, userID int64, expiresAt time.Time) error
	Get(token string) (*Session, error)
	Delete(token string) error
	DeleteExpired() (int64, error)
}

type ArticleFilter struct {
	Section string
	Limit   int
}

type ArticleRepository interface {
	Create(a Article) (int64, error)
	ListPublished(filter ArticleFilter) ([]Article, error)
	ListAll(limit int) ([]Article, error)
	GetPublished(id int64) (*Article, error)
	GetByTitle(section, title string) (*Article, error)

	// Delete removes the article and its favorites rows in one transaction.
	// Returns false when no article row matched.
	Delete(id int64) (bool, error)

	GetCount() (int, error)
}

type FavoriteRepository interface {
	// Toggle inserts the pair when absent and deletes it when present.
	// Returns the action taken ("added" or "removed") and the complete
	// current set of the user's favorite article ids.
	Toggle(userID, articleID int64) (string, []int64, error)
	List(userID int64) ([]int64, error)
}

type SubscriberRepository interface {
	Add(email string) (int64, error)
	List(limit int) ([]Subscriber, error)
	Delete(id int64) (bool, error)
	GetEmails() ([]string, error)
	GetCount() (int, error)
}

type CampaignRepository interface {
	Create(subject, body string) (int64, error)
	List(limit int) ([]Campaign, error)
	Get(id int64) (*Campaign, error)
	AppendLog(campaignID int64, sentTo, successCount int, previewLinks []string) (int64, error)
	ListLogs(campaignID int64) ([]CampaignLog, error)
}
