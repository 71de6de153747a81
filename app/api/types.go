package api

import (
	"context"

	"github.com/luisjesusbernal/Geek-News/app/auth"
	"github.com/luisjesusbernal/Geek-News/app/database"
	"github.com/luisjesusbernal/Geek-News/app/news"
	"github.com/luisjesusbernal/Geek-News/app/newsletter"
)

type GeneratorInterface interface {
	Run(articles []database.Article) (string, error)
}

var _ GeneratorInterface = (*news.Generator)(nil)

type DispatcherInterface interface {
	Send(ctx context.Context, campaignID int64) (*newsletter.Report, error)
}

var _ DispatcherInterface = (*newsletter.Dispatcher)(nil)

type Handler struct {
	authService *auth.Service
	users       database.UserRepository
	articles    database.ArticleRepository
	favorites   database.FavoriteRepository
	subscribers database.SubscriberRepository
	campaigns   database.CampaignRepository
	dispatcher  DispatcherInterface
	importer    *news.Importer
	sections    *news.Catalog
	generator   GeneratorInterface
}

func NewHandler(authService *auth.Service, users database.UserRepository,
	articles database.ArticleRepository, favorites database.FavoriteRepository,
	subscribers database.SubscriberRepository, campaigns database.CampaignRepository,
	dispatcher DispatcherInterface, importer *news.Importer, sections *news.Catalog) *Handler {
	return &Handler{
		authService: authService,
		users:       users,
		articles:    articles,
		favorites:   favorites,
		subscribers: subscribers,
		campaigns:   campaigns,
		dispatcher:  dispatcher,
		importer:    importer,
		sections:    sections,
		generator:   news.NewGenerator(),
	}
}
