package news

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/luisjesusbernal/Geek-News/app/database"
	"github.com/mmcdole/gofeed"
)

const excerptMaxRunes = 280

// ImportRequest describes one import run from an external RSS/Atom feed
// into a portal section.
type ImportRequest struct {
	FeedURL        string
	Section        string
	Publish        bool
	Limit          int
	ExtractContent bool
	AuthorID       int64
}

type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Importer turns external feed items into portal articles. Imported items
// land as drafts unless the request asks for immediate publication, and
// items whose title already exists in the target section are skipped.
type Importer struct {
	articles   database.ArticleRepository
	httpClient *http.Client
	parser     *gofeed.Parser
	extractor  *ContentExtractor
	userAgent  string
}

func NewImporter(articles database.ArticleRepository, httpClient *http.Client, userAgent string) *Importer {
	return &Importer{
		articles:   articles,
		httpClient: httpClient,
		parser:     gofeed.NewParser(),
		extractor:  NewContentExtractor(),
		userAgent:  userAgent,
	}
}

func (im *Importer) Run(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	data, err := im.fetch(ctx, req.FeedURL)
	if err != nil {
		return nil, err
	}

	feed, err := im.parser.Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	return im.importItems(ctx, feed.Items, req)
}

func (im *Importer) importItems(ctx context.Context, items []*gofeed.Item, req ImportRequest) (*ImportResult, error) {
	result := &ImportResult{}

	for _, item := range items {
		if req.Limit > 0 && result.Imported >= req.Limit {
			break
		}
		if item == nil || strings.TrimSpace(item.Title) == "" {
			result.Skipped++
			continue
		}

		article := im.normalizeItem(item, req)

		existing, err := im.articles.GetByTitle(article.Section, article.Title)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			result.Skipped++
			continue
		}

		if req.ExtractContent && item.Link != "" {
			if extracted, err := im.extractFromLink(ctx, item.Link); err != nil {
				slog.Warn("Content extraction failed, keeping feed content", "link", item.Link, "error", err)
			} else {
				article.Content = extracted.Content
				if article.Excerpt == "" {
					article.Excerpt = extracted.Excerpt
				}
			}
		}

		if _, err := im.articles.Create(article); err != nil {
			return nil, fmt.Errorf("failed to store imported article %q: %w", article.Title, err)
		}
		result.Imported++
	}

	slog.Info("Feed import completed", "feed_url", req.FeedURL, "section", req.Section,
		"imported", result.Imported, "skipped", result.Skipped)

	return result, nil
}

func (im *Importer) normalizeItem(item *gofeed.Item, req ImportRequest) database.Article {
	article := database.Article{
		Title:     strings.TrimSpace(item.Title),
		Section:   req.Section,
		Excerpt:   makeExcerpt(item.Description),
		Content:   cmp.Or(item.Content, item.Description),
		Published: req.Publish,
		AuthorID:  req.AuthorID,
	}

	if item.Image != nil {
		article.ImageURL = item.Image.URL
	} else if len(item.Enclosures) > 0 && item.Enclosures[0] != nil &&
		strings.HasPrefix(item.Enclosures[0].Type, "image/") {
		article.ImageURL = item.Enclosures[0].URL
	}

	return article
}

func (im *Importer) extractFromLink(ctx context.Context, link string) (*Extracted, error) {
	data, err := im.fetch(ctx, link)
	if err != nil {
		return nil, err
	}
	return im.extractor.Run(data)
}

func (im *Importer) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", im.userAgent)

	resp, err := im.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}

	return data, nil
}

func makeExcerpt(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= excerptMaxRunes {
		return s
	}

	runes := []rune(s)
	return strings.TrimSpace(string(runes[:excerptMaxRunes])) + "…"
}
