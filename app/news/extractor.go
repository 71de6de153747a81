package news

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-shiori/go-readability"
)

// Article content is capped so one oversized page cannot bloat a row.
const maxContentRunes = 100000

// Extracted holds the portal-ready pieces of a readable page.
type Extracted struct {
	Content string
	Excerpt string
}

// ContentExtractor pulls readable article content out of a fetched HTML
// page and derives a listing excerpt when the page provides none.
type ContentExtractor struct{}

func NewContentExtractor() *ContentExtractor {
	return &ContentExtractor{}
}

func (e *ContentExtractor) Run(data []byte) (*Extracted, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("HTML data is empty")
	}

	article, err := readability.FromReader(strings.NewReader(string(data)), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to extract content: %w", err)
	}

	if article.Content == "" {
		return nil, fmt.Errorf("no content extracted from HTML data")
	}

	content := article.Content
	if len([]rune(content)) > maxContentRunes {
		// Oversized pages keep only their clipped plain text
		content = clipRunes(article.TextContent, maxContentRunes)
	}

	excerpt := strings.TrimSpace(article.Excerpt)
	if excerpt == "" {
		excerpt = article.TextContent
	}
	excerpt = makeExcerpt(excerpt)

	slog.Debug("Content extracted successfully",
		"title", article.Title,
		"content_length", len(content))

	return &Extracted{Content: content, Excerpt: excerpt}, nil
}

func clipRunes(s string, limit int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= limit {
		return string(runes)
	}
	return strings.TrimSpace(string(runes[:limit]))
}
