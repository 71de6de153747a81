package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/luisjesusbernal/Geek-News/app/auth"
	"github.com/luisjesusbernal/Geek-News/app/database"
	"github.com/luisjesusbernal/Geek-News/app/news"
)

type createArticleRequest struct {
	Title     string `json:"title"`
	Section   string `json:"section"`
	ImageURL  string `json:"image_url"`
	Excerpt   string `json:"excerpt"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

type importRequest struct {
	FeedURL        string `json:"feed_url"`
	Section        string `json:"section"`
	Publish        bool   `json:"publish"`
	Limit          int    `json:"limit"`
	ExtractContent bool   `json:"extract_content"`
}

func (h *Handler) ListSections(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "items": h.sections.List()})
}

func (h *Handler) ListPublishedArticles(c *gin.Context) {
	filter := database.ArticleFilter{
		Section: c.Query("section"),
		Limit:   parseLimit(c.Query("limit"), 20, 100),
	}

	items, err := h.articles.ListPublished(filter)
	if err != nil {
		slog.Error("Database error", "operation", "list_published", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
}

func (h *Handler) GetPublishedArticle(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "Invalid id"})
		return
	}

	article, err := h.articles.GetPublished(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_article", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Server error"})
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "msg": "Article not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "item": article})
}

func (h *Handler) CreateArticle(c *gin.Context) {
	var req createArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "Invalid request body"})
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.Section == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "Title and section are required"})
		return
	}
	if !h.sections.IsAllowed(req.Section) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "Invalid section"})
		return
	}

	session := auth.CurrentSession(c)

	id, err := h.articles.Create(database.Article{
		Title:     req.Title,
		Section:   req.Section,
		ImageURL:  strings.TrimSpace(req.ImageURL),
		Excerpt:   strings.TrimSpace(req.Excerpt),
		Content:   strings.TrimSpace(req.Content),
		Published: req.Published,
		AuthorID:  session.UserID,
	})
	if err != nil {
		slog.Error("Database error", "operation", "create_article", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "id": id})
}

func (h *Handler) DeleteArticle(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "Invalid id"})
		return
	}

	removed, err := h.articles.Delete(id)
	if err != nil {
		slog.Error("Database error", "operation", "delete_article", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Server error"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "msg": "Article not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "msg": "Article deleted", "id": id})
}

func (h *Handler) ListAllArticles(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), 50, 200)

	items, err := h.articles.ListAll(limit)
	if err != nil {
		slog.Error("Database error", "operation", "list_all_articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
}

func (h *Handler) ImportFeed(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "Invalid request body"})
		return
	}

	if req.FeedURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "feed_url is required"})
		return
	}
	if !h.sections.IsAllowed(req.Section) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "Invalid section"})
		return
	}

	session := auth.CurrentSession(c)

	result, err := h.importer.Run(c.Request.Context(), news.ImportRequest{
		FeedURL:        req.FeedURL,
		Section:        req.Section,
		Publish:        req.Publish,
		Limit:          req.Limit,
		ExtractContent: req.ExtractContent,
		AuthorID:       session.UserID,
	})
	if err != nil {
		slog.Error("Feed import failed", "feed_url", req.FeedURL, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "msg": "Failed to import feed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "imported": result.Imported, "skipped": result.Skipped})
}

func (h *Handler) GetRSS(c *gin.Context) {
	items, err := h.articles.ListPublished(database.ArticleFilter{Limit: 100})
	if err != nil {
		slog.Error("Database error", "operation", "list_published", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	rss, err := h.generator.Run(items)
	if err != nil {
		slog.Error("RSS generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Header("X-Feed-Items", strconv.Itoa(len(items)))
	c.String(http.StatusOK, rss)
}

// parseID parses a positive integer path id
func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseLimit parses a limit query value with a default and a hard cap
func parseLimit(s string, def, max int) int {
	if s == "" {
		return def
	}
	limit, err := strconv.Atoi(s)
	if err != nil || limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
