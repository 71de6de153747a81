package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/luisjesusbernal/Geek-News/app/cfg"
)

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   cfg.Get().Version,
	}

	if articleCount, err := h.articles.GetCount(); err == nil {
		health["articles"] = articleCount
	}

	health["sections"] = h.sections.Count()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if articleCount, err := h.articles.GetCount(); err == nil {
		stats["total_articles"] = articleCount
	}

	if subscriberCount, err := h.subscribers.GetCount(); err == nil {
		stats["total_subscribers"] = subscriberCount
	}

	stats["loaded_sections"] = h.sections.Count()

	c.JSON(http.StatusOK, stats)
}
