package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/luisjesusbernal/Geek-News/app/auth"
	"github.com/luisjesusbernal/Geek-News/app/database"
	"github.com/luisjesusbernal/Geek-News/app/newsletter"
)

type subscribeRequest struct {
	Email string `json:"email"`
}

type createCampaignRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (h *Handler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "Invalid request body"})
		return
	}

	email := auth.NormalizeEmail(req.Email)
	if !auth.IsValidEmail(email) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "Invalid email address"})
		return
	}

	if _, err := h.subscribers.Add(email); err != nil {
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"ok": false, "msg": "That email is already subscribed"})
			return
		}
		slog.Error("Database error", "operation", "subscribe", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "msg": "Thanks for subscribing!"})
}

func (h *Handler) ListSubscribers(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), 200, 1000)

	items, err := h.subscribers.List(limit)
	if err != nil {
		slog.Error("Database error", "operation", "list_subscribers", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
}

func (h *Handler) DeleteSubscriber(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "Invalid id"})
		return
	}

	removed, err := h.subscribers.Delete(id)
	if err != nil {
		slog.Error("Database error", "operation", "delete_subscriber", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Server error"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "msg": "Subscriber not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "msg": "Subscriber removed"})
}

func (h *Handler) CreateCampaign(c *gin.Context) {
	var req createCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "Invalid request body"})
		return
	}

	subject := strings.TrimSpace(req.Subject)
	body := strings.TrimSpace(req.Body)
	if subject == "" || body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "Subject and body are required"})
		return
	}

	id, err := h.campaigns.Create(subject, body)
	if err != nil {
		slog.Error("Database error", "operation", "create_campaign", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "id": id})
}

func (h *Handler) ListCampaigns(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), 50, 200)

	items, err := h.campaigns.List(limit)
	if err != nil {
		slog.Error("Database error", "operation", "list_campaigns", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
}

// ListCampaignLogs returns the send history for one campaign.
func (h *Handler) ListCampaignLogs(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "Invalid id"})
		return
	}

	campaign, err := h.campaigns.Get(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_campaign", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Server error"})
		return
	}
	if campaign == nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "msg": "Campaign not found"})
		return
	}

	logs, err := h.campaigns.ListLogs(id)
	if err != nil {
		slog.Error("Database error", "operation", "list_campaign_logs", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "items": logs})
}

// SendCampaign runs one delivery attempt for the campaign. Only the
// preconditions can fail the call; individual recipient failures are
// folded into the aggregate counts.
func (h *Handler) SendCampaign(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "Invalid id"})
		return
	}

	report, err := h.dispatcher.Send(c.Request.Context(), id)
	switch {
	case errors.Is(err, newsletter.ErrCampaignNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "msg": "Campaign not found"})
	case errors.Is(err, newsletter.ErrNoSubscribers):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "No subscribers to send to"})
	case err != nil:
		slog.Error("Campaign send failed", "campaign_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Failed to send campaign"})
	default:
		c.JSON(http.StatusOK, gin.H{
			"ok":            true,
			"msg":           "Send completed",
			"sent_to":       report.SentTo,
			"success_count": report.SuccessCount,
			"preview_links": report.PreviewLinks,
			"log_id":        report.LogID,
		})
	}
}
