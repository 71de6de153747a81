package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luisjesusbernal/Geek-News/app/auth"
	"github.com/luisjesusbernal/Geek-News/app/database"
)

func (h *Handler) ListFavorites(c *gin.Context) {
	session := auth.CurrentSession(c)

	items, err := h.favorites.List(session.UserID)
	if err != nil {
		slog.Error("Database error", "operation", "list_favorites", "user_id", session.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
}

// ToggleFavorite flips membership of the article in the user's favorite
// set and returns the full set after the mutation. The article itself is
// never checked for existence; favorites may reference deleted ids.
func (h *Handler) ToggleFavorite(c *gin.Context) {
	articleID, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "Invalid article id"})
		return
	}

	session := auth.CurrentSession(c)

	action, items, err := h.favorites.Toggle(session.UserID, articleID)
	if err != nil {
		// Two concurrent toggles can race the uniqueness constraint;
		// the loser gets a retryable conflict, not corruption
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"ok": false, "msg": "Favorite changed concurrently, try again"})
			return
		}
		slog.Error("Database error", "operation", "toggle_favorite", "user_id", session.UserID,
			"article_id", articleID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "action": action, "items": items})
}
