package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luisjesusbernal/Geek-News/app/auth"
	"github.com/luisjesusbernal/Geek-News/app/cfg"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "Invalid request body"})
		return
	}

	if req.Email == "" || req.Password == "" || req.Confirm == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "Fill in all fields"})
		return
	}
	if req.Password != req.Confirm {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "Passwords do not match"})
		return
	}

	_, err := h.authService.Register(req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "Invalid email address"})
	case errors.Is(err, auth.ErrPasswordTooShort):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "Password must be at least 4 characters"})
	case errors.Is(err, auth.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "msg": "That email is already registered"})
	case err != nil:
		slog.Error("Registration failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Server error"})
	default:
		c.JSON(http.StatusCreated, gin.H{"ok": true, "msg": "Registration successful"})
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "Invalid request body"})
		return
	}

	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "Missing email or password"})
		return
	}

	token, _, err := h.authService.Login(req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "msg": "Invalid email or password"})
		return
	}
	if err != nil {
		slog.Error("Login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Server error"})
		return
	}

	maxAge := cfg.Get().SessionTTLHours * 3600
	c.SetCookie(auth.SessionCookie, token, maxAge, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{"ok": true, "msg": "Login successful"})
}

// GetMe reports the session state for the navigation script. Anonymous
// requests get {loggedIn: false} with a 200, never an error.
func (h *Handler) GetMe(c *gin.Context) {
	session, err := h.authService.SessionFromRequest(c)
	if err != nil {
		slog.Error("Session lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Server error"})
		return
	}

	if session == nil {
		c.JSON(http.StatusOK, gin.H{"loggedIn": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"loggedIn": true,
		"email":    session.Email,
		"userId":   session.UserID,
		"role":     session.Role,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	token, _ := c.Cookie(auth.SessionCookie)
	if err := h.authService.Logout(token); err != nil {
		slog.Error("Logout failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Server error"})
		return
	}

	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true, "msg": "Session closed"})
}
