package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/luisjesusbernal/Geek-News/app/cfg"
)

const maxUploadBytes = 5 * 1024 * 1024

var unsafeFilenameChars = regexp.MustCompile(`[^\w.\-]+`)

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpg":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/gif":  true,
}

// UploadImage stores an article image and returns its public URL.
// Only image MIME types are accepted, capped at 5MB.
func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "No file received"})
		return
	}

	if file.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "File too large (max 5MB)"})
		return
	}

	contentType := strings.ToLower(file.Header.Get("Content-Type"))
	if !allowedImageTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "msg": "File type not allowed (images only)"})
		return
	}

	safe := unsafeFilenameChars.ReplaceAllString(filepath.Base(file.Filename), "_")
	name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), safe)

	dest := filepath.Join(cfg.Get().UploadsDir, name)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		slog.Error("Failed to store uploaded image", "dest", dest, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Failed to store file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "url": "/uploads/" + name})
}
