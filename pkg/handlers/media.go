package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"opphub/pkg/config"
	"opphub/pkg/services"
)

// ServeMediaRaw serves hero images from the media directory. Paths come
// from item data, so they go through the traversal guard.
func ServeMediaRaw(c *gin.Context) {
	targetPath := c.Query("path")
	if targetPath == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	fullPath := services.SafeJoin(config.MediaDir, "", targetPath)
	if fullPath == "" {
		c.Status(http.StatusNotFound)
		return
	}

	c.File(fullPath)
}
