package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"opphub/pkg/config"
	"opphub/pkg/models"
	"opphub/pkg/services"
)

var (
	feeds *services.FeedService
	hub   models.HubConfig
)

// Init hands the handlers their shared services.
func Init(f *services.FeedService, cfg models.HubConfig) {
	feeds = f
	hub = cfg
}

func Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":       hub.Title,
		"categories":  hub.Categories,
		"debounce_ms": config.DebounceWindow.Milliseconds(),
	})
}

// GetBoard decodes the board state from the query string, loads the active
// tab's feed and returns both rendered views.
func GetBoard(c *gin.Context) {
	// An explicit unknown tab is a caller bug, not something to paper over.
	if raw := c.Query("tab"); raw != "" {
		if _, err := models.ParseCategory(raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	state := services.DecodeState(c.Request.URL.Query())

	items, err := feeds.Items(c.Request.Context(), state.Tab)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load feed: " + err.Error()})
		return
	}

	now := time.Now()
	views := services.DeriveViews(items, state.Query, state.ActiveFilters(), now,
		config.DueSoonWindowDays, config.DueSoonCap, config.RecentCap)

	marks := bookmarkSet(sessions.Default(c))
	c.JSON(http.StatusOK, gin.H{
		"tab":            state.Tab,
		"due_soon":       services.RenderCards(views.DueSoon, now, config.DueSoonWindowDays, marks),
		"recent":         services.RenderCards(views.Recent, now, config.DueSoonWindowDays, marks),
		"due_soon_count": len(views.DueSoon),
		"recent_count":   len(views.Recent),
		"share_query":    services.EncodeState(state).Encode(),
	})
}

// GetFeed serves a category's raw published array, cache-backed.
func GetFeed(c *gin.Context) {
	cat, err := models.ParseCategory(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raw, err := feeds.Raw(c.Request.Context(), cat)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load feed: " + err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// RefreshFeed drops a tab's cached feed so the next render re-fetches it.
func RefreshFeed(c *gin.Context) {
	cat, err := models.ParseCategory(c.Query("tab"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	feeds.Invalidate(cat)
	c.JSON(http.StatusOK, gin.H{"status": "refreshed"})
}

// Share returns the canonical shareable link for the given state. The host
// page copies it to the clipboard, falling back to a manual prompt.
func Share(c *gin.Context) {
	state := services.DecodeState(c.Request.URL.Query())
	c.JSON(http.StatusOK, gin.H{"url": services.BuildShareURL(config.GetAppURL(), state)})
}
