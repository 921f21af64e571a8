package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const bookmarkKey = "bookmarks"

func bookmarkIDs(session sessions.Session) []string {
	if ids, ok := session.Get(bookmarkKey).([]string); ok {
		return ids
	}
	return nil
}

func bookmarkSet(session sessions.Session) map[string]bool {
	set := map[string]bool{}
	for _, id := range bookmarkIDs(session) {
		set[id] = true
	}
	return set
}

// ListBookmarks returns the visitor's bookmarked item ids.
func ListBookmarks(c *gin.Context) {
	ids := bookmarkIDs(sessions.Default(c))
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"ids": ids})
}

// ToggleBookmark flips one item id in the visitor's bookmark set.
func ToggleBookmark(c *gin.Context) {
	var req struct {
		ID string `json:"id"`
	}
	if err := c.BindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	session := sessions.Default(c)
	ids := bookmarkIDs(session)

	bookmarked := true
	next := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		if id == req.ID {
			bookmarked = false
			continue
		}
		next = append(next, id)
	}
	if bookmarked {
		next = append(next, req.ID)
	}

	session.Set(bookmarkKey, next)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": req.ID, "bookmarked": bookmarked, "ids": next})
}
