package main

import (
	"context"
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"opphub/pkg/config"
	"opphub/pkg/handlers"
	"opphub/pkg/models"
	"opphub/pkg/services"
)

func main() {
	// Initialize config
	config.Init()

	hubCfg, err := services.LoadHubConfig(config.HubConfigPath)
	if err != nil {
		log.Fatalf("hub config: %v", err)
	}

	// Local data directory by default; FEED_BASE_URL switches to a
	// published remote site.
	var fetcher services.Fetcher = &services.FileFetcher{Root: config.DataDir}
	if config.FeedBaseURL != "" {
		fetcher = services.NewHTTPFetcher(config.FetchTimeout)
	}
	feeds := services.NewFeedService(fetcher, config.FeedBaseURL)
	if config.FeedBaseURL == "" {
		checkFeeds(fetcher, hubCfg)
	}
	handlers.Init(feeds, hubCfg)

	r := gin.Default()

	// Session Setup
	store := cookie.NewStore([]byte(config.SessionSecret))
	r.Use(sessions.Sessions("opphub_session", store))

	// Static Files & Templates
	r.LoadHTMLGlob("templates/*")
	r.Static("/static", "./static") // Serve static assets (css/js)

	r.GET("/", handlers.Index)
	r.GET("/media", handlers.ServeMediaRaw)

	api := r.Group("/api")
	{
		api.GET("/board", handlers.GetBoard)
		api.GET("/feed/:category", handlers.GetFeed)
		api.POST("/refresh", handlers.RefreshFeed)
		api.GET("/share", handlers.Share)
		api.GET("/bookmarks", handlers.ListBookmarks)
		api.POST("/bookmarks", handlers.ToggleBookmark)
	}

	r.Run(config.ListenAddr)
}

// checkFeeds validates the published arrays against the authoring schema at
// startup. Bad records are reported but never block serving: the renderer
// degrades per field.
func checkFeeds(fetcher services.Fetcher, hubCfg models.HubConfig) {
	for _, hc := range hubCfg.Categories {
		cat, err := models.ParseCategory(hc.Slug)
		if err != nil {
			continue
		}
		raw, err := fetcher.Fetch(context.Background(), hc.Feed)
		if err != nil {
			log.Printf("feed %s: %v", hc.Feed, err)
			continue
		}
		if err := services.ValidateFeed(raw, cat); err != nil {
			log.Printf("feed %s: schema violation: %v", hc.Feed, err)
		}
	}
}
