package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	// Server settings
	ListenAddr = ":8080"

	// Data settings
	DataDir  = "./data"
	MediaDir = "./data/media"

	// FeedBaseURL, when set, makes the hub fetch feeds over HTTP from a
	// published site instead of reading the local data directory.
	FeedBaseURL = ""

	// HubConfigPath points at the optional hub.yml / hub.toml file.
	HubConfigPath = "./hub.yml"

	// View settings
	DueSoonWindowDays = 7
	DueSoonCap        = 12
	RecentCap         = 20

	// Search input quiet window before a re-render fires.
	DebounceWindow = 300 * time.Millisecond

	// Fetch settings
	FetchTimeout = 10 * time.Second

	SessionSecret = "opphub-dev-secret"
)

func Init() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found or error loading it.")
	}

	// Helper to get env with default
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	ListenAddr = getEnv("LISTEN_ADDR", ":8080")

	DataDir = getEnv("DATA_DIR", "./data")
	MediaDir = getEnv("MEDIA_DIR", DataDir+"/media")
	FeedBaseURL = getEnv("FEED_BASE_URL", "")
	HubConfigPath = getEnv("HUB_CONFIG", "./hub.yml")

	SessionSecret = getEnv("SESSION_SECRET", "opphub-dev-secret")

	if v := os.Getenv("DUE_SOON_WINDOW_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			DueSoonWindowDays = n
		}
	}
	if v := os.Getenv("DUE_SOON_CAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			DueSoonCap = n
		}
	}
	if v := os.Getenv("RECENT_CAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			RecentCap = n
		}
	}
	if v := os.Getenv("DEBOUNCE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			DebounceWindow = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv("FETCH_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			FetchTimeout = time.Duration(n) * time.Millisecond
		}
	}
}

func GetAppURL() string {
	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8080"
	}
	return appURL
}
