package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const aiBuildersChatURL = "https://space.ai-builders.com/backend/v1/chat/completions"

// Feed is one RSS source from rss_feeds.json.
type Feed struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Config holds everything the scanner reads from the environment.
type Config struct {
	AIProvider string
	AIAPIKey   string
	AIAPIURL   string
	AIModel    string

	RSSTimeWindowHours int

	WebSearchProvider       string
	WebSearchAPIKey         string
	WebSearchAPIURL         string
	WebSearchMaxResults     int
	WebSearchTimeWindowDays int

	BackgroundPath string
	FeedsPath      string
	KeywordsPath   string
}

// Load reads the environment once and resolves provider auto-detection.
func Load() *Config {
	builderToken := os.Getenv("AI_BUILDER_TOKEN")

	apiKey := os.Getenv("AI_API_KEY")
	if apiKey == "" {
		apiKey = builderToken
	}

	apiURL := strings.TrimSpace(os.Getenv("AI_API_URL"))
	if apiURL == "" {
		apiURL = strings.TrimSpace(os.Getenv("API_URL"))
	}

	model := os.Getenv("AI_MODEL")
	if model == "" {
		model = os.Getenv("AI_BUILDER_MODEL")
	}
	if model == "" {
		model = "gpt-4"
	}

	provider := strings.ToLower(os.Getenv("AI_PROVIDER"))
	if provider == "" {
		switch {
		case builderToken != "" || strings.Contains(strings.ToLower(model), "supermind"):
			provider = "custom"
			if apiURL == "" {
				apiURL = aiBuildersChatURL
			} else if !strings.HasSuffix(apiURL, "/chat/completions") && !strings.Contains(apiURL, "/chat") {
				apiURL = strings.TrimRight(apiURL, "/") + "/chat/completions"
			}
		case apiURL != "":
			provider = "custom"
		case strings.Contains(strings.ToLower(model), "anthropic") || strings.Contains(strings.ToLower(model), "claude"):
			provider = "anthropic"
		default:
			provider = "openai"
		}
	}

	searchProvider := strings.ToLower(os.Getenv("WEB_SEARCH_API_PROVIDER"))
	if searchProvider == "" {
		if builderToken != "" || strings.Contains(strings.ToLower(model), "supermind") {
			searchProvider = "ai-builders"
		} else {
			searchProvider = "tavily"
		}
	}

	searchKey := os.Getenv("WEB_SEARCH_API_KEY")
	if searchKey == "" {
		searchKey = apiKey
	}

	return &Config{
		AIProvider:              provider,
		AIAPIKey:                apiKey,
		AIAPIURL:                apiURL,
		AIModel:                 model,
		RSSTimeWindowHours:      envInt("RSS_TIME_WINDOW_HOURS", 48),
		WebSearchProvider:       searchProvider,
		WebSearchAPIKey:         searchKey,
		WebSearchAPIURL:         os.Getenv("WEB_SEARCH_API_URL"),
		WebSearchMaxResults:     envInt("WEB_SEARCH_MAX_RESULTS", 10),
		WebSearchTimeWindowDays: envInt("WEB_SEARCH_TIME_WINDOW_DAYS", 30),
		BackgroundPath:          envOr("BACKGROUND_PATH", "background.md"),
		FeedsPath:               envOr("RSS_FEEDS_PATH", "rss_feeds.json"),
		KeywordsPath:            envOr("KEYWORDS_STATS_PATH", "search_keywords.json"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// LoadFeeds reads the RSS feed list from FeedsPath.
func (c *Config) LoadFeeds() ([]Feed, error) {
	data, err := os.ReadFile(c.FeedsPath)
	if err != nil {
		return nil, fmt.Errorf("read rss feeds config: %w", err)
	}

	var feeds []Feed
	if err := json.Unmarshal(data, &feeds); err != nil {
		return nil, fmt.Errorf("parse rss feeds config: %w", err)
	}
	return feeds, nil
}

// LoadBackground reads the scanning background brief from BackgroundPath.
func (c *Config) LoadBackground() (string, error) {
	data, err := os.ReadFile(c.BackgroundPath)
	if err != nil {
		return "", fmt.Errorf("read background file: %w", err)
	}
	return string(data), nil
}

// Validate reports which configuration pieces are usable. The server keeps
// running with an incomplete config; /health exposes this map.
func (c *Config) Validate() map[string]bool {
	apiURLOK := true
	if c.AIProvider == "custom" {
		apiURLOK = c.AIAPIURL != ""
	}

	return map[string]bool{
		"background_md_exists": fileExists(c.BackgroundPath),
		"rss_feeds_exists":     fileExists(c.FeedsPath),
		"ai_api_key_set":       c.AIAPIKey != "",
		"ai_api_url_set":       apiURLOK,
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
