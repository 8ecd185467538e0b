package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/luciechendesign/industry-news-scanner/internal/config"
	"github.com/luciechendesign/industry-news-scanner/pkg/search"
)

func newTestConfig(t *testing.T, feedURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()

	bgPath := filepath.Join(dir, "background.md")
	assert.Equal(t, nil, os.WriteFile(bgPath, []byte("# Strategic background"), 0o644))

	feedsPath := filepath.Join(dir, "rss_feeds.json")
	feeds, _ := json.Marshal([]config.Feed{{Name: "Example Blog", URL: feedURL}})
	assert.Equal(t, nil, os.WriteFile(feedsPath, feeds, 0o644))

	return &config.Config{
		AIProvider:              "openai",
		AIAPIKey:                "test-key",
		AIModel:                 "gpt-4",
		RSSTimeWindowHours:      48,
		WebSearchTimeWindowDays: 30,
		WebSearchMaxResults:     10,
		BackgroundPath:          bgPath,
		FeedsPath:               feedsPath,
		KeywordsPath:            filepath.Join(dir, "search_keywords.json"),
	}
}

func newTestScanner(t *testing.T, cfg *config.Config, chat *fakeChat) *Scanner {
	t.Helper()
	s := NewScanner(cfg, chat, newTestManager(t), nil)
	s.analyzer.sleep = func(time.Duration) {}
	return s
}

func TestScanner_RSSScan(t *testing.T) {
	recent := time.Now().Add(-1 * time.Hour).Format(time.RFC1123Z)
	srv := rssServer(t, rssItem("Fresh story", "https://example.com/fresh", "d", recent))
	defer srv.Close()

	chat := &fakeChat{responses: []string{analysisJSON("high")}}
	s := newTestScanner(t, newTestConfig(t, srv.URL), chat)

	report, err := s.Scan(context.Background(), "rss")

	assert.Equal(t, nil, err)
	assert.Equal(t, "rss", report.SearchSource)
	assert.Equal(t, 1, report.TotalItems)
	assert.Equal(t, 1, report.HighImportanceCount)
	assert.Equal(t, []string{"Example Blog"}, report.RSSFeedsUsed)
	assert.Equal(t, "Fresh story", report.Items[0].Title)
}

func TestScanner_EmptyCollectionYieldsEmptyReport(t *testing.T) {
	srv := rssServer(t, "")
	defer srv.Close()

	chat := &fakeChat{}
	s := newTestScanner(t, newTestConfig(t, srv.URL), chat)

	report, err := s.Scan(context.Background(), "rss")

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, report.TotalItems)
	assert.Equal(t, 0, len(report.Items))
	assert.Equal(t, 0, chat.calls)
	assert.NotEqual(t, "", report.ScanTimestamp)
}

func TestScanner_UnknownSourceDefaultsToRSS(t *testing.T) {
	srv := rssServer(t, "")
	defer srv.Close()

	s := newTestScanner(t, newTestConfig(t, srv.URL), &fakeChat{})

	report, err := s.Scan(context.Background(), "carrier-pigeon")

	assert.Equal(t, nil, err)
	assert.Equal(t, "rss", report.SearchSource)
}

func TestScanner_WebScan(t *testing.T) {
	chat := &fakeChat{responses: []string{
		`{"keywords": ["kw one"]}`,
		analysisJSON("medium"),
	}}
	s := newTestScanner(t, newTestConfig(t, "https://unused.example.com"), chat)
	s.searchFn = func() (search.Client, error) {
		return &fakeSearch{results: map[string][]search.Result{
			"kw one": {{Title: "Found", URL: "https://example.com/found", Description: "d", Source: "example.com"}},
		}}, nil
	}

	report, err := s.Scan(context.Background(), "web")

	assert.Equal(t, nil, err)
	assert.Equal(t, "web", report.SearchSource)
	assert.Equal(t, 1, report.TotalItems)
	assert.Equal(t, 1, report.MediumImportance)
	assert.Equal(t, []string{"kw one"}, report.SearchKeywordsUsed)
}

func TestScanner_WebScanWithoutSearchClient(t *testing.T) {
	s := newTestScanner(t, newTestConfig(t, "https://unused.example.com"), &fakeChat{})
	s.searchFn = func() (search.Client, error) {
		return nil, fmt.Errorf("search API key not configured")
	}

	_, err := s.Scan(context.Background(), "web")

	assert.NotEqual(t, nil, err)
}

func TestScanner_MissingBackgroundFatal(t *testing.T) {
	cfg := newTestConfig(t, "https://unused.example.com")
	cfg.BackgroundPath = filepath.Join(t.TempDir(), "missing.md")

	s := newTestScanner(t, cfg, &fakeChat{})

	_, err := s.Scan(context.Background(), "rss")

	assert.NotEqual(t, nil, err)
}

func TestNewChatClient_ProviderSelection(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"openai", "openai"},
		{"anthropic", "anthropic"},
		{"custom", "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			client, err := NewChatClient(&config.Config{
				AIProvider: tt.provider,
				AIAPIKey:   "key",
				AIModel:    "model",
				AIAPIURL:   "https://example.com/v1/chat/completions",
			})
			assert.Equal(t, nil, err)
			assert.Equal(t, tt.want, client.Name())
		})
	}
}

func TestNewChatClient_Rejections(t *testing.T) {
	_, err := NewChatClient(&config.Config{AIProvider: "openai"})
	assert.NotEqual(t, nil, err)

	_, err = NewChatClient(&config.Config{AIProvider: "smoke-signals", AIAPIKey: "key"})
	assert.NotEqual(t, nil, err)
}
