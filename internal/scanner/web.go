package scanner

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/luciechendesign/industry-news-scanner/internal/keywords"
	"github.com/luciechendesign/industry-news-scanner/internal/model"
	"github.com/luciechendesign/industry-news-scanner/pkg/llm"
	"github.com/luciechendesign/industry-news-scanner/pkg/search"
)

// WebCollector gathers candidate items from a web search provider, driven by
// AI-generated keywords. Video results are searched for explicitly and
// ordered ahead of articles.
type WebCollector struct {
	search  search.Client
	chat    llm.ChatClient
	manager *keywords.Manager
	window  time.Duration
}

func NewWebCollector(searchClient search.Client, chat llm.ChatClient, manager *keywords.Manager, window time.Duration) *WebCollector {
	return &WebCollector{
		search:  searchClient,
		chat:    chat,
		manager: manager,
		window:  window,
	}
}

// Collect runs the keyword searches and returns deduplicated, date-filtered
// items plus the keywords used, so the report can record them without a
// second generation call. Provider errors are logged per keyword, not fatal.
func (c *WebCollector) Collect(ctx context.Context, backgroundContext string) ([]model.NewsItem, []string) {
	kws := keywords.Generate(ctx, c.manager, c.chat, backgroundContext)
	if len(kws) == 0 {
		kws = keywords.FallbackKeywords()
	}

	threshold := time.Now().Add(-c.window)
	seen := make(map[string]bool)
	var items []model.NewsItem

	for _, keyword := range kws {
		slog.Info("searching web", "keyword", keyword)

		// Video pass first; only video-platform URLs are accepted from it.
		results, err := c.search.Search(keyword + " video")
		if err != nil {
			slog.Warn("video search failed", "keyword", keyword, "error", err)
		} else {
			items = append(items, c.collectResults(results, keyword, threshold, seen, true)...)
		}

		results, err = c.search.Search(keyword)
		if err != nil {
			slog.Warn("search failed", "keyword", keyword, "error", err)
			continue
		}
		items = append(items, c.collectResults(results, keyword, threshold, seen, false)...)
	}

	sort.SliceStable(items, func(i, j int) bool {
		vi, vj := isVideoSource(items[i].URL), isVideoSource(items[j].URL)
		if vi != vj {
			return vi
		}
		return items[i].Title < items[j].Title
	})

	slog.Info("web collection completed", "items", len(items), "keywords", len(kws))
	return items, kws
}

func (c *WebCollector) collectResults(results []search.Result, keyword string, threshold time.Time, seen map[string]bool, videosOnly bool) []model.NewsItem {
	var items []model.NewsItem

	for _, r := range results {
		title := strings.TrimSpace(r.Title)
		url := strings.TrimSpace(r.URL)
		description := strings.TrimSpace(r.Description)
		if title == "" || url == "" {
			continue
		}

		if videosOnly && !isVideoSource(url) {
			continue
		}

		key := dedupeKey(title, url)
		if seen[key] {
			continue
		}
		seen[key] = true

		publishedDate, skip := extractAndValidateDate(title, url, description, threshold)
		if skip {
			continue
		}

		source := r.Source
		if source == "" {
			source = "Web Search"
		}

		items = append(items, model.NewsItem{
			Title:         title,
			URL:           url,
			Source:        source,
			PublishedDate: publishedDate,
			Description:   description,
			Content:       description,
			SearchKeyword: keyword,
		})
	}

	return items
}
