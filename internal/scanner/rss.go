package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/luciechendesign/industry-news-scanner/internal/config"
	"github.com/luciechendesign/industry-news-scanner/internal/model"
	"github.com/luciechendesign/industry-news-scanner/pkg/news"
)

const marketNewsLimit = 20

// RSSCollector gathers candidate items from configured feeds, optionally
// topped up with market headlines when a market client is configured.
type RSSCollector struct {
	feeds  []config.Feed
	window time.Duration
	parser *gofeed.Parser
	market news.Client
}

func NewRSSCollector(feeds []config.Feed, window time.Duration, market news.Client) *RSSCollector {
	return &RSSCollector{
		feeds:  feeds,
		window: window,
		parser: gofeed.NewParser(),
		market: market,
	}
}

// FeedNames returns the configured feed names for report metadata.
func (c *RSSCollector) FeedNames() []string {
	names := make([]string, 0, len(c.feeds))
	for _, f := range c.feeds {
		names = append(names, f.Name)
	}
	return names
}

// Collect fetches every feed and returns deduplicated items published within
// the time window. A broken feed is logged and skipped, never fatal.
func (c *RSSCollector) Collect(ctx context.Context) []model.NewsItem {
	threshold := time.Now().Add(-c.window)
	seen := make(map[string]bool)
	var items []model.NewsItem

	for _, feed := range c.feeds {
		if feed.URL == "" {
			slog.Warn("feed has no URL, skipping", "feed", feed.Name)
			continue
		}

		parsed, err := c.parser.ParseURLWithContext(feed.URL, ctx)
		if err != nil {
			slog.Warn("error parsing feed, skipping", "feed", feed.Name, "error", err)
			continue
		}

		for _, entry := range parsed.Items {
			title := strings.TrimSpace(entry.Title)
			link := strings.TrimSpace(entry.Link)
			if title == "" || link == "" {
				continue
			}

			key := dedupeKey(title, link)
			if seen[key] {
				continue
			}
			seen[key] = true

			var publishedDate string
			if entry.PublishedParsed != nil {
				if entry.PublishedParsed.Before(threshold) {
					continue
				}
				publishedDate = entry.PublishedParsed.Format(time.RFC3339)
			}

			content := entry.Content
			if content == "" {
				content = entry.Description
			}

			items = append(items, model.NewsItem{
				Title:         title,
				URL:           link,
				Source:        feed.Name,
				PublishedDate: publishedDate,
				Description:   entry.Description,
				Content:       content,
			})
		}
	}

	items = append(items, c.collectMarket(ctx, threshold, seen)...)

	slog.Info("rss collection completed", "items", len(items), "feeds", len(c.feeds))
	return items
}

func (c *RSSCollector) collectMarket(ctx context.Context, threshold time.Time, seen map[string]bool) []model.NewsItem {
	if c.market == nil {
		return nil
	}

	articles, err := c.market.Fetch(ctx, marketNewsLimit)
	if err != nil {
		slog.Warn("error fetching market news, skipping", "provider", c.market.Name(), "error", err)
		return nil
	}

	var items []model.NewsItem
	for _, a := range articles {
		if !a.PublishedAt.IsZero() && a.PublishedAt.Before(threshold) {
			continue
		}

		key := dedupeKey(a.Headline, a.URL)
		if seen[key] {
			continue
		}
		seen[key] = true

		source := a.Publisher
		if source == "" {
			source = c.market.Name()
		}

		var publishedDate string
		if !a.PublishedAt.IsZero() {
			publishedDate = a.PublishedAt.Format(time.RFC3339)
		}

		items = append(items, model.NewsItem{
			Title:         a.Headline,
			URL:           a.URL,
			Source:        source,
			PublishedDate: publishedDate,
			Description:   a.Summary,
			Content:       a.Summary,
		})
	}
	return items
}

func dedupeKey(title, url string) string {
	return fmt.Sprintf("%s|%s", strings.ToLower(title), url)
}
