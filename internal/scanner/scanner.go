package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/luciechendesign/industry-news-scanner/internal/config"
	"github.com/luciechendesign/industry-news-scanner/internal/keywords"
	"github.com/luciechendesign/industry-news-scanner/internal/model"
	"github.com/luciechendesign/industry-news-scanner/pkg/llm"
	"github.com/luciechendesign/industry-news-scanner/pkg/news"
	"github.com/luciechendesign/industry-news-scanner/pkg/search"
)

// Scanner runs the two-stage workflow: collect candidates from RSS or web
// search, then analyze them against the strategic background.
type Scanner struct {
	cfg      *config.Config
	chat     llm.ChatClient
	searchFn func() (search.Client, error)
	manager  *keywords.Manager
	market   news.Client
	analyzer *Analyzer
}

// NewScanner wires the workflow from configuration. The search client is
// constructed lazily so RSS-only deployments need no search credentials.
func NewScanner(cfg *config.Config, chat llm.ChatClient, manager *keywords.Manager, market news.Client) *Scanner {
	return &Scanner{
		cfg:  cfg,
		chat: chat,
		searchFn: func() (search.Client, error) {
			return NewSearchClient(cfg)
		},
		manager:  manager,
		market:   market,
		analyzer: NewAnalyzer(chat, manager),
	}
}

// Scan runs both stages for the given source ("rss" or "web", anything else
// reads rss) and returns the final report. An empty collection yields an
// empty report, not an error.
func (s *Scanner) Scan(ctx context.Context, searchSource string) (model.ScanReport, error) {
	searchSource = strings.ToLower(searchSource)
	if searchSource != "web" {
		searchSource = "rss"
	}

	background, err := s.cfg.LoadBackground()
	if err != nil {
		return model.ScanReport{}, err
	}

	var (
		items     []model.NewsItem
		feedNames []string
		usedKws   []string
	)

	if searchSource == "web" {
		slog.Info("starting stage 1: web search collection")
		searchClient, err := s.searchFn()
		if err != nil {
			return model.ScanReport{}, fmt.Errorf("web search unavailable: %w", err)
		}
		collector := NewWebCollector(searchClient, s.chat, s.manager, time.Duration(s.cfg.WebSearchTimeWindowDays)*24*time.Hour)
		items, usedKws = collector.Collect(ctx, background)
	} else {
		slog.Info("starting stage 1: rss collection")
		feeds, err := s.cfg.LoadFeeds()
		if err != nil {
			return model.ScanReport{}, err
		}
		collector := NewRSSCollector(feeds, time.Duration(s.cfg.RSSTimeWindowHours)*time.Hour, s.market)
		feedNames = collector.FeedNames()
		items = collector.Collect(ctx)
	}

	if len(items) == 0 {
		slog.Info("no news items collected, returning empty report")
		return model.NewScanReport(nil, searchSource, feedNames, usedKws), nil
	}

	slog.Info("starting stage 2: ai analysis")
	analyzed := s.analyzer.Analyze(ctx, items, background)

	return model.NewScanReport(analyzed, searchSource, feedNames, usedKws), nil
}

// NewChatClient builds the AI provider selected by the configuration.
func NewChatClient(cfg *config.Config) (llm.ChatClient, error) {
	if cfg.AIAPIKey == "" {
		return nil, fmt.Errorf("AI API key not configured")
	}

	switch cfg.AIProvider {
	case "openai":
		return llm.NewOpenAIClient(cfg.AIAPIKey, cfg.AIModel, cfg.AIAPIURL), nil
	case "anthropic":
		return llm.NewAnthropicClient(cfg.AIAPIKey, cfg.AIModel), nil
	case "custom":
		return llm.NewCustomClient(cfg.AIAPIKey, cfg.AIModel, cfg.AIAPIURL), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.AIProvider)
	}
}

// NewSearchClient builds the web search provider selected by the configuration.
func NewSearchClient(cfg *config.Config) (search.Client, error) {
	return search.New(cfg.WebSearchProvider, cfg.WebSearchAPIKey, cfg.WebSearchAPIURL, cfg.WebSearchMaxResults)
}
