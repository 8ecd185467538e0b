package scanner

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/luciechendesign/industry-news-scanner/internal/keywords"
	"github.com/luciechendesign/industry-news-scanner/internal/model"
	"github.com/luciechendesign/industry-news-scanner/pkg/llm"
)

// Analyzer runs the judgment stage: one chat call per collected item, with a
// single retry on transient connection failures. Items that fail analysis or
// validation are dropped; the batch never aborts.
type Analyzer struct {
	chat    llm.ChatClient
	manager *keywords.Manager
	sleep   func(time.Duration)
}

func NewAnalyzer(chat llm.ChatClient, manager *keywords.Manager) *Analyzer {
	return &Analyzer{
		chat:    chat,
		manager: manager,
		sleep:   time.Sleep,
	}
}

type tierCounts struct {
	high, medium, low int
}

// Analyze judges every item against the background and returns the surviving
// results sorted high to medium to low, collection order preserved within a
// tier. Keyword effectiveness statistics are updated as a side effect.
func (a *Analyzer) Analyze(ctx context.Context, items []model.NewsItem, backgroundContext string) []model.AnalyzedReportItem {
	if len(items) == 0 {
		slog.Info("no news items to analyze")
		return nil
	}

	var analyzed []model.AnalyzedReportItem
	keywordResults := make(map[string]*tierCounts)

	slog.Info("analyzing news items", "total", len(items))

	for idx, item := range items {
		// Pacing between provider calls avoids rate limits and flaky
		// connection resets on long batches.
		if idx > 0 {
			a.sleep(1 * time.Second)
		}

		slog.Info("analyzing item", "index", idx+1, "total", len(items), "title", truncate(item.Title, 60))

		result, err := a.analyzeWithRetry(ctx, item, backgroundContext)
		if err != nil {
			slog.Error("error analyzing item, skipping", "title", item.Title, "error", err)
			continue
		}

		reportItem := buildReportItem(item, result)
		if err := reportItem.Validate(); err != nil {
			slog.Error("analysis result failed validation, skipping", "title", item.Title, "error", err)
			continue
		}

		analyzed = append(analyzed, reportItem)

		if item.SearchKeyword != "" {
			counts, ok := keywordResults[item.SearchKeyword]
			if !ok {
				counts = &tierCounts{}
				keywordResults[item.SearchKeyword] = counts
			}
			switch reportItem.Importance {
			case model.ImportanceHigh:
				counts.high++
			case model.ImportanceMedium:
				counts.medium++
			case model.ImportanceLow:
				counts.low++
			}
		}
	}

	for keyword, counts := range keywordResults {
		if err := a.manager.Update(keyword, counts.high, counts.medium, counts.low); err != nil {
			slog.Error("error updating keyword stats", "keyword", keyword, "error", err)
		}
	}

	sort.SliceStable(analyzed, func(i, j int) bool {
		return tierRank(analyzed[i].Importance) < tierRank(analyzed[j].Importance)
	})

	slog.Info("analysis completed", "analyzed", len(analyzed), "dropped", len(items)-len(analyzed))
	return analyzed
}

func (a *Analyzer) analyzeWithRetry(ctx context.Context, item model.NewsItem, backgroundContext string) (map[string]any, error) {
	input := llm.AnalysisInput{
		Title:       item.Title,
		URL:         item.URL,
		Source:      item.Source,
		Description: firstNonEmpty(item.Description, item.Content),
	}

	result, err := llm.AnalyzeNewsItem(ctx, a.chat, input, backgroundContext)
	if err == nil {
		return result, nil
	}
	if !isTransient(err) {
		return nil, err
	}

	slog.Warn("connection error, retrying once", "title", item.Title, "error", err)
	a.sleep(3 * time.Second)
	a.sleep(2 * time.Second)

	return llm.AnalyzeNewsItem(ctx, a.chat, input, backgroundContext)
}

// isTransient matches the connection-level failures worth one retry. Matching
// on error text is crude but covers TLS resets, unexpected EOFs and refused
// connections across providers.
func isTransient(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SSL") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(strings.ToLower(msg), "connection")
}

// buildReportItem maps the parsed model output onto a report item, applying
// the lenient defaults: missing importance reads low, missing confidence 0.5.
func buildReportItem(item model.NewsItem, result map[string]any) model.AnalyzedReportItem {
	return model.AnalyzedReportItem{
		Title:              item.Title,
		Source:             item.Source,
		URL:                item.URL,
		Importance:         strings.ToLower(stringField(result, "importance", "low")),
		Confidence:         floatField(result, "confidence", 0.5),
		WhyItMatters:       stringListField(result, "why_it_matters"),
		Evidence:           stringField(result, "evidence", ""),
		SecondOrderImpacts: stringField(result, "second_order_impacts", ""),
		RecommendedActions: stringListField(result, "recommended_actions"),
		DedupeNote:         stringField(result, "dedupe_note", ""),
		Category:           stringField(result, "category", ""),
	}
}

func stringField(m map[string]any, key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func floatField(m map[string]any, key string, fallback float64) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func stringListField(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func tierRank(importance string) int {
	switch importance {
	case model.ImportanceHigh:
		return 0
	case model.ImportanceMedium:
		return 1
	case model.ImportanceLow:
		return 2
	default:
		return 3
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
