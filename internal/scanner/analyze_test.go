package scanner

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/luciechendesign/industry-news-scanner/internal/model"
)

func analysisJSON(importance string) string {
	return fmt.Sprintf(`{"importance": %q, "confidence": 0.8, "why_it_matters": ["r1", "r2"], "evidence": "facts", "recommended_actions": ["a1"], "category": "platform-rules"}`, importance)
}

func newTestAnalyzer(chat *fakeChat, t *testing.T) (*Analyzer, *[]time.Duration) {
	t.Helper()
	analyzer := NewAnalyzer(chat, newTestManager(t))
	var slept []time.Duration
	analyzer.sleep = func(d time.Duration) { slept = append(slept, d) }
	return analyzer, &slept
}

func TestAnalyzer_SortsByImportance(t *testing.T) {
	chat := &fakeChat{responses: []string{
		analysisJSON("low"),
		analysisJSON("high"),
		analysisJSON("medium"),
		analysisJSON("high"),
	}}
	analyzer, _ := newTestAnalyzer(chat, t)

	items := []model.NewsItem{
		{Title: "first low", URL: "https://e.com/1", Source: "s"},
		{Title: "first high", URL: "https://e.com/2", Source: "s"},
		{Title: "only medium", URL: "https://e.com/3", Source: "s"},
		{Title: "second high", URL: "https://e.com/4", Source: "s"},
	}

	analyzed := analyzer.Analyze(context.Background(), items, "bg")

	assert.Equal(t, 4, len(analyzed))
	assert.Equal(t, "first high", analyzed[0].Title)
	assert.Equal(t, "second high", analyzed[1].Title)
	assert.Equal(t, "only medium", analyzed[2].Title)
	assert.Equal(t, "first low", analyzed[3].Title)
}

func TestAnalyzer_InvalidResultDropped(t *testing.T) {
	chat := &fakeChat{responses: []string{
		`{"importance": "high", "confidence": 0.8, "why_it_matters": ["only one"], "evidence": "facts", "recommended_actions": ["a1"]}`,
		analysisJSON("medium"),
	}}
	analyzer, _ := newTestAnalyzer(chat, t)

	items := []model.NewsItem{
		{Title: "bad", URL: "https://e.com/1", Source: "s"},
		{Title: "good", URL: "https://e.com/2", Source: "s"},
	}

	analyzed := analyzer.Analyze(context.Background(), items, "bg")

	assert.Equal(t, 1, len(analyzed))
	assert.Equal(t, "good", analyzed[0].Title)
}

func TestAnalyzer_RetriesTransientError(t *testing.T) {
	chat := &fakeChat{
		errs:      []error{fmt.Errorf("unexpected EOF")},
		responses: []string{"", analysisJSON("high")},
	}
	analyzer, slept := newTestAnalyzer(chat, t)

	items := []model.NewsItem{{Title: "flaky", URL: "https://e.com/1", Source: "s"}}
	analyzed := analyzer.Analyze(context.Background(), items, "bg")

	assert.Equal(t, 1, len(analyzed))
	assert.Equal(t, 2, chat.calls)
	assert.Equal(t, []time.Duration{3 * time.Second, 2 * time.Second}, *slept)
}

func TestAnalyzer_NonTransientErrorNotRetried(t *testing.T) {
	chat := &fakeChat{errs: []error{fmt.Errorf("status 400: bad request")}}
	analyzer, _ := newTestAnalyzer(chat, t)

	items := []model.NewsItem{{Title: "rejected", URL: "https://e.com/1", Source: "s"}}
	analyzed := analyzer.Analyze(context.Background(), items, "bg")

	assert.Equal(t, 0, len(analyzed))
	assert.Equal(t, 1, chat.calls)
}

func TestAnalyzer_PacesBetweenItems(t *testing.T) {
	chat := &fakeChat{responses: []string{analysisJSON("low")}}
	analyzer, slept := newTestAnalyzer(chat, t)

	items := []model.NewsItem{
		{Title: "a", URL: "https://e.com/1", Source: "s"},
		{Title: "b", URL: "https://e.com/2", Source: "s"},
		{Title: "c", URL: "https://e.com/3", Source: "s"},
	}
	analyzer.Analyze(context.Background(), items, "bg")

	assert.Equal(t, []time.Duration{time.Second, time.Second}, *slept)
}

func TestAnalyzer_UpdatesKeywordStats(t *testing.T) {
	chat := &fakeChat{responses: []string{
		analysisJSON("high"),
		analysisJSON("low"),
		analysisJSON("medium"),
	}}
	manager := newTestManager(t)
	analyzer := NewAnalyzer(chat, manager)
	analyzer.sleep = func(time.Duration) {}

	items := []model.NewsItem{
		{Title: "a", URL: "https://e.com/1", Source: "s", SearchKeyword: "kw one"},
		{Title: "b", URL: "https://e.com/2", Source: "s", SearchKeyword: "kw one"},
		{Title: "c", URL: "https://e.com/3", Source: "s"},
	}
	analyzer.Analyze(context.Background(), items, "bg")

	top := manager.TopKeywords(5, 0.0)
	assert.Equal(t, []string{"kw one"}, top)
}

func TestAnalyzer_EmptyInput(t *testing.T) {
	analyzer, slept := newTestAnalyzer(&fakeChat{}, t)

	analyzed := analyzer.Analyze(context.Background(), nil, "bg")

	assert.Equal(t, 0, len(analyzed))
	assert.Equal(t, 0, len(*slept))
}

func TestBuildReportItem_Defaults(t *testing.T) {
	item := model.NewsItem{Title: "t", URL: "https://e.com/1", Source: "s"}
	result := map[string]any{
		"why_it_matters":      []any{"r1", "r2"},
		"evidence":            "facts",
		"recommended_actions": []any{"a1"},
	}

	got := buildReportItem(item, result)

	assert.Equal(t, model.ImportanceLow, got.Importance)
	assert.Equal(t, 0.5, got.Confidence)
	assert.Equal(t, "t", got.Title)
}

func TestBuildReportItem_StringConfidence(t *testing.T) {
	item := model.NewsItem{Title: "t", URL: "https://e.com/1", Source: "s"}
	result := map[string]any{"confidence": "0.9"}

	got := buildReportItem(item, result)

	assert.Equal(t, 0.9, got.Confidence)
}
