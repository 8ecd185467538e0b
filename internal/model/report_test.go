package model

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func validItem() AnalyzedReportItem {
	return AnalyzedReportItem{
		Title:              "Marketplace policy update",
		Source:             "Feed",
		URL:                "https://example.com/a",
		Importance:         ImportanceHigh,
		Confidence:         0.8,
		WhyItMatters:       []string{"affects listing rules", "changes fee structure"},
		Evidence:           "Official announcement on the seller blog.",
		RecommendedActions: []string{"review listings"},
	}
}

func TestValidate_ValidItem(t *testing.T) {
	item := validItem()
	assert.Equal(t, nil, item.Validate())
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AnalyzedReportItem)
	}{
		{"unknown importance", func(a *AnalyzedReportItem) { a.Importance = "critical" }},
		{"confidence above one", func(a *AnalyzedReportItem) { a.Confidence = 1.2 }},
		{"confidence negative", func(a *AnalyzedReportItem) { a.Confidence = -0.1 }},
		{"too few reasons", func(a *AnalyzedReportItem) { a.WhyItMatters = []string{"only one"} }},
		{"too many reasons", func(a *AnalyzedReportItem) {
			a.WhyItMatters = []string{"1", "2", "3", "4", "5", "6"}
		}},
		{"empty evidence", func(a *AnalyzedReportItem) { a.Evidence = "  " }},
		{"no actions", func(a *AnalyzedReportItem) { a.RecommendedActions = nil }},
		{"too many actions", func(a *AnalyzedReportItem) {
			a.RecommendedActions = []string{"1", "2", "3", "4"}
		}},
		{"unknown category", func(a *AnalyzedReportItem) { a.Category = "sports" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := validItem()
			tt.mutate(&item)
			assert.NotEqual(t, nil, item.Validate())
		})
	}
}

func TestValidate_KnownCategoryAccepted(t *testing.T) {
	item := validItem()
	item.Category = "compliance"
	assert.Equal(t, nil, item.Validate())
}

func TestNewScanReport_Counts(t *testing.T) {
	items := []AnalyzedReportItem{
		{Importance: ImportanceHigh},
		{Importance: ImportanceHigh},
		{Importance: ImportanceMedium},
		{Importance: ImportanceLow},
	}

	report := NewScanReport(items, "rss", []string{"Feed A"}, nil)

	assert.Equal(t, 4, report.TotalItems)
	assert.Equal(t, 2, report.HighImportanceCount)
	assert.Equal(t, 1, report.MediumImportance)
	assert.Equal(t, 1, report.LowImportanceCount)
	assert.Equal(t, report.TotalItems, len(report.Items))
	assert.Equal(t, "rss", report.SearchSource)
}

func TestNewScanReport_Empty(t *testing.T) {
	report := NewScanReport(nil, "web", nil, []string{"kw"})

	assert.Equal(t, 0, report.TotalItems)
	assert.Equal(t, 0, len(report.Items))
	assert.Equal(t, []string{"kw"}, report.SearchKeywordsUsed)
}

func TestCalculateEffectiveness(t *testing.T) {
	tests := []struct {
		name  string
		stats KeywordStats
		want  float64
	}{
		{"zero searches", KeywordStats{}, 0.0},
		{"saturates at one", KeywordStats{TotalSearches: 3, HighImportanceCount: 3}, 1.0},
		{"all medium", KeywordStats{TotalSearches: 2, MediumImportance: 2}, 1.0 / 3.0},
		{"low ignored", KeywordStats{TotalSearches: 4, LowImportanceCount: 10}, 0.0},
		{"mixed", KeywordStats{TotalSearches: 2, HighImportanceCount: 1, MediumImportance: 1}, 4.0 / 6.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.stats.CalculateEffectiveness()
			assert.Equal(t, tt.want, tt.stats.EffectivenessScore)
		})
	}
}
