package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	ImportanceHigh   = "high"
	ImportanceMedium = "medium"
	ImportanceLow    = "low"
)

// Categories is the closed set of domain tags the analyzer may assign.
var Categories = []string{
	"platform-rules",
	"seller-tactics",
	"creator-ecosystem",
	"compliance",
	"tooling",
}

// NewsItem is a collected, unanalyzed candidate from RSS or web search.
type NewsItem struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Source        string `json:"source"`
	PublishedDate string `json:"published_date,omitempty"`
	Description   string `json:"description,omitempty"`
	Content       string `json:"content,omitempty"`
	SearchKeyword string `json:"search_keyword,omitempty"`
}

// AnalyzedReportItem is a scored, explained judgment about one NewsItem.
type AnalyzedReportItem struct {
	Title              string   `json:"title"`
	Source             string   `json:"source"`
	URL                string   `json:"url"`
	Importance         string   `json:"importance"`
	Confidence         float64  `json:"confidence"`
	WhyItMatters       []string `json:"why_it_matters"`
	Evidence           string   `json:"evidence"`
	SecondOrderImpacts string   `json:"second_order_impacts,omitempty"`
	RecommendedActions []string `json:"recommended_actions"`
	DedupeNote         string   `json:"dedupe_note,omitempty"`
	Category           string   `json:"category,omitempty"`
}

// Validate checks the field constraints. Items that fail validation are
// dropped from the report, never surfaced as malformed entries.
func (a *AnalyzedReportItem) Validate() error {
	switch a.Importance {
	case ImportanceHigh, ImportanceMedium, ImportanceLow:
	default:
		return fmt.Errorf("invalid importance %q", a.Importance)
	}

	if a.Confidence < 0.0 || a.Confidence > 1.0 {
		return fmt.Errorf("confidence %v out of range [0,1]", a.Confidence)
	}

	if len(a.WhyItMatters) < 2 || len(a.WhyItMatters) > 5 {
		return fmt.Errorf("why_it_matters must have 2-5 entries, got %d", len(a.WhyItMatters))
	}

	if strings.TrimSpace(a.Evidence) == "" {
		return fmt.Errorf("evidence is empty")
	}

	if len(a.RecommendedActions) < 1 || len(a.RecommendedActions) > 3 {
		return fmt.Errorf("recommended_actions must have 1-3 entries, got %d", len(a.RecommendedActions))
	}

	if a.Category != "" {
		valid := false
		for _, c := range Categories {
			if a.Category == c {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown category %q", a.Category)
		}
	}

	return nil
}

// ScanReport is the final output of a two-stage scan.
type ScanReport struct {
	TotalItems          int                  `json:"total_items"`
	HighImportanceCount int                  `json:"high_importance_count"`
	MediumImportance    int                  `json:"medium_importance_count"`
	LowImportanceCount  int                  `json:"low_importance_count"`
	Items               []AnalyzedReportItem `json:"items"`
	ScanTimestamp       string               `json:"scan_timestamp"`
	RSSFeedsUsed        []string             `json:"rss_feeds_used"`
	SearchSource        string               `json:"search_source"`
	SearchKeywordsUsed  []string             `json:"search_keywords_used,omitempty"`
}

// NewScanReport builds a report from already-sorted analyzed items.
func NewScanReport(items []AnalyzedReportItem, searchSource string, feedNames, keywords []string) ScanReport {
	var high, medium, low int
	for _, item := range items {
		switch item.Importance {
		case ImportanceHigh:
			high++
		case ImportanceMedium:
			medium++
		case ImportanceLow:
			low++
		}
	}

	if items == nil {
		items = []AnalyzedReportItem{}
	}
	if feedNames == nil {
		feedNames = []string{}
	}

	return ScanReport{
		TotalItems:          len(items),
		HighImportanceCount: high,
		MediumImportance:    medium,
		LowImportanceCount:  low,
		Items:               items,
		ScanTimestamp:       time.Now().Format(time.RFC3339),
		RSSFeedsUsed:        feedNames,
		SearchSource:        searchSource,
		SearchKeywordsUsed:  keywords,
	}
}
