package keywords

import (
	"log/slog"
	"sort"
	"time"

	"github.com/luciechendesign/industry-news-scanner/internal/model"
)

// Manager tracks per-keyword search effectiveness across scan runs.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Update records the outcome counts of one analysis batch for a keyword and
// recomputes its effectiveness score.
func (m *Manager) Update(keyword string, highCount, mediumCount, lowCount int) error {
	stats, err := m.store.Load()
	if err != nil {
		return err
	}

	entry, ok := stats[keyword]
	if !ok {
		entry = model.KeywordStats{Keyword: keyword}
	}

	entry.TotalSearches++
	entry.HighImportanceCount += highCount
	entry.MediumImportance += mediumCount
	entry.LowImportanceCount += lowCount
	entry.LastUsed = time.Now().Format(time.RFC3339)
	entry.CalculateEffectiveness()

	stats[keyword] = entry
	return m.store.Save(stats)
}

// TopKeywords returns up to n keywords with effectiveness >= minEffectiveness,
// ordered descending by score.
func (m *Manager) TopKeywords(n int, minEffectiveness float64) []string {
	stats, err := m.store.Load()
	if err != nil {
		slog.Error("error loading keyword stats", "error", err)
		return nil
	}

	var filtered []model.KeywordStats
	for _, s := range stats {
		if s.EffectivenessScore >= minEffectiveness {
			filtered = append(filtered, s)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].EffectivenessScore > filtered[j].EffectivenessScore
	})

	if len(filtered) > n {
		filtered = filtered[:n]
	}

	out := make([]string, 0, len(filtered))
	for _, s := range filtered {
		out = append(out, s.Keyword)
	}
	return out
}
