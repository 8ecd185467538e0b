package keywords

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/luciechendesign/industry-news-scanner/pkg/llm"
)

const (
	maxKeywords         = 10
	topKeywordCount     = 5
	minTopEffectiveness = 0.3
)

// FallbackKeywords is the fixed list used when AI generation yields nothing.
// The year qualifier is filled in at call time; stale years degrade recall.
func FallbackKeywords() []string {
	year := time.Now().Year()
	return []string{
		fmt.Sprintf("Amazon seller policy changes %d", year),
		"Amazon influencer program updates",
		fmt.Sprintf("influencer marketing trends %d", year),
		fmt.Sprintf("e-commerce platform rules %d", year),
		"FTC influencer disclosure rules",
		"creator economy funding news",
		"influencer marketing tool updates",
		fmt.Sprintf("Amazon seller compliance %d", year),
	}
}

// Generate produces the keyword list driving a web-search collection run.
// Previously-effective keywords come first, topped up by AI-generated ones;
// every failure path lands on the fixed fallback list.
func Generate(ctx context.Context, manager *Manager, client llm.ChatClient, backgroundContext string) []string {
	top := manager.TopKeywords(topKeywordCount, minTopEffectiveness)

	if len(top) > 0 {
		slog.Info("using top effective keywords", "count", len(top), "keywords", top)

		generated, err := llm.GenerateSearchKeywords(ctx, client, backgroundContext)
		if err != nil {
			slog.Error("error generating new keywords, merging fallback", "error", err)
			return mergeKeywords(top, FallbackKeywords())
		}
		return mergeKeywords(top, generated)
	}

	generated, err := llm.GenerateSearchKeywords(ctx, client, backgroundContext)
	if err != nil {
		slog.Error("error generating search keywords, using fallback", "error", err)
		return FallbackKeywords()
	}
	return generated
}

// mergeKeywords concatenates the lists preserving order, dropping duplicates
// and capping the result.
func mergeKeywords(first, second []string) []string {
	seen := make(map[string]bool)
	var out []string

	for _, kw := range append(append([]string{}, first...), second...) {
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
		if len(out) == maxKeywords {
			break
		}
	}

	return out
}
