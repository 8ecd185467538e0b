package llm

import (
	"context"
	"fmt"
	"time"
)

const analysisSystemPrompt = "You are an expert strategic analyst. Analyze news items based on strategic context and return ONLY valid JSON."

const keywordsSystemPrompt = "You are an expert strategic analyst. Generate search keywords based on strategic context and return ONLY valid JSON."

// AnalysisInput is the subset of a news item embedded into the analysis prompt.
type AnalysisInput struct {
	Title       string
	URL         string
	Source      string
	Description string
}

// AnalyzeNewsItem asks the provider to judge one news item against the
// strategic background and returns the raw parsed JSON object. Field
// validation belongs to the caller.
func AnalyzeNewsItem(ctx context.Context, client ChatClient, item AnalysisInput, backgroundContext string) (map[string]any, error) {
	messages := []Message{
		{Role: RoleSystem, Content: analysisSystemPrompt},
		{Role: RoleUser, Content: buildAnalysisPrompt(item, backgroundContext)},
	}

	text, err := client.Chat(ctx, messages, 0.7)
	if err != nil {
		return nil, err
	}

	result, err := ParseModelJSON(text)
	if err != nil {
		return nil, err
	}

	// The model occasionally rewrites these; pin them to the collected item.
	result["title"] = item.Title
	result["source"] = item.Source
	result["url"] = item.URL

	return result, nil
}

func buildAnalysisPrompt(item AnalysisInput, backgroundContext string) string {
	description := item.Description
	if len(description) > 1000 {
		description = description[:1000]
	}
	if description == "" {
		description = "No description available"
	}

	return fmt.Sprintf(`Analyze this news item against the strategic background below.

STRATEGIC CONTEXT (from background.md):
%s

NEWS ITEM TO ANALYZE:
Title: %s
Source: %s
URL: %s
Description: %s

Based on the strategic context, analyze this news item and respond with a structured JSON object with the following fields:

{
  "importance": "high" | "medium" | "low",
  "confidence": 0.0-1.0,
  "why_it_matters": ["reason 1", "reason 2", ...],
  "evidence": "key facts and source information",
  "second_order_impacts": "possible second-order impacts, if any",
  "recommended_actions": ["action 1", "action 2", ...],
  "dedupe_note": "whether this duplicates a recent event, or what is new",
  "category": "platform-rules" | "seller-tactics" | "creator-ecosystem" | "compliance" | "tooling" | null
}

Constraints:
- why_it_matters: 2-5 reasons, each tied to Goal 1 (industry insight), Goal 2 (product and competition) or Goal 3 (key risks)
- recommended_actions: 1-3 concrete actions

Importance criteria (from the background, section 3):
- HIGH: any of: strategy impact within 7-30 days, marketplace/platform rule changes, creator-ecosystem rule changes, major competitor or key-tool moves, major compliance/legal changes, a new model or channel being adopted quickly
- MEDIUM: relevant but uncertain or not urgent
- LOW: generic industry content, no clear connection, no impact path

Return ONLY the JSON object, without any other text or explanation.`,
		backgroundContext, item.Title, item.Source, item.URL, description)
}

// GenerateSearchKeywords asks the provider for search keywords aligned with
// the strategic background. The prompt embeds the current date so generated
// keywords carry correct temporal qualifiers; stale-year keywords degrade
// search recall.
func GenerateSearchKeywords(ctx context.Context, client ChatClient, backgroundContext string) ([]string, error) {
	messages := []Message{
		{Role: RoleSystem, Content: keywordsSystemPrompt},
		{Role: RoleUser, Content: buildKeywordsPrompt(backgroundContext)},
	}

	text, err := client.Chat(ctx, messages, 0.7)
	if err != nil {
		return nil, err
	}

	result, err := ParseModelJSON(text)
	if err != nil {
		return nil, err
	}

	raw, ok := result["keywords"].([]any)
	if !ok || len(raw) == 0 {
		return nil, fmt.Errorf("no keywords in response")
	}

	keywords := make([]string, 0, len(raw))
	for _, k := range raw {
		if s, ok := k.(string); ok && s != "" {
			keywords = append(keywords, s)
		}
		if len(keywords) == 10 {
			break
		}
	}

	if len(keywords) == 0 {
		return nil, fmt.Errorf("no usable keywords in response")
	}
	return keywords, nil
}

func buildKeywordsPrompt(backgroundContext string) string {
	now := time.Now()
	year := now.Year()
	date := now.Format("2006-01-02")

	return fmt.Sprintf(`Generate 5-8 search keywords from the strategic background below.

Important: today is %s. The current year is %d. Include temporal qualifiers in the keywords so only news from the last 30 days is found. Use %d, not past years.

STRATEGIC CONTEXT (from background.md):
%s

Generate search keywords aligned with:
1. The strategic goals (Priority 1-3)
2. The monitoring scope (platforms, policy, competitor tracking)
3. The importance criteria (what makes news high-importance)

Each keyword should:
- Carry a time qualifier, e.g. "last 30 days" or "January %d"
- Be specific enough to find relevant news
- Be broad enough to catch important developments
- Focus on recent developments (last 7-30 days)
- Use %d when mentioning a year

Example keyword formats:
- "Amazon seller policy changes %d"
- "influencer marketing news January %d"
- "creator economy funding last 30 days"

Return ONLY a JSON object with this structure:
{
  "keywords": ["keyword 1", "keyword 2", "keyword 3", "keyword 4", "keyword 5"],
  "reasoning": "a short note on why these keywords were chosen"
}`,
		date, year, year, backgroundContext, year, year, year, year)
}
