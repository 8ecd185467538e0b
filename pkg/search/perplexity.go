package search

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const perplexityURL = "https://api.perplexity.ai/chat/completions"

// PerplexityClient searches via the Perplexity chat-completions API and
// extracts the returned citations as results.
type PerplexityClient struct {
	apiKey     string
	maxResults int
	httpClient *http.Client
}

func NewPerplexityClient(apiKey string, maxResults int) *PerplexityClient {
	return &PerplexityClient{
		apiKey:     apiKey,
		maxResults: maxResults,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *PerplexityClient) Name() string {
	return "perplexity"
}

func (c *PerplexityClient) Search(query string) ([]Result, error) {
	payload := map[string]any{
		"model": "llama-3.1-sonar-large-128k-online",
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": "You are a helpful assistant that searches the web and returns structured results.",
			},
			{
				"role":    "user",
				"content": fmt.Sprintf("Search for recent news about: %s. Return a list of relevant articles with titles, URLs, and summaries.", query),
			},
		},
		"return_citations": true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("perplexity search: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, perplexityURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("perplexity search: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perplexity search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("perplexity search: status %d", resp.StatusCode)
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Citations []struct {
			Title   string `json:"title"`
			URL     string `json:"url"`
			Snippet string `json:"snippet"`
		} `json:"citations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("perplexity decode: %w", err)
	}

	content := ""
	if len(raw.Choices) > 0 {
		content = raw.Choices[0].Message.Content
	}
	if len(content) > 200 {
		content = content[:200]
	}

	citations := raw.Citations
	if len(citations) > c.maxResults {
		citations = citations[:c.maxResults]
	}

	results := make([]Result, 0, len(citations))
	for _, citation := range citations {
		description := citation.Snippet
		if description == "" {
			description = content
		}
		results = append(results, Result{
			Title:       citation.Title,
			URL:         citation.URL,
			Description: description,
			Source:      extractDomain(citation.URL),
		})
	}

	return results, nil
}
