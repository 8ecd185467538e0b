package search

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const aiBuildersURL = "https://space.ai-builders.com/backend/v1/search/"

// AIBuildersClient searches via the AI Builders gateway, which wraps the
// Tavily response shape inside a queries[].response.results[] envelope.
type AIBuildersClient struct {
	apiKey     string
	maxResults int
	httpClient *http.Client
}

func NewAIBuildersClient(apiKey string, maxResults int) *AIBuildersClient {
	return &AIBuildersClient{
		apiKey:     apiKey,
		maxResults: maxResults,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *AIBuildersClient) Name() string {
	return "ai-builders"
}

func (c *AIBuildersClient) Search(query string) ([]Result, error) {
	payload := map[string]any{
		"keywords":    []string{query},
		"max_results": c.maxResults,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ai-builders search: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, aiBuildersURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ai-builders search: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai-builders search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ai-builders search: status %d", resp.StatusCode)
	}

	var raw struct {
		Queries []struct {
			Response struct {
				Results []struct {
					Title   string `json:"title"`
					URL     string `json:"url"`
					Content string `json:"content"`
				} `json:"results"`
			} `json:"response"`
		} `json:"queries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("ai-builders decode: %w", err)
	}

	var results []Result
	for _, q := range raw.Queries {
		for _, item := range q.Response.Results {
			results = append(results, Result{
				Title:       item.Title,
				URL:         item.URL,
				Description: item.Content,
				Source:      extractDomain(item.URL),
			})
		}
	}

	return results, nil
}
