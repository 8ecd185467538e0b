package search

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const tavilyURL = "https://api.tavily.com/search"

// TavilyClient searches via the Tavily content-search API.
type TavilyClient struct {
	apiKey     string
	maxResults int
	httpClient *http.Client
}

func NewTavilyClient(apiKey string, maxResults int) *TavilyClient {
	return &TavilyClient{
		apiKey:     apiKey,
		maxResults: maxResults,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *TavilyClient) Name() string {
	return "tavily"
}

func (c *TavilyClient) Search(query string) ([]Result, error) {
	payload := map[string]any{
		"api_key":             c.apiKey,
		"query":               query,
		"search_depth":        "basic",
		"include_answer":      false,
		"include_raw_content": false,
		"max_results":         c.maxResults,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("tavily search: %w", err)
	}

	resp, err := c.httpClient.Post(tavilyURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("tavily search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily search: status %d", resp.StatusCode)
	}

	var raw struct {
		Results []struct {
			Title   string `json:"title"`
			URL     string `json:"url"`
			Content string `json:"content"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("tavily decode: %w", err)
	}

	results := make([]Result, 0, len(raw.Results))
	for _, item := range raw.Results {
		results = append(results, Result{
			Title:       item.Title,
			URL:         item.URL,
			Description: item.Content,
			Source:      extractDomain(item.URL),
		})
	}

	return results, nil
}
