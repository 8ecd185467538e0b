package search

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// CustomClient searches via a user-configured endpoint, tolerating list,
// dict and nested response shapes.
type CustomClient struct {
	apiKey     string
	apiURL     string
	maxResults int
	httpClient *http.Client
}

func NewCustomClient(apiKey, apiURL string, maxResults int) *CustomClient {
	return &CustomClient{
		apiKey:     apiKey,
		apiURL:     apiURL,
		maxResults: maxResults,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *CustomClient) Name() string {
	return "custom"
}

func (c *CustomClient) Search(query string) ([]Result, error) {
	if c.apiURL == "" {
		return nil, fmt.Errorf("custom search: API URL not configured")
	}

	payload := map[string]any{
		"query":       query,
		"max_results": c.maxResults,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("custom search: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("custom search: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("custom search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("custom search: status %d", resp.StatusCode)
	}

	var data any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("custom decode: %w", err)
	}

	return c.normalize(data), nil
}

// normalize maps the common shapes (top-level list, or an object with a
// results/items/data list) into Result records.
func (c *CustomClient) normalize(data any) []Result {
	var items []any

	switch v := data.(type) {
	case []any:
		items = v
	case map[string]any:
		for _, key := range []string{"results", "items", "data"} {
			if list, ok := v[key].([]any); ok {
				items = list
				break
			}
		}
	}

	if len(items) > c.maxResults {
		items = items[:c.maxResults]
	}

	var results []Result
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		title := stringField(entry, "title", "name")
		resultURL := stringField(entry, "url", "link")
		results = append(results, Result{
			Title:       title,
			URL:         resultURL,
			Description: stringField(entry, "description", "snippet", "content"),
			Source:      extractDomain(resultURL),
		})
	}

	return results
}

func stringField(entry map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := entry[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
