package search

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBingURL = "https://api.bing.microsoft.com/v7.0/search"

// BingClient searches via the Bing web search API.
type BingClient struct {
	apiKey     string
	apiURL     string
	maxResults int
	httpClient *http.Client
}

func NewBingClient(apiKey, apiURL string, maxResults int) *BingClient {
	if apiURL == "" {
		apiURL = defaultBingURL
	}
	return &BingClient{
		apiKey:     apiKey,
		apiURL:     apiURL,
		maxResults: maxResults,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *BingClient) Name() string {
	return "bing"
}

func (c *BingClient) Search(query string) ([]Result, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(c.maxResults))
	params.Set("textDecorations", "false")
	params.Set("textFormat", "Raw")

	req, err := http.NewRequest(http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("bing search: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bing search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bing search: status %d", resp.StatusCode)
	}

	var raw struct {
		WebPages struct {
			Value []struct {
				Name    string `json:"name"`
				URL     string `json:"url"`
				Snippet string `json:"snippet"`
			} `json:"value"`
		} `json:"webPages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("bing decode: %w", err)
	}

	results := make([]Result, 0, len(raw.WebPages.Value))
	for _, item := range raw.WebPages.Value {
		results = append(results, Result{
			Title:       item.Name,
			URL:         item.URL,
			Description: item.Snippet,
			Source:      extractDomain(item.URL),
		})
	}

	return results, nil
}
