package search

import (
	"fmt"
	"net/url"
	"strings"
)

// Result is the normalized record every provider maps its response into.
type Result struct {
	Title       string
	URL         string
	Description string
	Source      string
}

// Client is the provider-agnostic interface for web search backends.
type Client interface {
	Search(query string) ([]Result, error)
	Name() string
}

// New selects a search provider once from configuration.
func New(provider, apiKey, apiURL string, maxResults int) (Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("search API key not configured")
	}

	switch provider {
	case "tavily":
		return NewTavilyClient(apiKey, maxResults), nil
	case "perplexity":
		return NewPerplexityClient(apiKey, maxResults), nil
	case "ai-builders":
		return NewAIBuildersClient(apiKey, maxResults), nil
	case "bing":
		return NewBingClient(apiKey, apiURL, maxResults), nil
	case "custom":
		return NewCustomClient(apiKey, apiURL, maxResults), nil
	default:
		return nil, fmt.Errorf("unsupported search provider: %s", provider)
	}
}

// extractDomain returns the display domain for a result URL: the host with a
// leading www. stripped, or "Unknown" when absent or unparsable.
func extractDomain(rawURL string) string {
	if rawURL == "" {
		return "Unknown"
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "Unknown"
	}

	return strings.TrimPrefix(parsed.Host, "www.")
}
