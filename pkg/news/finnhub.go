package news

import (
	"context"
	"fmt"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

// FinnHubClient pulls general market news from the Finnhub API. Wired in when
// FINNHUB_API_KEY is set; commerce platform moves often surface here first.
type FinnHubClient struct {
	api *finnhub.DefaultApiService
}

func NewFinnHubClient(apiKey string) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	return &FinnHubClient{api: finnhub.NewAPIClient(cfg).DefaultApi}
}

func (c *FinnHubClient) Fetch(ctx context.Context, limit int) ([]Article, error) {
	res, _, err := c.api.MarketNews(ctx).Category("general").Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub market news: %w", err)
	}

	var articles []Article
	for _, item := range res {
		if item.Headline == nil || item.Url == nil {
			continue
		}

		a := Article{
			Headline: *item.Headline,
			URL:      *item.Url,
		}
		if item.Summary != nil {
			a.Summary = *item.Summary
		}
		if item.Source != nil {
			a.Publisher = *item.Source
		}
		if item.Datetime != nil {
			a.PublishedAt = time.Unix(*item.Datetime, 0)
		}

		articles = append(articles, a)
		if limit > 0 && len(articles) == limit {
			break
		}
	}

	return articles, nil
}

func (c *FinnHubClient) Name() string {
	return "FinnHub"
}
