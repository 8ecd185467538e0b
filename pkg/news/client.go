package news

import (
	"context"
	"time"
)

// Article is one headline from a market news provider, before it is merged
// into a scan alongside RSS items.
type Article struct {
	Headline    string
	Summary     string
	URL         string
	Publisher   string
	PublishedAt time.Time
}

// Client fetches recent market headlines. Implementations are optional
// supplements to the RSS stage; a scan works without one.
type Client interface {
	Fetch(ctx context.Context, limit int) ([]Article, error)
	Name() string
}
