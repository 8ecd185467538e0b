package llm

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one turn of a chat conversation.
type Message struct {
	Role    string
	Content string
}

// ChatClient is the provider-agnostic interface for AI chat backends.
// Implementations do not retry; retry policy lives in the analyzer.
type ChatClient interface {
	Chat(ctx context.Context, messages []Message, temperature float64) (string, error)
	Name() string
}

// ProviderError carries the provider name together with the underlying cause
// of a failed outbound call.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// newHTTPClient returns the shared transport settings for provider calls:
// bounded connect and total timeouts with a capped connection pool.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 10 * time.Second,
			}).DialContext,
			MaxConnsPerHost:     10,
			MaxIdleConnsPerHost: 5,
		},
	}
}
