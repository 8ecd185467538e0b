package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// CustomClient talks to a self-hosted or gateway endpoint. It self-detects
// the request shape from the URL: chat-completions style endpoints get an
// OpenAI-compatible payload, anything else gets a legacy single-prompt
// payload. Responses are tolerated in several envelope shapes.
type CustomClient struct {
	apiKey     string
	model      string
	apiURL     string
	httpClient *http.Client
}

func NewCustomClient(apiKey, model, apiURL string) *CustomClient {
	return &CustomClient{
		apiKey:     apiKey,
		model:      model,
		apiURL:     apiURL,
		httpClient: newHTTPClient(),
	}
}

func (c *CustomClient) Name() string {
	return "custom"
}

func (c *CustomClient) isChatCompletions() bool {
	return strings.Contains(c.apiURL, "/chat/completions") || strings.Contains(c.apiURL, "/v1/chat")
}

func (c *CustomClient) Chat(ctx context.Context, messages []Message, temperature float64) (string, error) {
	if c.apiURL == "" {
		return "", &ProviderError{Provider: c.Name(), Err: fmt.Errorf("API URL not configured")}
	}

	var payload map[string]any
	if c.isChatCompletions() {
		msgs := make([]map[string]string, 0, len(messages))
		for _, m := range messages {
			msgs = append(msgs, map[string]string{"role": m.Role, "content": m.Content})
		}
		payload = map[string]any{
			"model":           c.model,
			"messages":        msgs,
			"temperature":     temperature,
			"max_tokens":      4096,
			"response_format": map[string]string{"type": "json_object"},
		}
	} else {
		var prompt strings.Builder
		for _, m := range messages {
			switch m.Role {
			case RoleSystem:
				prompt.WriteString("System: " + m.Content + "\n\n")
			case RoleUser:
				prompt.WriteString("User: " + m.Content + "\n\n")
			}
		}
		payload = map[string]any{
			"model":       c.model,
			"prompt":      prompt.String(),
			"temperature": temperature,
			"max_tokens":  4096,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &ProviderError{Provider: c.Name(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", &ProviderError{Provider: c.Name(), Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ProviderError{Provider: c.Name(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Provider: c.Name(), Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{
			Provider: c.Name(),
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, respBody),
		}
	}

	content, err := extractCustomContent(respBody)
	if err != nil {
		return "", &ProviderError{Provider: c.Name(), Err: err}
	}
	return content, nil
}

// extractCustomContent handles the envelope shapes custom endpoints return:
// an OpenAI-style choices array, a bare JSON string, or an object with a
// text/content/response field.
func extractCustomContent(body []byte) (string, error) {
	var envelope struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Choices) > 0 {
		return envelope.Choices[0].Message.Content, nil
	}

	var bare string
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err == nil {
		for _, key := range []string{"text", "content", "response"} {
			if v, ok := fields[key].(string); ok && v != "" {
				return v, nil
			}
		}
		return string(body), nil
	}

	return "", fmt.Errorf("unrecognized response shape: %s", excerpt(string(body), 200))
}
