package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	anthropicBaseURL    = "https://api.anthropic.com"
	anthropicAPIVersion = "2023-06-01"
	anthropicModel      = "claude-3-sonnet-20240229"
)

// anthropicClient speaks the Anthropic messages API.
type anthropicClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

// NewAnthropic returns the Claude provider.
func NewAnthropic(apiKey string) Provider {
	return &anthropicClient{
		baseURL: anthropicBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: ProviderTimeout},
		limiter: rate.NewLimiter(rate.Limit(2), 4),
	}
}

func (c *anthropicClient) Name() string { return "Anthropic Claude-3" }

func (c *anthropicClient) Matches(selector string) bool {
	return matchesAny(selector, "anthropic", "claude")
}

type anthropicRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	System      string        `json:"system,omitempty"`
	Messages    []chatMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *anthropicClient) Complete(ctx context.Context, req Request) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	start := time.Now()
	body, err := json.Marshal(anthropicRequest{
		Model:       anthropicModel,
		MaxTokens:   req.maxTokens(),
		Temperature: CodeTemperature,
		System:      req.System,
		Messages: []chatMessage{
			{Role: "user", Content: req.User},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicAPIVersion)

	resp, err := c.http.Do(httpReq)
	duration := time.Since(start)
	if err != nil {
		recordProviderCall(duration, err)
		return "", fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	var out anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		recordProviderCall(duration, err)
		return "", fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("status %d", resp.StatusCode)
		if out.Error != nil && out.Error.Message != "" {
			err = fmt.Errorf("status %d: %s", resp.StatusCode, out.Error.Message)
		}
		recordProviderCall(duration, err)
		return "", err
	}
	if len(out.Content) == 0 {
		err := fmt.Errorf("empty completion")
		recordProviderCall(duration, err)
		return "", err
	}

	recordProviderCall(duration, nil)
	return out.Content[0].Text, nil
}
