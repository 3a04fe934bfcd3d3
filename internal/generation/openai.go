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
	openAIBaseURL = "https://api.openai.com/v1"
	groqBaseURL   = "https://api.groq.com/openai/v1"
)

// chatClient speaks the OpenAI chat-completions wire format, which Groq
// also implements.
type chatClient struct {
	name    string
	aliases []string
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
	limiter *rate.Limiter
}

// NewOpenAI returns the GPT-4 provider.
func NewOpenAI(apiKey string) Provider {
	return &chatClient{
		name:    "OpenAI GPT-4",
		aliases: []string{"openai", "gpt-4"},
		baseURL: openAIBaseURL,
		apiKey:  apiKey,
		model:   "gpt-4",
		http:    &http.Client{Timeout: ProviderTimeout},
		limiter: rate.NewLimiter(rate.Limit(2), 4),
	}
}

// NewGroq returns the Groq Mixtral provider.
func NewGroq(apiKey string) Provider {
	return &chatClient{
		name:    "Groq Mixtral",
		aliases: []string{"groq"},
		baseURL: groqBaseURL,
		apiKey:  apiKey,
		model:   "mixtral-8x7b-32768",
		http:    &http.Client{Timeout: ProviderTimeout},
		limiter: rate.NewLimiter(rate.Limit(4), 8),
	}
}

func (c *chatClient) Name() string { return c.name }

func (c *chatClient) Matches(selector string) bool {
	return matchesAny(selector, c.aliases...)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *chatClient) Complete(ctx context.Context, req Request) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	start := time.Now()
	body, err := json.Marshal(chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		MaxTokens:   req.maxTokens(),
		Temperature: CodeTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	duration := time.Since(start)
	if err != nil {
		recordProviderCall(duration, err)
		return "", fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	var out chatCompletionResponse
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
	if len(out.Choices) == 0 {
		err := fmt.Errorf("empty completion")
		recordProviderCall(duration, err)
		return "", err
	}

	recordProviderCall(duration, nil)
	return out.Choices[0].Message.Content, nil
}
