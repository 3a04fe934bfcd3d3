package generation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/time/rate"
)

func newTestChatClient(baseURL string) *chatClient {
	return &chatClient{
		name:    "OpenAI GPT-4",
		aliases: []string{"openai", "gpt-4"},
		baseURL: baseURL,
		apiKey:  "test-key",
		model:   "gpt-4",
		http:    &http.Client{Timeout: 5 * time.Second},
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
}

func TestChatClient_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, MaxCompletionTokens, req.MaxTokens)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "hello"}},
			},
		})
	}))
	defer srv.Close()

	c := newTestChatClient(srv.URL)
	text, err := c.Complete(context.Background(), Request{System: "sys", User: "usr"})
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestChatClient_MaxTokensOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, MaxAnalysisTokens, req.MaxTokens)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "ok"}},
			},
		})
	}))
	defer srv.Close()

	c := newTestChatClient(srv.URL)
	_, err := c.Complete(context.Background(), Request{User: "usr", MaxTokens: MaxAnalysisTokens})
	require.NoError(t, err)
}

func TestChatClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "rate limited"},
		})
	}))
	defer srv.Close()

	c := newTestChatClient(srv.URL)
	_, err := c.Complete(context.Background(), Request{User: "usr"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestChatClient_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c := newTestChatClient(srv.URL)
	_, err := c.Complete(context.Background(), Request{User: "usr"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty completion")
}

func TestAnthropicClient_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicAPIVersion, r.Header.Get("anthropic-version"))

		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, anthropicModel, req.Model)
		assert.Equal(t, "sys", req.System)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "claude says hi"}},
		})
	}))
	defer srv.Close()

	c := &anthropicClient{
		baseURL: srv.URL,
		apiKey:  "test-key",
		http:    &http.Client{Timeout: 5 * time.Second},
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
	text, err := c.Complete(context.Background(), Request{System: "sys", User: "usr"})
	require.NoError(t, err)
	assert.Equal(t, "claude says hi", text)
}

func TestAnthropicClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "invalid request"},
		})
	}))
	defer srv.Close()

	c := &anthropicClient{
		baseURL: srv.URL,
		apiKey:  "test-key",
		http:    &http.Client{Timeout: 5 * time.Second},
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
	_, err := c.Complete(context.Background(), Request{User: "usr"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request")
}

func TestProviderSelectors(t *testing.T) {
	openai := NewOpenAI("k")
	claude := NewAnthropic("k")
	groq := NewGroq("k")

	assert.True(t, openai.Matches("auto"))
	assert.True(t, openai.Matches("gpt-4"))
	assert.False(t, openai.Matches("claude"))

	assert.True(t, claude.Matches("claude"))
	assert.True(t, claude.Matches("anthropic"))
	assert.False(t, claude.Matches("groq"))

	assert.True(t, groq.Matches("groq"))
	assert.False(t, groq.Matches("openai"))
}
