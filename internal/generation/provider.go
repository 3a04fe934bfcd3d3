package generation

import "context"

// Request carries one completion call through the provider chain. Remote
// providers send System and User as chat messages; the local template
// provider synthesizes its answer from the raw Prompt and Language instead.
type Request struct {
	System   string
	User     string
	Prompt   string
	Language string
	// MaxTokens overrides the default completion cap when positive.
	MaxTokens int
}

func (r Request) maxTokens() int {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return MaxCompletionTokens
}

// Provider is a single code-generation backend. Remote providers wrap one
// LLM vendor's completion API; the chain's last provider is a local template
// generator that never fails.
type Provider interface {
	// Name identifies the provider in results and logs, e.g. "OpenAI GPT-4".
	Name() string
	// Matches reports whether the provider should be tried for the given
	// model selector ("auto", "openai", "claude", ...).
	Matches(selector string) bool
	// Complete returns the raw response text for the request.
	Complete(ctx context.Context, req Request) (string, error)
}

func matchesAny(selector string, aliases ...string) bool {
	if selector == "" || selector == "auto" {
		return true
	}
	for _, a := range aliases {
		if selector == a {
			return true
		}
	}
	return false
}
