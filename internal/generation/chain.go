package generation

import "context"

// Chain is a priority-ordered list of providers tried in sequence, first
// success wins. This is a fallback chain, not a retry policy: each provider
// gets exactly one attempt per call. The local template provider is always
// appended last so Complete cannot fail outright.
type Chain struct {
	providers []Provider
	fallback  Provider
}

func NewChain(providers ...Provider) *Chain {
	return &Chain{
		providers: providers,
		fallback:  NewFallback(),
	}
}

// HasRemote reports whether at least one remote provider is configured.
func (c *Chain) HasRemote() bool {
	return len(c.providers) > 0
}

// Complete runs the chain for the given model selector. It returns the
// response text, the name of the provider that produced it, and whether a
// remote provider succeeded (false means the template fallback answered).
func (c *Chain) Complete(ctx context.Context, selector string, req Request) (string, string, bool) {
	logger := NewLogger(ctx)

	for _, p := range c.providers {
		if !p.Matches(selector) {
			continue
		}
		text, err := p.Complete(ctx, req)
		if err != nil {
			logger.LogErrorf("complete", "provider %s failed: %v", p.Name(), err)
			continue
		}
		return text, p.Name(), true
	}

	text, _ := c.fallback.Complete(ctx, req)
	return text, c.fallback.Name(), false
}
