package generation

import (
	"context"
	"fmt"
	"strings"
)

// fallbackProvider produces a runnable starter template locally. It is the
// guaranteed last resort of the chain: it matches every selector and never
// returns an error.
type fallbackProvider struct{}

func NewFallback() Provider {
	return fallbackProvider{}
}

func (fallbackProvider) Name() string { return "Fallback Code Generator" }

func (fallbackProvider) Matches(string) bool { return true }

func (fallbackProvider) Complete(_ context.Context, req Request) (string, error) {
	return fallbackCode(req.Prompt, req.Language), nil
}

func fallbackCode(prompt, language string) string {
	switch strings.ToLower(language) {
	case "python":
		return fmt.Sprintf(`# %s
def main():
    """
    Generated code based on: %s
    This is a fallback implementation.
    """
    print("Hello from AI-generated code!")

if __name__ == "__main__":
    main()

EXPLANATION:
This is a basic Python template generated as a fallback. To get fully functional AI-generated code, please configure your AI API keys.
`, prompt, prompt)
	case "javascript", "js":
		return fmt.Sprintf(`// %s
function main() {
    /*
     * Generated code based on: %s
     * This is a fallback implementation.
     */
    console.log("Hello from AI-generated code!");
}

main();

EXPLANATION:
This is a basic JavaScript template generated as a fallback. To get fully functional AI-generated code, please configure your AI API keys.
`, prompt, prompt)
	default:
		return fmt.Sprintf(`// %s
// This is a fallback template for %s

EXPLANATION:
This is a basic template generated as a fallback. To get fully functional AI-generated code, please configure your AI API keys.
`, prompt, language)
	}
}
