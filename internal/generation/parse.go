package generation

import "strings"

const defaultExplanation = "AI-generated code based on your request."

// parseResponse splits a provider response into the fenced code block and
// the EXPLANATION section. When no fenced block is found, the whole response
// is treated as code, matching the degraded behavior callers rely on.
func parseResponse(text, language string) (code, explanation string) {
	var codeLines, explanationLines []string
	inCode := false
	inExplanation := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "```"+language) ||
			strings.HasPrefix(trimmed, "```python") ||
			strings.HasPrefix(trimmed, "```javascript"):
			inCode = true
			continue
		case trimmed == "```" && inCode:
			inCode = false
			continue
		case strings.HasPrefix(strings.ToUpper(trimmed), "EXPLANATION") ||
			strings.HasPrefix(trimmed, "**Explanation"):
			inExplanation = true
			continue
		}

		if inCode {
			codeLines = append(codeLines, line)
		} else if inExplanation || len(codeLines) == 0 {
			explanationLines = append(explanationLines, line)
		}
	}

	code = strings.TrimSpace(strings.Join(codeLines, "\n"))
	if code == "" {
		code = text
	}
	explanation = strings.TrimSpace(strings.Join(explanationLines, "\n"))
	if explanation == "" {
		explanation = defaultExplanation
	}
	return code, explanation
}

// stripCodeFence removes a surrounding markdown fence, if any, so JSON
// project plans wrapped in ```json blocks still decode.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return trimmed
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
