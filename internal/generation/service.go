package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const analysisUnavailable = "Code analysis requires AI API keys. Please configure your API keys for detailed analysis."

// Service orchestrates the provider chain into the three generation
// operations the API exposes. Every operation returns a tagged result; none
// of them surfaces a provider error to the caller.
type Service struct {
	chain *Chain
}

func NewService(chain *Chain) *Service {
	return &Service{chain: chain}
}

// GenerateResult is the outcome of a code generation call.
type GenerateResult struct {
	Success     bool      `json:"success"`
	Code        string    `json:"code"`
	Explanation string    `json:"explanation"`
	Language    string    `json:"language"`
	ModelUsed   string    `json:"model_used"`
	Timestamp   time.Time `json:"timestamp"`
}

// GenerateCode runs the fallback chain for the prompt and parses the
// response into code and explanation. Total provider failure degrades to the
// local template rather than an error.
func (s *Service) GenerateCode(ctx context.Context, prompt, language, model string) GenerateResult {
	recordGenerateCall()

	req := Request{
		System:   codeSystemPrompt,
		User:     enhancedPrompt(prompt, language),
		Prompt:   prompt,
		Language: language,
	}
	text, modelUsed, _ := s.chain.Complete(ctx, model, req)
	code, explanation := parseResponse(text, language)

	return GenerateResult{
		Success:     true,
		Code:        code,
		Explanation: explanation,
		Language:    language,
		ModelUsed:   modelUsed,
		Timestamp:   time.Now().UTC(),
	}
}

// AnalyzeResult is the outcome of a code analysis call.
type AnalyzeResult struct {
	Success   bool      `json:"success"`
	Analysis  string    `json:"analysis"`
	Timestamp time.Time `json:"timestamp"`
}

// AnalyzeCode reviews the code through the chain. Without any remote
// provider configured it reports that analysis is unavailable.
func (s *Service) AnalyzeCode(ctx context.Context, code, language string) AnalyzeResult {
	recordAnalyzeCall()

	analysis := analysisUnavailable
	if s.chain.HasRemote() {
		req := Request{
			System:    reviewSystemPrompt,
			User:      analysisPrompt(code, language),
			Prompt:    code,
			Language:  language,
			MaxTokens: MaxAnalysisTokens,
		}
		if text, _, remote := s.chain.Complete(ctx, "auto", req); remote {
			analysis = text
		}
	}

	return AnalyzeResult{
		Success:   true,
		Analysis:  analysis,
		Timestamp: time.Now().UTC(),
	}
}

// ProjectPlan is an AI-proposed project: a name, a relative-path → contents
// file mapping and setup instructions.
type ProjectPlan struct {
	Name              string            `json:"project_name"`
	Files             map[string]string `json:"files"`
	SetupInstructions string            `json:"setup_instructions"`
}

// ProjectResult is the outcome of a project generation call.
type ProjectResult struct {
	Success   bool        `json:"success"`
	Project   ProjectPlan `json:"project"`
	Timestamp time.Time   `json:"timestamp"`
}

// GenerateProject asks the chain for a complete project as JSON. Responses
// that do not decode, and the no-provider case, degrade to a deterministic
// starter project.
func (s *Service) GenerateProject(ctx context.Context, description, techStack string) ProjectResult {
	recordProjectCall()
	logger := NewLogger(ctx)

	if !s.chain.HasRemote() {
		return ProjectResult{
			Success: true,
			Project: ProjectPlan{
				Name: "sample-project",
				Files: map[string]string{
					"README.md": fmt.Sprintf("# %s\n\nThis is a sample project. Add AI API keys for full functionality.", description),
					"main.py":   "print('Hello from AI-generated project!')",
				},
				SetupInstructions: "1. Configure AI API keys\n2. Run the main file",
			},
			Timestamp: time.Now().UTC(),
		}
	}

	req := Request{
		System:    projectSystemPrompt,
		User:      projectPrompt(description, techStack),
		Prompt:    description,
		MaxTokens: MaxProjectTokens,
	}
	text, _, remote := s.chain.Complete(ctx, "auto", req)

	var plan ProjectPlan
	if remote {
		if err := json.Unmarshal([]byte(stripCodeFence(text)), &plan); err == nil && len(plan.Files) > 0 {
			return ProjectResult{Success: true, Project: plan, Timestamp: time.Now().UTC()}
		}
		logger.LogWarnf("generate_project", "provider response was not a valid project plan")
	}

	return ProjectResult{
		Success: true,
		Project: ProjectPlan{
			Name: "ai-generated-project",
			Files: map[string]string{
				"README.md": fmt.Sprintf("# %s\n\n%s", description, text),
				"main.py":   "# Generated project\nprint('Hello, World!')",
			},
			SetupInstructions: "Basic project generated. See README.md for details.",
		},
		Timestamp: time.Now().UTC(),
	}
}
