package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_GenerateCodeParsesRemoteResponse(t *testing.T) {
	remote := &stubProvider{
		name: "remote",
		text: "```python\nprint('hi')\n```\nEXPLANATION:\nPrints a greeting.",
	}
	svc := NewService(NewChain(remote))

	result := svc.GenerateCode(context.Background(), "say hi", "python", "auto")
	assert.True(t, result.Success)
	assert.Equal(t, "print('hi')", result.Code)
	assert.Equal(t, "Prints a greeting.", result.Explanation)
	assert.Equal(t, "python", result.Language)
	assert.Equal(t, "remote", result.ModelUsed)
	assert.False(t, result.Timestamp.IsZero())
}

func TestService_GenerateCodeDegradesToFallback(t *testing.T) {
	remote := &stubProvider{name: "remote", err: errors.New("boom")}
	svc := NewService(NewChain(remote))

	result := svc.GenerateCode(context.Background(), "say hi", "python", "auto")
	assert.True(t, result.Success)
	assert.Equal(t, "Fallback Code Generator", result.ModelUsed)
	assert.NotEmpty(t, result.Code)
	assert.Contains(t, result.Explanation, "fallback")
}

func TestService_AnalyzeCodeWithoutProviders(t *testing.T) {
	svc := NewService(NewChain())

	result := svc.AnalyzeCode(context.Background(), "print(1)", "python")
	assert.True(t, result.Success)
	assert.Equal(t, analysisUnavailable, result.Analysis)
}

func TestService_AnalyzeCodeUsesRemoteText(t *testing.T) {
	remote := &stubProvider{name: "remote", text: "Looks fine. Consider adding tests."}
	svc := NewService(NewChain(remote))

	result := svc.AnalyzeCode(context.Background(), "print(1)", "python")
	assert.True(t, result.Success)
	assert.Equal(t, "Looks fine. Consider adding tests.", result.Analysis)
}

func TestService_AnalyzeCodeRemoteFailureFallsBackToUnavailable(t *testing.T) {
	remote := &stubProvider{name: "remote", err: errors.New("boom")}
	svc := NewService(NewChain(remote))

	result := svc.AnalyzeCode(context.Background(), "print(1)", "python")
	assert.True(t, result.Success)
	assert.Equal(t, analysisUnavailable, result.Analysis)
}

func TestService_GenerateProjectWithoutProviders(t *testing.T) {
	svc := NewService(NewChain())

	result := svc.GenerateProject(context.Background(), "a todo app", "Python")
	require.True(t, result.Success)
	assert.Equal(t, "sample-project", result.Project.Name)
	assert.Contains(t, result.Project.Files, "README.md")
	assert.Contains(t, result.Project.Files, "main.py")
	assert.Contains(t, result.Project.Files["README.md"], "a todo app")
}

func TestService_GenerateProjectDecodesPlan(t *testing.T) {
	remote := &stubProvider{
		name: "remote",
		text: "```json\n{\"project_name\":\"todo-api\",\"files\":{\"main.py\":\"print(1)\"},\"setup_instructions\":\"run it\"}\n```",
	}
	svc := NewService(NewChain(remote))

	result := svc.GenerateProject(context.Background(), "a todo app", "Python")
	require.True(t, result.Success)
	assert.Equal(t, "todo-api", result.Project.Name)
	assert.Equal(t, "print(1)", result.Project.Files["main.py"])
	assert.Equal(t, "run it", result.Project.SetupInstructions)
}

func TestService_GenerateProjectInvalidPlanDegrades(t *testing.T) {
	remote := &stubProvider{name: "remote", text: "I cannot produce JSON today."}
	svc := NewService(NewChain(remote))

	result := svc.GenerateProject(context.Background(), "a todo app", "Python")
	require.True(t, result.Success)
	assert.Equal(t, "ai-generated-project", result.Project.Name)
	assert.Contains(t, result.Project.Files["README.md"], "I cannot produce JSON today.")
}

func TestService_GenerateProjectPlanWithoutFilesDegrades(t *testing.T) {
	remote := &stubProvider{name: "remote", text: `{"project_name":"empty","files":{}}`}
	svc := NewService(NewChain(remote))

	result := svc.GenerateProject(context.Background(), "a todo app", "Python")
	require.True(t, result.Success)
	assert.Equal(t, "ai-generated-project", result.Project.Name)
}
