package deployment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

type vercelBuild struct {
	Src string `json:"src"`
	Use string `json:"use"`
}

type vercelConfig struct {
	Name    string        `json:"name"`
	Version int           `json:"version"`
	Builds  []vercelBuild `json:"builds"`
}

// DeployVercel writes a vercel.json into the project directory and runs the
// Vercel CLI. Missing token or CLI are reported as setup errors, not
// attempted deploys.
func (s *Service) DeployVercel(ctx context.Context, projectPath, projectName string) Result {
	if s.vercelToken == "" {
		return Result{
			Success:           false,
			Error:             "Vercel token not configured",
			SetupInstructions: "Set VERCEL_TOKEN in the environment",
		}
	}

	cfg := vercelConfig{
		Name:    projectName,
		Version: 2,
		Builds: []vercelBuild{
			{Src: "*.html", Use: "@vercel/static"},
			{Src: "*.js", Use: "@vercel/node"},
			{Src: "*.py", Use: "@vercel/python"},
		},
	}
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("marshal vercel config: %v", err)}
	}
	if err := os.WriteFile(filepath.Join(projectPath, "vercel.json"), raw, 0o644); err != nil {
		return Result{Success: false, Error: fmt.Sprintf("write vercel config: %v", err)}
	}

	runCtx, cancel := context.WithTimeout(ctx, CLITimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "vercel", "--token", s.vercelToken, "--yes")
	cmd.Dir = projectPath

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return Result{
				Success:           false,
				Error:             "Vercel CLI not found",
				SetupInstructions: "Install Vercel CLI: npm install -g vercel",
			}
		}
		return Result{
			Success:    false,
			Error:      stderr.String(),
			Suggestion: "Make sure Vercel CLI is installed and token is valid",
		}
	}

	return Result{
		Success:  true,
		Platform: "Vercel",
		URL:      scrapeURL(stdout.String(), "vercel.app", "Deployment successful (check Vercel dashboard)"),
		Output:   stdout.String(),
	}
}

// scrapeURL finds the first output line carrying a deployment URL for the
// given host suffix, falling back to a human-readable note.
func scrapeURL(output, host, fallback string) string {
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "https://") && strings.Contains(line, host) {
			return strings.TrimSpace(line)
		}
	}
	return fallback
}
