package deployment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

const netlifyConfig = `[build]
  publish = "."
  command = "echo 'Build complete'"

[build.environment]
  NODE_VERSION = "18"

[[redirects]]
  from = "/*"
  to = "/index.html"
  status = 200
`

// DeployNetlify writes a netlify.toml into the project directory and runs
// the Netlify CLI.
func (s *Service) DeployNetlify(ctx context.Context, projectPath, projectName string) Result {
	if s.netlifyToken == "" {
		return Result{
			Success:           false,
			Error:             "Netlify token not configured",
			SetupInstructions: "Set NETLIFY_TOKEN in the environment",
		}
	}

	if err := os.WriteFile(filepath.Join(projectPath, "netlify.toml"), []byte(netlifyConfig), 0o644); err != nil {
		return Result{Success: false, Error: fmt.Sprintf("write netlify config: %v", err)}
	}

	runCtx, cancel := context.WithTimeout(ctx, CLITimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "netlify", "deploy", "--prod", "--auth", s.netlifyToken)
	cmd.Dir = projectPath

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return Result{
				Success:           false,
				Error:             "Netlify CLI not found",
				SetupInstructions: "Install Netlify CLI: npm install -g netlify-cli",
			}
		}
		return Result{
			Success:    false,
			Error:      stderr.String(),
			Suggestion: "Make sure Netlify CLI is installed and token is valid",
		}
	}

	return Result{
		Success:  true,
		Platform: "Netlify",
		URL:      scrapeURL(stdout.String(), "netlify.app", "Deployment successful (check Netlify dashboard)"),
		Output:   stdout.String(),
	}
}
