package deployment

import "time"

// CLITimeout bounds a single platform CLI invocation.
const CLITimeout = 5 * time.Minute

// Service deploys a project directory to hosting platforms via their CLIs.
// Tokens are injected once at construction; an empty token turns the
// platform's deploys into setup errors instead of attempts.
type Service struct {
	vercelToken  string
	netlifyToken string
}

func NewService(vercelToken, netlifyToken string) *Service {
	return &Service{
		vercelToken:  vercelToken,
		netlifyToken: netlifyToken,
	}
}

// Result is the tagged outcome of a deployment attempt. Failure carries
// either an Error from the platform or SetupInstructions when credentials or
// tooling are missing.
type Result struct {
	Success           bool   `json:"success"`
	Platform          string `json:"platform,omitempty"`
	URL               string `json:"url,omitempty"`
	Output            string `json:"output,omitempty"`
	Error             string `json:"error,omitempty"`
	Message           string `json:"message,omitempty"`
	Note              string `json:"note,omitempty"`
	SetupInstructions string `json:"setup_instructions,omitempty"`
	Suggestion        string `json:"suggestion,omitempty"`
}
