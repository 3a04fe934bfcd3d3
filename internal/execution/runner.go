package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Runner executes user code as a local subprocess with a wall-clock timeout.
// This is a bare subprocess invocation, not a real isolation boundary.
type Runner struct {
	timeout time.Duration
}

func NewRunner(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Runner{timeout: timeout}
}

// Result is the tagged outcome of an execution.
type Result struct {
	Success    bool      `json:"success"`
	Output     string    `json:"output"`
	Error      string    `json:"error,omitempty"`
	ReturnCode int       `json:"return_code"`
	Timestamp  time.Time `json:"timestamp"`
}

// Run writes the code into a temp directory and executes it with the
// language's runtime. Unsupported languages report an explicit failure
// without attempting execution. Never returns an error: every outcome is a
// tagged Result.
func (r *Runner) Run(ctx context.Context, code, language string) Result {
	fileName, runtime := runtimeFor(language)
	if runtime == "" {
		return failure(fmt.Sprintf("Execution not supported for %s", language))
	}

	tempDir, err := os.MkdirTemp("", "exec-*")
	if err != nil {
		return failure(fmt.Sprintf("create sandbox directory: %v", err))
	}
	defer os.RemoveAll(tempDir)

	filePath := filepath.Join(tempDir, fileName)
	if err := os.WriteFile(filePath, []byte(code), 0o644); err != nil {
		return failure(fmt.Sprintf("write code file: %v", err))
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, runtime, filePath)
	cmd.Dir = tempDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return failure(fmt.Sprintf("Code execution timeout (%s)", r.timeout))
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// Runtime missing or failed to start; no process state exists.
			return failure(fmt.Sprintf("%s: %v", runtime, err))
		}
	}

	result := Result{
		Output:     stdout.String(),
		ReturnCode: cmd.ProcessState.ExitCode(),
		Timestamp:  time.Now().UTC(),
	}

	result.Success = result.ReturnCode == 0
	if !result.Success {
		result.Error = stderr.String()
	}
	return result
}

func runtimeFor(language string) (fileName, runtime string) {
	switch strings.ToLower(language) {
	case "python":
		return "main.py", "python3"
	case "javascript", "js":
		return "main.js", "node"
	default:
		return "", ""
	}
}

func failure(msg string) Result {
	return Result{
		Success:    false,
		Error:      msg,
		ReturnCode: -1,
		Timestamp:  time.Now().UTC(),
	}
}
