package singbox

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"kiki/internal/service"
)

// CheckError carries the checker's diagnostics for a config it rejected.
type CheckError struct {
	Path   string
	Output string
	Cause  error
}

func (e *CheckError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("config %s rejected: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("config %s rejected: %s", e.Path, e.Output)
}

func (e *CheckError) Unwrap() error { return e.Cause }

// Checker runs the sing-box binary to validate a configuration.
type Checker struct {
	Binary string
	Runner service.Runner
}

func NewChecker(binary string) *Checker {
	return &Checker{Binary: binary, Runner: service.ExecRunner{}}
}

// Version returns the first line of `sing-box version`. It fails when the
// binary is missing.
func (c *Checker) Version(ctx context.Context) (string, error) {
	stdout, _, err := c.Runner.Output(ctx, c.Binary, "version")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%s not found in PATH: %w", c.Binary, err)
		}
		return "", fmt.Errorf("failed to run %s version: %w", c.Binary, err)
	}
	first, _, _ := strings.Cut(strings.TrimSpace(string(stdout)), "\n")
	return first, nil
}

// Check runs `sing-box check -c path`.
func (c *Checker) Check(ctx context.Context, path string) error {
	stdout, stderr, err := c.Runner.Output(ctx, c.Binary, "check", "-c", path)
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return fmt.Errorf("failed to run %s check: %w", c.Binary, err)
	}
	output := strings.TrimSpace(string(stderr))
	if output == "" {
		output = strings.TrimSpace(string(stdout))
	}
	return &CheckError{Path: path, Output: output, Cause: err}
}
