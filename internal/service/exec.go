package service

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

// Runner executes external commands. Tests swap in a fake.
type Runner interface {
	// Output runs the command to completion and returns what it printed.
	Output(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
	// Stream runs the command with its output attached to w until it
	// exits or ctx is done.
	Stream(ctx context.Context, w io.Writer, name string, args ...string) error
}

type ExecRunner struct{}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

func (ExecRunner) Stream(ctx context.Context, w io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = w
	cmd.Stderr = w
	return cmd.Run()
}
