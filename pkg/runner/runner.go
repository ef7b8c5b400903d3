// Package runner provides command execution for the provisioner, behind an
// interface so every package that shells out can be tested without a real
// package manager on the machine.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// CommandExecutor is an interface for executing external commands, allowing
// for testing.
type CommandExecutor interface {
	LookPath(file string) (string, error)
	// Run executes a command and returns its stdout (stderr on failure).
	Run(ctx context.Context, name string, args ...string) (string, error)
	// Stream executes a command with stdout/stderr wired to the given writer.
	Stream(ctx context.Context, out io.Writer, name string, args ...string) error
	FileExists(path string) bool
	RemoveAll(path string) error
}

// RealExecutor is the default executor that uses the real system.
type RealExecutor struct{}

// LookPath finds the path to an executable.
func (e *RealExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command and returns its output.
func (e *RealExecutor) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return stdout.String(), fmt.Errorf("%s: %s", name, msg)
		}
		return stdout.String(), fmt.Errorf("%s: %w", name, err)
	}

	return stdout.String(), nil
}

// Stream executes a command, streaming combined output to out.
func (e *RealExecutor) Stream(ctx context.Context, out io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = out

	var stderr bytes.Buffer
	cmd.Stderr = io.MultiWriter(out, &stderr)

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %s", name, lastLine(msg))
		}
		return fmt.Errorf("%s: %w", name, err)
	}

	return nil
}

// FileExists checks if a file exists.
func (e *RealExecutor) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// RemoveAll removes a path and everything under it.
func (e *RealExecutor) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// lastLine returns the final non-empty line of s. Package managers print
// long transcripts to stderr; the last line usually carries the reason.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return s
}
