package runner

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// FakeExecutor is a scripted executor for tests. Responses are keyed by the
// joined command line; unmatched commands succeed with empty output unless
// FailUnknown is set.
type FakeExecutor struct {
	mu sync.Mutex

	// Commands records every command line executed, in order.
	Commands []string

	// Outputs maps a command line to its stdout.
	Outputs map[string]string

	// Errors maps a command line to the error it should return.
	Errors map[string]error

	// Missing holds executable names LookPath should fail for.
	Missing map[string]bool

	// Files maps paths to existence for FileExists.
	Files map[string]bool

	// Removed records paths passed to RemoveAll.
	Removed []string

	// FailUnknown makes unscripted commands fail.
	FailUnknown bool
}

// NewFakeExecutor creates an empty fake executor.
func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{
		Outputs: make(map[string]string),
		Errors:  make(map[string]error),
		Missing: make(map[string]bool),
		Files:   make(map[string]bool),
	}
}

// LookPath reports the file as found unless marked missing.
func (e *FakeExecutor) LookPath(file string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Missing[file] {
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", file)
	}
	return "/usr/bin/" + file, nil
}

// Run records the command and returns the scripted output and error.
func (e *FakeExecutor) Run(_ context.Context, name string, args ...string) (string, error) {
	return e.record(name, args...)
}

// Stream records the command, writes scripted output to out, and returns the
// scripted error.
func (e *FakeExecutor) Stream(_ context.Context, out io.Writer, name string, args ...string) error {
	output, err := e.record(name, args...)
	if output != "" {
		fmt.Fprint(out, output)
	}
	return err
}

// FileExists consults the scripted file map.
func (e *FakeExecutor) FileExists(path string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Files[path]
}

// RemoveAll records the removal and clears the path from the file map.
func (e *FakeExecutor) RemoveAll(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Removed = append(e.Removed, path)
	delete(e.Files, path)
	return nil
}

func (e *FakeExecutor) record(name string, args ...string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	line := strings.Join(append([]string{name}, args...), " ")
	e.Commands = append(e.Commands, line)

	if err, ok := e.Errors[line]; ok {
		return e.Outputs[line], err
	}
	if out, ok := e.Outputs[line]; ok {
		return out, nil
	}
	if e.FailUnknown {
		return "", fmt.Errorf("unscripted command: %s", line)
	}
	return "", nil
}

// Ran reports whether a command line was executed.
func (e *FakeExecutor) Ran(line string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range e.Commands {
		if c == line {
			return true
		}
	}
	return false
}
