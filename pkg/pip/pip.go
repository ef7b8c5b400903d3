// Package pip wraps the Python package installer: tooling upgrade, manifest
// install, extras install, cache purge and freeze snapshots.
package pip

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Philipao0122/audioAgentTour/pkg/runner"
	"github.com/Philipao0122/audioAgentTour/pkg/target"
)

// Pip invokes the resolved pip command.
type Pip struct {
	executor runner.CommandExecutor
	out      io.Writer
	log      *logrus.Entry

	// command is the resolved invocation, e.g. ["pip3"] or ["python3", "-m", "pip"].
	command []string
}

// New resolves the pip command on PATH. Preference order: pip3, pip, then
// python3 -m pip.
func New(exec runner.CommandExecutor, out io.Writer, log *logrus.Logger) (*Pip, error) {
	p := &Pip{
		executor: exec,
		out:      out,
		log:      log.WithField("component", "pip"),
	}

	for _, name := range []string{"pip3", "pip"} {
		if _, err := exec.LookPath(name); err == nil {
			p.command = []string{name}
			return p, nil
		}
	}
	if _, err := exec.LookPath("python3"); err == nil {
		p.command = []string{"python3", "-m", "pip"}
		return p, nil
	}

	return nil, fmt.Errorf("pip not found: need pip3, pip or python3 on PATH")
}

// NewWithCommand creates a Pip with an explicit command (for testing).
func NewWithCommand(exec runner.CommandExecutor, out io.Writer, log *logrus.Logger, command ...string) *Pip {
	return &Pip{
		executor: exec,
		out:      out,
		log:      log.WithField("component", "pip"),
		command:  command,
	}
}

// Command returns the resolved pip invocation.
func (p *Pip) Command() []string {
	return p.command
}

// UpgradeTooling upgrades pip itself along with setuptools and wheel.
func (p *Pip) UpgradeTooling(ctx context.Context) error {
	p.log.Info("upgrading pip, setuptools, wheel")
	return p.stream(ctx, "install", "--upgrade", "pip", "setuptools", "wheel")
}

// InstallManifest installs packages from the manifest file. A missing
// manifest is an error; this step has no best-effort fallback.
func (p *Pip) InstallManifest(ctx context.Context, path string) error {
	if !p.executor.FileExists(path) {
		return fmt.Errorf("manifest %s not found", path)
	}
	p.log.WithField("manifest", path).Info("installing manifest packages")
	return p.stream(ctx, "install", "-r", path)
}

// InstallExtras installs the target's extra packages with their pinned
// minimum versions, in one invocation.
func (p *Pip) InstallExtras(ctx context.Context, extras []target.Extra) error {
	if len(extras) == 0 {
		return nil
	}
	specs := make([]string, len(extras))
	for i, e := range extras {
		specs[i] = e.Spec()
	}
	p.log.WithField("extras", strings.Join(specs, " ")).Info("installing extras")
	return p.stream(ctx, append([]string{"install"}, specs...)...)
}

// PurgeCache clears the pip download cache and removes any residual cache
// directory.
func (p *Pip) PurgeCache(ctx context.Context) error {
	p.log.Info("purging pip cache")
	if err := p.stream(ctx, "cache", "purge"); err != nil {
		return err
	}

	// pip cache purge keeps the directory skeleton; remove it so slim
	// images carry nothing.
	dir, err := p.run(ctx, "cache", "dir")
	if err != nil {
		return nil
	}
	dir = strings.TrimSpace(dir)
	if dir == "" || dir == "/" {
		return nil
	}
	if p.executor.FileExists(dir) {
		if err := p.executor.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to remove cache dir %s: %w", dir, err)
		}
	}
	return nil
}

// Freeze writes a snapshot of installed packages to path. An empty snapshot
// is an error: a provisioned environment always has packages installed.
func (p *Pip) Freeze(ctx context.Context, path string) error {
	output, err := p.run(ctx, "freeze")
	if err != nil {
		return fmt.Errorf("pip freeze failed: %w", err)
	}
	if strings.TrimSpace(output) == "" {
		return fmt.Errorf("pip freeze produced no output")
	}

	if err := os.WriteFile(path, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write freeze file: %w", err)
	}
	p.log.WithField("path", path).Info("wrote freeze snapshot")
	return nil
}

// FreezeOutput returns pip freeze output without writing a file.
func (p *Pip) FreezeOutput(ctx context.Context) (string, error) {
	return p.run(ctx, "freeze")
}

func (p *Pip) stream(ctx context.Context, args ...string) error {
	name, full := p.argv(args)
	return p.executor.Stream(ctx, p.out, name, full...)
}

func (p *Pip) run(ctx context.Context, args ...string) (string, error) {
	name, full := p.argv(args)
	return p.executor.Run(ctx, name, full...)
}

func (p *Pip) argv(args []string) (string, []string) {
	full := append(append([]string{}, p.command[1:]...), args...)
	return p.command[0], full
}
