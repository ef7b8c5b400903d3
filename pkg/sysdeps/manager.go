// Package sysdeps installs native OS libraries through whichever package
// manager the host provides, with a yum/apt fallback chain.
package sysdeps

import (
	"context"
	"io"

	"github.com/Philipao0122/audioAgentTour/pkg/runner"
	"github.com/Philipao0122/audioAgentTour/pkg/target"
)

// Manager abstracts one OS package-manager family.
type Manager interface {
	// Family identifies the manager family.
	Family() target.ManagerFamily

	// Available reports whether the manager binary is on PATH.
	Available() bool

	// UpdateIndex refreshes the package index.
	UpdateIndex(ctx context.Context) error

	// Install installs the given packages.
	Install(ctx context.Context, packages []string) error
}

// AptManager drives apt-get on Debian-family hosts.
type AptManager struct {
	executor runner.CommandExecutor
	out      io.Writer
}

// NewAptManager creates an apt-get manager.
func NewAptManager(exec runner.CommandExecutor, out io.Writer) *AptManager {
	return &AptManager{executor: exec, out: out}
}

// Family returns the apt family.
func (m *AptManager) Family() target.ManagerFamily {
	return target.FamilyApt
}

// Available reports whether apt-get is on PATH.
func (m *AptManager) Available() bool {
	_, err := m.executor.LookPath("apt-get")
	return err == nil
}

// UpdateIndex runs apt-get update.
func (m *AptManager) UpdateIndex(ctx context.Context) error {
	return m.executor.Stream(ctx, m.out, "apt-get", "update")
}

// Install runs apt-get install -y with the given packages.
func (m *AptManager) Install(ctx context.Context, packages []string) error {
	args := append([]string{"install", "-y"}, packages...)
	return m.executor.Stream(ctx, m.out, "apt-get", args...)
}

// YumManager drives yum on RPM-family hosts (Amazon Linux on Vercel).
type YumManager struct {
	executor runner.CommandExecutor
	out      io.Writer
}

// NewYumManager creates a yum manager.
func NewYumManager(exec runner.CommandExecutor, out io.Writer) *YumManager {
	return &YumManager{executor: exec, out: out}
}

// Family returns the yum family.
func (m *YumManager) Family() target.ManagerFamily {
	return target.FamilyYum
}

// Available reports whether yum is on PATH.
func (m *YumManager) Available() bool {
	_, err := m.executor.LookPath("yum")
	return err == nil
}

// UpdateIndex runs yum makecache.
func (m *YumManager) UpdateIndex(ctx context.Context) error {
	return m.executor.Stream(ctx, m.out, "yum", "makecache")
}

// Install runs yum install -y with the given packages.
func (m *YumManager) Install(ctx context.Context, packages []string) error {
	args := append([]string{"install", "-y"}, packages...)
	return m.executor.Stream(ctx, m.out, "yum", args...)
}

// managerFor builds the manager for a family.
func managerFor(family target.ManagerFamily, exec runner.CommandExecutor, out io.Writer) Manager {
	switch family {
	case target.FamilyYum:
		return NewYumManager(exec, out)
	default:
		return NewAptManager(exec, out)
	}
}
