package sysdeps

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/Philipao0122/audioAgentTour/pkg/runner"
	"github.com/Philipao0122/audioAgentTour/pkg/target"
)

// ErrNoManager indicates that no package manager in the chain is installed.
var ErrNoManager = errors.New("no supported package manager found")

// Chain tries package managers in the target's preference order. This is the
// structured form of `yum install ... || apt-get install ... || true`.
type Chain struct {
	managers []Manager
	log      *logrus.Entry
}

// NewChain builds a chain for the given family order.
func NewChain(families []target.ManagerFamily, exec runner.CommandExecutor, out io.Writer, log *logrus.Logger) *Chain {
	managers := make([]Manager, 0, len(families))
	for _, family := range families {
		managers = append(managers, managerFor(family, exec, out))
	}
	return &Chain{
		managers: managers,
		log:      log.WithField("component", "sysdeps"),
	}
}

// NewChainWithManagers builds a chain from explicit managers (for testing).
func NewChainWithManagers(managers []Manager, log *logrus.Logger) *Chain {
	return &Chain{
		managers: managers,
		log:      log.WithField("component", "sysdeps"),
	}
}

// UpdateIndex refreshes the index on the first available manager.
func (c *Chain) UpdateIndex(ctx context.Context) error {
	return c.each(ctx, "update index", func(m Manager) error {
		return m.UpdateIndex(ctx)
	})
}

// Install installs the target's package list, resolving the per-family
// spellings. Managers whose binary is absent are skipped; a manager that is
// present but fails passes the attempt to the next family.
func (c *Chain) Install(ctx context.Context, tgt *target.Target) error {
	return c.each(ctx, "install packages", func(m Manager) error {
		packages := tgt.Packages(m.Family())
		if len(packages) == 0 {
			return fmt.Errorf("no packages configured for %s", m.Family())
		}
		c.log.WithFields(logrus.Fields{
			"manager":  m.Family().String(),
			"packages": len(packages),
		}).Info("installing native libraries")
		return m.Install(ctx, packages)
	})
}

// each runs op against managers in order until one succeeds.
func (c *Chain) each(ctx context.Context, what string, op func(Manager) error) error {
	var lastErr error
	tried := 0

	for _, m := range c.managers {
		if !m.Available() {
			c.log.WithField("manager", m.Family().String()).Debug("not installed, skipping")
			continue
		}
		tried++

		if err := op(m); err != nil {
			c.log.WithFields(logrus.Fields{
				"manager": m.Family().String(),
				"error":   err,
			}).Warn(what + " failed, trying next manager")
			lastErr = err
			continue
		}
		return nil
	}

	if tried == 0 {
		return ErrNoManager
	}
	return fmt.Errorf("%s failed on all package managers: %w", what, lastErr)
}
