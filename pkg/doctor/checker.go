package doctor

import (
	"context"
	"sync"

	"github.com/Philipao0122/audioAgentTour/pkg/runner"
)

// Checker provides environment checking functionality.
type Checker struct {
	executor     runner.CommandExecutor
	manifestPath string
}

// NewChecker creates a new Checker with the real command executor.
func NewChecker(manifestPath string) *Checker {
	return &Checker{
		executor:     &runner.RealExecutor{},
		manifestPath: manifestPath,
	}
}

// NewCheckerWithExecutor creates a new Checker with a custom executor (for testing).
func NewCheckerWithExecutor(exec runner.CommandExecutor, manifestPath string) *Checker {
	return &Checker{
		executor:     exec,
		manifestPath: manifestPath,
	}
}

// groupDefinition describes one check group.
type groupDefinition struct {
	ID          string
	Name        string
	Description string
	CheckIDs    []string
}

var groupDefinitions = []groupDefinition{
	{
		ID:          GroupOSManagers,
		Name:        "OS Package Managers",
		Description: "At least one manager family must be present for native libraries",
		CheckIDs:    []string{IDYum, IDApt},
	},
	{
		ID:          GroupPython,
		Name:        "Python Toolchain",
		Description: "Interpreter and installer for the application dependencies",
		CheckIDs:    []string{IDPython, IDPip},
	},
	{
		ID:          GroupProject,
		Name:        "Project Files",
		Description: "Inputs the provisioner reads",
		CheckIDs:    []string{IDManifest},
	},
}

// CheckAll runs all checks concurrently, by group.
func (c *Checker) CheckAll(ctx context.Context) []CheckGroup {
	result := make([]CheckGroup, len(groupDefinitions))
	var wg sync.WaitGroup

	for i, def := range groupDefinitions {
		wg.Add(1)
		go func(idx int, d groupDefinition) {
			defer wg.Done()
			result[idx] = c.CheckGroup(ctx, d.ID)
		}(i, def)
	}

	wg.Wait()
	return result
}

// CheckGroup runs all checks for a specific group.
func (c *Checker) CheckGroup(ctx context.Context, groupID string) CheckGroup {
	var def *groupDefinition
	for i := range groupDefinitions {
		if groupDefinitions[i].ID == groupID {
			def = &groupDefinitions[i]
			break
		}
	}
	if def == nil {
		return CheckGroup{ID: groupID, Name: "Unknown"}
	}

	group := CheckGroup{
		ID:          def.ID,
		Name:        def.Name,
		Description: def.Description,
	}
	for _, checkID := range def.CheckIDs {
		group.Checks = append(group.Checks, c.runCheck(ctx, checkID))
	}
	return group
}

func (c *Checker) runCheck(ctx context.Context, checkID string) Check {
	switch checkID {
	case IDApt:
		return CheckApt(ctx, c.executor)
	case IDYum:
		return CheckYum(ctx, c.executor)
	case IDPython:
		return CheckPython(ctx, c.executor)
	case IDPip:
		return CheckPip(ctx, c.executor)
	case IDManifest:
		return CheckManifest(c.executor, c.manifestPath)
	default:
		return Check{
			ID:      checkID,
			Name:    checkID,
			Status:  StatusError,
			Message: "unknown check",
		}
	}
}

// Summary represents an overall health summary.
type Summary struct {
	Total    int
	OK       int
	Missing  int
	Warnings int
	Errors   int
}

// GetSummary returns a summary of check results. The OS-manager group is
// healthy when at least one family is present, so a single missing manager
// there does not count against the summary.
func GetSummary(groups []CheckGroup) Summary {
	var summary Summary

	for _, group := range groups {
		osGroup := group.ID == GroupOSManagers
		anyOK := false
		for _, check := range group.Checks {
			if check.Status == StatusOK {
				anyOK = true
			}
		}

		for _, check := range group.Checks {
			summary.Total++
			switch check.Status {
			case StatusOK:
				summary.OK++
			case StatusMissing:
				if osGroup && anyOK {
					summary.OK++
					continue
				}
				summary.Missing++
			case StatusWarning:
				summary.Warnings++
			case StatusError:
				summary.Errors++
			}
		}
	}

	return summary
}

// HasIssues returns true if any checks have blocking issues.
func HasIssues(groups []CheckGroup) bool {
	summary := GetSummary(groups)
	return summary.Missing > 0 || summary.Errors > 0
}
