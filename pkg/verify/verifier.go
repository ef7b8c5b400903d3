// Package verify compares the installed Python packages against the
// dependency manifest.
package verify

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/Philipao0122/audioAgentTour/pkg/manifest"
)

// Severity classifies an issue.
type Severity int

const (
	// SeverityError blocks: a required package is missing or violates a pin.
	SeverityError Severity = iota
	// SeverityWarning is informational: a version could not be compared.
	SeverityWarning
)

// Issue is one verification finding.
type Issue struct {
	Severity Severity
	Package  string
	Message  string
}

// Result is the outcome of a verification pass.
type Result struct {
	Issues []Issue

	// Installed is the number of packages in the freeze snapshot.
	Installed int

	// Checked is the number of manifest requirements verified.
	Checked int
}

// HasErrors returns true when any issue is an error.
func (r *Result) HasErrors() bool {
	return r.ErrorCount() > 0
}

// ErrorCount returns the number of error issues.
func (r *Result) ErrorCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning issues.
func (r *Result) WarningCount() int {
	return len(r.Issues) - r.ErrorCount()
}

// ParseFreeze parses pip freeze output into normalized name → version.
// Direct references and editable installs are skipped.
func ParseFreeze(output string) map[string]string {
	installed := make(map[string]string)
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		if strings.Contains(line, " @ ") {
			continue
		}
		parts := strings.SplitN(line, "==", 2)
		if len(parts) != 2 {
			continue
		}
		name := manifest.NormalizeName(strings.TrimSpace(parts[0]))
		installed[name] = strings.TrimSpace(parts[1])
	}
	return installed
}

// Verify checks every manifest requirement against the installed set.
// Requirements with environment markers are skipped: whether they apply
// cannot be decided from outside the interpreter.
func Verify(m *manifest.Manifest, installed map[string]string) *Result {
	result := &Result{Installed: len(installed)}

	for _, req := range m.Requirements {
		if req.Marker != "" {
			continue
		}
		result.Checked++

		name := manifest.NormalizeName(req.Name)
		version, ok := installed[name]
		if !ok {
			result.Issues = append(result.Issues, Issue{
				Severity: SeverityError,
				Package:  req.Name,
				Message:  "not installed",
			})
			continue
		}

		for _, c := range req.Constraints {
			result.Issues = append(result.Issues, checkConstraint(req.Name, version, c)...)
		}
	}

	return result
}

// checkConstraint evaluates one constraint against the installed version.
func checkConstraint(name, version string, c manifest.Constraint) []Issue {
	// Exact pins compare textually first; that also covers versions
	// semver cannot parse (post/dev releases).
	if c.Op == manifest.OpEqual || c.Op == manifest.OpArbitraryEq {
		if version == c.Version {
			return nil
		}
	}
	if c.Op == manifest.OpNotEqual && version == c.Version {
		return []Issue{{
			Severity: SeverityError,
			Package:  name,
			Message:  fmt.Sprintf("installed %s is excluded by %s", version, c),
		}}
	}

	installedVer, err := semver.NewVersion(version)
	if err != nil {
		return []Issue{{
			Severity: SeverityWarning,
			Package:  name,
			Message:  fmt.Sprintf("installed version %q not comparable against %s", version, c),
		}}
	}

	constraint, err := semverConstraint(c)
	if err != nil {
		return []Issue{{
			Severity: SeverityWarning,
			Package:  name,
			Message:  fmt.Sprintf("constraint %s not comparable", c),
		}}
	}

	if !constraint.Check(installedVer) {
		return []Issue{{
			Severity: SeverityError,
			Package:  name,
			Message:  fmt.Sprintf("installed %s does not satisfy %s", version, c),
		}}
	}
	return nil
}

// semverConstraint translates a manifest constraint into a semver range.
// The compatible-release operator maps to tilde/caret depending on how many
// version components were written.
func semverConstraint(c manifest.Constraint) (*semver.Constraints, error) {
	switch c.Op {
	case manifest.OpCompatible:
		if strings.Count(c.Version, ".") >= 2 {
			return semver.NewConstraint("~" + c.Version)
		}
		return semver.NewConstraint("^" + c.Version)
	case manifest.OpEqual, manifest.OpArbitraryEq:
		return semver.NewConstraint("= " + c.Version)
	default:
		return semver.NewConstraint(string(c.Op) + " " + c.Version)
	}
}
