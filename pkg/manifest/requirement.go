// Package manifest parses Python dependency manifests (requirements.txt
// format) into structured requirements for installation and verification.
package manifest

import "strings"

// ConstraintOp is a version-specifier operator.
type ConstraintOp string

const (
	OpEqual       ConstraintOp = "=="
	OpNotEqual    ConstraintOp = "!="
	OpAtLeast     ConstraintOp = ">="
	OpAtMost      ConstraintOp = "<="
	OpGreater     ConstraintOp = ">"
	OpLess        ConstraintOp = "<"
	OpCompatible  ConstraintOp = "~="
	OpArbitraryEq ConstraintOp = "==="
)

// Constraint is a single version constraint, e.g. ">=2.3.0".
type Constraint struct {
	Op      ConstraintOp
	Version string
}

// String renders the constraint in specifier form.
func (c Constraint) String() string {
	return string(c.Op) + c.Version
}

// Requirement is one manifest entry.
type Requirement struct {
	// Name is the distribution name as written.
	Name string

	// Extras holds optional extras, e.g. "standard" in uvicorn[standard].
	Extras []string

	// Constraints holds the version specifiers, in written order.
	Constraints []Constraint

	// Marker is the raw environment marker after ';', if any.
	Marker string

	// Line is the 1-based source line number.
	Line int
}

// Spec renders the requirement back into pip-installable form, without the
// environment marker.
func (r Requirement) Spec() string {
	var b strings.Builder
	b.WriteString(r.Name)
	if len(r.Extras) > 0 {
		b.WriteString("[")
		b.WriteString(strings.Join(r.Extras, ","))
		b.WriteString("]")
	}
	for i, c := range r.Constraints {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(c.String())
	}
	return b.String()
}

// Pin returns the exact version when the requirement is pinned with ==,
// and "" otherwise.
func (r Requirement) Pin() string {
	for _, c := range r.Constraints {
		if c.Op == OpEqual || c.Op == OpArbitraryEq {
			return c.Version
		}
	}
	return ""
}

// Manifest is a parsed dependency manifest.
type Manifest struct {
	// Path is the file the manifest was loaded from.
	Path string

	// Requirements holds the parsed entries in file order.
	Requirements []Requirement

	// Skipped holds lines the parser does not model (pip options,
	// nested -r includes, direct URL references), verbatim.
	Skipped []string
}

// Names returns the normalized names of all requirements.
func (m *Manifest) Names() []string {
	names := make([]string, len(m.Requirements))
	for i, r := range m.Requirements {
		names[i] = NormalizeName(r.Name)
	}
	return names
}

// Get returns the requirement with the given name (normalized comparison),
// or nil if not present.
func (m *Manifest) Get(name string) *Requirement {
	want := NormalizeName(name)
	for i := range m.Requirements {
		if NormalizeName(m.Requirements[i].Name) == want {
			return &m.Requirements[i]
		}
	}
	return nil
}

// NormalizeName lowercases a distribution name and collapses runs of
// '-', '_' and '.' to single dashes, per PyPA name normalization.
func NormalizeName(name string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(name) {
		if r == '-' || r == '_' || r == '.' {
			if !prevDash {
				b.WriteRune('-')
			}
			prevDash = true
			continue
		}
		prevDash = false
		b.WriteRune(r)
	}
	return b.String()
}
