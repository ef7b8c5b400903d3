// Package target defines the deployment targets the provisioner knows how
// to prepare, and the registry they are loaded into.
package target

// ManagerFamily identifies an OS package-manager family.
type ManagerFamily string

const (
	FamilyApt ManagerFamily = "apt"
	FamilyYum ManagerFamily = "yum"
)

// String returns the string representation of the family.
func (f ManagerFamily) String() string {
	return string(f)
}

// Extra is an additional Python package installed after the manifest, with a
// pinned minimum version.
type Extra struct {
	Name       string `yaml:"name"`
	MinVersion string `yaml:"min_version"`
}

// Spec renders the extra in pip-installable form, e.g. "supabase>=2.3.0".
func (e Extra) Spec() string {
	if e.MinVersion == "" {
		return e.Name
	}
	return e.Name + ">=" + e.MinVersion
}

// Steps holds the per-target step toggles.
type Steps struct {
	// UpdateIndex refreshes the OS package index before installing.
	UpdateIndex bool `yaml:"update_index"`

	// OSPackages installs the native libraries.
	OSPackages bool `yaml:"os_packages"`

	// OSBestEffort makes OS-package failures non-fatal.
	OSBestEffort bool `yaml:"os_best_effort"`

	// CachePurge clears the pip cache after installing.
	CachePurge bool `yaml:"cache_purge"`

	// Freeze writes an installed-package snapshot after installing.
	Freeze bool `yaml:"freeze"`
}

// Target describes one deployment environment.
type Target struct {
	// Name is the target identifier, e.g. "vercel".
	Name string `yaml:"name"`

	// DisplayName is a human-readable name.
	DisplayName string `yaml:"display_name"`

	// Description is a brief description of the environment.
	Description string `yaml:"description"`

	// Managers is the package-manager preference order.
	Managers []ManagerFamily `yaml:"managers"`

	// OSPackages maps each manager family to its package spellings.
	OSPackages map[ManagerFamily][]string `yaml:"os_packages"`

	// Extras are installed after the manifest, vercel-style.
	Extras []Extra `yaml:"extras"`

	// Steps are the step toggles for this target.
	Steps Steps `yaml:"steps"`

	// ManifestPath is the default dependency manifest location.
	ManifestPath string `yaml:"manifest"`

	// FreezePath is where the freeze snapshot is written.
	FreezePath string `yaml:"freeze_path"`
}

// Packages returns the OS package list for a manager family.
func (t *Target) Packages(family ManagerFamily) []string {
	return t.OSPackages[family]
}

// Registry holds all known targets.
// Note: Registry is not thread-safe and should not be modified concurrently.
type Registry struct {
	// Targets is an ordered list of all targets.
	Targets []Target

	// ByName provides quick lookup by target name (stores copies, not pointers).
	ByName map[string]Target
}

// NewRegistry creates an empty target registry.
func NewRegistry() *Registry {
	return &Registry{
		ByName: make(map[string]Target),
	}
}

// Add adds a target to the registry.
func (r *Registry) Add(t Target) {
	r.Targets = append(r.Targets, t)
	r.ByName[t.Name] = t
}

// Get returns a target by name, or nil if not found.
func (r *Registry) Get(name string) *Target {
	if t, ok := r.ByName[name]; ok {
		return &t
	}
	return nil
}

// Names returns all target names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.Targets))
	for i, t := range r.Targets {
		names[i] = t.Name
	}
	return names
}
