package provision

// Stage identifies one provisioning stage.
type Stage string

const (
	StageIndex      Stage = "index"
	StageOSPackages Stage = "os-packages"
	StageTooling    Stage = "tooling"
	StageManifest   Stage = "manifest"
	StageExtras     Stage = "extras"
	StageCachePurge Stage = "cache-purge"
	StageFreeze     Stage = "freeze"
)

// String returns the string representation of the stage.
func (s Stage) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the stage.
func (s Stage) DisplayName() string {
	switch s {
	case StageIndex:
		return "Updating Package Index"
	case StageOSPackages:
		return "Installing Native Libraries"
	case StageTooling:
		return "Upgrading Python Tooling"
	case StageManifest:
		return "Installing Manifest Packages"
	case StageExtras:
		return "Installing Extras"
	case StageCachePurge:
		return "Purging Pip Cache"
	case StageFreeze:
		return "Writing Freeze Snapshot"
	default:
		return string(s)
	}
}

// Event is the progress-event type sent to the callback.
type Event int

const (
	// EventStart is sent when a step begins.
	EventStart Event = iota
	// EventDone is sent when a step succeeds.
	EventDone
	// EventFailed is sent when a step fails fatally.
	EventFailed
	// EventIgnored is sent when a best-effort step fails.
	EventIgnored
)

// Progress is reported to the OnProgress callback as steps execute.
type Progress struct {
	Stage Stage
	Name  string
	Event Event
	Err   error
}
