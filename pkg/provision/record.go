package provision

import "time"

// StepStatus is the recorded outcome of one step.
type StepStatus string

const (
	StepOK      StepStatus = "ok"
	StepFailed  StepStatus = "failed"
	StepIgnored StepStatus = "ignored" // best-effort failure
)

// StepResult records one executed step.
type StepResult struct {
	Stage      Stage         `json:"stage"`
	Name       string        `json:"name"`
	BestEffort bool          `json:"best_effort"`
	Status     StepStatus    `json:"status"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// Record is the persisted result of one provisioning run.
type Record struct {
	ID         string       `json:"id"`
	Target     string       `json:"target"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Steps      []StepResult `json:"steps"`
	Success    bool         `json:"success"`
}

// Failed returns the fatally failed step, or nil.
func (r *Record) Failed() *StepResult {
	for i := range r.Steps {
		if r.Steps[i].Status == StepFailed {
			return &r.Steps[i]
		}
	}
	return nil
}

// IgnoredFailures returns best-effort steps that failed.
func (r *Record) IgnoredFailures() []StepResult {
	var out []StepResult
	for _, s := range r.Steps {
		if s.Status == StepIgnored {
			out = append(out, s)
		}
	}
	return out
}
