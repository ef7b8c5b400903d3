// Package provision runs the ordered provisioning steps for a deployment
// target: OS package index and libraries, Python tooling, manifest install,
// extras, cache purge and freeze snapshot.
package provision

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Philipao0122/audioAgentTour/pkg/pip"
	"github.com/Philipao0122/audioAgentTour/pkg/runner"
	"github.com/Philipao0122/audioAgentTour/pkg/sysdeps"
	"github.com/Philipao0122/audioAgentTour/pkg/target"
)

// Step is one provisioning step. BestEffort steps log failure and continue;
// everything else aborts the run.
type Step struct {
	Stage      Stage
	Name       string
	BestEffort bool
	Run        func(ctx context.Context) error
}

// Options configure a provisioning run.
type Options struct {
	// ManifestPath overrides the target's manifest location.
	ManifestPath string

	// FreezePath overrides the target's freeze-snapshot location.
	FreezePath string

	// SkipOS skips index update and native-library installation, for
	// environments where the image already carries them.
	SkipOS bool

	// Output receives streamed package-manager output. Defaults to
	// io.Discard.
	Output io.Writer

	// OnProgress, when set, receives step progress events.
	OnProgress func(Progress)
}

// Provisioner executes the step sequence for one target.
type Provisioner struct {
	target *target.Target
	log    *logrus.Logger
	opts   Options

	chain *sysdeps.Chain
	pip   *pip.Pip
}

// New creates a Provisioner for the target. The pip command is resolved
// immediately so a missing interpreter fails before any step runs.
func New(tgt *target.Target, exec runner.CommandExecutor, log *logrus.Logger, opts Options) (*Provisioner, error) {
	if opts.Output == nil {
		opts.Output = io.Discard
	}

	pipCmd, err := pip.New(exec, opts.Output, log)
	if err != nil {
		return nil, err
	}

	return &Provisioner{
		target: tgt,
		log:    log,
		opts:   opts,
		chain:  sysdeps.NewChain(tgt.Managers, exec, opts.Output, log),
		pip:    pipCmd,
	}, nil
}

// SetOnProgress installs the progress callback. Must be called before Run.
func (p *Provisioner) SetOnProgress(fn func(Progress)) {
	p.opts.OnProgress = fn
}

// ManifestPath returns the effective manifest location for this run.
func (p *Provisioner) ManifestPath() string {
	if p.opts.ManifestPath != "" {
		return p.opts.ManifestPath
	}
	return p.target.ManifestPath
}

// FreezePath returns the effective freeze-snapshot location for this run.
func (p *Provisioner) FreezePath() string {
	if p.opts.FreezePath != "" {
		return p.opts.FreezePath
	}
	if p.target.FreezePath != "" {
		return p.target.FreezePath
	}
	return "installed_packages.txt"
}

// Steps returns the ordered step list the run will execute.
func (p *Provisioner) Steps() []Step {
	var steps []Step

	if p.target.Steps.UpdateIndex && !p.opts.SkipOS {
		steps = append(steps, Step{
			Stage:      StageIndex,
			Name:       StageIndex.DisplayName(),
			BestEffort: true,
			Run:        p.chain.UpdateIndex,
		})
	}

	if p.target.Steps.OSPackages && !p.opts.SkipOS {
		steps = append(steps, Step{
			Stage:      StageOSPackages,
			Name:       StageOSPackages.DisplayName(),
			BestEffort: p.target.Steps.OSBestEffort,
			Run: func(ctx context.Context) error {
				return p.chain.Install(ctx, p.target)
			},
		})
	}

	steps = append(steps, Step{
		Stage: StageTooling,
		Name:  StageTooling.DisplayName(),
		Run:   p.pip.UpgradeTooling,
	})

	steps = append(steps, Step{
		Stage: StageManifest,
		Name:  StageManifest.DisplayName(),
		Run: func(ctx context.Context) error {
			return p.pip.InstallManifest(ctx, p.ManifestPath())
		},
	})

	if len(p.target.Extras) > 0 {
		steps = append(steps, Step{
			Stage: StageExtras,
			Name:  StageExtras.DisplayName(),
			Run: func(ctx context.Context) error {
				return p.pip.InstallExtras(ctx, p.target.Extras)
			},
		})
	}

	if p.target.Steps.CachePurge {
		steps = append(steps, Step{
			Stage:      StageCachePurge,
			Name:       StageCachePurge.DisplayName(),
			BestEffort: true,
			Run:        p.pip.PurgeCache,
		})
	}

	if p.target.Steps.Freeze {
		steps = append(steps, Step{
			Stage: StageFreeze,
			Name:  StageFreeze.DisplayName(),
			Run: func(ctx context.Context) error {
				return p.pip.Freeze(ctx, p.FreezePath())
			},
		})
	}

	return steps
}

// PlanStages returns the stages a run over tgt would execute, in order,
// without touching the host.
func PlanStages(tgt *target.Target, skipOS bool) []Stage {
	var stages []Stage
	if tgt.Steps.UpdateIndex && !skipOS {
		stages = append(stages, StageIndex)
	}
	if tgt.Steps.OSPackages && !skipOS {
		stages = append(stages, StageOSPackages)
	}
	stages = append(stages, StageTooling, StageManifest)
	if len(tgt.Extras) > 0 {
		stages = append(stages, StageExtras)
	}
	if tgt.Steps.CachePurge {
		stages = append(stages, StageCachePurge)
	}
	if tgt.Steps.Freeze {
		stages = append(stages, StageFreeze)
	}
	return stages
}

// Run executes all steps in order. The returned record is always populated
// for the steps that ran, even when the run fails.
func (p *Provisioner) Run(ctx context.Context) (*Record, error) {
	record := &Record{
		ID:        uuid.NewString(),
		Target:    p.target.Name,
		StartedAt: time.Now(),
	}

	var runErr error
	for _, step := range p.Steps() {
		result := p.runStep(ctx, step)
		record.Steps = append(record.Steps, result)

		if result.Status == StepFailed {
			runErr = fmt.Errorf("%s failed: %s", step.Name, result.Error)
			break
		}
	}

	record.FinishedAt = time.Now()
	record.Success = runErr == nil
	return record, runErr
}

func (p *Provisioner) runStep(ctx context.Context, step Step) StepResult {
	log := p.log.WithFields(logrus.Fields{
		"target": p.target.Name,
		"step":   step.Stage.String(),
	})

	p.emit(Progress{Stage: step.Stage, Name: step.Name, Event: EventStart})
	log.Info("step started")

	start := time.Now()
	err := step.Run(ctx)
	result := StepResult{
		Stage:      step.Stage,
		Name:       step.Name,
		BestEffort: step.BestEffort,
		Status:     StepOK,
		Duration:   time.Since(start),
	}

	switch {
	case err == nil:
		log.WithField("duration", result.Duration.Round(time.Millisecond)).Info("step complete")
		p.emit(Progress{Stage: step.Stage, Name: step.Name, Event: EventDone})
	case step.BestEffort:
		result.Status = StepIgnored
		result.Error = err.Error()
		log.WithField("error", err).Warn("step failed, continuing (best effort)")
		p.emit(Progress{Stage: step.Stage, Name: step.Name, Event: EventIgnored, Err: err})
	default:
		result.Status = StepFailed
		result.Error = err.Error()
		log.WithField("error", err).Error("step failed")
		p.emit(Progress{Stage: step.Stage, Name: step.Name, Event: EventFailed, Err: err})
	}

	return result
}

func (p *Provisioner) emit(progress Progress) {
	if p.opts.OnProgress != nil {
		p.opts.OnProgress(progress)
	}
}
