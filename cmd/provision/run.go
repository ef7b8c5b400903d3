package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/Philipao0122/audioAgentTour/pkg/config"
	"github.com/Philipao0122/audioAgentTour/pkg/provision"
	"github.com/Philipao0122/audioAgentTour/pkg/runner"
	"github.com/Philipao0122/audioAgentTour/pkg/state"
	"github.com/Philipao0122/audioAgentTour/pkg/target"
	"github.com/Philipao0122/audioAgentTour/pkg/ui"
)

type runFlags struct {
	target      string
	manifest    string
	freezePath  string
	skipOS      bool
	interactive bool
	verbose     bool
}

// runRun executes the provisioning sequence for the selected target.
func runRun(flags runFlags) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return err
	}

	registry, err := target.LoadDefaults()
	if err != nil {
		return err
	}

	tgt, err := resolveTarget(flags.target, cfg, registry)
	if err != nil {
		return err
	}

	log := newLogger(flags.verbose || cfg.Verbose)

	opts := provision.Options{
		ManifestPath: firstNonEmpty(flags.manifest, cfg.Manifest),
		FreezePath:   firstNonEmpty(flags.freezePath, cfg.FreezePath),
		SkipOS:       flags.skipOS || cfg.SkipOS,
	}

	executor := &runner.RealExecutor{}

	if flags.interactive {
		return runInteractive(tgt, executor, log, opts)
	}
	return runPlain(tgt, executor, log, opts)
}

// runPlain streams package-manager output through and prints a step summary.
func runPlain(tgt *target.Target, executor runner.CommandExecutor, log *logrus.Logger, opts provision.Options) error {
	opts.Output = os.Stdout

	p, err := provision.New(tgt, executor, log, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Provisioning %s (%s)\n", tgt.Name, tgt.DisplayName)

	record, runErr := p.Run(context.Background())
	saveRecord(record)
	printSummary(record)

	if runErr != nil {
		return runErr
	}

	if ignored := record.IgnoredFailures(); len(ignored) > 0 {
		fmt.Printf("\nDone with %d ignored failure(s).\n", len(ignored))
	} else {
		fmt.Println("\nDone.")
	}
	return nil
}

// runInteractive shows the step list with live status.
func runInteractive(tgt *target.Target, executor runner.CommandExecutor, log *logrus.Logger, opts provision.Options) error {
	// The alt screen owns the terminal while the run progresses.
	opts.Output = io.Discard

	p, err := provision.New(tgt, executor, log, opts)
	if err != nil {
		return err
	}

	model := ui.NewRunModel(tgt.Name, p.Steps(), func(onProgress func(provision.Progress)) (*provision.Record, error) {
		p.SetOnProgress(onProgress)
		return p.Run(context.Background())
	})

	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("interactive run failed: %w", err)
	}

	finished, ok := final.(ui.RunModel)
	if !ok {
		return nil
	}
	if record := finished.Record(); record != nil {
		saveRecord(record)
	}
	return finished.Err()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// saveRecord appends the run record to the history store. History failures
// never fail the run.
func saveRecord(record *provision.Record) {
	if record == nil {
		return
	}
	store, err := state.NewStore()
	if err != nil {
		return
	}
	_ = store.Append(record)
}

// printSummary prints the per-step results after a plain run.
func printSummary(record *provision.Record) {
	fmt.Println()
	for _, step := range record.Steps {
		glyph := ui.StatusGlyph(step.Status == provision.StepOK, step.Status == provision.StepIgnored)
		line := fmt.Sprintf("%s %s (%s)", glyph, step.Name, step.Duration.Round(time.Millisecond))
		if step.Error != "" {
			line += ui.DimStyle.Render(": " + step.Error)
		}
		fmt.Println(line)
	}
}
