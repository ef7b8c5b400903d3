package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Philipao0122/audioAgentTour/pkg/manifest"
	"github.com/Philipao0122/audioAgentTour/pkg/pip"
	"github.com/Philipao0122/audioAgentTour/pkg/runner"
	"github.com/Philipao0122/audioAgentTour/pkg/ui"
	"github.com/Philipao0122/audioAgentTour/pkg/verify"
)

// runVerify compares installed packages against the manifest.
func runVerify(manifestPath, freezeFile string) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	freeze, err := freezeOutput(freezeFile)
	if err != nil {
		return err
	}

	installed := verify.ParseFreeze(freeze)
	result := verify.Verify(m, installed)

	for _, issue := range result.Issues {
		prefix := ui.WarningStyle.Render("WARNING")
		if issue.Severity == verify.SeverityError {
			prefix = ui.ErrorStyle.Render("ERROR")
		}
		fmt.Printf("[%s] %s: %s\n", prefix, issue.Package, issue.Message)
	}

	fmt.Printf("\nChecked %d requirement(s) against %d installed package(s).\n", result.Checked, result.Installed)

	if result.HasErrors() {
		return fmt.Errorf("verification failed with %d error(s)", result.ErrorCount())
	}

	if result.WarningCount() > 0 {
		fmt.Printf("Verification passed with %d warning(s).\n", result.WarningCount())
	} else {
		fmt.Println("All requirements satisfied.")
	}
	return nil
}

// freezeOutput reads the snapshot file when given, and runs pip freeze
// otherwise.
func freezeOutput(freezeFile string) (string, error) {
	if freezeFile != "" {
		data, err := os.ReadFile(freezeFile)
		if err != nil {
			return "", fmt.Errorf("failed to read freeze file: %w", err)
		}
		return string(data), nil
	}

	log := newLogger(false)
	p, err := pip.New(&runner.RealExecutor{}, io.Discard, log)
	if err != nil {
		return "", err
	}
	return p.FreezeOutput(context.Background())
}
