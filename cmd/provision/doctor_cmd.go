package main

import (
	"context"
	"fmt"

	"github.com/Philipao0122/audioAgentTour/pkg/doctor"
	"github.com/Philipao0122/audioAgentTour/pkg/ui"
)

// runDoctor checks the environment and prints the results by group.
func runDoctor(manifestPath string) error {
	checker := doctor.NewChecker(manifestPath)
	groups := checker.CheckAll(context.Background())

	for _, group := range groups {
		fmt.Println(ui.TitleStyle.Render(group.Name))
		for _, check := range group.Checks {
			glyph := ui.StatusGlyph(check.Status == doctor.StatusOK, check.Status == doctor.StatusWarning)
			fmt.Printf("  %s %-10s %s\n", glyph, check.Name, ui.DimStyle.Render(check.Message))

			if check.Status == doctor.StatusMissing && check.FixCommand != nil {
				fix := check.FixCommand.Command
				if check.FixCommand.Sudo {
					fix = "sudo " + fix
				}
				fmt.Printf("    %s\n", ui.DimStyle.Render("fix: "+fix))
			}
		}
		fmt.Println()
	}

	summary := doctor.GetSummary(groups)
	if doctor.HasIssues(groups) {
		return fmt.Errorf("%d check(s) failed", summary.Missing+summary.Errors)
	}

	if summary.Warnings > 0 {
		fmt.Printf("Environment ready with %d warning(s).\n", summary.Warnings)
	} else {
		fmt.Println("Environment ready.")
	}
	return nil
}
