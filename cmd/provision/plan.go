package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Philipao0122/audioAgentTour/pkg/config"
	"github.com/Philipao0122/audioAgentTour/pkg/provision"
	"github.com/Philipao0122/audioAgentTour/pkg/target"
	"github.com/Philipao0122/audioAgentTour/pkg/ui"
)

// runPlan prints the step sequence for a target without executing it.
func runPlan(targetName string, skipOS bool) error {
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

	tgt, err := resolveTarget(targetName, cfg, registry)
	if err != nil {
		return err
	}

	fmt.Println(ui.TitleStyle.Render(fmt.Sprintf("Plan for %s (%s)", tgt.Name, tgt.DisplayName)))

	for i, stage := range provision.PlanStages(tgt, skipOS || cfg.SkipOS) {
		fmt.Printf("%d. %s\n", i+1, stage.DisplayName())

		switch stage {
		case provision.StageOSPackages:
			for _, family := range tgt.Managers {
				if packages := tgt.Packages(family); len(packages) > 0 {
					fmt.Printf("   %s\n", ui.DimStyle.Render(fmt.Sprintf("%s: %s", family, strings.Join(packages, " "))))
				}
			}
			if tgt.Steps.OSBestEffort {
				fmt.Printf("   %s\n", ui.DimStyle.Render("best effort: failures are ignored"))
			}
		case provision.StageManifest:
			manifestPath := firstNonEmpty(cfg.Manifest, tgt.ManifestPath)
			fmt.Printf("   %s\n", ui.DimStyle.Render("manifest: "+manifestPath))
		case provision.StageExtras:
			specs := make([]string, len(tgt.Extras))
			for j, e := range tgt.Extras {
				specs[j] = e.Spec()
			}
			fmt.Printf("   %s\n", ui.DimStyle.Render(strings.Join(specs, " ")))
		case provision.StageFreeze:
			freezePath := firstNonEmpty(cfg.FreezePath, tgt.FreezePath)
			fmt.Printf("   %s\n", ui.DimStyle.Render("output: "+freezePath))
		}
	}

	return nil
}
