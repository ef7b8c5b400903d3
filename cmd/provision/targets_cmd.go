package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Philipao0122/audioAgentTour/pkg/target"
	"github.com/Philipao0122/audioAgentTour/pkg/ui"
)

// runTargets lists the available deployment targets.
func runTargets(_ *cobra.Command, _ []string) error {
	registry, err := target.LoadDefaults()
	if err != nil {
		return fmt.Errorf("failed to load targets: %w", err)
	}

	fmt.Printf("Found %d targets:\n\n", len(registry.Targets))

	for _, tgt := range registry.Targets {
		fmt.Printf("%s (%s)\n", ui.TitleStyle.Render(tgt.Name), tgt.DisplayName)
		fmt.Printf("  %s\n", tgt.Description)

		families := make([]string, len(tgt.Managers))
		for i, f := range tgt.Managers {
			families[i] = f.String()
		}
		fmt.Printf("  managers: %s\n", strings.Join(families, " > "))

		var optional []string
		if tgt.Steps.CachePurge {
			optional = append(optional, "cache purge")
		}
		if tgt.Steps.Freeze {
			optional = append(optional, "freeze snapshot")
		}
		if len(tgt.Extras) > 0 {
			optional = append(optional, fmt.Sprintf("%d extras", len(tgt.Extras)))
		}
		if len(optional) > 0 {
			fmt.Printf("  extras: %s\n", strings.Join(optional, ", "))
		}
		fmt.Println()
	}

	return nil
}
