// Package main provides the provision CLI for preparing audio-tour
// deployment environments.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set via -ldflags during build
var version = "dev"

func main() {
	rootCmd := newRootCmd()

	// Cobra handles error printing
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command for provision
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "provision",
		Short: "Environment provisioner for the audio tour application",
		Long: `provision prepares a deployment environment for the audio tour
application: native audio and PostgreSQL client libraries, the Python
toolchain, and the application's dependency manifest.

It supports:
  - Named deployment targets (container image, Linux runtime, Vercel build)
  - A yum/apt fallback chain for native libraries
  - Supabase client extras with pinned minimum versions
  - Freeze snapshots for reproducibility checks`,
		Version: version,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newPlanCmd(),
		newTargetsCmd(),
		newDoctorCmd(),
		newVerifyCmd(),
	)

	return rootCmd
}
