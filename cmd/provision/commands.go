package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Philipao0122/audioAgentTour/pkg/config"
	"github.com/Philipao0122/audioAgentTour/pkg/target"
)

// targetEnvVar selects the target when --target is not given.
const targetEnvVar = "PROVISION_TARGET"

// newRunCmd creates the run subcommand (main command)
func newRunCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Provision the selected deployment target",
		Long: `Execute the provisioning sequence for a target: update the OS package
index, install native libraries through the yum/apt fallback chain, upgrade
the Python tooling, install the dependency manifest, then target-specific
extras, cache purge and freeze snapshot.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runRun(flags)
		},
	}

	cmd.Flags().StringVarP(&flags.target, "target", "t", "", "Deployment target (container, runtime, vercel)")
	cmd.Flags().StringVarP(&flags.manifest, "manifest", "m", "", "Dependency manifest path (overrides target default)")
	cmd.Flags().StringVarP(&flags.freezePath, "freeze-output", "o", "", "Freeze snapshot path (overrides target default)")
	cmd.Flags().BoolVar(&flags.skipOS, "skip-os", false, "Skip OS index update and native-library installation")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "Show interactive progress")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	return cmd
}

// newPlanCmd creates the plan subcommand
func newPlanCmd() *cobra.Command {
	var targetName string
	var skipOS bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the provisioning steps without executing them",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runPlan(targetName, skipOS)
		},
	}

	cmd.Flags().StringVarP(&targetName, "target", "t", "", "Deployment target (container, runtime, vercel)")
	cmd.Flags().BoolVar(&skipOS, "skip-os", false, "Skip OS index update and native-library installation")

	return cmd
}

// newTargetsCmd creates the targets subcommand
func newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List available deployment targets",
		RunE:  runTargets,
	}
}

// newDoctorCmd creates the doctor subcommand
func newDoctorCmd() *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the environment for required tools",
		Long:  `Check that a supported OS package manager, the Python toolchain and the dependency manifest are available.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDoctor(manifestPath)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "requirements.txt", "Dependency manifest path")

	return cmd
}

// newVerifyCmd creates the verify subcommand
func newVerifyCmd() *cobra.Command {
	var manifestPath, freezeFile string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify installed packages against the manifest",
		Long: `Compare the installed Python packages (pip freeze, or a previously
written freeze snapshot) against the dependency manifest's version
constraints.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runVerify(manifestPath, freezeFile)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "requirements.txt", "Dependency manifest path")
	cmd.Flags().StringVar(&freezeFile, "freeze-file", "", "Read a freeze snapshot instead of running pip freeze")

	return cmd
}

// resolveTarget picks the target: flag, then environment, then config, then
// the container default.
func resolveTarget(flagValue string, cfg *config.Config, registry *target.Registry) (*target.Target, error) {
	name := flagValue
	if name == "" {
		name = os.Getenv(targetEnvVar)
	}
	if name == "" {
		name = cfg.DefaultTarget
	}
	if name == "" {
		name = "container"
	}

	tgt := registry.Get(name)
	if tgt == nil {
		return nil, fmt.Errorf("unknown target %q (available: %v)", name, registry.Names())
	}
	return tgt, nil
}

// newLogger builds the CLI logger.
func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}
