package doctor

import (
	"context"
	"regexp"
	"strings"

	"github.com/Philipao0122/audioAgentTour/pkg/runner"
)

// Version patterns for the tools we probe.
var (
	aptVersionRe    = regexp.MustCompile(`apt ([\d.]+)`)
	yumVersionRe    = regexp.MustCompile(`([\d.]+)`)
	pythonVersionRe = regexp.MustCompile(`Python ([\d.]+)`)
	pipVersionRe    = regexp.MustCompile(`pip ([\d.]+)`)
)

// checkTool checks whether a tool is installed and extracts its version.
func checkTool(ctx context.Context, exec runner.CommandExecutor, id, name, desc string, versionArgs []string, versionRe *regexp.Regexp, fix *FixCommand) Check {
	check := Check{
		ID:          id,
		Name:        name,
		Description: desc,
		FixCommand:  fix,
	}

	path, err := exec.LookPath(id)
	if err != nil {
		check.Status = StatusMissing
		check.Message = "not found on PATH"
		return check
	}

	output, err := exec.Run(ctx, path, versionArgs...)
	if err != nil {
		check.Status = StatusWarning
		check.Message = "installed but version check failed"
		return check
	}

	check.Status = StatusOK
	if matches := versionRe.FindStringSubmatch(output); len(matches) > 1 {
		check.Message = "version " + matches[1]
	} else {
		check.Message = strings.TrimSpace(firstLine(output))
	}
	return check
}

// CheckApt checks for apt-get.
func CheckApt(ctx context.Context, exec runner.CommandExecutor) Check {
	return checkTool(ctx, exec, IDApt, "apt-get", "Debian-family package manager",
		[]string{"--version"}, aptVersionRe, &FixCommand{
			Description: "apt-get ships with Debian/Ubuntu base images",
			Command:     "docker run --rm -it debian:bookworm-slim",
		})
}

// CheckYum checks for yum.
func CheckYum(ctx context.Context, exec runner.CommandExecutor) Check {
	return checkTool(ctx, exec, IDYum, "yum", "RPM-family package manager (Amazon Linux, Vercel)",
		[]string{"--version"}, yumVersionRe, nil)
}

// CheckPython checks for python3.
func CheckPython(ctx context.Context, exec runner.CommandExecutor) Check {
	return checkTool(ctx, exec, IDPython, "python3", "Python interpreter",
		[]string{"--version"}, pythonVersionRe, &FixCommand{
			Description: "Install via system package manager",
			Command:     "apt-get install -y python3 python3-pip || yum install -y python3 python3-pip",
			Sudo:        true,
		})
}

// CheckPip checks for a usable pip (pip3, pip or python3 -m pip).
func CheckPip(ctx context.Context, exec runner.CommandExecutor) Check {
	check := Check{
		ID:          IDPip,
		Name:        "pip",
		Description: "Python package installer",
		FixCommand: &FixCommand{
			Description: "Bootstrap pip through the interpreter",
			Command:     "python3 -m ensurepip --upgrade",
		},
	}

	for _, name := range []string{"pip3", "pip"} {
		if _, err := exec.LookPath(name); err != nil {
			continue
		}
		output, err := exec.Run(ctx, name, "--version")
		if err != nil {
			check.Status = StatusWarning
			check.Message = name + " installed but version check failed"
			return check
		}
		check.Status = StatusOK
		if matches := pipVersionRe.FindStringSubmatch(output); len(matches) > 1 {
			check.Message = "version " + matches[1]
		} else {
			check.Message = strings.TrimSpace(firstLine(output))
		}
		return check
	}

	// Fall back to the module form.
	if _, err := exec.LookPath("python3"); err == nil {
		if _, err := exec.Run(ctx, "python3", "-m", "pip", "--version"); err == nil {
			check.Status = StatusOK
			check.Message = "available as python3 -m pip"
			return check
		}
	}

	check.Status = StatusMissing
	check.Message = "no pip3, pip or python3 -m pip"
	return check
}

// CheckManifest checks that the dependency manifest exists.
func CheckManifest(exec runner.CommandExecutor, path string) Check {
	check := Check{
		ID:          IDManifest,
		Name:        "manifest",
		Description: "Python dependency manifest",
	}

	if exec.FileExists(path) {
		check.Status = StatusOK
		check.Message = path
		return check
	}

	check.Status = StatusMissing
	check.Message = path + " not found"
	return check
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
