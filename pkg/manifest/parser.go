package manifest

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Pre-compiled patterns for requirement lines.
var (
	// name, optional [extras], rest of line
	nameRe = regexp.MustCompile(`^([A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?)\s*(\[([^\]]*)\])?\s*(.*)$`)

	// one version specifier; === before == before =-prefixed ops
	specRe = regexp.MustCompile(`^(===|==|!=|>=|<=|~=|>|<)\s*([^,\s]+)\s*$`)
)

// Load reads and parses a manifest file. A missing file is an error; the
// manifest install step has no best-effort fallback.
func Load(path string) (*Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest not readable: %w", err)
	}
	defer file.Close()

	m := &Manifest{Path: path}
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		// Strip trailing comments. A '#' only starts a comment at the
		// beginning of the line or after whitespace.
		if idx := commentIndex(line); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// pip options, nested includes, editable installs
		if strings.HasPrefix(line, "-") {
			m.Skipped = append(m.Skipped, line)
			continue
		}

		// direct references (name @ url) and bare URLs
		if strings.Contains(line, "@") || strings.Contains(line, "://") {
			m.Skipped = append(m.Skipped, line)
			continue
		}

		req, err := parseLine(line, lineNum)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNum, err)
		}
		m.Requirements = append(m.Requirements, *req)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	return m, nil
}

// parseLine parses a single requirement line (comments already stripped).
func parseLine(line string, lineNum int) (*Requirement, error) {
	// Split off the environment marker.
	marker := ""
	if idx := strings.Index(line, ";"); idx >= 0 {
		marker = strings.TrimSpace(line[idx+1:])
		line = strings.TrimSpace(line[:idx])
	}

	matches := nameRe.FindStringSubmatch(line)
	if matches == nil || matches[1] == "" {
		return nil, fmt.Errorf("invalid requirement %q", line)
	}

	req := &Requirement{
		Name:   matches[1],
		Marker: marker,
		Line:   lineNum,
	}

	if matches[4] != "" {
		for _, extra := range strings.Split(matches[4], ",") {
			if extra = strings.TrimSpace(extra); extra != "" {
				req.Extras = append(req.Extras, extra)
			}
		}
	}

	rest := strings.TrimSpace(matches[5])
	rest = strings.Trim(rest, "()")
	if rest == "" {
		return req, nil
	}

	for _, part := range strings.Split(rest, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		spec := specRe.FindStringSubmatch(part)
		if spec == nil {
			return nil, fmt.Errorf("invalid version specifier %q for %s", part, req.Name)
		}
		req.Constraints = append(req.Constraints, Constraint{
			Op:      ConstraintOp(spec[1]),
			Version: spec[2],
		})
	}

	return req, nil
}

// commentIndex returns the index where a trailing comment begins, or -1.
func commentIndex(line string) int {
	for i, r := range line {
		if r != '#' {
			continue
		}
		if i == 0 {
			return 0
		}
		if prev := line[i-1]; prev == ' ' || prev == '\t' {
			return i
		}
	}
	return -1
}
