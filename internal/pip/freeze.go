package pip

import (
	"fmt"
	"strings"

	"github.com/chis/pipup/internal/logging"
	"github.com/chis/pipup/internal/version"
)

// ParseFreezeLine parses one line of pip freeze output.
// Returns (nil, nil) for lines that carry no package: blank lines and
// "##" comment lines.
//
// Editable installs look like
//
//	-e git+https://example.com/repo.git#egg=mypkg-dev
//
// and yield a Package with the name ("-dev" suffix stripped), no version
// and Editable set. Everything else must be "name==version".
func ParseFreezeLine(line string) (*Package, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "##") {
		return nil, nil
	}

	if strings.HasPrefix(line, "-e ") || line == "-e" {
		return parseEditableLine(line)
	}

	name, ver, ok := strings.Cut(line, "==")
	if !ok {
		return nil, fmt.Errorf("unrecognized freeze line: %q", line)
	}
	name = strings.TrimSpace(name)
	ver = strings.TrimSpace(ver)
	if name == "" {
		return nil, fmt.Errorf("unrecognized freeze line: %q", line)
	}

	parsed, err := version.Parse(ver)
	if err != nil {
		return nil, fmt.Errorf("package %s: %w", name, err)
	}

	// The advisory about a transformed version is issued here, on local
	// inventory only, matching the tool's long-standing behavior so raw
	// output stays stable for downstream pipelines.
	if canonical := parsed.Canonical(); canonical != ver {
		logging.Warn("package %s: version %q normalized to %q", name, ver, canonical)
	}

	return &Package{Name: name, Version: parsed}, nil
}

// parseEditableLine extracts the package name from the "#egg=" fragment
// of an editable install line.
func parseEditableLine(line string) (*Package, error) {
	idx := strings.LastIndex(line, "#egg=")
	if idx < 0 {
		return nil, fmt.Errorf("editable install without egg fragment: %q", line)
	}

	name := line[idx+len("#egg="):]
	// The fragment may carry further &-separated parameters.
	if amp := strings.IndexByte(name, '&'); amp >= 0 {
		name = name[:amp]
	}
	name = strings.TrimSuffix(strings.TrimSpace(name), "-dev")
	if name == "" {
		return nil, fmt.Errorf("editable install without package name: %q", line)
	}

	return &Package{Name: name, Editable: true}, nil
}

// ParseFreezeOutput parses complete pip freeze output into the installed
// package list, preserving pip's reporting order. Lines that fail to
// parse are logged and dropped; the rest of the listing is unaffected.
func ParseFreezeOutput(out string) []Package {
	var packages []Package
	for _, line := range strings.Split(out, "\n") {
		pkg, err := ParseFreezeLine(line)
		if err != nil {
			logging.Error("skipping freeze line: %v", err)
			continue
		}
		if pkg != nil {
			packages = append(packages, *pkg)
		}
	}
	return packages
}
