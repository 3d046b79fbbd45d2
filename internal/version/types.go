package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version represents a parsed PEP 440 version number.
type Version struct {
	Epoch   int
	Release []int       // numeric release components (1.2.3 -> [1 2 3])
	Pre     *Prerelease // nil for final releases
	Post    *int        // post-release number, nil if absent
	Dev     *int        // dev-release number, nil if absent
	Local   string      // local segment ("+ubuntu.1" -> "ubuntu.1")

	// Original is the input string exactly as given, for reference.
	Original string
}

// Prerelease is a pre-release marker (alpha, beta, release candidate).
type Prerelease struct {
	Label  string // "a", "b" or "rc" after normalization
	Number int
}

// Canonical returns the normalized string form of the version.
// Parsing the canonical form again yields an equal version with the
// canonical form as its own Canonical (idempotence).
func (v *Version) Canonical() string {
	var b strings.Builder

	if v.Epoch != 0 {
		b.WriteString(strconv.Itoa(v.Epoch))
		b.WriteByte('!')
	}

	parts := make([]string, len(v.Release))
	for i, n := range v.Release {
		parts[i] = strconv.Itoa(n)
	}
	b.WriteString(strings.Join(parts, "."))

	if v.Pre != nil {
		b.WriteString(v.Pre.Label)
		b.WriteString(strconv.Itoa(v.Pre.Number))
	}
	if v.Post != nil {
		b.WriteString(".post")
		b.WriteString(strconv.Itoa(*v.Post))
	}
	if v.Dev != nil {
		b.WriteString(".dev")
		b.WriteString(strconv.Itoa(*v.Dev))
	}
	if v.Local != "" {
		b.WriteByte('+')
		b.WriteString(v.Local)
	}

	return b.String()
}

// String returns the canonical form.
func (v *Version) String() string {
	return v.Canonical()
}

// IsPrerelease reports whether the version is a pre-release or dev release.
func (v *Version) IsPrerelease() bool {
	return v.Pre != nil || v.Dev != nil
}

// InvalidVersionError is returned when a version string cannot be
// normalized into a comparable form.
type InvalidVersionError struct {
	Input string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version: %q", e.Input)
}

// ChangeType represents the magnitude of a version change.
type ChangeType int

const (
	// NoChange indicates versions are identical
	NoChange ChangeType = iota
	// PatchChange indicates a patch-level change (0.0.X)
	PatchChange
	// MinorChange indicates a minor-level change (0.X.0)
	MinorChange
	// MajorChange indicates a major-level change (X.0.0)
	MajorChange
	// Downgrade indicates the new version is older
	Downgrade
)

// String returns the string representation of the change type.
func (ct ChangeType) String() string {
	switch ct {
	case NoChange:
		return "no change"
	case PatchChange:
		return "patch"
	case MinorChange:
		return "minor"
	case MajorChange:
		return "major"
	case Downgrade:
		return "downgrade"
	default:
		return "unknown"
	}
}
