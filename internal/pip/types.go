package pip

import "github.com/chis/pipup/internal/version"

// EditableSentinel is the version placeholder for editable installs,
// which carry no fixed released version number.
const EditableSentinel = "dev"

// Package is a single installed package as reported by pip freeze.
type Package struct {
	// Name is the distribution name as pip reports it.
	Name string

	// Version is the parsed pinned version, nil for editable installs.
	Version *version.Version

	// Editable marks a local development install (pip freeze "-e" line).
	Editable bool
}

// VersionString returns the pinned version, or the editable sentinel.
func (p Package) VersionString() string {
	if p.Editable || p.Version == nil {
		return EditableSentinel
	}
	return p.Version.Canonical()
}
