package update

import "github.com/chis/pipup/internal/version"

// Status represents the reconciliation outcome for one installed package.
type Status string

const (
	UpdateAvailable Status = "UPDATE_AVAILABLE"
	UpToDate        Status = "UP_TO_DATE"
	NoInformation   Status = "NO_INFORMATION"   // registry lookup produced nothing usable
	SkippedEditable Status = "SKIPPED_EDITABLE" // editable install, lookups not requested
)

// PackageUpdate is the per-package result of reconciling the installed
// version against the latest published one.
type PackageUpdate struct {
	Name       string             `json:"name"`
	Installed  string             `json:"installed,omitempty"` // canonical form, "dev" for editables
	Latest     string             `json:"latest,omitempty"`    // canonical form, empty when no information
	ChangeType version.ChangeType `json:"-"`
	Change     string             `json:"change,omitempty"` // ChangeType as a string, for JSON output
	Status     Status             `json:"status"`
	Editable   bool               `json:"editable,omitempty"`

	installed *version.Version
	latest    *version.Version
}

// InstalledVersion returns the parsed installed version, nil for editables.
func (u *PackageUpdate) InstalledVersion() *version.Version { return u.installed }

// LatestVersion returns the parsed latest version, nil when no information.
func (u *PackageUpdate) LatestVersion() *version.Version { return u.latest }

// CheckResult contains the results of one reconciliation pass.
type CheckResult struct {
	Packages     []PackageUpdate `json:"packages"`
	TotalChecked int             `json:"total_checked"`
	UpdatesFound int             `json:"updates_found"`
	UpToDate     int             `json:"up_to_date"`
	NoInfo       int             `json:"no_info"`
	Skipped      int             `json:"skipped"`

	// AllResolved is true only when every installed package produced a
	// definite answer: no failed lookups and no skipped editables.
	AllResolved bool `json:"all_resolved"`
}

// Updates returns only the packages with an update available, in
// inventory order.
func (r *CheckResult) Updates() []PackageUpdate {
	var updates []PackageUpdate
	for _, pkg := range r.Packages {
		if pkg.Status == UpdateAvailable {
			updates = append(updates, pkg)
		}
	}
	return updates
}
