// Package update reconciles the local package inventory against the
// latest published versions and drives the report, prompt and install
// flows built on top of that comparison.
package update

import (
	"context"
	"fmt"

	"github.com/chis/pipup/internal/logging"
	"github.com/chis/pipup/internal/pip"
	"github.com/chis/pipup/internal/storage"
	"github.com/chis/pipup/internal/version"
)

// Inventory lists the locally installed packages. Implemented by
// pip.Service; tests substitute a fake.
type Inventory interface {
	Freeze(ctx context.Context, localOnly bool) ([]pip.Package, error)
}

// Index looks up the latest published version of a package. The batch
// path never fails; any lookup problem collapses to nil. Implemented by
// registry.PyPI.
type Index interface {
	LatestVersionSilent(ctx context.Context, name string) *version.Version
}

// CheckOptions controls one reconciliation pass.
type CheckOptions struct {
	// LocalOnly restricts the inventory to the isolated environment
	// (pip freeze --local).
	LocalOnly bool

	// IncludeEditables opts editable installs into remote lookups.
	// Without it they are surfaced as skipped and never queried.
	IncludeEditables bool

	// Exclude lists package names to leave out of the pass entirely.
	Exclude []string
}

// Checker runs the reconciliation loop: one inventory read, then one
// sequential lookup per package.
type Checker struct {
	inventory Inventory
	index     Index
	store     storage.Storage // nil disables history
	runID     string
}

// NewChecker creates a checker over the given inventory and index.
func NewChecker(inventory Inventory, index Index) *Checker {
	return &Checker{inventory: inventory, index: index}
}

// SetStorage enables history recording under the given run ID.
func (c *Checker) SetStorage(store storage.Storage, runID string) {
	c.store = store
	c.runID = runID
}

// Check enumerates installed packages and classifies each one against
// the index. A single package's lookup failure never aborts the pass;
// only an inventory read failure is fatal.
func (c *Checker) Check(ctx context.Context, opts CheckOptions) (*CheckResult, error) {
	installed, err := c.inventory.Freeze(ctx, opts.LocalOnly)
	if err != nil {
		return nil, fmt.Errorf("listing installed packages: %w", err)
	}

	excluded := make(map[string]bool, len(opts.Exclude))
	for _, name := range opts.Exclude {
		excluded[name] = true
	}

	result := &CheckResult{AllResolved: true}
	for _, pkg := range installed {
		if excluded[pkg.Name] {
			logging.Debug("package %s excluded by configuration", pkg.Name)
			continue
		}

		upd := c.classify(ctx, pkg, opts)
		result.Packages = append(result.Packages, upd)
		result.TotalChecked++

		switch upd.Status {
		case UpdateAvailable:
			result.UpdatesFound++
		case UpToDate:
			result.UpToDate++
		case NoInformation:
			result.NoInfo++
			result.AllResolved = false
		case SkippedEditable:
			result.Skipped++
			result.AllResolved = false
		}
	}

	c.record(ctx, result)
	return result, nil
}

// classify performs the per-package lookup and comparison.
func (c *Checker) classify(ctx context.Context, pkg pip.Package, opts CheckOptions) PackageUpdate {
	upd := PackageUpdate{
		Name:      pkg.Name,
		Installed: pkg.VersionString(),
		Editable:  pkg.Editable,
		installed: pkg.Version,
	}

	if pkg.Editable && !opts.IncludeEditables {
		upd.Status = SkippedEditable
		return upd
	}

	latest := c.index.LatestVersionSilent(ctx, pkg.Name)
	if latest == nil {
		upd.Status = NoInformation
		return upd
	}
	upd.latest = latest
	upd.Latest = latest.Canonical()

	// Editables carry no comparable version; any published release
	// counts as an available update once lookups are opted in.
	if pkg.Editable {
		upd.Status = UpdateAvailable
		return upd
	}

	if version.IsNewer(pkg.Version, latest) {
		upd.Status = UpdateAvailable
		upd.ChangeType = version.GetChangeType(pkg.Version, latest)
		upd.Change = upd.ChangeType.String()
		return upd
	}

	upd.Status = UpToDate
	return upd
}

// record writes the pass to history storage. Storage failure is logged
// and otherwise ignored; decisions never depend on persisted state.
func (c *Checker) record(ctx context.Context, result *CheckResult) {
	if c.store == nil {
		return
	}

	entries := make([]storage.CheckHistoryEntry, 0, len(result.Packages))
	for _, pkg := range result.Packages {
		entries = append(entries, storage.CheckHistoryEntry{
			RunID:       c.runID,
			PackageName: pkg.Name,
			Installed:   pkg.Installed,
			Latest:      pkg.Latest,
			Status:      string(pkg.Status),
		})
	}

	if err := c.store.LogCheckBatch(ctx, entries); err != nil {
		logging.Warn("failed to record check history: %v", err)
	}
}
