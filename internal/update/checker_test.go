package update

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chis/pipup/internal/pip"
	"github.com/chis/pipup/internal/version"
)

// fakeInventory returns a scripted package list.
type fakeInventory struct {
	packages []pip.Package
	err      error

	lastLocalOnly bool
}

func (f *fakeInventory) Freeze(_ context.Context, localOnly bool) ([]pip.Package, error) {
	f.lastLocalOnly = localOnly
	return f.packages, f.err
}

// fakeIndex resolves latest versions from a map; missing names collapse
// to nil like the real silent path.
type fakeIndex struct {
	latest  map[string]string
	lookups []string
}

func (f *fakeIndex) LatestVersionSilent(_ context.Context, name string) *version.Version {
	f.lookups = append(f.lookups, name)
	s, ok := f.latest[name]
	if !ok {
		return nil
	}
	v, err := version.Parse(s)
	if err != nil {
		return nil
	}
	return v
}

func pinned(t *testing.T, name, ver string) pip.Package {
	t.Helper()
	v, err := version.Parse(ver)
	require.NoError(t, err)
	return pip.Package{Name: name, Version: v}
}

func editable(name string) pip.Package {
	return pip.Package{Name: name, Editable: true}
}

func TestCheckClassification(t *testing.T) {
	inventory := &fakeInventory{packages: []pip.Package{
		pinned(t, "alpha", "1.0"),
		pinned(t, "beta", "2.0"),
		pinned(t, "gamma", "3.5"),
	}}
	index := &fakeIndex{latest: map[string]string{
		"alpha": "1.1",
		"beta":  "2.0.0",
	}}

	result, err := NewChecker(inventory, index).Check(context.Background(), CheckOptions{})
	require.NoError(t, err)

	require.Len(t, result.Packages, 3)
	assert.Equal(t, UpdateAvailable, result.Packages[0].Status)
	assert.Equal(t, "1.1", result.Packages[0].Latest)
	assert.Equal(t, "minor", result.Packages[0].Change)
	assert.Equal(t, UpToDate, result.Packages[1].Status, "2.0 equals 2.0.0 under canonical comparison")
	assert.Equal(t, NoInformation, result.Packages[2].Status)

	assert.Equal(t, 3, result.TotalChecked)
	assert.Equal(t, 1, result.UpdatesFound)
	assert.Equal(t, 1, result.UpToDate)
	assert.Equal(t, 1, result.NoInfo)
	assert.False(t, result.AllResolved, "failed lookup must flip the all-resolved flag")
}

func TestCheckAllResolved(t *testing.T) {
	inventory := &fakeInventory{packages: []pip.Package{pinned(t, "alpha", "1.0")}}
	index := &fakeIndex{latest: map[string]string{"alpha": "1.0"}}

	result, err := NewChecker(inventory, index).Check(context.Background(), CheckOptions{})
	require.NoError(t, err)

	assert.True(t, result.AllResolved)
	assert.Zero(t, result.UpdatesFound)
	assert.Empty(t, result.Updates())
}

func TestCheckEditables(t *testing.T) {
	t.Run("excluded from lookup by default", func(t *testing.T) {
		inventory := &fakeInventory{packages: []pip.Package{
			editable("devpkg"),
			pinned(t, "alpha", "1.0"),
		}}
		index := &fakeIndex{latest: map[string]string{
			"devpkg": "9.9",
			"alpha":  "1.0",
		}}

		result, err := NewChecker(inventory, index).Check(context.Background(), CheckOptions{})
		require.NoError(t, err)

		assert.Equal(t, SkippedEditable, result.Packages[0].Status)
		assert.NotContains(t, index.lookups, "devpkg", "skipped editables must never hit the index")
		assert.Empty(t, result.Updates())
		assert.False(t, result.AllResolved, "skipped editable flips the all-resolved flag")
	})

	t.Run("included on request", func(t *testing.T) {
		inventory := &fakeInventory{packages: []pip.Package{editable("devpkg")}}
		index := &fakeIndex{latest: map[string]string{"devpkg": "2.4"}}

		result, err := NewChecker(inventory, index).Check(context.Background(),
			CheckOptions{IncludeEditables: true})
		require.NoError(t, err)

		require.Len(t, result.Packages, 1)
		assert.Equal(t, UpdateAvailable, result.Packages[0].Status)
		assert.Equal(t, pip.EditableSentinel, result.Packages[0].Installed)
		assert.Equal(t, "2.4", result.Packages[0].Latest)
	})
}

func TestCheckExclusions(t *testing.T) {
	inventory := &fakeInventory{packages: []pip.Package{
		pinned(t, "alpha", "1.0"),
		pinned(t, "noisy", "0.1"),
	}}
	index := &fakeIndex{latest: map[string]string{"alpha": "1.0", "noisy": "0.2"}}

	result, err := NewChecker(inventory, index).Check(context.Background(),
		CheckOptions{Exclude: []string{"noisy"}})
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalChecked)
	assert.NotContains(t, index.lookups, "noisy")
	assert.True(t, result.AllResolved)
}

func TestCheckLocalOnly(t *testing.T) {
	inventory := &fakeInventory{}
	index := &fakeIndex{}

	_, err := NewChecker(inventory, index).Check(context.Background(), CheckOptions{LocalOnly: true})
	require.NoError(t, err)
	assert.True(t, inventory.lastLocalOnly)
}

func TestCheckInventoryFailureIsFatal(t *testing.T) {
	inventory := &fakeInventory{err: errors.New("pip exploded")}
	index := &fakeIndex{}

	_, err := NewChecker(inventory, index).Check(context.Background(), CheckOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pip exploded")
}
