package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chis/pipup/internal/update"
)

func TestParseFlagsModeConflict(t *testing.T) {
	t.Run("raw and interactive together are fatal", func(t *testing.T) {
		cmd := NewCheckCommand()
		err := cmd.ParseFlags([]string{"--raw", "--interactive"})
		assert.ErrorIs(t, err, update.ErrConflictingModes)
	})

	t.Run("short forms conflict too", func(t *testing.T) {
		cmd := NewCheckCommand()
		err := cmd.ParseFlags([]string{"-r", "-i"})
		assert.ErrorIs(t, err, update.ErrConflictingModes)
	})

	t.Run("each mode alone is accepted", func(t *testing.T) {
		for _, args := range [][]string{{"-r"}, {"-i"}, {"-a"}, {"-e"}, {"-l"}, {"-v"}, {}} {
			cmd := NewCheckCommand()
			assert.NoError(t, cmd.ParseFlags(args), "args %v", args)
		}
	})
}

func TestConfirmationDeclinedStopsAutoEditables(t *testing.T) {
	cmd := NewCheckCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--auto", "--editables"}))

	var out bytes.Buffer
	cmd.stdin = bytes.NewReader([]byte("n\n"))
	cmd.stdout = &out

	err := cmd.Run(context.Background())
	assert.ErrorIs(t, err, update.ErrConfirmationDeclined)
	assert.Contains(t, out.String(), "Continue?")
}

// checkResult builds a CheckResult the way the checker would, driving
// the counters off the package statuses.
func checkResult(packages ...update.PackageUpdate) *update.CheckResult {
	result := &update.CheckResult{Packages: packages, AllResolved: true}
	for _, pkg := range packages {
		result.TotalChecked++
		switch pkg.Status {
		case update.UpdateAvailable:
			result.UpdatesFound++
		case update.UpToDate:
			result.UpToDate++
		case update.NoInformation:
			result.NoInfo++
			result.AllResolved = false
		case update.SkippedEditable:
			result.Skipped++
			result.AllResolved = false
		}
	}
	return result
}

func TestReportRawMode(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	cmd := NewCheckCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--raw"}))
	var out bytes.Buffer
	cmd.stdout = &out

	cmd.report(checkResult(
		update.PackageUpdate{Name: "A", Installed: "1.0", Latest: "1.1", Status: update.UpdateAvailable},
		update.PackageUpdate{Name: "B", Installed: "2.0", Latest: "2.0", Status: update.UpToDate},
	))

	assert.Equal(t, "A==1.1\n", out.String(), "raw mode emits nothing but upgrade lines")
}

func TestReportDefaultMode(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	t.Run("upgradable package reported, up-to-date omitted", func(t *testing.T) {
		cmd := NewCheckCommand()
		require.NoError(t, cmd.ParseFlags(nil))
		var out bytes.Buffer
		cmd.stdout = &out

		cmd.report(checkResult(
			update.PackageUpdate{Name: "A", Installed: "1.0", Latest: "1.1",
				Status: update.UpdateAvailable, Change: "minor"},
			update.PackageUpdate{Name: "B", Installed: "2.0", Latest: "2.0", Status: update.UpToDate},
		))

		assert.Contains(t, out.String(), "A==1.1 is available (you have 1.0) [minor]")
		assert.NotContains(t, out.String(), "B==")
		assert.NotContains(t, out.String(), "Everything up-to-date")
	})

	t.Run("all resolved and current prints confirmation", func(t *testing.T) {
		cmd := NewCheckCommand()
		require.NoError(t, cmd.ParseFlags(nil))
		var out bytes.Buffer
		cmd.stdout = &out

		cmd.report(checkResult(
			update.PackageUpdate{Name: "A", Installed: "1.0", Latest: "1.0", Status: update.UpToDate},
		))

		assert.Contains(t, out.String(), "Everything up-to-date")
	})

	t.Run("skipped editable suppresses the confirmation", func(t *testing.T) {
		cmd := NewCheckCommand()
		require.NoError(t, cmd.ParseFlags(nil))
		var out bytes.Buffer
		cmd.stdout = &out

		cmd.report(checkResult(
			update.PackageUpdate{Name: "A", Installed: "1.0", Latest: "1.0", Status: update.UpToDate},
			update.PackageUpdate{Name: "E", Installed: "dev", Status: update.SkippedEditable, Editable: true},
		))

		assert.NotContains(t, out.String(), "Everything up-to-date")
		assert.NotContains(t, out.String(), "E==", "skipped editables never appear in the report")
	})

	t.Run("failed lookup suppresses the confirmation", func(t *testing.T) {
		cmd := NewCheckCommand()
		require.NoError(t, cmd.ParseFlags(nil))
		var out bytes.Buffer
		cmd.stdout = &out

		cmd.report(checkResult(
			update.PackageUpdate{Name: "A", Installed: "1.0", Status: update.NoInformation},
		))

		assert.NotContains(t, out.String(), "Everything up-to-date")
	})
}
