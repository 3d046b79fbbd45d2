// Package testutil provides shared testing utilities for the pipup test
// suite: scripted fakes for the pip subprocess and the index client,
// plus history entry factories.
package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chis/pipup/internal/storage"
)

// Common test errors for use in mocks
var (
	ErrMockNotFound    = errors.New("not found")
	ErrMockUnavailable = errors.New("service unavailable")
	ErrMockSubprocess  = errors.New("subprocess failed")
)

// FakeRunner satisfies pip.Runner with a scripted output and error.
// Every invocation is recorded for assertions.
type FakeRunner struct {
	Output []byte
	Err    error

	mu    sync.Mutex
	Calls [][]string
}

// Run records the invocation and returns the scripted result.
func (f *FakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, append([]string{name}, args...))
	return f.Output, f.Err
}

// FakeInstaller satisfies update.Installer, recording each requirement
// and failing for names listed in FailFor.
type FakeInstaller struct {
	FailFor map[string]error

	mu        sync.Mutex
	Installed []string
}

// Install records the requirement and returns the scripted failure, if any.
func (f *FakeInstaller) Install(_ context.Context, name, version string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.FailFor[name]; ok {
		return err
	}
	f.Installed = append(f.Installed, name+"=="+version)
	return nil
}

// NewCheckHistoryEntry creates a CheckHistoryEntry for testing.
func NewCheckHistoryEntry(packageName, status string) storage.CheckHistoryEntry {
	return storage.CheckHistoryEntry{
		RunID:       "test-run",
		PackageName: packageName,
		Installed:   "1.0.0",
		Latest:      "1.1.0",
		Status:      status,
		CheckTime:   time.Now().UTC(),
	}
}

// NewUpgradeLogEntry creates an UpgradeLogEntry for testing.
func NewUpgradeLogEntry(packageName string, success bool) storage.UpgradeLogEntry {
	entry := storage.UpgradeLogEntry{
		RunID:       "test-run",
		PackageName: packageName,
		FromVersion: "1.0.0",
		ToVersion:   "1.1.0",
		Success:     success,
		Timestamp:   time.Now().UTC(),
	}
	if !success {
		entry.Error = "install failed"
	}
	return entry
}
