// Package storage persists an append-only audit of check results and
// upgrade operations. It is strictly a history: nothing in the
// reconciliation loop ever reads it back, so a broken database degrades
// to a run without persistence, never to a failed run.
package storage

import (
	"context"
	"time"
)

// Check status constants, stored verbatim in history rows.
const (
	CheckStatusUpToDate        = "UP_TO_DATE"
	CheckStatusUpdateAvailable = "UPDATE_AVAILABLE"
	CheckStatusNoInformation   = "NO_INFORMATION"
	CheckStatusSkippedEditable = "SKIPPED_EDITABLE"
)

// CheckHistoryEntry is one package's outcome from one reconciliation run.
type CheckHistoryEntry struct {
	ID          int64     `json:"id"`
	RunID       string    `json:"run_id"`
	PackageName string    `json:"package"`
	Installed   string    `json:"installed"`
	Latest      string    `json:"latest,omitempty"`
	Status      string    `json:"status"`
	CheckTime   time.Time `json:"check_time"`
}

// UpgradeLogEntry is one attempted install.
type UpgradeLogEntry struct {
	ID          int64     `json:"id"`
	RunID       string    `json:"run_id"`
	PackageName string    `json:"package"`
	FromVersion string    `json:"from_version"`
	ToVersion   string    `json:"to_version"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Storage defines the persistence operations. Implementations must
// tolerate concurrent-free, single-run CLI usage and fail soft: callers
// treat every error here as a warning, not a stop.
type Storage interface {
	// LogCheck records a single check outcome.
	LogCheck(ctx context.Context, entry CheckHistoryEntry) error

	// LogCheckBatch records a whole run's check outcomes atomically.
	LogCheckBatch(ctx context.Context, entries []CheckHistoryEntry) error

	// GetCheckHistory retrieves check history for one package, most
	// recent first. limit <= 0 means no limit.
	GetCheckHistory(ctx context.Context, packageName string, limit int) ([]CheckHistoryEntry, error)

	// GetAllCheckHistory retrieves check history for all packages, most
	// recent first. limit <= 0 means no limit.
	GetAllCheckHistory(ctx context.Context, limit int) ([]CheckHistoryEntry, error)

	// LogUpgrade records an attempted install.
	LogUpgrade(ctx context.Context, entry UpgradeLogEntry) error

	// GetUpgradeLog retrieves the upgrade audit log, most recent first.
	// limit <= 0 means no limit.
	GetUpgradeLog(ctx context.Context, limit int) ([]UpgradeLogEntry, error)

	// Close releases the underlying database.
	Close() error
}
