package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// schema is applied on every open; CREATE IF NOT EXISTS keeps it
// idempotent across runs.
const schema = `
CREATE TABLE IF NOT EXISTS check_history (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id       TEXT NOT NULL,
	package_name TEXT NOT NULL,
	installed    TEXT NOT NULL,
	latest       TEXT NOT NULL DEFAULT '',
	status       TEXT NOT NULL,
	check_time   TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_check_history_package ON check_history(package_name, check_time);
CREATE INDEX IF NOT EXISTS idx_check_history_run ON check_history(run_id);

CREATE TABLE IF NOT EXISTS upgrade_log (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id       TEXT NOT NULL,
	package_name TEXT NOT NULL,
	from_version TEXT NOT NULL,
	to_version   TEXT NOT NULL,
	success      INTEGER NOT NULL,
	error        TEXT NOT NULL DEFAULT '',
	timestamp    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_upgrade_log_package ON upgrade_log(package_name, timestamp);
`

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage opens (creating if needed) the history database at
// dbPath and applies the schema. Errors here leave the caller free to
// continue without persistence.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "/" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite serializes writes; one connection avoids lock churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &SQLiteStorage{db: db, dbPath: dbPath}, nil
}

// Close closes the underlying database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// LogCheck records a single check outcome.
func (s *SQLiteStorage) LogCheck(ctx context.Context, entry CheckHistoryEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO check_history (run_id, package_name, installed, latest, status, check_time)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.RunID, entry.PackageName, entry.Installed, entry.Latest, entry.Status,
		normalizeTime(entry.CheckTime))
	if err != nil {
		return fmt.Errorf("inserting check history: %w", err)
	}
	return nil
}

// LogCheckBatch records a run's check outcomes in one transaction, so a
// run appears in history completely or not at all.
func (s *SQLiteStorage) LogCheckBatch(ctx context.Context, entries []CheckHistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO check_history (run_id, package_name, installed, latest, status, check_time)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		if _, err := stmt.ExecContext(ctx,
			entry.RunID, entry.PackageName, entry.Installed, entry.Latest, entry.Status,
			normalizeTime(entry.CheckTime)); err != nil {
			return fmt.Errorf("inserting check history for %s: %w", entry.PackageName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing check history: %w", err)
	}
	return nil
}

// GetCheckHistory retrieves check history for one package.
func (s *SQLiteStorage) GetCheckHistory(ctx context.Context, packageName string, limit int) ([]CheckHistoryEntry, error) {
	query := `SELECT id, run_id, package_name, installed, latest, status, check_time
		FROM check_history WHERE package_name = ? ORDER BY check_time DESC, id DESC`
	args := []any{packageName}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return s.queryChecks(ctx, query, args...)
}

// GetAllCheckHistory retrieves check history for all packages.
func (s *SQLiteStorage) GetAllCheckHistory(ctx context.Context, limit int) ([]CheckHistoryEntry, error) {
	query := `SELECT id, run_id, package_name, installed, latest, status, check_time
		FROM check_history ORDER BY check_time DESC, id DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return s.queryChecks(ctx, query, args...)
}

func (s *SQLiteStorage) queryChecks(ctx context.Context, query string, args ...any) ([]CheckHistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying check history: %w", err)
	}
	defer rows.Close()

	var entries []CheckHistoryEntry
	for rows.Next() {
		var entry CheckHistoryEntry
		if err := rows.Scan(&entry.ID, &entry.RunID, &entry.PackageName,
			&entry.Installed, &entry.Latest, &entry.Status, &entry.CheckTime); err != nil {
			return nil, fmt.Errorf("scanning check history row: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// LogUpgrade records an attempted install.
func (s *SQLiteStorage) LogUpgrade(ctx context.Context, entry UpgradeLogEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO upgrade_log (run_id, package_name, from_version, to_version, success, error, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID, entry.PackageName, entry.FromVersion, entry.ToVersion,
		entry.Success, entry.Error, normalizeTime(entry.Timestamp))
	if err != nil {
		return fmt.Errorf("inserting upgrade log: %w", err)
	}
	return nil
}

// GetUpgradeLog retrieves the upgrade audit log.
func (s *SQLiteStorage) GetUpgradeLog(ctx context.Context, limit int) ([]UpgradeLogEntry, error) {
	query := `SELECT id, run_id, package_name, from_version, to_version, success, error, timestamp
		FROM upgrade_log ORDER BY timestamp DESC, id DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying upgrade log: %w", err)
	}
	defer rows.Close()

	var entries []UpgradeLogEntry
	for rows.Next() {
		var entry UpgradeLogEntry
		if err := rows.Scan(&entry.ID, &entry.RunID, &entry.PackageName,
			&entry.FromVersion, &entry.ToVersion, &entry.Success, &entry.Error,
			&entry.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning upgrade log row: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// normalizeTime defaults a zero timestamp to now, in UTC either way.
func normalizeTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
