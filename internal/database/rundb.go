package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/sitecheck/internal/model"
)

// RunDB provides SQLite-based storage for validation run history.
// It manages connection pooling and provides methods for saving and
// querying past reports.
//
// Design decision: We use a single database file for all site roots rather
// than one file per root. This keeps the history command simple and makes
// backup/restore a single-file operation.
type RunDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a RunDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, "sitecheck.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (rdb *RunDB) createTables() error {
	schema := `
	-- Run records store complete validation reports as JSON plus counters
	CREATE TABLE IF NOT EXISTS check_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		root TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		pass_count INTEGER NOT NULL DEFAULT 0,
		fail_count INTEGER NOT NULL DEFAULT 0,
		skip_count INTEGER NOT NULL DEFAULT 0,
		warn_count INTEGER NOT NULL DEFAULT 0,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_root ON check_runs(root);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON check_runs(timestamp);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveReport saves a complete validation report as JSON with its counters.
func (rdb *RunDB) SaveReport(ctx context.Context, report *model.Report) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	query := `
	INSERT INTO check_runs (root, pass_count, fail_count, skip_count, warn_count, report_json)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = rdb.db.ExecContext(ctx, query,
		report.Root,
		report.PassCount,
		report.FailCount,
		report.SkipCount,
		report.WarnCount,
		string(reportJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	return nil
}

// GetLatestReport retrieves the most recent report for a site root.
// Returns nil without error when no run is recorded.
func (rdb *RunDB) GetLatestReport(ctx context.Context, root string) (*model.Report, error) {
	query := `
	SELECT report_json FROM check_runs
	WHERE root = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`

	var reportJSON string
	err := rdb.db.QueryRowContext(ctx, query, root).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var report model.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// GetRunHistory retrieves the most recent reports for a site root, newest
// first. A limit of 0 or less returns the full history.
func (rdb *RunDB) GetRunHistory(ctx context.Context, root string, limit int) ([]*model.Report, error) {
	query := `
	SELECT report_json FROM check_runs
	WHERE root = ?
	ORDER BY timestamp DESC, id DESC
	`
	args := []interface{}{root}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get run history: %w", err)
	}
	defer rows.Close()

	var reports []*model.Report
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}

		var report model.Report
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			continue // Skip malformed reports
		}
		reports = append(reports, &report)
	}

	return reports, rows.Err()
}

// RunMetadata contains summary information about a stored run.
// This is used for displaying run history without loading the full report.
type RunMetadata struct {
	// ID is the unique identifier of the run in the database.
	ID int64

	// Root is the validated site root.
	Root string

	// Timestamp is when the run was performed.
	Timestamp time.Time

	// PassCount is the number of passed checks.
	PassCount int

	// FailCount is the number of failed checks.
	FailCount int

	// SkipCount is the number of skipped checks.
	SkipCount int

	// WarnCount is the number of advisory findings.
	WarnCount int
}

// GetRunHistoryWithMetadata retrieves run metadata for a site root, newest
// first. This is more efficient than GetRunHistory when only the counters
// are needed. A limit of 0 or less returns the full history.
func (rdb *RunDB) GetRunHistoryWithMetadata(ctx context.Context, root string, limit int) ([]RunMetadata, error) {
	query := `
	SELECT id, root, timestamp, pass_count, fail_count, skip_count, warn_count
	FROM check_runs
	WHERE root = ?
	ORDER BY timestamp DESC, id DESC
	`
	args := []interface{}{root}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get run history: %w", err)
	}
	defer rows.Close()

	var results []RunMetadata
	for rows.Next() {
		var meta RunMetadata
		var timestamp string

		err := rows.Scan(
			&meta.ID,
			&meta.Root,
			&timestamp,
			&meta.PassCount,
			&meta.FailCount,
			&meta.SkipCount,
			&meta.WarnCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}

		meta.Timestamp = parseTimestamp(timestamp)
		results = append(results, meta)
	}

	return results, rows.Err()
}

// GetReportByID retrieves a report by its database ID.
// Returns nil without error when the ID is unknown.
func (rdb *RunDB) GetReportByID(ctx context.Context, id int64) (*model.Report, error) {
	query := `
	SELECT report_json FROM check_runs
	WHERE id = ?
	`

	var reportJSON string
	err := rdb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var report model.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// ListCheckedRoots returns all site roots with recorded runs.
func (rdb *RunDB) ListCheckedRoots(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT root FROM check_runs
	ORDER BY root
	`

	rows, err := rdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list roots: %w", err)
	}
	defer rows.Close()

	var roots []string
	for rows.Next() {
		var root string
		if err := rows.Scan(&root); err != nil {
			return nil, fmt.Errorf("failed to scan root: %w", err)
		}
		roots = append(roots, root)
	}

	return roots, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
