package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cudkit/udsnap/internal/contract"
	"github.com/cudkit/udsnap/schema"
	"github.com/google/uuid"
)

// Table names for run tracking.
const (
	runsTable      = "udsnap_runs"
	runColorsTable = "udsnap_run_colors"
)

// RunStoreImpl implements the RunStore interface.
type RunStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.RunStore = &RunStoreImpl{} // Compile-time check

// NewRunStore creates a new RunStore with the specified backend.
func NewRunStore(backend schema.DatabaseBackend, connStr string) (contract.RunStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &RunStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetRunsDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createRunTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create run tables: %w", err)
	}

	return &RunStoreImpl{db: db, backend: backend}, nil
}

// createRunTables creates the run tracking tables.
func createRunTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{runColorsTable, getCreateRunColorsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for udsnap_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_uuid CHAR(36) NOT NULL UNIQUE,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				mode VARCHAR(16) NOT NULL,
				lambda DOUBLE NOT NULL,
				total_colors INT,
				compliance_rate DOUBLE,
				harmony_total DOUBLE,
				objective DOUBLE,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				run_uuid UUID NOT NULL UNIQUE,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				mode TEXT NOT NULL,
				lambda DOUBLE PRECISION NOT NULL,
				total_colors INT,
				compliance_rate DOUBLE PRECISION,
				harmony_total DOUBLE PRECISION,
				objective DOUBLE PRECISION,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_uuid TEXT NOT NULL UNIQUE,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				mode TEXT NOT NULL,
				lambda REAL NOT NULL,
				total_colors INTEGER,
				compliance_rate REAL,
				harmony_total REAL,
				objective REAL,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateRunColorsQuery returns the CREATE TABLE query for udsnap_run_colors.
func getCreateRunColorsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runColorsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				position INT NOT NULL,
				suggested_id VARCHAR(128) NOT NULL,
				original_color CHAR(7) NOT NULL,
				result_color CHAR(7) NOT NULL,
				zone VARCHAR(16) NOT NULL,
				distance DOUBLE NOT NULL,
				snapped BOOLEAN NOT NULL,
				reference_id VARCHAR(64) NOT NULL,
				derivation_type VARCHAR(32) NOT NULL,
				PRIMARY KEY (run_id, position)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				position INT NOT NULL,
				suggested_id TEXT NOT NULL,
				original_color TEXT NOT NULL,
				result_color TEXT NOT NULL,
				zone TEXT NOT NULL,
				distance DOUBLE PRECISION NOT NULL,
				snapped BOOLEAN NOT NULL,
				reference_id TEXT NOT NULL,
				derivation_type TEXT NOT NULL,
				PRIMARY KEY (run_id, position)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				position INTEGER NOT NULL,
				suggested_id TEXT NOT NULL,
				original_color TEXT NOT NULL,
				result_color TEXT NOT NULL,
				zone TEXT NOT NULL,
				distance REAL NOT NULL,
				snapped INTEGER NOT NULL,
				reference_id TEXT NOT NULL,
				derivation_type TEXT NOT NULL,
				PRIMARY KEY (run_id, position)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new run and returns its numeric ID and UUID.
func (rs *RunStoreImpl) BeginRun(startTime time.Time, mode schema.SnapMode, lambda float64, configParams map[string]any) (int64, string, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return 0, "", nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, "", fmt.Errorf("failed to marshal config params: %w", err)
	}

	runUUID := uuid.NewString()
	quotedTableName := quoteTableName(runsTable, rs.backend)
	ph := strings.Join(placeholders(rs.backend, 5), ", ")
	args := []any{runUUID, formatTime(startTime, rs.backend), string(mode), lambda, string(configJSON)}

	var runID int64
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (run_uuid, start_time, mode, lambda, config_params) VALUES (%s) RETURNING run_id`, quotedTableName, ph)
		err = rs.db.QueryRow(query, args...).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (run_uuid, start_time, mode, lambda, config_params) VALUES (%s)`, quotedTableName, ph)
		var result sql.Result
		result, err = rs.db.Exec(query, args...)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, "", fmt.Errorf("failed to insert run: %w", err)
	}

	return runID, runUUID, nil
}

// EndRun updates the run with completion data.
func (rs *RunStoreImpl) EndRun(runID int64, summary schema.RunSummary) error {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(runsTable, rs.backend)

	// Read start_time back to compute the duration
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, placeholders(rs.backend, 1)[0])
	start := scanTime{backend: rs.backend}
	if err := rs.db.QueryRow(query, runID).Scan(start.dest()); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	startTime, err := start.value()
	if err != nil {
		return err
	}
	if startTime == nil {
		return fmt.Errorf("run %d has no start_time", runID)
	}

	durationMs := summary.EndTime.Sub(*startTime).Milliseconds()

	ph := placeholders(rs.backend, 7)
	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_colors = %s,
		compliance_rate = %s, harmony_total = %s, objective = %s WHERE run_id = %s`,
		quotedTableName, ph[0], ph[1], ph[2], ph[3], ph[4], ph[5], ph[6])
	args := []any{
		formatTime(summary.EndTime, rs.backend), durationMs, summary.TotalColors,
		summary.ComplianceRate, summary.HarmonyTotal, summary.Objective, runID,
	}
	if _, err := rs.db.Exec(updateQuery, args...); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// RecordColors stores the optimized colors of a run in one transaction.
func (rs *RunStoreImpl) RecordColors(runID int64, colors []schema.OptimizedColor) error {
	if rs.backend == schema.NoneBackend || rs.db == nil || len(colors) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (run_id, position, suggested_id, original_color, result_color,
		zone, distance, snapped, reference_id, derivation_type) VALUES (%s)`,
		quoteTableName(runColorsTable, rs.backend), strings.Join(placeholders(rs.backend, 10), ", "))

	tx, err := rs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare color insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, c := range colors {
		if _, err := stmt.Exec(
			runID, c.Position, c.SuggestedID, c.OriginalColor, c.ResultColor,
			string(c.Zone), c.Distance, c.Snapped, c.Derivation.ReferenceID, string(c.Derivation.Type),
		); err != nil {
			return fmt.Errorf("failed to insert color %d of run %d: %w", c.Position, runID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run colors: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (rs *RunStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the run store.
func (rs *RunStoreImpl) GetStatus() (schema.RunStatus, error) {
	status := schema.RunStatus{
		Backend:    string(rs.backend),
		Connected:  rs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if rs.backend == schema.NoneBackend || rs.db == nil {
		return status, nil
	}

	quotedRuns := quoteTableName(runsTable, rs.backend)
	if err := rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedRuns)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		lastRunQuery := fmt.Sprintf("SELECT run_id, run_uuid, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quotedRuns)
		last := scanTime{backend: rs.backend}
		if err := rs.db.QueryRow(lastRunQuery).Scan(&status.LastRunID, &status.LastRunUUID, last.dest()); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		lastTime, err := last.value()
		if err != nil {
			return status, err
		}
		if lastTime != nil {
			status.LastRunTime = *lastTime
		}

		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quotedRuns)
		oldest := scanTime{backend: rs.backend}
		if err := rs.db.QueryRow(oldestRunQuery).Scan(oldest.dest()); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		oldestTime, err := oldest.value()
		if err != nil {
			return status, err
		}
		if oldestTime != nil {
			status.OldestRunTime = *oldestTime
		}
	}

	for _, table := range []string{runsTable, runColorsTable} {
		var count int64
		if err := rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, rs.backend))).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalColors = int(status.TableSizes[runColorsTable])

	return status, nil
}

// GetAllRuns retrieves all runs from the store, oldest first.
func (rs *RunStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, run_uuid, start_time, end_time, run_duration_ms, mode, lambda,
		COALESCE(total_colors, 0), COALESCE(compliance_rate, 0), COALESCE(harmony_total, 0), COALESCE(objective, 0),
		config_params FROM %s ORDER BY run_id`, quoteTableName(runsTable, rs.backend))

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		start := scanTime{backend: rs.backend}
		end := scanTime{backend: rs.backend}
		if err := rows.Scan(&record.RunID, &record.RunUUID, start.dest(), end.dest(), &record.RunDurationMs,
			&record.Mode, &record.Lambda, &record.TotalColors, &record.ComplianceRate, &record.HarmonyTotal,
			&record.Objective, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		startTime, err := start.value()
		if err != nil {
			return nil, err
		}
		if startTime != nil {
			record.StartTime = *startTime
		}
		if record.EndTime, err = end.value(); err != nil {
			return nil, err
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetAllRunColors retrieves every recorded color ordered by run and position.
func (rs *RunStoreImpl) GetAllRunColors() ([]schema.RunColorRecord, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, position, suggested_id, original_color, result_color, zone,
		distance, snapped, reference_id, derivation_type FROM %s ORDER BY run_id, position`,
		quoteTableName(runColorsTable, rs.backend))

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query run colors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunColorRecord
	for rows.Next() {
		var r schema.RunColorRecord
		if err := rows.Scan(&r.RunID, &r.Position, &r.SuggestedID, &r.OriginalColor, &r.ResultColor,
			&r.Zone, &r.Distance, &r.Snapped, &r.ReferenceID, &r.DerivationType); err != nil {
			return nil, fmt.Errorf("failed to scan run color: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run colors: %w", err)
	}
	return results, nil
}
