package iocache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cudkit/udsnap/internal/contract"
	"github.com/cudkit/udsnap/schema"
	"github.com/go-sql-driver/mysql"
)

// resultDialect holds the per-backend SQL for the optimization result table.
type resultDialect struct {
	keyType     string
	payloadType string
	stampType   string
	upsert      string // format verb receives the quoted table name
}

var resultDialects = map[schema.DatabaseBackend]resultDialect{
	schema.SQLiteBackend: {
		keyType: "TEXT", payloadType: "BLOB", stampType: "INTEGER",
		upsert: `INSERT OR REPLACE INTO %s (result_key, payload, engine_version, stored_at) VALUES (?, ?, ?, ?)`,
	},
	schema.MySQLBackend: {
		keyType: "VARCHAR(255)", payloadType: "MEDIUMBLOB", stampType: "BIGINT",
		upsert: `INSERT INTO %s (result_key, payload, engine_version, stored_at) VALUES (?, ?, ?, ?) AS incoming
ON DUPLICATE KEY UPDATE payload = incoming.payload, engine_version = incoming.engine_version, stored_at = incoming.stored_at`,
	},
	schema.PostgreSQLBackend: {
		keyType: "TEXT", payloadType: "BYTEA", stampType: "BIGINT",
		upsert: `INSERT INTO %s (result_key, payload, engine_version, stored_at) VALUES ($1, $2, $3, $4)
ON CONFLICT (result_key) DO UPDATE SET payload = EXCLUDED.payload, engine_version = EXCLUDED.engine_version, stored_at = EXCLUDED.stored_at`,
	},
}

func dialectFor(backend schema.DatabaseBackend) resultDialect {
	if d, ok := resultDialects[backend]; ok {
		return d
	}
	return resultDialects[schema.SQLiteBackend]
}

// resultStore keeps serialized optimization results keyed by palette fingerprint.
// With the none backend every read misses and every write is dropped.
type resultStore struct {
	db      *sql.DB
	table   string
	backend schema.DatabaseBackend
	connStr string
}

var _ contract.CacheStore = (*resultStore)(nil)

// NewCacheStore opens the result table for backend, creating it when absent.
func NewCacheStore(tableName string, backend schema.DatabaseBackend, connStr string) (contract.CacheStore, error) {
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}
	store := &resultStore{table: tableName, backend: backend, connStr: connStr}
	if backend == schema.NoneBackend {
		return store, nil
	}

	db, err := openDB(backend, connStr, GetDBFilePath())
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(createResultTableSQL(tableName, backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}
	store.db = db
	return store, nil
}

func createResultTableSQL(tableName string, backend schema.DatabaseBackend) string {
	d := dialectFor(backend)
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	result_key %s PRIMARY KEY,
	payload %s NOT NULL,
	engine_version INTEGER NOT NULL,
	stored_at %s NOT NULL
)`, quoteTableName(tableName, backend), d.keyType, d.payloadType, d.stampType)
}

func (rs *resultStore) upsertSQL() string {
	return fmt.Sprintf(dialectFor(rs.backend).upsert, rs.quoted())
}

func (rs *resultStore) quoted() string {
	return quoteTableName(rs.table, rs.backend)
}

func (rs *resultStore) disabled() bool {
	return rs.backend == schema.NoneBackend || rs.db == nil
}

// Get returns the payload, engine version and storage time for key.
// A miss is reported as sql.ErrNoRows.
func (rs *resultStore) Get(key string) ([]byte, int, int64, error) {
	if rs.disabled() {
		return nil, 0, 0, sql.ErrNoRows
	}
	var (
		payload  []byte
		version  int
		storedAt int64
	)
	query := fmt.Sprintf(`SELECT payload, engine_version, stored_at FROM %s WHERE result_key = %s`,
		rs.quoted(), placeholders(rs.backend, 1)[0])
	if err := rs.db.QueryRow(query, key).Scan(&payload, &version, &storedAt); err != nil {
		return nil, 0, 0, err
	}
	return payload, version, storedAt, nil
}

// Set writes payload under key, replacing any earlier result.
func (rs *resultStore) Set(key string, payload []byte, version int, storedAt int64) error {
	if rs.disabled() {
		return nil
	}
	_, err := rs.db.Exec(rs.upsertSQL(), key, payload, version, storedAt)
	return err
}

// Close releases the connection pool.
func (rs *resultStore) Close() error {
	if rs.db == nil {
		return nil
	}
	return rs.db.Close()
}

// GetStatus reports entry counts, the stored_at range and the on-disk size of the table.
func (rs *resultStore) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{Backend: string(rs.backend), Connected: rs.db != nil}
	if rs.disabled() {
		return status, nil
	}

	if err := rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", rs.quoted())).Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to count cached results: %w", err)
	}
	if status.TotalEntries == 0 {
		return status, nil
	}

	var newest, oldest int64
	if err := rs.db.QueryRow(fmt.Sprintf("SELECT MAX(stored_at), MIN(stored_at) FROM %s", rs.quoted())).Scan(&newest, &oldest); err != nil {
		return status, fmt.Errorf("failed to read cached result range: %w", err)
	}
	status.LastEntryTime = time.Unix(newest, 0)
	status.OldestEntryTime = time.Unix(oldest, 0)
	status.TableSizeBytes = rs.tableSize(status.TotalEntries)
	return status, nil
}

// tableSize asks the backend for the table footprint and falls back to
// an estimate of one kilobyte per cached palette.
func (rs *resultStore) tableSize(entries int) int64 {
	estimate := int64(entries) * 1000
	var size int64
	switch rs.backend {
	case schema.SQLiteBackend:
		if err := rs.db.QueryRow("SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()").Scan(&size); err != nil {
			return 0
		}
		return size
	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(rs.connStr)
		if err != nil || cfg.DBName == "" {
			return estimate
		}
		q := "SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?"
		if err := rs.db.QueryRow(q, cfg.DBName, rs.table).Scan(&size); err != nil {
			return estimate
		}
		return size
	case schema.PostgreSQLBackend:
		if err := rs.db.QueryRow("SELECT pg_total_relation_size($1)", rs.table).Scan(&size); err != nil {
			return estimate
		}
		return size
	}
	return estimate
}
