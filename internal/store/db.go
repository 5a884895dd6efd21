// Package store persists small pieces of browsing state in SQLite: the seek
// mode of each view, the two-slot focus history, and visit counts.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS seek_modes (
    instance TEXT PRIMARY KEY,
    mode TEXT NOT NULL DEFAULT 'off',
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS focus_history (
    slot INTEGER PRIMARY KEY CHECK (slot IN (0, 1)),
    view_id TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS visits (
    location TEXT PRIMARY KEY,
    count INTEGER NOT NULL DEFAULT 0
);
`

// Focus history slots.
const (
	SlotCurrent  = 0
	SlotPrevious = 1
)

// DB wraps the SQLite database connection.
type DB struct {
	conn *sql.DB
	now  func() time.Time
}

// Open opens or creates the database at the given path.
func Open(path string) (*DB, error) {
	return open(path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(2000)")
}

// OpenMemory opens an in-memory database (for testing).
func OpenMemory() (*DB, error) {
	return open(":memory:")
}

func open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One connection keeps an in-memory database alive and serializes
	// writers from concurrent SSH sessions.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(schema); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("init schema: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("init schema: %w", err)
	}

	db := &DB{conn: conn, now: time.Now}
	if err := db.migrate(); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("migrate db: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// SaveSeekMode records the seek mode of a view.
func (db *DB) SaveSeekMode(instance, mode string) error {
	_, err := db.conn.Exec(`
		INSERT INTO seek_modes (instance, mode, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(instance) DO UPDATE SET
			mode = excluded.mode,
			updated_at = excluded.updated_at
	`, instance, mode, db.now().Unix())
	if err != nil {
		return fmt.Errorf("save seek mode: %w", err)
	}
	return nil
}

// SeekMode returns the recorded seek mode of a view, "off" if none.
func (db *DB) SeekMode(instance string) (string, error) {
	var mode string
	err := db.conn.QueryRow("SELECT mode FROM seek_modes WHERE instance = ?", instance).Scan(&mode)
	if errors.Is(err, sql.ErrNoRows) {
		return "off", nil
	}
	if err != nil {
		return "", fmt.Errorf("read seek mode: %w", err)
	}
	return mode, nil
}

// ForgetSeekMode drops the record of a closed view.
func (db *DB) ForgetSeekMode(instance string) error {
	if _, err := db.conn.Exec("DELETE FROM seek_modes WHERE instance = ?", instance); err != nil {
		return fmt.Errorf("forget seek mode: %w", err)
	}
	return nil
}

// PruneSeekModes drops records older than the cutoff.
func (db *DB) PruneSeekModes(before time.Time) (int64, error) {
	res, err := db.conn.Exec("DELETE FROM seek_modes WHERE updated_at < ?", before.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune seek modes: %w", err)
	}
	return res.RowsAffected()
}

// SaveFocus writes both focus slots in one transaction.
func (db *DB) SaveFocus(current, previous string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("save focus: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for slot, id := range [2]string{SlotCurrent: current, SlotPrevious: previous} {
		if _, err := tx.Exec(`
			INSERT INTO focus_history (slot, view_id) VALUES (?, ?)
			ON CONFLICT(slot) DO UPDATE SET view_id = excluded.view_id
		`, slot, id); err != nil {
			return fmt.Errorf("save focus slot %d: %w", slot, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save focus: %w", err)
	}
	return nil
}

// Focus returns the recorded current and previous view ids.
func (db *DB) Focus() (current, previous string, err error) {
	rows, err := db.conn.Query("SELECT slot, view_id FROM focus_history")
	if err != nil {
		return "", "", fmt.Errorf("read focus: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var slot int
		var id string
		if err := rows.Scan(&slot, &id); err != nil {
			return "", "", fmt.Errorf("scan focus: %w", err)
		}
		switch slot {
		case SlotCurrent:
			current = id
		case SlotPrevious:
			previous = id
		}
	}
	if err := rows.Err(); err != nil {
		return "", "", fmt.Errorf("read focus: %w", err)
	}
	return current, previous, nil
}

func (db *DB) migrate() error {
	// visits.last_at was added after the first release.
	hasLastAt, err := db.hasColumn("visits", "last_at")
	if err != nil {
		return err
	}
	if !hasLastAt {
		if _, err := db.conn.Exec("ALTER TABLE visits ADD COLUMN last_at INTEGER NOT NULL DEFAULT 0"); err != nil {
			return fmt.Errorf("add visits.last_at: %w", err)
		}
	}
	if _, err := db.conn.Exec("CREATE INDEX IF NOT EXISTS idx_visits_rank ON visits(count DESC, last_at DESC)"); err != nil {
		return fmt.Errorf("create idx_visits_rank: %w", err)
	}
	return nil
}

func (db *DB) hasColumn(table, col string) (bool, error) {
	rows, err := db.conn.Query("PRAGMA table_info(" + table + ")")
	if err != nil {
		return false, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull int
		var dflt sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return false, err
		}
		if name == col {
			return true, nil
		}
	}
	return false, rows.Err()
}
