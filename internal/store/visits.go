package store

import (
	"fmt"
	"time"
)

// Visit is how often and how recently a location was opened.
type Visit struct {
	Location string
	Count    int
	LastAt   time.Time
}

// RecordVisit bumps the visit count of location.
func (db *DB) RecordVisit(location string) error {
	_, err := db.conn.Exec(`
		INSERT INTO visits (location, count, last_at) VALUES (?, 1, ?)
		ON CONFLICT(location) DO UPDATE SET
			count = count + 1,
			last_at = excluded.last_at
	`, location, db.now().Unix())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// TopVisits returns the most visited locations, most recent first on ties.
func (db *DB) TopVisits(limit int) ([]Visit, error) {
	rows, err := db.conn.Query(`
		SELECT location, count, last_at FROM visits
		ORDER BY count DESC, last_at DESC, location
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("top visits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Visit
	for rows.Next() {
		var v Visit
		var at int64
		if err := rows.Scan(&v.Location, &v.Count, &at); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		v.LastAt = time.Unix(at, 0)
		out = append(out, v)
	}
	return out, rows.Err()
}

// ForgetVisit removes a location, e.g. after its file was deleted.
func (db *DB) ForgetVisit(location string) error {
	if _, err := db.conn.Exec("DELETE FROM visits WHERE location = ?", location); err != nil {
		return fmt.Errorf("forget visit: %w", err)
	}
	return nil
}
