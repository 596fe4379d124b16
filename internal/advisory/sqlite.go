package advisory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// DB is a Service backed by a local SQLite advisory database. Each row is
// one (advisory, package, version range) triple; a package version matching
// the range yields the advisory ID.
type DB struct {
	conn *sql.DB
}

// Open opens or creates the advisory database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open advisory database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	db := &DB{conn: conn}
	if err := db.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize advisory schema: %w", err)
	}
	return db, nil
}

func (d *DB) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS advisories (
			vid      TEXT NOT NULL,
			package  TEXT NOT NULL,
			lower    TEXT,
			lower_op TEXT,
			upper    TEXT,
			upper_op TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_advisories_package ON advisories(package);
	`
	_, err := d.conn.Exec(schema)
	return err
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.conn.Close()
}

// Insert adds one advisory range row. Empty bounds are unbounded.
func (d *DB) Insert(ctx context.Context, vid, pkg, lower, lowerOp, upper, upperOp string) error {
	_, err := d.conn.ExecContext(ctx,
		`INSERT INTO advisories (vid, package, lower, lower_op, upper, upper_op) VALUES (?, ?, ?, ?, ?, ?)`,
		vid, pkg, lower, lowerOp, upper, upperOp)
	return err
}

// Lookup returns the advisory IDs whose version range contains the given
// version, in insertion order. A version the comparator cannot parse
// returns ErrUnsupportedVersion before any row is consulted.
func (d *DB) Lookup(ctx context.Context, name, version string) ([]string, error) {
	if _, err := versionSegments(version); err != nil {
		return nil, err
	}

	rows, err := d.conn.QueryContext(ctx,
		`SELECT vid, lower, lower_op, upper, upper_op FROM advisories WHERE package = ? ORDER BY rowid`,
		name)
	if err != nil {
		return nil, fmt.Errorf("failed to query advisories: %w", err)
	}
	defer rows.Close()

	var vids []string
	seen := make(map[string]bool)
	for rows.Next() {
		var vid, lower, lowerOp, upper, upperOp string
		if err := rows.Scan(&vid, &lower, &lowerOp, &upper, &upperOp); err != nil {
			return nil, err
		}
		match, err := inRange(version, lower, lowerOp, upper, upperOp)
		if err != nil {
			// A malformed range in the database is a data problem,
			// not the caller's
			logrus.Debugf("Skipping advisory %s with unparsable range: %v", vid, err)
			continue
		}
		if match && !seen[vid] {
			seen[vid] = true
			vids = append(vids, vid)
		}
	}
	return vids, rows.Err()
}

func inRange(version, lower, lowerOp, upper, upperOp string) (bool, error) {
	if lower != "" {
		cmp, err := compareVersions(version, lower)
		if err != nil {
			return false, err
		}
		if !satisfies(cmp, lowerOp, true) {
			return false, nil
		}
	}
	if upper != "" {
		cmp, err := compareVersions(version, upper)
		if err != nil {
			return false, err
		}
		if !satisfies(cmp, upperOp, false) {
			return false, nil
		}
	}
	return true, nil
}

// satisfies checks a comparison result against a bound operator. lowerBound
// selects the default operator when none is stored.
func satisfies(cmp int, op string, lowerBound bool) bool {
	if op == "" {
		if lowerBound {
			op = "ge"
		} else {
			op = "le"
		}
	}
	switch op {
	case "ge":
		return cmp >= 0
	case "gt":
		return cmp > 0
	case "le":
		return cmp <= 0
	case "lt":
		return cmp < 0
	case "eq":
		return cmp == 0
	default:
		return false
	}
}
