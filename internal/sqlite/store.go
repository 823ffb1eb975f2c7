// Package sqlite stores flat tree records in a SQLite table using the pure-Go
// modernc.org/sqlite driver. Identifier, parent identifier and payload are
// kept as JSON text so that string and numeric identifiers survive a round
// trip unchanged.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	_ "modernc.org/sqlite"

	"github.com/deadpixelstudio/treemendous/pkg/tree"
)

// DefaultTable is the table used when none is configured.
const DefaultTable = "nodes"

// Store errors.
var (
	ErrInvalidTable  = errors.New("invalid table name")
	ErrTableNotFound = errors.New("table not found")
)

// Table DDL. %s is the validated table name.
const (
	createNodes = `CREATE TABLE IF NOT EXISTS %s (
    ordinal INTEGER PRIMARY KEY,
    node_id TEXT NOT NULL,
    parent_id TEXT,
    payload TEXT NOT NULL
);`

	idxNodesParent = `CREATE INDEX IF NOT EXISTS idx_%s_parent ON %s(parent_id);`
)

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Store is an open SQLite database holding one or more record tables.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %s: %w", path, err)
	}
	return &Store{db: db, path: path}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the records of table in their stored order, with the
// identifier fields named by cfg. Returns ErrTableNotFound when the table
// does not exist.
func (s *Store) Load(table string, cfg tree.Config) ([]tree.Record, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults()

	exists, err := s.tableExists(table)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s in %s", ErrTableNotFound, table, s.path)
	}

	rows, err := s.db.Query(fmt.Sprintf(
		"SELECT node_id, parent_id, payload FROM %s ORDER BY ordinal", table))
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	var records []tree.Record
	for rows.Next() {
		var nodeID, payload string
		var parentID sql.NullString
		if err := rows.Scan(&nodeID, &parentID, &payload); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}

		rec := tree.Record{}
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, fmt.Errorf("decoding payload of %s: %w", nodeID, err)
		}
		var id any
		if err := json.Unmarshal([]byte(nodeID), &id); err != nil {
			return nil, fmt.Errorf("decoding node id %s: %w", nodeID, err)
		}
		rec[cfg.IDField] = id

		var parent any
		if parentID.Valid {
			if err := json.Unmarshal([]byte(parentID.String), &parent); err != nil {
				return nil, fmt.Errorf("decoding parent id of %s: %w", nodeID, err)
			}
		}
		rec[cfg.ParentIDField] = parent
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", table, err)
	}
	return records, nil
}

// Save replaces the contents of table with records in one transaction,
// creating the table if needed. Record order is kept.
func (s *Store) Save(table string, cfg tree.Config, records []tree.Record) error {
	if err := checkTable(table); err != nil {
		return err
	}
	cfg = cfg.WithDefaults()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf(createNodes, table)); err != nil {
		return fmt.Errorf("creating %s: %w", table, err)
	}
	if _, err := tx.Exec(fmt.Sprintf(idxNodesParent, table, table)); err != nil {
		return fmt.Errorf("indexing %s: %w", table, err)
	}
	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}

	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO %s (ordinal, node_id, parent_id, payload) VALUES (?, ?, ?, ?)", table))
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	for i, rec := range records {
		nodeID, parentID, payload, err := encodeRecord(rec, cfg)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if _, err := stmt.Exec(i, nodeID, parentID, payload); err != nil {
			return fmt.Errorf("inserting record %d into %s: %w", i, table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}
	return nil
}

// encodeRecord splits rec into its JSON-encoded columns. parentID is nil
// (SQL NULL) for records without a parent.
func encodeRecord(rec tree.Record, cfg tree.Config) (nodeID string, parentID any, payload string, err error) {
	id, ok := rec[cfg.IDField]
	if !ok {
		return "", nil, "", fmt.Errorf("%w: missing %q", tree.ErrInvalidInput, cfg.IDField)
	}
	b, err := json.Marshal(id)
	if err != nil {
		return "", nil, "", fmt.Errorf("encoding id: %w", err)
	}
	nodeID = string(b)

	if p := rec[cfg.ParentIDField]; p != nil {
		b, err := json.Marshal(p)
		if err != nil {
			return "", nil, "", fmt.Errorf("encoding parent id: %w", err)
		}
		parentID = string(b)
	}

	rest := make(tree.Record, len(rec))
	for k, v := range rec {
		switch k {
		case cfg.IDField, cfg.ParentIDField, tree.ChildrenField:
			continue
		}
		rest[k] = v
	}
	b, err = json.Marshal(rest)
	if err != nil {
		return "", nil, "", fmt.Errorf("encoding payload: %w", err)
	}
	return nodeID, parentID, string(b), nil
}

func (s *Store) tableExists(table string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking for %s: %w", table, err)
	}
	return n > 0, nil
}

func checkTable(table string) error {
	if !tableNameRe.MatchString(table) {
		return fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	return nil
}
