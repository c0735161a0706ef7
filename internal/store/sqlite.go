package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"starledger/internal/model"
)

// SQLiteStore keeps the ledger table in a SQLite database, one row per user
// holding the marshalled ledger document. Save replaces the whole snapshot
// in a single transaction, matching the file store's overwrite semantics.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at dbPath and initializes the schema
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("error creating tables: %v", err)
	}

	return &SQLiteStore{db: db}, nil
}

func createTables(db *sql.DB) error {
	query := `CREATE TABLE IF NOT EXISTS ledgers (
		user_id TEXT PRIMARY KEY,
		doc TEXT NOT NULL
	)`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("error executing query: %v\nQuery: %s", err, query)
	}
	return nil
}

func (s *SQLiteStore) Load() (map[string]*model.UserLedger, error) {
	rows, err := s.db.Query("SELECT user_id, doc FROM ledgers")
	if err != nil {
		return nil, fmt.Errorf("error reading ledgers: %v", err)
	}
	defer rows.Close()

	users := make(map[string]*model.UserLedger)
	for rows.Next() {
		var id, doc string
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("error scanning ledger row: %v", err)
		}
		var u model.UserLedger
		if err := json.Unmarshal([]byte(doc), &u); err != nil {
			return nil, fmt.Errorf("error decoding ledger for user %s: %v", id, err)
		}
		users[id] = &u
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger rows: %v", err)
	}
	return users, nil
}

func (s *SQLiteStore) Save(users map[string]*model.UserLedger) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM ledgers"); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO ledgers (user_id, doc) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for id, u := range users {
		doc, err := json.Marshal(u)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(id, string(doc)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
