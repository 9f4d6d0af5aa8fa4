package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// MemoryDSN is the data source name of the staging store. Nothing is ever
// written to disk; the catalog lives only as long as the process.
const MemoryDSN = ":memory:"

// Open returns a fresh in-memory database with the schema applied.
func Open() (*sql.DB, error) {
	database, err := sql.Open("sqlite3", MemoryDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to :memory: is a separate database, so pin the pool to one.
	database.SetMaxOpenConns(1)

	if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := InitSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}
