package db

import "database/sql"

// SchemaSQL is the complete schema of the staging store.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Tests load it
// via GetSchemaSQL() instead of hardcoding CREATE TABLE statements, so a
// repository that references a missing column fails immediately with
// "no such column".
//
// Decimal columns are TEXT so values such as 3.6 survive without binary
// floating point rounding.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS species (
	id TEXT PRIMARY KEY COLLATE NOCASE,
	position INTEGER NOT NULL UNIQUE,
	name TEXT,
	scientific_name TEXT,
	region TEXT,
	habitat TEXT,
	lifespan_years INTEGER CHECK(lifespan_years IS NULL OR lifespan_years >= 0),
	weight_kg TEXT,
	height_cm TEXT,
	diet TEXT,
	description TEXT,
	conservation_status TEXT,
	population_trend TEXT,
	image_url TEXT,
	social_structure TEXT,
	intelligence_level TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_species_name ON species(name COLLATE NOCASE);
`

// InitSchema creates the database schema.
func InitSchema(database *sql.DB) error {
	_, err := database.Exec(SchemaSQL)
	return err
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
