// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/apd/v3"
)

// SpeciesRecord represents a species as stored in the staging store.
// Null columns stay null: Valid=false is never coerced to a zero value.
type SpeciesRecord struct {
	ID                 string
	Position           int // insertion order within the dataset
	Name               sql.Null[string]
	ScientificName     sql.Null[string]
	Region             sql.Null[string]
	Habitat            sql.Null[string]
	Lifespan           sql.Null[int]
	Weight             sql.Null[apd.Decimal]
	Height             sql.Null[apd.Decimal]
	Diet               sql.Null[string]
	Description        sql.Null[string]
	ConservationStatus sql.Null[string]
	PopulationTrend    sql.Null[string]
	ImageURL           sql.Null[string]
	SocialStructure    sql.Null[string]
	IntelligenceLevel  sql.Null[string]
}

// SpeciesRepository defines the secondary port for species persistence.
type SpeciesRepository interface {
	// Create persists a new species at the end of the dataset.
	Create(ctx context.Context, species *SpeciesRecord) error

	// List retrieves all species in insertion order.
	List(ctx context.Context) ([]*SpeciesRecord, error)

	// Count returns the number of stored species.
	Count(ctx context.Context) (int, error)

	// DeleteAll removes every species.
	DeleteAll(ctx context.Context) error
}

// DatasetSource supplies the species that seed the staging store.
type DatasetSource interface {
	// Species returns the dataset in insertion order.
	Species(ctx context.Context) ([]*SpeciesRecord, error)
}
