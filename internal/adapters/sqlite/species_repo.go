// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"github.com/example/monkeys/internal/ports/secondary"
)

const speciesColumns = `id, position, name, scientific_name, region, habitat, lifespan_years,
	weight_kg, height_cm, diet, description, conservation_status, population_trend,
	image_url, social_structure, intelligence_level`

// SpeciesRepository implements secondary.SpeciesRepository with SQLite.
type SpeciesRepository struct {
	db *sql.DB
}

// NewSpeciesRepository creates a new SQLite species repository.
func NewSpeciesRepository(db *sql.DB) *SpeciesRepository {
	return &SpeciesRepository{db: db}
}

// Create persists a new species at the end of the dataset.
// The record's Position is overwritten with the assigned one.
func (r *SpeciesRepository) Create(ctx context.Context, species *secondary.SpeciesRecord) error {
	var position int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position) + 1, 0) FROM species",
	).Scan(&position)
	if err != nil {
		return fmt.Errorf("failed to get next species position: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO species ("+speciesColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		species.ID,
		position,
		nullStringArg(species.Name),
		nullStringArg(species.ScientificName),
		nullStringArg(species.Region),
		nullStringArg(species.Habitat),
		nullIntArg(species.Lifespan),
		nullDecimalArg(species.Weight),
		nullDecimalArg(species.Height),
		nullStringArg(species.Diet),
		nullStringArg(species.Description),
		nullStringArg(species.ConservationStatus),
		nullStringArg(species.PopulationTrend),
		nullStringArg(species.ImageURL),
		nullStringArg(species.SocialStructure),
		nullStringArg(species.IntelligenceLevel),
	)
	if err != nil {
		return fmt.Errorf("failed to create species %s: %w", species.ID, err)
	}

	species.Position = position
	return nil
}

// List retrieves all species in insertion order.
func (r *SpeciesRepository) List(ctx context.Context) ([]*secondary.SpeciesRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+speciesColumns+" FROM species ORDER BY position ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list species: %w", err)
	}
	defer rows.Close()

	var species []*secondary.SpeciesRecord
	for rows.Next() {
		record, err := scanSpecies(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan species: %w", err)
		}
		species = append(species, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list species: %w", err)
	}

	return species, nil
}

// Count returns the number of stored species.
func (r *SpeciesRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM species").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count species: %w", err)
	}
	return count, nil
}

// DeleteAll removes every species.
func (r *SpeciesRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM species"); err != nil {
		return fmt.Errorf("failed to delete species: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSpecies(row rowScanner) (*secondary.SpeciesRecord, error) {
	var (
		name, scientificName, region, habitat sql.NullString
		lifespan                              sql.NullInt64
		weight, height                        sql.NullString
		diet, description                     sql.NullString
		conservationStatus, populationTrend   sql.NullString
		imageURL, socialStructure             sql.NullString
		intelligenceLevel                     sql.NullString
	)

	record := &secondary.SpeciesRecord{}
	err := row.Scan(
		&record.ID, &record.Position, &name, &scientificName, &region, &habitat, &lifespan,
		&weight, &height, &diet, &description, &conservationStatus, &populationTrend,
		&imageURL, &socialStructure, &intelligenceLevel,
	)
	if err != nil {
		return nil, err
	}

	record.Name = fromNullString(name)
	record.ScientificName = fromNullString(scientificName)
	record.Region = fromNullString(region)
	record.Habitat = fromNullString(habitat)
	if lifespan.Valid {
		record.Lifespan = sql.Null[int]{V: int(lifespan.Int64), Valid: true}
	}
	if record.Weight, err = fromNullDecimal(weight); err != nil {
		return nil, fmt.Errorf("species %s weight: %w", record.ID, err)
	}
	if record.Height, err = fromNullDecimal(height); err != nil {
		return nil, fmt.Errorf("species %s height: %w", record.ID, err)
	}
	record.Diet = fromNullString(diet)
	record.Description = fromNullString(description)
	record.ConservationStatus = fromNullString(conservationStatus)
	record.PopulationTrend = fromNullString(populationTrend)
	record.ImageURL = fromNullString(imageURL)
	record.SocialStructure = fromNullString(socialStructure)
	record.IntelligenceLevel = fromNullString(intelligenceLevel)

	return record, nil
}

// Null argument helpers: a nil argument binds SQL NULL.

func nullStringArg(v sql.Null[string]) any {
	if !v.Valid {
		return nil
	}
	return v.V
}

func nullIntArg(v sql.Null[int]) any {
	if !v.Valid {
		return nil
	}
	return int64(v.V)
}

func nullDecimalArg(v sql.Null[apd.Decimal]) any {
	if !v.Valid {
		return nil
	}
	return v.V.String()
}

func fromNullString(s sql.NullString) sql.Null[string] {
	return sql.Null[string]{V: s.String, Valid: s.Valid}
}

func fromNullDecimal(s sql.NullString) (sql.Null[apd.Decimal], error) {
	var out sql.Null[apd.Decimal]
	if !s.Valid {
		return out, nil
	}
	if _, _, err := out.V.SetString(s.String); err != nil {
		return out, fmt.Errorf("invalid decimal %q: %w", s.String, err)
	}
	out.Valid = true
	return out, nil
}

// Ensure SpeciesRepository implements the interface.
var _ secondary.SpeciesRepository = (*SpeciesRepository)(nil)
