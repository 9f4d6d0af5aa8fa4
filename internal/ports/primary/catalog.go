package primary

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/apd/v3"
)

// CatalogService defines the primary port for species catalog operations.
//
// Lookups never fail: a miss is reported as a nil *Species. Every successful
// lookup or random pick counts as one access in the ledger.
type CatalogService interface {
	// Initialize replaces the catalog contents and clears the access ledger.
	Initialize(ctx context.Context, species []*Species)

	// Load reads the catalog from its backing repository and initializes it.
	Load(ctx context.Context) error

	// GetAll returns every species in insertion order.
	GetAll(ctx context.Context) []*Species

	// GetRandom returns a uniformly chosen species (nil when empty).
	GetRandom(ctx context.Context) *Species

	// FindByName returns the first species whose common name matches, ignoring case.
	FindByName(ctx context.Context, name string) *Species

	// FindByID returns the species with the given identifier, ignoring case.
	FindByID(ctx context.Context, id string) *Species

	// GetAccessCount returns how often a species has been accessed.
	GetAccessCount(ctx context.Context, id string) int

	// GetAllAccessCounts returns a copy of the access ledger.
	GetAllAccessCounts(ctx context.Context) map[string]int

	// GetAccessStats returns ledger rows joined with species names, most accessed first.
	GetAccessStats(ctx context.Context) []*AccessStat

	// GetMostAccessed returns the most accessed species (nil when the ledger is empty).
	GetMostAccessed(ctx context.Context) *Species

	// ResetAccessCount removes one species from the ledger.
	ResetAccessCount(ctx context.Context, id string)

	// ResetAllAccessCounts clears the ledger.
	ResetAllAccessCounts(ctx context.Context)

	// Count returns the number of species in the catalog.
	Count(ctx context.Context) int
}

// Species represents a monkey species at the port boundary.
// Every attribute except ID is optional; Valid=false means the dataset had no value.
type Species struct {
	ID                 string
	Name               sql.Null[string]
	ScientificName     sql.Null[string]
	Region             sql.Null[string]
	Habitat            sql.Null[string]
	Lifespan           sql.Null[int]         // years
	Weight             sql.Null[apd.Decimal] // kg
	Height             sql.Null[apd.Decimal] // cm
	Diet               sql.Null[string]
	Description        sql.Null[string]
	ConservationStatus sql.Null[string]
	PopulationTrend    sql.Null[string]
	ImageURL           sql.Null[string]
	SocialStructure    sql.Null[string]
	IntelligenceLevel  sql.Null[string]
}

// Clone returns a deep copy of s.
func (s *Species) Clone() *Species {
	if s == nil {
		return nil
	}
	c := *s
	c.Weight = cloneDecimal(s.Weight)
	c.Height = cloneDecimal(s.Height)
	return &c
}

func cloneDecimal(d sql.Null[apd.Decimal]) sql.Null[apd.Decimal] {
	if !d.Valid {
		return d
	}
	var out sql.Null[apd.Decimal]
	out.V.Set(&d.V)
	out.Valid = true
	return out
}

// AccessStat is one row of the access ledger.
type AccessStat struct {
	SpeciesID string
	Name      string // empty when the species has no common name
	Count     int
}

// Some returns a present optional value.
func Some[T any](v T) sql.Null[T] {
	return sql.Null[T]{V: v, Valid: true}
}

// MustDecimal parses s into a present optional decimal. It panics on malformed
// input and is meant for literals in fixtures and tests.
func MustDecimal(s string) sql.Null[apd.Decimal] {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		panic(err)
	}
	var out sql.Null[apd.Decimal]
	out.V.Set(d)
	out.Valid = true
	return out
}
