package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	corecatalog "github.com/example/monkeys/internal/core/catalog"
	"github.com/example/monkeys/internal/ports/primary"
	"github.com/example/monkeys/internal/ports/secondary"
)

// CatalogServiceImpl implements the CatalogService interface.
// It owns the species slice and the access ledger; both are guarded by mu.
type CatalogServiceImpl struct {
	speciesRepo secondary.SpeciesRepository
	logger      *slog.Logger
	intN        func(n int) int

	mu      sync.Mutex
	species []*primary.Species
	ledger  *corecatalog.Ledger
}

// CatalogOption configures a CatalogServiceImpl.
type CatalogOption func(*CatalogServiceImpl)

// WithLogger sets the diagnostics logger. The default discards everything.
func WithLogger(logger *slog.Logger) CatalogOption {
	return func(s *CatalogServiceImpl) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSeed makes random picks reproducible.
func WithSeed(seed uint64) CatalogOption {
	return func(s *CatalogServiceImpl) {
		r := rand.New(rand.NewPCG(seed, seed))
		s.intN = r.IntN
	}
}

// NewCatalogService creates a new CatalogService with injected dependencies.
// speciesRepo may be nil when the caller only ever uses Initialize.
func NewCatalogService(speciesRepo secondary.SpeciesRepository, opts ...CatalogOption) *CatalogServiceImpl {
	s := &CatalogServiceImpl{
		speciesRepo: speciesRepo,
		logger:      slog.New(slog.DiscardHandler),
		intN:        rand.IntN,
		ledger:      corecatalog.NewLedger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize replaces the catalog contents and clears the access ledger.
func (s *CatalogServiceImpl) Initialize(ctx context.Context, species []*primary.Species) {
	loaded := make([]*primary.Species, 0, len(species))
	for _, sp := range species {
		if sp == nil {
			continue
		}
		loaded = append(loaded, sp.Clone())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.species = loaded
	s.ledger.Clear()
	s.logger.DebugContext(ctx, "catalog initialized", "species", len(loaded))
}

// Load reads the catalog from the species repository and initializes it.
func (s *CatalogServiceImpl) Load(ctx context.Context) error {
	if s.speciesRepo == nil {
		return fmt.Errorf("failed to load catalog: no species repository configured")
	}

	records, err := s.speciesRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	species := make([]*primary.Species, len(records))
	for i, r := range records {
		species[i] = s.recordToSpecies(r)
	}
	s.Initialize(ctx, species)
	return nil
}

// GetAll returns every species in insertion order.
func (s *CatalogServiceImpl) GetAll(ctx context.Context) []*primary.Species {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*primary.Species, len(s.species))
	for i, sp := range s.species {
		out[i] = sp.Clone()
	}
	return out
}

// GetRandom returns a uniformly chosen species and records the access.
func (s *CatalogServiceImpl) GetRandom(ctx context.Context) *primary.Species {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.species) == 0 {
		return nil
	}

	picked := s.species[s.intN(len(s.species))]
	s.trackAccess(ctx, picked.ID)
	return picked.Clone()
}

// FindByName returns the first species whose common name matches, ignoring case.
func (s *CatalogServiceImpl) FindByName(ctx context.Context, name string) *primary.Species {
	if corecatalog.IsBlank(name) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sp := range s.species {
		if sp.Name.Valid && corecatalog.SameKey(sp.Name.V, name) {
			s.trackAccess(ctx, sp.ID)
			return sp.Clone()
		}
	}
	return nil
}

// FindByID returns the species with the given identifier, ignoring case.
func (s *CatalogServiceImpl) FindByID(ctx context.Context, id string) *primary.Species {
	if corecatalog.IsBlank(id) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sp := s.lookupID(id)
	if sp == nil {
		return nil
	}
	s.trackAccess(ctx, sp.ID)
	return sp.Clone()
}

// GetAccessCount returns how often a species has been accessed.
func (s *CatalogServiceImpl) GetAccessCount(ctx context.Context, id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.Count(id)
}

// GetAllAccessCounts returns a copy of the access ledger.
func (s *CatalogServiceImpl) GetAllAccessCounts(ctx context.Context) map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.Snapshot()
}

// GetAccessStats returns ledger rows joined with species names, most accessed first.
// It does not count as an access.
func (s *CatalogServiceImpl) GetAccessStats(ctx context.Context) []*primary.AccessStat {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.ledger.Entries()
	stats := make([]*primary.AccessStat, 0, len(entries))
	for _, e := range entries {
		stat := &primary.AccessStat{SpeciesID: e.ID, Count: e.Count}
		if sp := s.lookupID(e.ID); sp != nil && sp.Name.Valid {
			stat.Name = sp.Name.V
		}
		stats = append(stats, stat)
	}
	return stats
}

// GetMostAccessed returns the species with the highest access count.
// Ties go to the species that was accessed first. It does not count as an access.
func (s *CatalogServiceImpl) GetMostAccessed(ctx context.Context) *primary.Species {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, _, ok := s.ledger.Max()
	if !ok {
		return nil
	}
	return s.lookupID(id).Clone()
}

// ResetAccessCount removes one species from the ledger.
func (s *CatalogServiceImpl) ResetAccessCount(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.Remove(id)
	s.logger.DebugContext(ctx, "access count reset", "species_id", id)
}

// ResetAllAccessCounts clears the ledger.
func (s *CatalogServiceImpl) ResetAllAccessCounts(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.Clear()
	s.logger.DebugContext(ctx, "all access counts reset")
}

// Count returns the number of species in the catalog.
func (s *CatalogServiceImpl) Count(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.species)
}

// Helper methods

// trackAccess must be called with mu held.
func (s *CatalogServiceImpl) trackAccess(ctx context.Context, id string) {
	count := s.ledger.Track(id)
	if count > 0 {
		s.logger.DebugContext(ctx, "species accessed", "species_id", id, "count", count, "tracked", s.ledger.Len())
	}
}

// lookupID must be called with mu held. It does not track access.
func (s *CatalogServiceImpl) lookupID(id string) *primary.Species {
	for _, sp := range s.species {
		if corecatalog.SameKey(sp.ID, id) {
			return sp
		}
	}
	return nil
}

func (s *CatalogServiceImpl) recordToSpecies(r *secondary.SpeciesRecord) *primary.Species {
	return &primary.Species{
		ID:                 r.ID,
		Name:               r.Name,
		ScientificName:     r.ScientificName,
		Region:             r.Region,
		Habitat:            r.Habitat,
		Lifespan:           r.Lifespan,
		Weight:             r.Weight,
		Height:             r.Height,
		Diet:               r.Diet,
		Description:        r.Description,
		ConservationStatus: r.ConservationStatus,
		PopulationTrend:    r.PopulationTrend,
		ImageURL:           r.ImageURL,
		SocialStructure:    r.SocialStructure,
		IntelligenceLevel:  r.IntelligenceLevel,
	}
}

// Ensure CatalogServiceImpl implements the interface.
var _ primary.CatalogService = (*CatalogServiceImpl)(nil)
