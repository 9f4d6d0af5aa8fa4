package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/example/monkeys/internal/ports/primary"
	"github.com/example/monkeys/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockSpeciesRepository implements secondary.SpeciesRepository for testing.
type mockSpeciesRepository struct {
	species  []*secondary.SpeciesRecord
	listErr  error
	countErr error
}

func (m *mockSpeciesRepository) Create(ctx context.Context, species *secondary.SpeciesRecord) error {
	m.species = append(m.species, species)
	return nil
}

func (m *mockSpeciesRepository) List(ctx context.Context) ([]*secondary.SpeciesRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.species, nil
}

func (m *mockSpeciesRepository) Count(ctx context.Context) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return len(m.species), nil
}

func (m *mockSpeciesRepository) DeleteAll(ctx context.Context) error {
	m.species = nil
	return nil
}

// ============================================================================
// Test Helper
// ============================================================================

func testSpecies() []*primary.Species {
	return []*primary.Species{
		{ID: "capuchin-01", Name: primary.Some("Capuchin"), ScientificName: primary.Some("Cebus imitator"), Weight: primary.MustDecimal("3.6")},
		{ID: "baboon-01", Name: primary.Some("Baboon"), Lifespan: primary.Some(30)},
		{ID: "lemur-01", Name: primary.Some("Lemur"), Region: primary.Some("Madagascar")},
		{ID: "macaque-01", Name: primary.Some("Macaque")},
		{ID: "gibbon-01", Name: primary.Some("Gibbon"), Height: primary.MustDecimal("45")},
	}
}

func newTestCatalogService() *CatalogServiceImpl {
	service := NewCatalogService(nil, WithSeed(42))
	service.Initialize(context.Background(), testSpecies())
	return service
}

// ============================================================================
// Initialize / Load Tests
// ============================================================================

func TestInitialize_ReplacesDatasetAndClearsLedger(t *testing.T) {
	service := newTestCatalogService()
	ctx := context.Background()

	service.FindByName(ctx, "Gibbon")
	service.FindByID(ctx, "lemur-01")
	if len(service.GetAllAccessCounts(ctx)) == 0 {
		t.Fatal("expected ledger to have entries before re-initialize")
	}

	service.Initialize(ctx, testSpecies()[:2])

	if got := service.Count(ctx); got != 2 {
		t.Errorf("expected 2 species, got %d", got)
	}
	if counts := service.GetAllAccessCounts(ctx); len(counts) != 0 {
		t.Errorf("expected empty ledger after Initialize, got %v", counts)
	}
}

func TestInitialize_Empty(t *testing.T) {
	service := NewCatalogService(nil)
	ctx := context.Background()

	service.Initialize(ctx, nil)

	if got := service.Count(ctx); got != 0 {
		t.Errorf("expected 0 species, got %d", got)
	}
	if sp := service.GetRandom(ctx); sp != nil {
		t.Errorf("expected nil random species, got %s", sp.ID)
	}
	if sp := service.GetMostAccessed(ctx); sp != nil {
		t.Errorf("expected nil most accessed, got %s", sp.ID)
	}
	if all := service.GetAll(ctx); len(all) != 0 {
		t.Errorf("expected no species, got %d", len(all))
	}
}

func TestInitialize_CallerMutationDoesNotLeakIn(t *testing.T) {
	service := NewCatalogService(nil)
	ctx := context.Background()
	input := testSpecies()

	service.Initialize(ctx, input)
	input[0].Name = primary.Some("Changed")
	input[0].Weight.V.SetInt64(99)

	sp := service.FindByID(ctx, "capuchin-01")
	if sp.Name.V != "Capuchin" {
		t.Errorf("expected name 'Capuchin', got '%s'", sp.Name.V)
	}
	if sp.Weight.V.String() != "3.6" {
		t.Errorf("expected weight 3.6, got %s", sp.Weight.V.String())
	}
}

func TestLoad_FromRepository(t *testing.T) {
	repo := &mockSpeciesRepository{species: []*secondary.SpeciesRecord{
		{ID: "gibbon-01", Name: primary.Some("Gibbon"), Lifespan: primary.Some(40)},
		{ID: "lemur-01"},
	}}
	service := NewCatalogService(repo)
	ctx := context.Background()

	if err := service.Load(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	all := service.GetAll(ctx)
	if len(all) != 2 {
		t.Fatalf("expected 2 species, got %d", len(all))
	}
	if all[0].ID != "gibbon-01" || all[1].ID != "lemur-01" {
		t.Errorf("expected repository order, got %s, %s", all[0].ID, all[1].ID)
	}
	if !all[0].Lifespan.Valid || all[0].Lifespan.V != 40 {
		t.Errorf("expected lifespan 40, got %+v", all[0].Lifespan)
	}
	if all[1].Name.Valid {
		t.Error("expected absent name to stay absent")
	}
}

func TestLoad_RepositoryError(t *testing.T) {
	repo := &mockSpeciesRepository{listErr: errors.New("disk on fire")}
	service := NewCatalogService(repo)

	err := service.Load(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestLoad_NoRepository(t *testing.T) {
	service := NewCatalogService(nil)

	if err := service.Load(context.Background()); err == nil {
		t.Fatal("expected error without repository")
	}
}

// ============================================================================
// GetAll Tests
// ============================================================================

func TestGetAll_ReturnsCopy(t *testing.T) {
	service := newTestCatalogService()
	ctx := context.Background()

	first := service.GetAll(ctx)
	first[0] = &primary.Species{ID: "intruder"}
	first[1].Name = primary.Some("Mutated")

	second := service.GetAll(ctx)
	if len(second) != 5 {
		t.Fatalf("expected 5 species, got %d", len(second))
	}
	if second[0].ID != "capuchin-01" {
		t.Errorf("expected capuchin-01 first, got %s", second[0].ID)
	}
	if second[1].Name.V != "Baboon" {
		t.Errorf("expected Baboon, got %s", second[1].Name.V)
	}
}

func TestGetAll_DoesNotTrackAccess(t *testing.T) {
	service := newTestCatalogService()
	ctx := context.Background()

	service.GetAll(ctx)

	if counts := service.GetAllAccessCounts(ctx); len(counts) != 0 {
		t.Errorf("expected empty ledger, got %v", counts)
	}
}

// ============================================================================
// GetRandom Tests
// ============================================================================

func TestGetRandom_ReturnsMemberAndTracksOnce(t *testing.T) {
	service := newTestCatalogService()
	ctx := context.Background()

	members := make(map[string]bool)
	for _, sp := range testSpecies() {
		members[sp.ID] = true
	}

	for i := 0; i < 50; i++ {
		before := service.GetAllAccessCounts(ctx)
		sp := service.GetRandom(ctx)
		if sp == nil {
			t.Fatal("expected a species, got nil")
		}
		if !members[sp.ID] {
			t.Fatalf("random species %s is not in the catalog", sp.ID)
		}
		if got, want := service.GetAccessCount(ctx, sp.ID), before[sp.ID]+1; got != want {
			t.Fatalf("expected count %d for %s, got %d", want, sp.ID, got)
		}

		total := 0
		for _, c := range service.GetAllAccessCounts(ctx) {
			total += c
		}
		if total != i+1 {
			t.Fatalf("expected %d total accesses, got %d", i+1, total)
		}
	}
}

func TestGetRandom_SeedIsReproducible(t *testing.T) {
	ctx := context.Background()
	a := NewCatalogService(nil, WithSeed(7))
	b := NewCatalogService(nil, WithSeed(7))
	a.Initialize(ctx, testSpecies())
	b.Initialize(ctx, testSpecies())

	for i := 0; i < 10; i++ {
		if x, y := a.GetRandom(ctx).ID, b.GetRandom(ctx).ID; x != y {
			t.Fatalf("pick %d differs: %s vs %s", i, x, y)
		}
	}
}

// ============================================================================
// FindByName Tests
// ============================================================================

func TestFindByName_CaseInsensitive(t *testing.T) {
	service := newTestCatalogService()
	ctx := context.Background()

	for _, name := range []string{"Capuchin", "capuchin", "CAPUCHIN"} {
		sp := service.FindByName(ctx, name)
		if sp == nil {
			t.Fatalf("expected match for %q", name)
		}
		if sp.ID != "capuchin-01" {
			t.Errorf("expected capuchin-01 for %q, got %s", name, sp.ID)
		}
	}

	if got := service.GetAccessCount(ctx, "capuchin-01"); got != 3 {
		t.Errorf("expected 3 accesses, got %d", got)
	}
}

func TestFindByName_BlankIsMissWithoutSideEffects(t *testing.T) {
	service := newTestCatalogService()
	ctx := context.Background()

	for _, name := range []string{"", "   ", "\t"} {
		if sp := service.FindByName(ctx, name); sp != nil {
			t.Errorf("expected nil for %q, got %s", name, sp.ID)
		}
	}
	if sp := service.FindByID(ctx, ""); sp != nil {
		t.Errorf("expected nil for empty id, got %s", sp.ID)
	}

	if counts := service.GetAllAccessCounts(ctx); len(counts) != 0 {
		t.Errorf("expected ledger untouched, got %v", counts)
	}
}

func TestFindByName_MissDoesNotTrack(t *testing.T) {
	service := newTestCatalogService()
	ctx := context.Background()

	if sp := service.FindByName(ctx, "Gorilla"); sp != nil {
		t.Errorf("expected nil, got %s", sp.ID)
	}
	if counts := service.GetAllAccessCounts(ctx); len(counts) != 0 {
		t.Errorf("expected empty ledger, got %v", counts)
	}
}

func TestFindByName_FirstMatchWins(t *testing.T) {
	service := NewCatalogService(nil)
	ctx := context.Background()
	service.Initialize(ctx, []*primary.Species{
		{ID: "a", Name: primary.Some("Howler")},
		{ID: "b", Name: primary.Some("howler")},
	})

	sp := service.FindByName(ctx, "HOWLER")
	if sp == nil || sp.ID != "a" {
		t.Fatalf("expected first match 'a', got %+v", sp)
	}
	if got := service.GetAccessCount(ctx, "b"); got != 0 {
		t.Errorf("expected no access for b, got %d", got)
	}
}

func TestFindByName_SkipsSpeciesWithoutName(t *testing.T) {
	service := NewCatalogService(nil)
	ctx := context.Background()
	service.Initialize(ctx, []*primary.Species{{ID: "anon-01"}})

	if sp := service.FindByName(ctx, "anon-01"); sp != nil {
		t.Errorf("expected nil, got %s", sp.ID)
	}
}

// ============================================================================
// FindByID Tests
// ============================================================================

func TestFindByID_CaseInsensitiveTracksCanonicalID(t *testing.T) {
	service := newTestCatalogService()
	ctx := context.Background()

	sp := service.FindByID(ctx, "LEMUR-01")
	if sp == nil {
		t.Fatal("expected lemur, got nil")
	}
	if sp.ID != "lemur-01" {
		t.Errorf("expected lemur-01, got %s", sp.ID)
	}

	counts := service.GetAllAccessCounts(ctx)
	if counts["lemur-01"] != 1 {
		t.Errorf("expected ledger keyed by lemur-01, got %v", counts)
	}
	if got := service.GetAccessCount(ctx, "Lemur-01"); got != 1 {
		t.Errorf("expected count 1, got %d", got)
	}
}

func TestFindByID_Miss(t *testing.T) {
	service := newTestCatalogService()
	ctx := context.Background()

	if sp := service.FindByID(ctx, "yeti-01"); sp != nil {
		t.Errorf("expected nil, got %s", sp.ID)
	}
	if got := service.GetAccessCount(ctx, "yeti-01"); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

// ============================================================================
// Ledger Query Tests
// ============================================================================

func TestGibbonScenario(t *testing.T) {
	service := newTestCatalogService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if sp := service.FindByName(ctx, "Gibbon"); sp == nil {
			t.Fatal("expected Gibbon, got nil")
		}
	}
	service.FindByName(ctx, "Lemur")

	if got := service.GetAccessCount(ctx, "gibbon-01"); got != 3 {
		t.Errorf("expected 3 accesses, got %d", got)
	}

	most := service.GetMostAccessed(ctx)
	if most == nil || most.ID != "gibbon-01" {
		t.Fatalf("expected Gibbon most accessed, got %+v", most)
	}

	// GetMostAccessed is a query, not an access
	if got := service.GetAccessCount(ctx, "gibbon-01"); got != 3 {
		t.Errorf("expected count to stay 3, got %d", got)
	}

	service.ResetAccessCount(ctx, "gibbon-01")

	if got := service.GetAccessCount(ctx, "gibbon-01"); got != 0 {
		t.Errorf("expected 0 after reset, got %d", got)
	}
	if _, ok := service.GetAllAccessCounts(ctx)["gibbon-01"]; ok {
		t.Error("expected gibbon-01 entry removed")
	}
	if most := service.GetMostAccessed(ctx); most == nil || most.ID != "lemur-01" {
		t.Errorf("expected Lemur most accessed after reset, got %+v", most)
	}
}

func TestGetMostAccessed_TieGoesToFirstAccessed(t *testing.T) {
	service := newTestCatalogService()
	ctx := context.Background()

	service.FindByID(ctx, "macaque-01")
	service.FindByID(ctx, "baboon-01")
	service.FindByID(ctx, "baboon-01")
	service.FindByID(ctx, "macaque-01")

	most := service.GetMostAccessed(ctx)
	if most == nil || most.ID != "macaque-01" {
		t.Fatalf("expected macaque-01, got %+v", most)
	}
}

func TestGetAllAccessCounts_ReturnsCopy(t *testing.T) {
	service := newTestCatalogService()
	ctx := context.Background()
	service.FindByName(ctx, "Baboon")

	counts := service.GetAllAccessCounts(ctx)
	counts["baboon-01"] = 100

	if got := service.GetAccessCount(ctx, "baboon-01"); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
}

func TestGetAccessStats(t *testing.T) {
	service := newTestCatalogService()
	ctx := context.Background()

	service.FindByName(ctx, "Lemur")
	service.FindByName(ctx, "Gibbon")
	service.FindByName(ctx, "Gibbon")

	stats := service.GetAccessStats(ctx)
	if len(stats) != 2 {
		t.Fatalf("expected 2 stats, got %d", len(stats))
	}
	if stats[0].SpeciesID != "gibbon-01" || stats[0].Name != "Gibbon" || stats[0].Count != 2 {
		t.Errorf("unexpected first stat: %+v", stats[0])
	}
	if stats[1].SpeciesID != "lemur-01" || stats[1].Count != 1 {
		t.Errorf("unexpected second stat: %+v", stats[1])
	}

	// reading stats does not inflate counts
	if got := service.GetAccessCount(ctx, "lemur-01"); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
}

func TestGetAccessCount_Blank(t *testing.T) {
	service := newTestCatalogService()

	if got := service.GetAccessCount(context.Background(), " "); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestResetAccessCount_AbsentIsNoop(t *testing.T) {
	service := newTestCatalogService()
	ctx := context.Background()
	service.FindByName(ctx, "Baboon")

	service.ResetAccessCount(ctx, "gibbon-01")
	service.ResetAccessCount(ctx, "")

	if got := service.GetAccessCount(ctx, "baboon-01"); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
}

func TestResetAllAccessCounts(t *testing.T) {
	service := newTestCatalogService()
	ctx := context.Background()
	service.FindByName(ctx, "Baboon")
	service.GetRandom(ctx)

	service.ResetAllAccessCounts(ctx)

	if counts := service.GetAllAccessCounts(ctx); len(counts) != 0 {
		t.Errorf("expected empty ledger, got %v", counts)
	}
	if most := service.GetMostAccessed(ctx); most != nil {
		t.Errorf("expected nil, got %s", most.ID)
	}
	if got := service.Count(ctx); got != 5 {
		t.Errorf("expected records untouched, got %d", got)
	}
}

// ============================================================================
// Concurrency / Logging Tests
// ============================================================================

func TestConcurrentLookups_NoLostUpdates(t *testing.T) {
	service := newTestCatalogService()
	ctx := context.Background()

	const workers = 50
	const rounds = 100

	var hits atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				if service.GetRandom(ctx) != nil {
					hits.Add(1)
				}
				if service.FindByName(ctx, "gibbon") != nil {
					hits.Add(1)
				}
				service.GetMostAccessed(ctx)
				service.GetAccessStats(ctx)
			}
		}()
	}
	wg.Wait()

	total := 0
	for _, count := range service.GetAllAccessCounts(ctx) {
		total += count
	}
	if int64(total) != hits.Load() {
		t.Errorf("ledger total = %d, successful lookups = %d", total, hits.Load())
	}
	if want := int64(workers * rounds * 2); hits.Load() != want {
		t.Errorf("expected %d successful lookups, got %d", want, hits.Load())
	}
}

func TestTrackAccess_LogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	service := NewCatalogService(nil, WithLogger(logger))
	ctx := context.Background()
	service.Initialize(ctx, testSpecies())

	service.FindByID(ctx, "LEMUR-01")
	service.FindByName(ctx, "Gibbon")

	output := buf.String()
	if !strings.Contains(output, "species_id=lemur-01 count=1 tracked=1") {
		t.Errorf("expected first access log line, got:\n%s", output)
	}
	if !strings.Contains(output, "species_id=gibbon-01 count=1 tracked=2") {
		t.Errorf("expected second access log line, got:\n%s", output)
	}
}
