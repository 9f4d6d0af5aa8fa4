// Package wire provides dependency injection for the monkeys application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"database/sql"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"

	cliadapter "github.com/example/monkeys/internal/adapters/cli"
	"github.com/example/monkeys/internal/adapters/dataset"
	"github.com/example/monkeys/internal/adapters/sqlite"
	"github.com/example/monkeys/internal/app"
	"github.com/example/monkeys/internal/db"
	"github.com/example/monkeys/internal/ports/primary"
)

// Options controls how the catalog is assembled.
type Options struct {
	DatasetPath string // empty means the builtin dataset
	Seed        uint64 // 0 means unseeded random picks
	Logger      *slog.Logger
}

var (
	options        Options
	catalogService primary.CatalogService
	database       *sql.DB
	once           sync.Once
)

// Configure sets the options used by the singletons. It must be called
// before the first service is requested; later calls have no effect.
func Configure(opts Options) {
	options = opts
}

// CatalogService returns the singleton CatalogService instance.
func CatalogService() primary.CatalogService {
	once.Do(initServices)
	return catalogService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	service, conn, err := NewCatalog(context.Background(), options)
	if err != nil {
		log.Fatalf("failed to initialize catalog: %v", err)
	}
	catalogService = service
	database = conn
}

// NewCatalog builds a loaded catalog backed by a fresh in-memory store.
// The caller owns the returned database handle.
func NewCatalog(ctx context.Context, opts Options) (*app.CatalogServiceImpl, *sql.DB, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	conn, err := db.Open()
	if err != nil {
		return nil, nil, err
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	speciesRepo := sqlite.NewSpeciesRepository(conn)

	source := dataset.Builtin()
	if opts.DatasetPath != "" {
		source = dataset.File(opts.DatasetPath)
	}

	n, err := app.ImportDataset(ctx, source, speciesRepo)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	logger.DebugContext(ctx, "dataset imported", "source", source.Name(), "species", n)

	catalogOpts := []app.CatalogOption{app.WithLogger(logger)}
	if opts.Seed != 0 {
		catalogOpts = append(catalogOpts, app.WithSeed(opts.Seed))
	}

	// Create services (primary ports implementation)
	service := app.NewCatalogService(speciesRepo, catalogOpts...)
	if err := service.Load(ctx); err != nil {
		conn.Close()
		return nil, nil, err
	}

	return service, conn, nil
}

// Close releases the staging store, if it was opened.
func Close() error {
	if database != nil {
		return database.Close()
	}
	return nil
}

// CatalogAdapter returns a new CatalogAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func CatalogAdapter(showArt bool) *cliadapter.CatalogAdapter {
	return CatalogAdapterWithOutput(os.Stdout, showArt)
}

// CatalogAdapterWithOutput returns a new CatalogAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func CatalogAdapterWithOutput(out io.Writer, showArt bool) *cliadapter.CatalogAdapter {
	return cliadapter.NewCatalogAdapter(CatalogService(), out, showArt)
}
