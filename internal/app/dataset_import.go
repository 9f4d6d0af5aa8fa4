package app

import (
	"context"
	"fmt"

	corecatalog "github.com/example/monkeys/internal/core/catalog"
	"github.com/example/monkeys/internal/ports/secondary"
)

// ImportDataset replaces the repository contents with the species supplied by
// source, preserving source order. Identifiers that share a catalog key are
// rejected before the repository is touched. Returns the number of stored species.
func ImportDataset(ctx context.Context, source secondary.DatasetSource, repo secondary.SpeciesRepository) (int, error) {
	records, err := source.Species(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read dataset: %w", err)
	}

	if err := checkDuplicateIDs(records); err != nil {
		return 0, err
	}

	if err := repo.DeleteAll(ctx); err != nil {
		return 0, fmt.Errorf("failed to clear species: %w", err)
	}

	for _, r := range records {
		if err := repo.Create(ctx, r); err != nil {
			return 0, fmt.Errorf("failed to import dataset: %w", err)
		}
	}

	n, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to import dataset: %w", err)
	}
	return n, nil
}

// checkDuplicateIDs uses the same Unicode folding as catalog lookups, which
// is wider than the store's ASCII-only NOCASE collation.
func checkDuplicateIDs(records []*secondary.SpeciesRecord) error {
	seen := make(map[string]string, len(records))
	for _, r := range records {
		key := corecatalog.Key(r.ID)
		if first, ok := seen[key]; ok {
			return fmt.Errorf("duplicate species id %q (already have %q)", r.ID, first)
		}
		seen[key] = r.ID
	}
	return nil
}
