// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting, but delegate
// catalog logic to services.
package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/monkeys/internal/adapters/dataset"
	"github.com/example/monkeys/internal/ports/primary"
)

// ErrNotFound marks lookups that matched nothing.
var ErrNotFound = errors.New("not found")

const boxWidth = 40

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	nameColor   = color.New(color.FgYellow, color.Bold)
	labelColor  = color.New(color.FgHiBlack)
	countColor  = color.New(color.FgGreen)
	missColor   = color.New(color.FgRed)
)

// CatalogAdapter is a thin adapter that renders CatalogService results as text.
// It depends only on the CatalogService interface, enabling easy testing with mocks.
type CatalogAdapter struct {
	service primary.CatalogService
	out     io.Writer
	showArt bool
}

// NewCatalogAdapter creates a new CatalogAdapter with the given service.
func NewCatalogAdapter(service primary.CatalogService, out io.Writer, showArt bool) *CatalogAdapter {
	return &CatalogAdapter{
		service: service,
		out:     out,
		showArt: showArt,
	}
}

// Random shows a randomly picked species.
func (a *CatalogAdapter) Random(ctx context.Context) error {
	sp := a.service.GetRandom(ctx)
	if sp == nil {
		return fmt.Errorf("no monkeys available: %w", ErrNotFound)
	}

	a.Details(ctx, sp)
	return nil
}

// List prints every species and returns them so callers can offer a selection.
func (a *CatalogAdapter) List(ctx context.Context) []*primary.Species {
	species := a.service.GetAll(ctx)
	if len(species) == 0 {
		fmt.Fprintln(a.out, "No monkeys in the database.")
		return nil
	}

	for i, sp := range species {
		fmt.Fprintf(a.out, "%d. %s (%s)\n", i+1, nameColor.Sprint(text(sp.Name)), text(sp.ScientificName))
		fmt.Fprintf(a.out, "   Region: %s | Habitat: %s\n", text(sp.Region), text(sp.Habitat))
		fmt.Fprintln(a.out)
	}
	return species
}

// Find shows the species with the given common name.
func (a *CatalogAdapter) Find(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("a monkey name is required")
	}

	sp := a.service.FindByName(ctx, name)
	if sp == nil {
		return fmt.Errorf("no monkey found with name '%s': %w", name, ErrNotFound)
	}

	a.Details(ctx, sp)
	return nil
}

// Show shows the species with the given identifier.
func (a *CatalogAdapter) Show(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("a monkey id is required")
	}

	sp := a.service.FindByID(ctx, id)
	if sp == nil {
		return fmt.Errorf("no monkey found with id '%s': %w", id, ErrNotFound)
	}

	a.Details(ctx, sp)
	return nil
}

// Stats prints the access ledger, most accessed first, and returns the number of rows.
func (a *CatalogAdapter) Stats(ctx context.Context) int {
	stats := a.service.GetAccessStats(ctx)
	if len(stats) == 0 {
		fmt.Fprintln(a.out, "No access data available yet. View some monkeys first!")
		return 0
	}

	fmt.Fprintf(a.out, "%-30s %12s\n\n", "Monkey Name", "Access Count")
	fmt.Fprintln(a.out, strings.Repeat("─", 43))
	for _, s := range stats {
		label := s.Name
		if label == "" {
			label = s.SpeciesID
		}
		fmt.Fprintf(a.out, "%-30s %s\n", label, countColor.Sprintf("%12d", s.Count))
	}

	if most := a.service.GetMostAccessed(ctx); most != nil {
		fmt.Fprintf(a.out, "\n🏆 Most Accessed: %s\n", nameColor.Sprint(displayName(most)))
	}
	return len(stats)
}

// ResetStats clears one species' access count, or all of them when id is empty.
func (a *CatalogAdapter) ResetStats(ctx context.Context, id string) {
	if strings.TrimSpace(id) == "" {
		a.service.ResetAllAccessCounts(ctx)
		fmt.Fprintln(a.out, "✓ All access counts reset")
		return
	}

	a.service.ResetAccessCount(ctx, id)
	fmt.Fprintf(a.out, "✓ Access count for %s reset\n", id)
}

// Export writes the whole catalog in the given format.
func (a *CatalogAdapter) Export(ctx context.Context, format dataset.Format, colorJSON bool) error {
	doc := dataset.FromSpecies(a.service.GetAll(ctx))
	if err := dataset.Encode(a.out, doc, format, dataset.EncodeOptions{Color: colorJSON}); err != nil {
		return fmt.Errorf("failed to export catalog: %w", err)
	}
	return nil
}

// Details renders the full record for one species.
func (a *CatalogAdapter) Details(ctx context.Context, sp *primary.Species) {
	name := displayName(sp)

	a.Box(name)
	fmt.Fprintln(a.out)

	if a.showArt {
		writeLines(a.out, artFor(name))
	}

	fmt.Fprintln(a.out, "\n📝 Details:")
	a.field("ID", sp.ID)
	a.field("Scientific Name", text(sp.ScientificName))
	a.field("Region", text(sp.Region))
	a.field("Habitat", text(sp.Habitat))
	a.field("Lifespan", withUnit(sp.Lifespan, "years"))
	a.field("Weight", decimalWithUnit(sp.Weight.V.String(), sp.Weight.Valid, "kg"))
	a.field("Height", decimalWithUnit(sp.Height.V.String(), sp.Height.Valid, "cm"))
	a.field("Diet", text(sp.Diet))
	a.field("Social Structure", text(sp.SocialStructure))
	a.field("Intelligence Level", text(sp.IntelligenceLevel))
	a.field("Conservation Status", text(sp.ConservationStatus))
	a.field("Population Trend", text(sp.PopulationTrend))
	if sp.ImageURL.Valid {
		a.field("Image", sp.ImageURL.V)
	}

	fmt.Fprintln(a.out, "\n📄 Description:")
	fmt.Fprintf(a.out, "  %s\n", text(sp.Description))

	count := a.service.GetAccessCount(ctx, sp.ID)
	fmt.Fprintf(a.out, "\n📊 This monkey has been accessed %s time(s).\n", countColor.Sprintf("%d", count))
}

// Box prints a boxed single-line title.
func (a *CatalogAdapter) Box(title string) {
	inner := boxWidth
	pad := inner - 2 - displayWidth(title)
	if pad < 1 {
		pad = 1
	}
	fmt.Fprintln(a.out, "╔"+strings.Repeat("═", inner)+"╗")
	fmt.Fprintf(a.out, "║  %s%s║\n", headerColor.Sprint(title), strings.Repeat(" ", pad))
	fmt.Fprintln(a.out, "╚"+strings.Repeat("═", inner)+"╝")
}

// Miss prints a lookup failure.
func (a *CatalogAdapter) Miss(err error) {
	fmt.Fprintf(a.out, "\n%s\n", missColor.Sprintf("❌ %s", missMessage(err)))
}

func (a *CatalogAdapter) field(label, value string) {
	fmt.Fprintf(a.out, "  • %s %s\n", labelColor.Sprint(label+":"), value)
}

// Helper functions

const unknown = "unknown"

func text(v sql.Null[string]) string {
	if !v.Valid {
		return unknown
	}
	return v.V
}

func withUnit(v sql.Null[int], unit string) string {
	if !v.Valid {
		return unknown
	}
	return fmt.Sprintf("%d %s", v.V, unit)
}

func decimalWithUnit(s string, valid bool, unit string) string {
	if !valid {
		return unknown
	}
	return s + " " + unit
}

func displayName(sp *primary.Species) string {
	if sp.Name.Valid && sp.Name.V != "" {
		return sp.Name.V
	}
	return sp.ID
}

// missMessage drops the sentinel suffix from a wrapped ErrNotFound.
func missMessage(err error) string {
	return strings.TrimSuffix(err.Error(), ": "+ErrNotFound.Error())
}

// displayWidth counts runes, which is close enough for box padding.
func displayWidth(s string) int {
	return len([]rune(s))
}
