// Package dataset reads and writes species datasets as YAML or JSON documents.
// It supplies the staging store at startup and renders the catalog for export.
package dataset

import (
	"database/sql"
	"fmt"

	"github.com/cockroachdb/apd/v3"
	"gopkg.in/yaml.v3"

	"github.com/example/monkeys/internal/ports/primary"
	"github.com/example/monkeys/internal/ports/secondary"
)

// Document is the top-level dataset layout.
type Document struct {
	Species []Entry `yaml:"species" json:"species"`
}

// Entry is one species in a dataset document.
// Absent keys decode to nil pointers and stay absent all the way to the catalog.
type Entry struct {
	ID                 string   `yaml:"id" json:"id"`
	Name               *string  `yaml:"name,omitempty" json:"name,omitempty"`
	ScientificName     *string  `yaml:"scientific_name,omitempty" json:"scientific_name,omitempty"`
	Region             *string  `yaml:"region,omitempty" json:"region,omitempty"`
	Habitat            *string  `yaml:"habitat,omitempty" json:"habitat,omitempty"`
	LifespanYears      *int     `yaml:"lifespan_years,omitempty" json:"lifespan_years,omitempty"`
	WeightKg           *Decimal `yaml:"weight_kg,omitempty" json:"weight_kg,omitempty"`
	HeightCm           *Decimal `yaml:"height_cm,omitempty" json:"height_cm,omitempty"`
	Diet               *string  `yaml:"diet,omitempty" json:"diet,omitempty"`
	Description        *string  `yaml:"description,omitempty" json:"description,omitempty"`
	ConservationStatus *string  `yaml:"conservation_status,omitempty" json:"conservation_status,omitempty"`
	PopulationTrend    *string  `yaml:"population_trend,omitempty" json:"population_trend,omitempty"`
	ImageURL           *string  `yaml:"image_url,omitempty" json:"image_url,omitempty"`
	SocialStructure    *string  `yaml:"social_structure,omitempty" json:"social_structure,omitempty"`
	IntelligenceLevel  *string  `yaml:"intelligence_level,omitempty" json:"intelligence_level,omitempty"`
}

// Decimal is an exact decimal that reads and writes as a plain number.
type Decimal struct {
	value apd.Decimal
}

// UnmarshalYAML parses the scalar text of the node, so 3.6 stays 3.6.
func (d *Decimal) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", node.Line)
	}
	if _, _, err := d.value.SetString(node.Value); err != nil {
		return fmt.Errorf("line %d: invalid decimal %q: %w", node.Line, node.Value, err)
	}
	if d.value.Form != apd.Finite {
		return fmt.Errorf("line %d: invalid decimal %q: must be a finite number", node.Line, node.Value)
	}
	return nil
}

// MarshalYAML writes the decimal as an untagged plain scalar.
func (d Decimal) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: d.value.String()}, nil
}

// MarshalJSON writes the decimal as a JSON number.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.value.String()), nil
}

// Records converts the document to staging records, validating presence of ids.
func (doc *Document) Records() ([]*secondary.SpeciesRecord, error) {
	records := make([]*secondary.SpeciesRecord, 0, len(doc.Species))
	for i, e := range doc.Species {
		if e.ID == "" {
			return nil, fmt.Errorf("species at index %d has no id", i)
		}
		records = append(records, e.record(i))
	}
	return records, nil
}

func (e Entry) record(position int) *secondary.SpeciesRecord {
	return &secondary.SpeciesRecord{
		ID:                 e.ID,
		Position:           position,
		Name:               nullFrom(e.Name),
		ScientificName:     nullFrom(e.ScientificName),
		Region:             nullFrom(e.Region),
		Habitat:            nullFrom(e.Habitat),
		Lifespan:           nullFrom(e.LifespanYears),
		Weight:             nullDecimal(e.WeightKg),
		Height:             nullDecimal(e.HeightCm),
		Diet:               nullFrom(e.Diet),
		Description:        nullFrom(e.Description),
		ConservationStatus: nullFrom(e.ConservationStatus),
		PopulationTrend:    nullFrom(e.PopulationTrend),
		ImageURL:           nullFrom(e.ImageURL),
		SocialStructure:    nullFrom(e.SocialStructure),
		IntelligenceLevel:  nullFrom(e.IntelligenceLevel),
	}
}

// FromSpecies builds a document from catalog species, keeping their order.
func FromSpecies(species []*primary.Species) *Document {
	doc := &Document{Species: make([]Entry, 0, len(species))}
	for _, sp := range species {
		doc.Species = append(doc.Species, Entry{
			ID:                 sp.ID,
			Name:               ptrFrom(sp.Name),
			ScientificName:     ptrFrom(sp.ScientificName),
			Region:             ptrFrom(sp.Region),
			Habitat:            ptrFrom(sp.Habitat),
			LifespanYears:      ptrFrom(sp.Lifespan),
			WeightKg:           ptrDecimal(sp.Weight),
			HeightCm:           ptrDecimal(sp.Height),
			Diet:               ptrFrom(sp.Diet),
			Description:        ptrFrom(sp.Description),
			ConservationStatus: ptrFrom(sp.ConservationStatus),
			PopulationTrend:    ptrFrom(sp.PopulationTrend),
			ImageURL:           ptrFrom(sp.ImageURL),
			SocialStructure:    ptrFrom(sp.SocialStructure),
			IntelligenceLevel:  ptrFrom(sp.IntelligenceLevel),
		})
	}
	return doc
}

func nullFrom[T any](p *T) sql.Null[T] {
	if p == nil {
		return sql.Null[T]{}
	}
	return sql.Null[T]{V: *p, Valid: true}
}

func ptrFrom[T any](n sql.Null[T]) *T {
	if !n.Valid {
		return nil
	}
	v := n.V
	return &v
}

func nullDecimal(d *Decimal) sql.Null[apd.Decimal] {
	var out sql.Null[apd.Decimal]
	if d == nil {
		return out
	}
	out.V.Set(&d.value)
	out.Valid = true
	return out
}

func ptrDecimal(n sql.Null[apd.Decimal]) *Decimal {
	if !n.Valid {
		return nil
	}
	d := &Decimal{}
	d.value.Set(&n.V)
	return d
}
