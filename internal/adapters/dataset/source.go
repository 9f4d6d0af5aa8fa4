package dataset

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/example/monkeys/internal/ports/secondary"
)

//go:embed species.yaml
var builtinYAML []byte

// YAMLSource implements secondary.DatasetSource over a YAML document.
type YAMLSource struct {
	name string
	open func() (io.ReadCloser, error)
}

// Builtin returns the dataset compiled into the binary.
func Builtin() *YAMLSource {
	return &YAMLSource{
		name: "builtin",
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(builtinYAML)), nil
		},
	}
}

// File returns a dataset read from a YAML file on every call to Species.
func File(path string) *YAMLSource {
	return &YAMLSource{
		name: path,
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// Name identifies the source in logs and errors.
func (s *YAMLSource) Name() string {
	return s.name
}

// Species returns the dataset in document order.
func (s *YAMLSource) Species(ctx context.Context) ([]*secondary.SpeciesRecord, error) {
	r, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", s.name, err)
	}
	defer r.Close()

	doc, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", s.name, err)
	}

	records, err := doc.Records()
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", s.name, err)
	}
	return records, nil
}

// Decode parses a YAML dataset document. Unknown keys are rejected.
// An empty document yields an empty dataset.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, err
	}
	return &doc, nil
}

// Ensure YAMLSource implements the interface.
var _ secondary.DatasetSource = (*YAMLSource)(nil)
