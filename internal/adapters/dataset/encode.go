package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"
)

// Format names an export encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat accepts "yaml", "yml" or "json" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (want yaml or json)", s)
	}
}

// EncodeOptions tunes Encode.
type EncodeOptions struct {
	// Color adds ANSI colouring to JSON output.
	Color bool
}

// Encode writes doc to w in the given format.
func Encode(w io.Writer, doc *Document, format Format, opts EncodeOptions) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		raw, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		out := pretty.Pretty(raw)
		if opts.Color {
			out = pretty.Color(out, nil)
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
