// Package catalog contains the pure logic behind the species catalog:
// identifier/name key folding and the access ledger.
// This is part of the Functional Core - no I/O, only data structures.
package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// Key returns the comparison key for an identifier or name.
// Folding is Unicode case folding and never consults the process locale,
// so the same input maps to the same key on every machine.
func Key(s string) string {
	return cases.Fold().String(s)
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// SameKey reports whether a and b are equal under Key.
func SameKey(a, b string) bool {
	return Key(a) == Key(b)
}
