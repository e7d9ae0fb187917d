package dataprocessing

import (
	"strings"
	"unicode"
)

// supplierReplacements maps long corporate suffixes to their short forms.
// The order is fixed and the rules are applied sequentially: later rules can
// see the output of earlier ones, which is intentional.
var supplierReplacements = [...][2]string{
	{"communications", "comm"},
	{"telecom", "tel"},
	{"limited", "ltd"},
	{"incorporated", "inc"},
	{"corporation", "corp"},
	{"&", "and"},
}

// NormalizeDestination trims the raw destination name and collapses internal
// whitespace runs. The casing is preserved so the sheet's own spelling shows
// up in the UI unchanged. Empty input degrades to "Unknown".
func NormalizeDestination(name string) string {
	name = collapseWhitespace(name)
	if name == "" {
		return "Unknown"
	}
	return name
}

// ExtractCountry returns the first whitespace- or hyphen-delimited token of
// a destination, or "Unknown" when there is none. "UK-London" -> "UK",
// "United States" -> "United".
func ExtractCountry(destination string) string {
	fields := strings.Fields(strings.ReplaceAll(destination, "-", " "))
	if len(fields) == 0 {
		return "Unknown"
	}
	return fields[0]
}

// NormalizeSupplierName produces the canonical matching key for a supplier:
// lower-cased, corporate suffixes abbreviated, punctuation stripped and
// whitespace collapsed. Idempotent: the output contains no upper case and no
// punctuation, so a second pass is a no-op.
func NormalizeSupplierName(supplier string) string {
	name := strings.ToLower(strings.TrimSpace(supplier))
	for _, r := range supplierReplacements {
		name = strings.ReplaceAll(name, r[0], r[1])
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' {
			b.WriteRune(r)
		}
	}

	return collapseWhitespace(b.String())
}

// collapseWhitespace trims s and replaces every internal whitespace run with
// a single space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
