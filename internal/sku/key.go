package sku

import "regexp"

// Candidate column names for the SKU-like column, in lookup order.
var keyColumns = []string{"Variant SKU", "SKU"}

var digitRun = regexp.MustCompile(`[0-9]+`)

// ExtractKey derives the matching key from a raw SKU: the first maximal
// run of ASCII decimal digits, or "" when the SKU contains none.
//
// Only the first run is taken, so "ABC-123-X-456" collapses to "123".
// That loses precision on multi-segment SKUs and is deliberate: it is
// the key both source feeds are reconciled on.
func ExtractKey(raw string) string {
	return digitRun.FindString(raw)
}

// KeyColumn returns the SKU-like column present in the header, or ""
// when the table has none.
func KeyColumn(header []string) string {
	for _, want := range keyColumns {
		for _, col := range header {
			if col == want {
				return want
			}
		}
	}
	return ""
}
