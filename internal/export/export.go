// Package export splits the selected slice of the reconciled table back
// into a product file and an inventory file, using the column
// provenance recorded from each original source.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"dropship_manager/internal/selection"
	"dropship_manager/internal/table"

	"github.com/rs/zerolog/log"
)

// Files names the two generated CSVs.
type Files struct {
	ProductPath   string
	InventoryPath string
}

// Substring routing for columns recorded in neither source (merged-in
// or synthesized columns). A column may legitimately land in both
// outputs; the SKU key is the usual case.
var (
	productFallback   = []string{"SKU", "Title", "Handle", "Image Src"}
	inventoryFallback = []string{"Available", "SKU"}
)

// Export writes the selected subset of the reconciled table as two
// timestamped CSVs under dir. An empty selection produces header-only
// files, not an error.
func Export(dir string, reconciled *table.Table, sel *selection.Store, productCols, inventoryCols map[string]struct{}, now time.Time) (Files, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Files{}, fmt.Errorf("creating export dir %s: %w", dir, err)
	}

	rows := selectRows(reconciled, sel)
	sortRows(rows, reconciled.Header)

	productHeader := partitionHeader(reconciled.Header, productCols, productFallback)
	inventoryHeader := partitionHeader(reconciled.Header, inventoryCols, inventoryFallback)

	stamp := now.Format("20060102_150405")
	files := Files{
		ProductPath:   filepath.Join(dir, fmt.Sprintf("selected_products_%s.csv", stamp)),
		InventoryPath: filepath.Join(dir, fmt.Sprintf("selected_inventory_%s.csv", stamp)),
	}

	if err := writePartition(files.ProductPath, productHeader, rows); err != nil {
		return Files{}, err
	}
	if err := writePartition(files.InventoryPath, inventoryHeader, rows); err != nil {
		return Files{}, err
	}

	log.Info().
		Int("rows", len(rows)).
		Str("product_file", files.ProductPath).
		Str("inventory_file", files.InventoryPath).
		Msg("Export complete")
	return files, nil
}

// selectRows filters the reconciled rows to the chosen handles.
func selectRows(reconciled *table.Table, sel *selection.Store) []table.Row {
	var rows []table.Row
	for _, row := range reconciled.Rows {
		if sel.Contains(row["Handle"]) {
			rows = append(rows, row)
		}
	}
	log.Debug().
		Int("selected_handles", sel.Len()).
		Int("rows", len(rows)).
		Msg("Filtered reconciled rows by selection")
	return rows
}

// sortRows orders rows by Handle, falling back to the first column, so
// repeated exports of the same selection are byte-identical apart from
// the timestamp in the name.
func sortRows(rows []table.Row, header []string) {
	sortCol := "Handle"
	if !contains(header, sortCol) && len(header) > 0 {
		sortCol = header[0]
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i][sortCol] < rows[j][sortCol]
	})
}

// partitionHeader keeps the columns belonging to one output, preserving
// reconciled-table order: recorded source columns first-class, then the
// substring fallback for columns recorded in neither set.
func partitionHeader(header []string, recorded map[string]struct{}, fallback []string) []string {
	var out []string
	for _, col := range header {
		if _, ok := recorded[col]; ok {
			out = append(out, col)
			continue
		}
		for _, sub := range fallback {
			if strings.Contains(col, sub) {
				out = append(out, col)
				break
			}
		}
	}
	return out
}

// writePartition projects rows onto the partition header, collapses
// exact duplicates, and serializes.
func writePartition(path string, header []string, rows []table.Row) error {
	seen := make(map[string]bool)
	var unique []table.Row
	for _, row := range rows {
		projected := make(table.Row, len(header))
		for _, col := range header {
			if v, ok := row.Get(col); ok {
				projected[col] = v
			}
		}
		key := fingerprint(projected, header)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, projected)
	}
	return table.Write(path, header, unique)
}

func fingerprint(row table.Row, header []string) string {
	parts := make([]string, len(header))
	for i, col := range header {
		parts[i] = row[col]
	}
	return strings.Join(parts, "\x1f")
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
