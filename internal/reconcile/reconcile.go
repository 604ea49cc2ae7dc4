// Package reconcile joins the product catalog to the inventory feed by
// normalized SKU key and merges matched rows, product columns winning
// on name collision.
package reconcile

import (
	"fmt"

	"dropship_manager/internal/availability"
	"dropship_manager/internal/config"
	"dropship_manager/internal/sku"
	"dropship_manager/internal/table"

	"github.com/rs/zerolog/log"
)

// SchemaError reports a required column missing from one of the input
// tables. It aborts the whole reconciliation pass; no partial result is
// produced.
type SchemaError struct {
	Table  string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s table is missing required column %q", e.Table, e.Column)
}

// Options select the matching strategy and the optional strict
// inventory pre-filter.
type Options struct {
	// Strategy is config.MatchExact or config.MatchFuzzy.
	Strategy string

	// RequirePositiveQty, when set, drops inventory rows whose total
	// quantity across all quantity-like columns is <= 0 before matching.
	RequirePositiveQty bool
}

// Result is the reconciled table plus the column provenance of both
// sources, which the export assembler needs to split rows back apart.
type Result struct {
	Table            *table.Table
	ProductColumns   map[string]struct{}
	InventoryColumns map[string]struct{}

	Matched          int
	Unmatched        int
	DroppedUnkeyable int
}

// requiredProductColumns beyond the SKU-like column itself.
var requiredProductColumns = []string{"Handle", "Title"}

// Reconcile joins products to inventory. Pure: neither input table is
// modified and no selection state is read.
//
// Product rows with an empty MatchKey are dropped from the output
// entirely; they can never match and keeping them would leave
// unbrowsable rows in the set. Keyed product rows with no inventory
// match pass through unchanged, silently.
func Reconcile(products, inventory *table.Table, opts Options) (*Result, error) {
	productKeyCol := sku.KeyColumn(products.Header)
	if productKeyCol == "" {
		return nil, &SchemaError{Table: "product", Column: "Variant SKU"}
	}
	for _, col := range requiredProductColumns {
		if !products.HasColumn(col) {
			return nil, &SchemaError{Table: "product", Column: col}
		}
	}
	inventoryKeyCol := sku.KeyColumn(inventory.Header)
	if inventoryKeyCol == "" {
		return nil, &SchemaError{Table: "inventory", Column: "Variant SKU"}
	}

	inventoryRows := inventory.Rows
	if opts.RequirePositiveQty {
		inventoryRows = filterPositiveQuantity(inventoryRows)
	}

	strategy, err := newStrategy(opts.Strategy, inventoryRows, inventoryKeyCol)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Table: &table.Table{
			Header: mergedHeader(products.Header, inventory.Header),
		},
		ProductColumns:   products.ColumnSet(),
		InventoryColumns: inventory.ColumnSet(),
	}
	productCols := products.ColumnSet()

	for _, product := range products.Rows {
		key := sku.ExtractKey(product[productKeyCol])
		if key == "" {
			result.DroppedUnkeyable++
			log.Debug().
				Str("sku", product[productKeyCol]).
				Str("handle", product["Handle"]).
				Msg("Dropping product row with no extractable key")
			continue
		}

		inv, ok := strategy.Match(product, key)
		if !ok {
			result.Unmatched++
			result.Table.Rows = append(result.Table.Rows, product.Clone())
			continue
		}

		result.Matched++
		result.Table.Rows = append(result.Table.Rows, mergeRow(product, inv, productCols))
	}

	log.Info().
		Str("strategy", strategy.Name()).
		Int("matched", result.Matched).
		Int("unmatched", result.Unmatched).
		Int("dropped_unkeyable", result.DroppedUnkeyable).
		Msg("Reconciliation complete")

	return result, nil
}

func newStrategy(name string, inventory []table.Row, keyColumn string) (Strategy, error) {
	switch name {
	case config.MatchExact, "":
		return newExactStrategy(inventory, keyColumn), nil
	case config.MatchFuzzy:
		return newFuzzyStrategy(inventory, keyColumn), nil
	default:
		return nil, fmt.Errorf("unknown matching strategy %q", name)
	}
}

// filterPositiveQuantity implements the strict policy: inventory rows
// with no positive stock are not eligible for matching at all.
func filterPositiveQuantity(rows []table.Row) []table.Row {
	kept := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		if availability.SumQuantityLike(row) > 0 {
			kept = append(kept, row)
		}
	}
	log.Debug().
		Int("before", len(rows)).
		Int("after", len(kept)).
		Msg("Applied positive-quantity inventory filter")
	return kept
}

// mergeRow merges a matched pair: every product column, plus every
// inventory column not already named in the product table.
func mergeRow(product, inv table.Row, productCols map[string]struct{}) table.Row {
	merged := product.Clone()
	for col, val := range inv {
		if _, taken := productCols[col]; taken {
			continue
		}
		merged[col] = val
	}
	return merged
}

// mergedHeader is the product header followed by inventory-only columns
// in the inventory table's original order.
func mergedHeader(productHeader, inventoryHeader []string) []string {
	seen := make(map[string]struct{}, len(productHeader))
	header := make([]string, 0, len(productHeader)+len(inventoryHeader))
	for _, col := range productHeader {
		seen[col] = struct{}{}
		header = append(header, col)
	}
	for _, col := range inventoryHeader {
		if _, dup := seen[col]; dup {
			continue
		}
		seen[col] = struct{}{}
		header = append(header, col)
	}
	return header
}
