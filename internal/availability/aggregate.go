package availability

import (
	"strconv"
	"strings"

	"dropship_manager/internal/table"

	"github.com/rs/zerolog/log"
)

// QuantityColumn is the canonical quantity column name in the inventory
// feed. Feeds that rename it are caught by the substring fallback.
const QuantityColumn = "Available Quantity"

// quantitySubstrings mark columns that carry stock counts; used by the
// positive-quantity pre-filter, which sums across all of them.
var quantitySubstrings = []string{"Available", "On hand"}

// ResolveColumn picks the quantity column for a header: the exact
// QuantityColumn name when present, else the first column containing
// "Available" (case-sensitive). The second return is false when the
// header carries no quantity column at all.
func ResolveColumn(header []string) (string, bool) {
	for _, col := range header {
		if col == QuantityColumn {
			return col, true
		}
	}
	for _, col := range header {
		if strings.Contains(col, "Available") {
			log.Debug().Str("column", col).Msg("Quantity column resolved by substring fallback")
			return col, true
		}
	}
	return "", false
}

// Aggregate sums the resolved quantity column over all rows of a product
// group, treating absent or unparseable cells as zero and truncating to
// an integer. ok is false when the group has no inventory data at all:
// either the header carries no quantity column, or no row of the group
// has a present cell in it. The reconciled header always unions in the
// inventory columns, so header presence alone cannot distinguish an
// unmatched group from a zero-stock one; cell presence can.
func Aggregate(rows []table.Row, header []string) (total int, ok bool) {
	column, ok := ResolveColumn(header)
	if !ok {
		return 0, false
	}

	hasData := false
	sum := 0.0
	for _, row := range rows {
		if _, present := row.Get(column); present {
			hasData = true
		}
		sum += cellValue(row, column)
	}
	if !hasData {
		return 0, false
	}
	return int(sum), true
}

// SumQuantityLike sums every quantity-like column of a single row. The
// reconciler's strict pre-filter uses this to drop inventory rows with
// no positive stock before matching.
func SumQuantityLike(row table.Row) float64 {
	sum := 0.0
	for col := range row {
		for _, sub := range quantitySubstrings {
			if strings.Contains(col, sub) {
				sum += cellValue(row, col)
				break
			}
		}
	}
	return sum
}

func cellValue(row table.Row, column string) float64 {
	raw, present := row.Get(column)
	if !present {
		return 0
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Debug().Str("column", column).Str("value", raw).Msg("Non-numeric quantity cell treated as zero")
		return 0
	}
	return v
}
