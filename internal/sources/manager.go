// Package sources loads the operator's uploaded product files. Each
// file is independent: one undecodable file is skipped with a warning
// and must not block the rest.
package sources

import (
	"fmt"

	"dropship_manager/internal/table"

	"github.com/rs/zerolog/log"
)

// LoadProducts reads every product file, tolerating per-file decode
// failures, and combines the survivors into one table. It errors only
// when no file could be read at all.
func LoadProducts(paths []string, encodings []string) (*table.Table, error) {
	var tables []*table.Table
	for _, path := range paths {
		t, err := table.Load(path, encodings)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("Skipping unreadable product file")
			continue
		}
		log.Info().Str("file", path).Int("rows", len(t.Rows)).Msg("Loaded product file")
		tables = append(tables, t)
	}

	if len(tables) == 0 {
		return nil, fmt.Errorf("no readable product files among %d supplied", len(paths))
	}
	return Combine(tables), nil
}

// Combine concatenates tables, unioning their headers in first-seen
// order. Rows keep only the cells their own file provided.
func Combine(tables []*table.Table) *table.Table {
	combined := &table.Table{}
	seen := make(map[string]struct{})
	for _, t := range tables {
		for _, col := range t.Header {
			if _, dup := seen[col]; dup {
				continue
			}
			seen[col] = struct{}{}
			combined.Header = append(combined.Header, col)
		}
		combined.Rows = append(combined.Rows, t.Rows...)
	}
	log.Debug().
		Int("files", len(tables)).
		Int("rows", len(combined.Rows)).
		Int("columns", len(combined.Header)).
		Msg("Combined product tables")
	return combined
}
