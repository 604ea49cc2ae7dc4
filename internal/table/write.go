package table

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// Write serializes rows under the given header to a UTF-8 CSV file.
// Absent cells serialize as empty fields.
func Write(path string, header []string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header to %s: %w", path, err)
	}

	record := make([]string, len(header))
	for _, row := range rows {
		for i, col := range header {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing row to %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}

	log.Debug().
		Str("file", path).
		Int("rows", len(rows)).
		Int("columns", len(header)).
		Msg("Wrote table")
	return nil
}
