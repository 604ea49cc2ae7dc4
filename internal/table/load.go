package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/charmap"
)

// DecodeError indicates that no fallback encoding produced a parseable
// file. Callers treat it as a per-file failure: skip the file, keep the
// pipeline running.
type DecodeError struct {
	File  string
	Tried []string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("no encoding decoded %s (tried %s)", e.File, strings.Join(e.Tried, ", "))
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeFunc turns raw file bytes into text, or reports that the bytes
// are not valid under the encoding.
type decodeFunc func(data []byte) (string, error)

var decoders = map[string]decodeFunc{
	"utf-8-sig": func(data []byte) (string, error) {
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return "", fmt.Errorf("invalid UTF-8 byte sequence")
		}
		return string(data), nil
	},
	"latin-1": func(data []byte) (string, error) {
		return charmap.ISO8859_1.NewDecoder().String(string(data))
	},
	"windows-1252": func(data []byte) (string, error) {
		return charmap.Windows1252.NewDecoder().String(string(data))
	},
}

// Load reads a delimited file, probing the named encodings in order and
// keeping the first one under which the whole file decodes and parses.
// Each attempt is logged with its outcome so the fallback chain is
// inspectable. Returns a *DecodeError when every encoding fails.
func Load(path string, encodings []string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var tried []string
	for _, name := range encodings {
		decode, ok := decoders[name]
		if !ok {
			log.Warn().Str("encoding", name).Msg("Unknown encoding in fallback list; skipping")
			continue
		}
		tried = append(tried, name)

		text, err := decode(data)
		if err != nil {
			log.Debug().
				Str("file", path).
				Str("encoding", name).
				Err(err).
				Msg("Encoding rejected file")
			continue
		}

		t, err := parse(text)
		if err != nil {
			log.Debug().
				Str("file", path).
				Str("encoding", name).
				Err(err).
				Msg("File did not parse under encoding")
			continue
		}

		log.Debug().
			Str("file", path).
			Str("encoding", name).
			Int("rows", len(t.Rows)).
			Int("columns", len(t.Header)).
			Msg("Loaded table")
		return t, nil
	}

	return nil, &DecodeError{File: path, Tried: tried}
}

// parse reads decoded CSV text into a Table. Short records leave their
// trailing cells absent; on a duplicate column name the first column
// wins.
func parse(text string) (*Table, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file has no header row")
	}

	header := make([]string, len(records[0]))
	for i, c := range records[0] {
		header[i] = strings.TrimSpace(c)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(header))
		for i, col := range header {
			if i >= len(record) {
				break
			}
			if _, exists := row[col]; exists {
				continue
			}
			row[col] = record[i]
		}
		rows = append(rows, row)
	}

	return &Table{Header: header, Rows: rows}, nil
}
