package table

// Row maps a column name to its cell value. A missing key means the cell
// is absent, which is distinct from an empty string: short CSV records
// leave their trailing columns absent rather than empty.
type Row map[string]string

// Get returns the cell value and whether the cell is present.
func (r Row) Get(column string) (string, bool) {
	v, ok := r[column]
	return v, ok
}

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table holds a parsed delimited file: the header in original column
// order (whitespace-trimmed) and one Row per record.
type Table struct {
	Header []string
	Rows   []Row
}

// HasColumn reports whether the header contains the exact column name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Header {
		if c == name {
			return true
		}
	}
	return false
}

// ColumnSet returns the header as a set, used to record column
// provenance for export partitioning.
func (t *Table) ColumnSet() map[string]struct{} {
	set := make(map[string]struct{}, len(t.Header))
	for _, c := range t.Header {
		set[c] = struct{}{}
	}
	return set
}
