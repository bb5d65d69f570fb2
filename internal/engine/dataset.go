// Package engine provides the in-memory tabular data engine for the CSV
// viewer: parsing, filtering, sorting, and pagination over a single dataset.
// This package has no UI or transport dependencies and can be used by any
// frontend.
package engine

// Record is one parsed CSV row as a column-name-to-value mapping.
// Records are created during parsing and never mutated afterwards.
type Record map[string]string

// Dataset is an ordered sequence of Records sharing one header.
// It is replaced wholesale on reload; filter and sort derive new
// Datasets instead of mutating the original.
type Dataset struct {
	Columns []string // Header column names, in file order
	Records []Record

	// Dropped counts data rows discarded during parsing because their
	// field count did not match the header. Kept for observability;
	// dropping is silent by policy, not an error.
	Dropped int
}

// Len returns the number of records.
func (d Dataset) Len() int {
	return len(d.Records)
}

// HasColumn reports whether name is one of the dataset's columns.
func (d Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Value returns the cell value for the given column, or the empty string
// if the record has no such column.
func (r Record) Value(column string) string {
	return r[column]
}

// Direction is a sort order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection normalizes a user-supplied direction string.
// Anything that is not "desc" is ascending.
func ParseDirection(s string) Direction {
	if s == string(Descending) {
		return Descending
	}
	return Ascending
}

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}
