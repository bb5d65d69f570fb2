package engine

import "strings"

// Filter returns the records whose cells contain term, case-insensitively.
// When column is set, only that column's value is searched; otherwise any
// column may match. An empty term returns the dataset unchanged, and the
// relative order of surviving records is always preserved.
func Filter(ds Dataset, term, column string) Dataset {
	if term == "" {
		return ds
	}
	needle := strings.ToLower(term)

	out := Dataset{Columns: ds.Columns, Dropped: ds.Dropped}
	for _, rec := range ds.Records {
		if matches(rec, ds.Columns, needle, column) {
			out.Records = append(out.Records, rec)
		}
	}
	return out
}

// matches reports whether rec contains needle. Missing cells never match.
func matches(rec Record, columns []string, needle, column string) bool {
	if column != "" {
		v, ok := rec[column]
		return ok && strings.Contains(strings.ToLower(v), needle)
	}
	for _, col := range columns {
		if v, ok := rec[col]; ok && strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}
