package engine

import (
	"errors"
	"strings"
)

// ErrEmptyData indicates the parsed dataset has no data rows. Callers
// treat this as a load-time failure rather than rendering an empty table.
var ErrEmptyData = errors.New("dataset has no data rows")

// Parse turns raw CSV text into a Dataset.
//
// The first line is the header; every following line is split into fields
// with a quote-aware splitter (a comma inside double quotes is not a
// separator, a doubled quote inside a quoted field is a literal quote,
// and field boundaries are trimmed). A data row is accepted only when its
// field count exactly matches the header's; mismatched rows are dropped
// silently and counted in Dataset.Dropped.
//
// Line splitting happens before quote handling, so embedded newlines
// inside quoted fields are not supported. This is a known limitation of
// the format accepted here, not something Parse tries to repair.
func Parse(text string) (Dataset, error) {
	// Trim first so a trailing blank line cannot become a spurious row.
	text = strings.TrimSpace(text)
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return Dataset{}, ErrEmptyData
	}

	header := splitFields(strings.TrimSuffix(lines[0], "\r"))

	ds := Dataset{Columns: header}
	for _, line := range lines[1:] {
		fields := splitFields(strings.TrimSuffix(line, "\r"))
		if len(fields) != len(header) {
			ds.Dropped++
			continue
		}

		rec := make(Record, len(header))
		for i, col := range header {
			rec[col] = fields[i]
		}
		ds.Records = append(ds.Records, rec)
	}

	if len(ds.Records) == 0 {
		return Dataset{}, ErrEmptyData
	}
	return ds, nil
}

// splitFields splits one CSV line into fields. Commas inside a pair of
// double quotes do not separate fields, and "" inside a quoted field is
// an escaped literal quote. Whitespace at field boundaries is trimmed.
func splitFields(line string) []string {
	fields := make([]string, 0, 8)
	var b strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				b.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(b.String()))
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	fields = append(fields, strings.TrimSpace(b.String()))
	return fields
}
