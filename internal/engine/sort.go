package engine

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort returns a new Dataset ordered by the given column. When column is
// empty the dataset is returned unchanged, in its original order.
//
// Values that both parse as numbers compare numerically; everything else
// compares as locale-aware text with numeric-substring awareness, so
// "item2" sorts before "item10". The sort is not guaranteed stable across
// equal keys.
func Sort(ds Dataset, column string, dir Direction) Dataset {
	if column == "" {
		return ds
	}

	out := Dataset{
		Columns: ds.Columns,
		Records: make([]Record, len(ds.Records)),
		Dropped: ds.Dropped,
	}
	copy(out.Records, ds.Records)

	// Collators are not safe for concurrent use, so each Sort builds its own.
	col := collate.New(language.Und, collate.Numeric, collate.IgnoreCase)

	sort.Slice(out.Records, func(i, j int) bool {
		cmp := compareCells(col, out.Records[i][column], out.Records[j][column])
		if dir == Descending {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

// compareCells compares two cell values: numerically when both have a
// parseable numeric prefix, otherwise by collation.
func compareCells(col *collate.Collator, a, b string) int {
	an, aok := parseFloatPrefix(a)
	bn, bok := parseFloatPrefix(b)
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	return col.CompareString(a, b)
}

// parseFloatPrefix parses the leading numeric prefix of s, so "12.5kg"
// yields 12.5. A string with no leading number fails.
func parseFloatPrefix(s string) (float64, bool) {
	s = strings.TrimSpace(s)

	end := 0
	seenDigit := false
	seenDot := false
	for end < len(s) {
		c := s[end]
		switch {
		case c == '+' || c == '-':
			if end != 0 {
				goto done
			}
		case c == '.':
			if seenDot {
				goto done
			}
			seenDot = true
		case c >= '0' && c <= '9':
			seenDigit = true
		case (c == 'e' || c == 'E') && seenDigit:
			if rest := exponentLen(s[end:]); rest > 0 {
				end += rest
			}
			goto done
		default:
			goto done
		}
		end++
	}

done:
	if !seenDigit {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// exponentLen returns the length of a valid exponent at the start of s
// ("e5", "E-3"), or 0 if s does not begin with one.
func exponentLen(s string) int {
	i := 1 // past the 'e'
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0
	}
	return i
}
