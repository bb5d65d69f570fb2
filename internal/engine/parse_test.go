package engine

import (
	"errors"
	"testing"
)

func TestParse_Basic(t *testing.T) {
	ds, err := Parse("name,age\nAlice,30\nBob,25")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	wantCols := []string{"name", "age"}
	if len(ds.Columns) != len(wantCols) {
		t.Fatalf("Columns = %v, want %v", ds.Columns, wantCols)
	}
	for i, c := range wantCols {
		if ds.Columns[i] != c {
			t.Errorf("Columns[%d] = %q, want %q", i, ds.Columns[i], c)
		}
	}

	if ds.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ds.Len())
	}
	if got := ds.Records[0].Value("name"); got != "Alice" {
		t.Errorf("Records[0][name] = %q, want %q", got, "Alice")
	}
	if got := ds.Records[1].Value("age"); got != "25" {
		t.Errorf("Records[1][age] = %q, want %q", got, "25")
	}
}

func TestParse_EmptyInputs(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty string", ""},
		{"whitespace only", "  \n\n  "},
		{"header only", "a,b,c"},
		{"header with trailing newline", "a,b,c\n"},
		{"all rows malformed", "a,b\n1,2,3\n1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			if !errors.Is(err, ErrEmptyData) {
				t.Errorf("Parse(%q) error = %v, want ErrEmptyData", tt.text, err)
			}
		})
	}
}

func TestParse_DropsMismatchedRows(t *testing.T) {
	// Rows matching the header's field count are kept, all others dropped.
	ds, err := Parse("a,b\n1,2\n1,2,3\nonly-one\n3,4")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ds.Len())
	}
	if ds.Dropped != 2 {
		t.Errorf("Dropped = %d, want 2", ds.Dropped)
	}
	if got := ds.Records[1].Value("b"); got != "4" {
		t.Errorf("Records[1][b] = %q, want %q", got, "4")
	}
}

func TestParse_QuotedFields(t *testing.T) {
	ds, err := Parse("h\n\"a,b\"\n\"c\"\"d\"")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ds.Len())
	}
	if got := ds.Records[0].Value("h"); got != "a,b" {
		t.Errorf("quoted comma: got %q, want %q", got, "a,b")
	}
	if got := ds.Records[1].Value("h"); got != `c"d` {
		t.Errorf("escaped quote: got %q, want %q", got, `c"d`)
	}
}

func TestParse_TrimsFieldWhitespace(t *testing.T) {
	ds, err := Parse("a,b\n  1 , 2  ")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := ds.Records[0].Value("a"); got != "1" {
		t.Errorf("Records[0][a] = %q, want %q", got, "1")
	}
	if got := ds.Records[0].Value("b"); got != "2" {
		t.Errorf("Records[0][b] = %q, want %q", got, "2")
	}
}

func TestParse_TrailingBlankLine(t *testing.T) {
	ds, err := Parse("a,b\n1,2\n\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ds.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (trailing blank must not become a row)", ds.Len())
	}
	if ds.Dropped != 0 {
		t.Errorf("Dropped = %d, want 0", ds.Dropped)
	}
}

func TestParse_CRLFLineEndings(t *testing.T) {
	ds, err := Parse("a,b\r\n1,2\r\n3,4\r\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ds.Len())
	}
	if got := ds.Records[0].Value("b"); got != "2" {
		t.Errorf("Records[0][b] = %q, want %q (carriage return must be stripped)", got, "2")
	}
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"quoted comma", `"a,b",c`, []string{"a,b", "c"}},
		{"escaped quote", `"say ""hi""",x`, []string{`say "hi"`, "x"}},
		{"empty fields", ",,", []string{"", "", ""}},
		{"single field", "solo", []string{"solo"}},
		{"trailing comma", "a,", []string{"a", ""}},
		{"whitespace trimmed", " a , b ", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitFields(tt.line)
			if len(got) != len(tt.want) {
				t.Fatalf("splitFields(%q) = %v, want %v", tt.line, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("splitFields(%q)[%d] = %q, want %q", tt.line, i, got[i], tt.want[i])
				}
			}
		})
	}
}
