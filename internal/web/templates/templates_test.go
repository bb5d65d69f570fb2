package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/tably/tably/internal/engine"
)

func renderSection(t *testing.T, vs engine.ViewState) string {
	t.Helper()

	ds := engine.Dataset{
		Columns: []string{"name", "age"},
		Records: []engine.Record{{"name": "Alice", "age": "30"}},
	}
	var b strings.Builder
	err := TableSection(TablePageParams{
		State:     vs,
		Result:    engine.Paginate(ds, 1, vs.PerPage),
		PageSizes: []int{10, 25},
	}).Render(context.Background(), &b)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return b.String()
}

func TestTableSection_PageSizeSelectKeepsViewState(t *testing.T) {
	body := renderSection(t, engine.ViewState{
		Search:     "oslo",
		Column:     "name",
		SortColumn: "age",
		SortDir:    engine.Descending,
		Page:       1,
		PerPage:    10,
	})

	// The page-size select submits via hx-include, so the current search,
	// scope, and sort must sit next to it as hidden inputs.
	for _, want := range []string{
		`<input type="hidden" name="search" value="oslo"/>`,
		`<input type="hidden" name="search_in" value="name"/>`,
		`<input type="hidden" name="sort" value="age"/>`,
		`<input type="hidden" name="dir" value="desc"/>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("table section missing %s", want)
		}
	}
}

func TestTableSection_EscapesCellValues(t *testing.T) {
	ds := engine.Dataset{
		Columns: []string{"name"},
		Records: []engine.Record{{"name": `<script>alert("x")</script>`}},
	}
	var b strings.Builder
	err := TableSection(TablePageParams{
		Result:    engine.Paginate(ds, 1, 10),
		PageSizes: []int{10},
		State:     engine.ViewState{Page: 1, PerPage: 10},
	}).Render(context.Background(), &b)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if strings.Contains(b.String(), "<script>alert") {
		t.Error("cell values must be HTML-escaped")
	}
}
