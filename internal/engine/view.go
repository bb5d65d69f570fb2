package engine

// ViewState is the caller-owned search/sort/pagination selection that
// drives re-derivation of the visible page. It is plain data: handlers
// mutate it, the engine only reads it.
type ViewState struct {
	Search     string
	Column     string // scope the search to one column; empty means all
	SortColumn string
	SortDir    Direction
	Page       int
	PerPage    int
}

// Apply runs the filter, sort, and paginate pipeline for the current
// state. It is pure and deterministic: the same dataset and state always
// produce the same page, and ds itself is never modified.
func Apply(ds Dataset, vs ViewState) Page {
	filtered := Filter(ds, vs.Search, vs.Column)
	sorted := Sort(filtered, vs.SortColumn, vs.SortDir)
	return Paginate(sorted, vs.Page, vs.PerPage)
}

// GoToPage sets the current page, clamped to [1, totalPages].
func (vs *ViewState) GoToPage(page, totalPages int) {
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	vs.Page = page
}

// NextPage advances one page; a no-op on the last page.
func (vs *ViewState) NextPage(totalPages int) {
	if vs.Page < totalPages {
		vs.Page++
	}
}

// PrevPage goes back one page; a no-op on page 1.
func (vs *ViewState) PrevPage() {
	if vs.Page > 1 {
		vs.Page--
	}
}

// ToggleSort sorts by column ascending, or flips the direction when the
// column is already the sort key. Changing the sort resets to page 1.
func (vs *ViewState) ToggleSort(column string) {
	if vs.SortColumn == column {
		vs.SortDir = vs.SortDir.Toggle()
	} else {
		vs.SortColumn = column
		vs.SortDir = Ascending
	}
	vs.Page = 1
}
