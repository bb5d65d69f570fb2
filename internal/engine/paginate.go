package engine

// PageSizeAll is the "show everything" page size sentinel. Any
// non-positive page size is treated the same way.
const PageSizeAll = -1

// Page is one visible slice of a dataset plus the numbers needed for
// "Showing X to Y of Z" messaging. StartItem and EndItem are 1-based and
// both zero when nothing is visible.
type Page struct {
	Visible    Dataset
	TotalItems int
	TotalPages int
	StartItem  int
	EndItem    int
}

// Paginate slices ds into the requested page. With PageSizeAll the whole
// dataset is one page regardless of the page argument. Paginate never
// clamps: an out-of-range page yields an empty slice, and keeping page
// within [1, TotalPages] is the caller's job.
func Paginate(ds Dataset, page, perPage int) Page {
	n := len(ds.Records)

	if perPage == PageSizeAll || perPage <= 0 {
		p := Page{Visible: ds, TotalItems: n, TotalPages: 1}
		if n > 0 {
			p.StartItem = 1
			p.EndItem = n
		}
		return p
	}

	totalPages := (n + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	p := Page{
		Visible:    Dataset{Columns: ds.Columns, Dropped: ds.Dropped},
		TotalItems: n,
		TotalPages: totalPages,
	}

	// Range-check page before multiplying: (page-1)*perPage can overflow
	// for an absurd page number, and a wrapped negative start would walk
	// past the bounds guard into the slice expression.
	if page < 1 || page > totalPages {
		return p
	}

	start := (page - 1) * perPage
	if start >= n {
		return p
	}

	end := start + perPage
	if end > n {
		end = n
	}
	p.Visible.Records = ds.Records[start:end]
	p.StartItem = start + 1
	p.EndItem = end
	return p
}
