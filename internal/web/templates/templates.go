// Package templates renders the viewer's HTML. Components are built on
// templ so handlers can compose and render them uniformly.
package templates

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/tably/tably/internal/engine"
)

// TablePageParams carries everything the table view needs.
type TablePageParams struct {
	SourceName  string
	State       engine.ViewState
	Result      engine.Page
	PageSizes   []int
	GateEnabled bool
	LoadedAt    time.Time
}

// TablePage renders the full table view page.
func TablePage(p TablePageParams) templ.Component {
	return layout("Tably", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<header class="mb-6 flex items-center justify-between">`)
		fmt.Fprintf(w, `<div><h1 class="text-2xl font-bold">Tably</h1>`)
		fmt.Fprintf(w, `<p class="text-sm text-gray-500">%s &middot; loaded %s</p></div>`,
			templ.EscapeString(p.SourceName), p.LoadedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, `<div class="flex gap-2">`)
		fmt.Fprintf(w, `<button hx-post="/api/reload" hx-on::after-request="location.reload()" class="rounded bg-blue-600 px-3 py-1.5 text-sm text-white">Reload</button>`)
		fmt.Fprintf(w, `<a href="/export%s" class="rounded border px-3 py-1.5 text-sm">Export CSV</a>`, templ.EscapeString(viewQuery(p.State, nil)))
		if p.GateEnabled {
			fmt.Fprintf(w, `<form method="post" action="/logout"><button class="rounded border px-3 py-1.5 text-sm">Log out</button></form>`)
		}
		fmt.Fprintf(w, `</div></header>`)

		fmt.Fprintf(w, `<div id="table-section">`)
		if err := TableSection(p).Render(ctx, w); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `</div>`)
		return err
	}))
}

// TableSection renders the search controls, the table, and the pager.
// It is both the initial content and the HTMX swap target.
func TableSection(p TablePageParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		vs := p.State
		res := p.Result

		// Search bar
		fmt.Fprintf(w, `<form hx-get="/" hx-target="#table-section" hx-push-url="true" class="mb-4 flex gap-2">`)
		fmt.Fprintf(w, `<input type="search" name="search" value="%s" placeholder="Search…" class="w-64 rounded border px-3 py-1.5 text-sm"/>`,
			templ.EscapeString(vs.Search))
		fmt.Fprintf(w, `<select name="search_in" class="rounded border px-2 py-1.5 text-sm">`)
		fmt.Fprintf(w, `<option value="">All columns</option>`)
		for _, col := range res.Visible.Columns {
			sel := ""
			if col == vs.Column {
				sel = " selected"
			}
			fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, templ.EscapeString(col), sel, templ.EscapeString(col))
		}
		fmt.Fprintf(w, `</select>`)
		writeHidden(w, "sort", vs.SortColumn)
		writeHidden(w, "dir", string(vs.SortDir))
		writeHidden(w, "per_page", perPageValue(vs.PerPage))
		fmt.Fprintf(w, `<button class="rounded bg-gray-800 px-3 py-1.5 text-sm text-white">Search</button>`)
		fmt.Fprintf(w, `</form>`)

		// Table
		fmt.Fprintf(w, `<table class="w-full border-collapse text-sm"><thead><tr>`)
		for _, col := range res.Visible.Columns {
			fmt.Fprintf(w, `<th class="border-b px-3 py-2 text-left">`)
			fmt.Fprintf(w, `<a hx-get="/%s" hx-target="#table-section" hx-push-url="true" href="/%s" class="cursor-pointer font-semibold">%s%s</a>`,
				templ.EscapeString(sortQuery(vs, col)),
				templ.EscapeString(sortQuery(vs, col)),
				templ.EscapeString(col),
				sortMarker(vs, col))
			fmt.Fprintf(w, `</th>`)
		}
		fmt.Fprintf(w, `</tr></thead><tbody>`)
		if len(res.Visible.Records) == 0 {
			fmt.Fprintf(w, `<tr><td colspan="%d" class="px-3 py-6 text-center text-gray-500">No matching rows</td></tr>`,
				max(len(res.Visible.Columns), 1))
		}
		for _, rec := range res.Visible.Records {
			fmt.Fprintf(w, `<tr class="odd:bg-gray-50">`)
			for _, col := range res.Visible.Columns {
				fmt.Fprintf(w, `<td class="border-b px-3 py-1.5">%s</td>`, templ.EscapeString(rec[col]))
			}
			fmt.Fprintf(w, `</tr>`)
		}
		fmt.Fprintf(w, `</tbody></table>`)

		// Pager
		fmt.Fprintf(w, `<div class="mt-4 flex items-center justify-between text-sm">`)
		if res.StartItem > 0 {
			fmt.Fprintf(w, `<span>Showing %d to %d of %d</span>`, res.StartItem, res.EndItem, res.TotalItems)
		} else {
			fmt.Fprintf(w, `<span>Showing 0 of %d</span>`, res.TotalItems)
		}
		fmt.Fprintf(w, `<div class="flex items-center gap-2">`)
		pagerLink(w, vs, vs.Page-1, "&laquo; Prev", vs.Page > 1)
		fmt.Fprintf(w, `<span>Page %d of %d</span>`, vs.Page, res.TotalPages)
		pagerLink(w, vs, vs.Page+1, "Next &raquo;", vs.Page < res.TotalPages)
		// hx-include picks these up so changing the page size keeps the
		// current search, scope, and sort.
		writeHidden(w, "search", vs.Search)
		writeHidden(w, "search_in", vs.Column)
		writeHidden(w, "sort", vs.SortColumn)
		writeHidden(w, "dir", string(vs.SortDir))
		fmt.Fprintf(w, `<select hx-get="/" hx-target="#table-section" hx-push-url="true" name="per_page" class="rounded border px-2 py-1 text-sm" hx-include="closest div">`)
		for _, size := range p.PageSizes {
			sel := ""
			if vs.PerPage == size {
				sel = " selected"
			}
			fmt.Fprintf(w, `<option value="%d"%s>%d per page</option>`, size, sel, size)
		}
		allSel := ""
		if vs.PerPage == engine.PageSizeAll {
			allSel = " selected"
		}
		fmt.Fprintf(w, `<option value="all"%s>Show all</option>`, allSel)
		fmt.Fprintf(w, `</select>`)
		_, err := fmt.Fprintf(w, `</div></div>`)
		return err
	})
}

// LoginPage renders the gate form, with an optional failure message.
func LoginPage(errMsg string) templ.Component {
	return layout("Tably — Log in", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<div class="mx-auto mt-24 max-w-sm rounded border p-6">`)
		fmt.Fprintf(w, `<h1 class="mb-4 text-xl font-bold">Tably</h1>`)
		if errMsg != "" {
			fmt.Fprintf(w, `<p class="mb-3 rounded bg-red-50 px-3 py-2 text-sm text-red-700">%s</p>`, templ.EscapeString(errMsg))
		}
		fmt.Fprintf(w, `<form method="post" action="/login" class="flex flex-col gap-3">`)
		fmt.Fprintf(w, `<input type="password" name="password" placeholder="Password" autofocus class="rounded border px-3 py-2"/>`)
		fmt.Fprintf(w, `<button class="rounded bg-blue-600 px-3 py-2 text-white">Enter</button>`)
		_, err := fmt.Fprintf(w, `</form></div>`)
		return err
	}))
}

// layout wraps body in the shared HTML shell.
func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		fmt.Fprintf(w, `<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		fmt.Fprintf(w, `<title>%s</title>`, templ.EscapeString(title))
		fmt.Fprintf(w, `<script src="https://unpkg.com/htmx.org@1.9.12"></script>`)
		fmt.Fprintf(w, `<script src="https://cdn.tailwindcss.com"></script>`)
		fmt.Fprintf(w, `</head><body class="bg-white p-6 text-gray-900">`)
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `</body></html>`)
		return err
	})
}

// viewQuery encodes a ViewState as a query string, applying overrides.
func viewQuery(vs engine.ViewState, overrides map[string]string) string {
	q := url.Values{}
	set := func(key, val string) {
		if o, ok := overrides[key]; ok {
			val = o
		}
		if val != "" {
			q.Set(key, val)
		}
	}
	set("search", vs.Search)
	set("search_in", vs.Column)
	set("sort", vs.SortColumn)
	set("dir", string(vs.SortDir))
	set("page", strconv.Itoa(vs.Page))
	set("per_page", perPageValue(vs.PerPage))
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// sortQuery is the query string for clicking a column header: toggle the
// direction on the active column, sort ascending on a new one, reset to
// page 1 either way.
func sortQuery(vs engine.ViewState, column string) string {
	next := vs
	next.ToggleSort(column)
	return viewQuery(next, nil)
}

// sortMarker shows the active sort direction on a header.
func sortMarker(vs engine.ViewState, column string) string {
	if vs.SortColumn != column {
		return ""
	}
	if vs.SortDir == engine.Descending {
		return " &darr;"
	}
	return " &uarr;"
}

// pagerLink writes a prev/next link, disabled at the edges.
func pagerLink(w io.Writer, vs engine.ViewState, page int, label string, enabled bool) {
	if !enabled {
		fmt.Fprintf(w, `<span class="text-gray-400">%s</span>`, label)
		return
	}
	q := viewQuery(vs, map[string]string{"page": strconv.Itoa(page)})
	fmt.Fprintf(w, `<a hx-get="/%s" hx-target="#table-section" hx-push-url="true" href="/%s">%s</a>`,
		templ.EscapeString(q), templ.EscapeString(q), label)
}

// perPageValue maps a page size to its query parameter form.
func perPageValue(perPage int) string {
	if perPage == engine.PageSizeAll || perPage <= 0 {
		return "all"
	}
	return strconv.Itoa(perPage)
}

// writeHidden emits a hidden form input when the value is non-empty.
func writeHidden(w io.Writer, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, `<input type="hidden" name="%s" value="%s"/>`,
		templ.EscapeString(name), templ.EscapeString(value))
}
