package web

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/tably/tably/internal/engine"
	"github.com/tably/tably/internal/logging"
)

// DataResponse is the JSON shape of a table page.
type DataResponse struct {
	Columns     []string        `json:"columns"`
	Rows        []engine.Record `json:"rows"`
	Search      string          `json:"search,omitempty"`
	SearchIn    string          `json:"search_in,omitempty"`
	SortColumn  string          `json:"sort,omitempty"`
	SortDir     string          `json:"dir,omitempty"`
	Page        int             `json:"page"`
	PerPage     int             `json:"per_page"`
	TotalItems  int             `json:"total_items"`
	TotalPages  int             `json:"total_pages"`
	StartItem   int             `json:"start_item"`
	EndItem     int             `json:"end_item"`
	DroppedRows int             `json:"dropped_rows,omitempty"`
	Fingerprint string          `json:"fingerprint"`
	LoadedAt    time.Time       `json:"loaded_at"`
}

// ReloadResponse reports the outcome of a source reload.
type ReloadResponse struct {
	Rows        int       `json:"rows"`
	Columns     int       `json:"columns"`
	DroppedRows int       `json:"dropped_rows"`
	Fingerprint string    `json:"fingerprint"`
	LoadedAt    time.Time `json:"loaded_at"`
}

// parseViewState builds a ViewState from query parameters. Unknown page
// sizes fall back to the configured default; "all" selects the unbounded
// page size.
func (s *Server) parseViewState(r *http.Request) engine.ViewState {
	q := r.URL.Query()

	perPage := s.cfg.Table.DefaultPageSize
	switch raw := q.Get("per_page"); {
	case raw == "all":
		perPage = engine.PageSizeAll
	case raw != "":
		if n, err := strconv.Atoi(raw); err == nil && s.cfg.Table.ValidPageSize(n) {
			perPage = n
		}
	}

	return engine.ViewState{
		Search:     q.Get("search"),
		Column:     q.Get("search_in"),
		SortColumn: q.Get("sort"),
		SortDir:    engine.ParseDirection(q.Get("dir")),
		Page:       parseIntParam(r, "page", 1),
		PerPage:    perPage,
	}
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// applyView runs the pipeline for the request's view state, clamping the
// page into range first so a stale page number lands on the last page
// instead of an empty one.
func (s *Server) applyView(r *http.Request) (engine.ViewState, engine.Page, string, time.Time) {
	ds, fingerprint, loadedAt := s.store.Snapshot()

	vs := s.parseViewState(r)
	result := engine.Apply(ds, vs)
	if vs.Page > result.TotalPages {
		vs.GoToPage(vs.Page, result.TotalPages)
		result = engine.Apply(ds, vs)
	}
	return vs, result, fingerprint, loadedAt
}

// handleData returns one page of the table as JSON.
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	vs, result, fingerprint, loadedAt := s.applyView(r)

	// The response depends only on the loaded data and the query, so an
	// ETag over both lets clients skip unchanged polls.
	etag := fmt.Sprintf(`W/"%016x"`, xxhash.Sum64String(fingerprint+"?"+r.URL.RawQuery))
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)

	rows := result.Visible.Records
	if rows == nil {
		rows = []engine.Record{}
	}

	writeJSON(w, r, DataResponse{
		Columns:     result.Visible.Columns,
		Rows:        rows,
		Search:      vs.Search,
		SearchIn:    vs.Column,
		SortColumn:  vs.SortColumn,
		SortDir:     string(vs.SortDir),
		Page:        vs.Page,
		PerPage:     vs.PerPage,
		TotalItems:  result.TotalItems,
		TotalPages:  result.TotalPages,
		StartItem:   result.StartItem,
		EndItem:     result.EndItem,
		DroppedRows: result.Visible.Dropped,
		Fingerprint: fingerprint,
		LoadedAt:    loadedAt,
	})
}

// handleReload re-fetches the source and swaps the dataset wholesale.
// Prior view state (held by clients) simply re-derives against the new
// data on their next request.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	res, err := s.loader.Load(ctx)
	if err != nil {
		s.respondLoadFailure(w, r, err)
		return
	}

	ds, err := engine.Parse(res.Text)
	if err != nil {
		s.respondLoadFailure(w, r, err)
		return
	}

	s.store.Replace(ds, res.Fingerprint)

	logger.Info("source reloaded",
		"rows", len(ds.Records),
		"columns", len(ds.Columns),
		"dropped_rows", ds.Dropped,
		"fingerprint", res.Fingerprint,
	)

	writeJSON(w, r, ReloadResponse{
		Rows:        len(ds.Records),
		Columns:     len(ds.Columns),
		DroppedRows: ds.Dropped,
		Fingerprint: res.Fingerprint,
		LoadedAt:    res.LoadedAt,
	})
}

// handleExport streams the current filtered and sorted view as CSV.
// Pagination does not apply: the export always covers every matching row.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ds, fingerprint, _ := s.store.Snapshot()

	vs := s.parseViewState(r)
	filtered := engine.Filter(ds, vs.Search, vs.Column)
	sorted := engine.Sort(filtered, vs.SortColumn, vs.SortDir)

	filename := fmt.Sprintf("export_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("ETag", fmt.Sprintf(`W/"%s"`, fingerprint))

	cw := csv.NewWriter(w)
	if err := cw.Write(sorted.Columns); err != nil {
		logging.FromContext(r.Context()).Error("csv export failed", "error", err)
		return
	}
	row := make([]string, len(sorted.Columns))
	for _, rec := range sorted.Records {
		for i, col := range sorted.Columns {
			row[i] = rec[col]
		}
		if err := cw.Write(row); err != nil {
			logging.FromContext(r.Context()).Error("csv export failed", "error", err)
			return
		}
	}
	cw.Flush()
}
