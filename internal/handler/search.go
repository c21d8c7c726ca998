package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cineniche/catalog-service/internal/domain"
)

type SearchResponse struct {
	Query   string         `json:"query"`
	Fuzzy   bool           `json:"fuzzy"`
	Total   int            `json:"total"`
	Results []domain.Movie `json:"results"`
}

// GET /search?q=...&batches=n
//
// Exact substring search over title, cast, director, and release year;
// the fuzzy fallback runs only when exact matching finds nothing for a
// non-empty query. batches counts see-more interactions for the reveal
// window.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, "missing_parameter", "Missing q parameter")
		return
	}

	interactions := 0
	if batchesStr := r.URL.Query().Get("batches"); batchesStr != "" {
		parsed, err := strconv.Atoi(batchesStr)
		if err != nil || parsed < 0 || parsed > 10000 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid batches parameter")
			return
		}
		interactions = parsed
	}

	catalog, err := h.catalog.ListMovies(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	results, fuzzy := h.searcher.Search(query, catalog)
	total := len(results)
	results = h.pager.Window(results, interactions)
	if results == nil {
		results = []domain.Movie{}
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Query:   query,
		Fuzzy:   fuzzy,
		Total:   total,
		Results: results,
	})
}
