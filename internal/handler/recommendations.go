package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cineniche/catalog-service/internal/auth"
)

// GET /recommendations/show?title=...
//
// Public title-keyed lookup. An absent stored entry surfaces as 404, never
// as an error body the client must parse.
func (h *Handler) GetHybridRecommendations(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if strings.TrimSpace(title) == "" {
		writeError(w, http.StatusBadRequest, "missing_parameter", "Missing title parameter")
		return
	}

	recs, err := h.service.HybridRecommendations(r.Context(), title)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}
	if len(recs) == 0 {
		writeError(w, http.StatusNotFound, "not_found", "No recommendations found")
		return
	}

	writeJSON(w, http.StatusOK, recs)
}

// GET /recommendations/user/{userID}
//
// Personalized lookup, restricted to the caller's own identity.
func (h *Handler) GetUserRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user id parameter")
		return
	}

	ident, _ := auth.FromContext(r.Context())
	switch auth.Decide(ident, userID) {
	case auth.Unauthorized:
		writeError(w, http.StatusUnauthorized, "unauthorized", "You must be logged in")
		return
	case auth.Forbidden:
		writeError(w, http.StatusForbidden, "forbidden", "You can only access your own recommendations")
		return
	}

	recs, err := h.service.UserRecommendations(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}
	if len(recs) == 0 {
		writeError(w, http.StatusNotFound, "not_found", "No recommendations found for this user")
		return
	}

	writeJSON(w, http.StatusOK, recs)
}

// GET /recommendations/genre/{userID}
//
// Public in the current deployment. Each row's recommendations field is a
// JSON-encoded string array requiring a second decode by the consumer
// (service.DecodeList); the double encoding is a wire-format contract.
func (h *Handler) GetGenreRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user id parameter")
		return
	}

	rows, err := h.service.GenreRecommendations(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}
	if len(rows) == 0 {
		writeError(w, http.StatusNotFound, "not_found", "No genre recommendations found for this user")
		return
	}

	writeJSON(w, http.StatusOK, rows)
}
