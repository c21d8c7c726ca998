package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cineniche/catalog-service/internal/domain"
	"github.com/cineniche/catalog-service/internal/resolver"
)

// GET /movies
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.catalog.ListMovies(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}
	if movies == nil {
		movies = []domain.Movie{}
	}
	writeJSON(w, http.StatusOK, movies)
}

// GET /movies/{id}
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := h.catalog.GetMovie(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Movie not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

// GET /movies/genre/{genre}
//
// Genre membership comes from the fixed display-name-to-flag table, not
// from matching column names at runtime.
func (h *Handler) MoviesByGenre(w http.ResponseWriter, r *http.Request) {
	genre := chi.URLParam(r, "genre")
	if !domain.IsKnownGenre(genre) {
		writeError(w, http.StatusNotFound, "unknown_genre", "Unknown genre")
		return
	}

	movies, err := h.catalog.ListMovies(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	filtered := make([]domain.Movie, 0)
	for i := range movies {
		if member, _ := movies[i].InGenre(genre); member {
			filtered = append(filtered, movies[i])
		}
	}
	writeJSON(w, http.StatusOK, filtered)
}

// GET /movies/{id}/related
//
// Hybrid recommendations for the movie's title, resolved to full catalog
// records. The stored hybrid lists hold titles, so resolution is
// title-keyed: first catalog match wins when titles collide.
func (h *Handler) RelatedMovies(w http.ResponseWriter, r *http.Request) {
	movie, err := h.catalog.GetMovie(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Movie not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	titles, err := h.service.HybridRecommendations(r.Context(), movie.Title)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	catalog, err := h.catalog.ListMovies(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	related := resolver.ResolveTitles(titles, catalog)
	if related == nil {
		related = []domain.Movie{}
	}
	writeJSON(w, http.StatusOK, related)
}
