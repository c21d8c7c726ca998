package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cineniche/catalog-service/internal/auth"
	"github.com/cineniche/catalog-service/internal/handler"
)

func Setup(h *handler.Handler, jwtSecret []byte, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(withCORS(corsOrigins))
	r.Use(auth.Middleware(jwtSecret))

	// Routes
	r.Get("/recommendations/show", h.GetHybridRecommendations)
	r.Get("/recommendations/user/{userID}", h.GetUserRecommendations)
	r.Get("/recommendations/genre/{userID}", h.GetGenreRecommendations) // public in current deployment

	r.Get("/movies", h.ListMovies)
	r.Get("/movies/genre/{genre}", h.MoviesByGenre)
	r.Get("/movies/{id}", h.GetMovie)
	r.Get("/movies/{id}/related", h.RelatedMovies)

	r.Get("/search", h.Search)
	r.Get("/browse/home", h.BrowseHome)
	r.Post("/ratings", h.PostRating)

	r.Get("/health", healthCheck)

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
