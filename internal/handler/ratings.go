package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/cineniche/catalog-service/internal/auth"
	"github.com/cineniche/catalog-service/internal/domain"
)

// POST /ratings
//
// Persists the (user, show, rating) triple and records the show in the
// session's recently-rated history. Ratings can only be written for the
// caller's own identity.
func (h *Handler) PostRating(w http.ResponseWriter, r *http.Request) {
	var rating domain.Rating
	if err := json.NewDecoder(r.Body).Decode(&rating); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Malformed rating payload")
		return
	}
	if rating.UserID <= 0 || rating.ShowID == "" ||
		rating.Rating < domain.RatingMin || rating.Rating > domain.RatingMax {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Rating requires user_id, show_id and a rating from 1 to 5")
		return
	}

	ident, _ := auth.FromContext(r.Context())
	switch auth.Decide(ident, rating.UserID) {
	case auth.Unauthorized:
		writeError(w, http.StatusUnauthorized, "unauthorized", "You must be logged in")
		return
	case auth.Forbidden:
		writeError(w, http.StatusForbidden, "forbidden", "You can only rate as yourself")
		return
	}

	if err := h.ratings.SaveRating(r.Context(), rating); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	// Session history is best-effort; losing it never fails the rating.
	sid := h.sessionID(w, r)
	if err := h.sessions.AppendRecentlyRated(r.Context(), sid, rating.ShowID); err != nil {
		log.Warn().Str("session_id", sid).Err(err).Msg("failed to record recently rated show")
	}

	writeJSON(w, http.StatusCreated, rating)
}
