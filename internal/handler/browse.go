package handler

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/cineniche/catalog-service/internal/auth"
	"github.com/cineniche/catalog-service/internal/domain"
	"github.com/cineniche/catalog-service/internal/present"
	"github.com/cineniche/catalog-service/internal/resolver"
	"github.com/cineniche/catalog-service/internal/service"
)

const (
	trendingMinRatings = 2
	trendingRowSize    = 50
)

type BrowseResponse struct {
	SessionID string             `json:"session_id"`
	Rows      []domain.BrowseRow `json:"rows"`
}

// GET /browse/home?batches=n
//
// Composes the home surface: personalized, recently rated, trending,
// per-genre, and catalog-wide rows, in that priority order. Rows are
// deduped against higher-priority rows, shuffled session-stably unless
// order-significant, and windowed to the reveal count. Recommendation
// fetches degrade to an absent row rather than failing the page; only a
// catalog outage is fatal.
func (h *Handler) BrowseHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := h.sessionID(w, r)

	interactions := 0
	if batchesStr := r.URL.Query().Get("batches"); batchesStr != "" {
		parsed, err := strconv.Atoi(batchesStr)
		if err != nil || parsed < 0 || parsed > 10000 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid batches parameter")
			return
		}
		interactions = parsed
	}

	catalog, err := h.catalog.ListMovies(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	rows := make([]domain.BrowseRow, 0, 8)

	// Personalized rows exist only for an authenticated caller browsing
	// as themselves; the identity is the verified subject claim.
	var userID int64
	if ident, ok := auth.FromContext(ctx); ok {
		if id, err := strconv.ParseInt(ident.Subject, 10, 64); err == nil && id > 0 {
			userID = id
		}
	}

	if userID != 0 {
		ids, err := h.service.UserRecommendations(ctx, userID)
		if err != nil {
			log.Warn().Int64("user_id", userID).Err(err).Msg("personalized row unavailable")
		}
		// No stored entry means no row at all, not an empty row.
		if movies := resolver.ResolveIDs(ids, catalog); len(movies) > 0 {
			rows = append(rows, domain.BrowseRow{
				Title:  "Recommended for You",
				Kind:   domain.RowPersonalized,
				Movies: movies,
			})
		}
	}

	if recent, err := h.sessions.RecentlyRated(ctx, sid); err != nil {
		log.Warn().Str("session_id", sid).Err(err).Msg("recently rated row unavailable")
	} else if movies := resolver.ResolveIDs(reverse(recent), catalog); len(movies) > 0 {
		rows = append(rows, domain.BrowseRow{
			Title:  "Recently Rated",
			Kind:   domain.RowRecentlyRated,
			Movies: movies,
		})
	}

	if trending, err := h.ratings.TrendingShowIDs(ctx, trendingMinRatings, trendingRowSize); err != nil {
		log.Warn().Err(err).Msg("trending row unavailable")
	} else if movies := resolver.ResolveIDs(trending, catalog); len(movies) > 0 {
		rows = append(rows, domain.BrowseRow{
			Title:  "Trending Now",
			Kind:   domain.RowTrending,
			Movies: movies,
		})
	}

	if userID != 0 {
		genreRows, err := h.service.GenreRecommendations(ctx, userID)
		if err != nil {
			log.Warn().Int64("user_id", userID).Err(err).Msg("genre rows unavailable")
		}
		for _, row := range genreRows {
			ids, err := service.DecodeList(row.Recommendations)
			if err != nil {
				log.Warn().Str("genre", row.Genre).Err(err).Msg("corrupt genre recommendation row, skipping")
				continue
			}
			if movies := resolver.ResolveIDs(ids, catalog); len(movies) > 0 {
				rows = append(rows, domain.BrowseRow{
					Title:  row.Genre,
					Kind:   domain.RowGenre,
					Movies: movies,
				})
			}
		}
	}

	if len(catalog) > 0 {
		rows = append(rows, domain.BrowseRow{
			Title:  "Browse the Catalog",
			Kind:   domain.RowCatalog,
			Movies: catalog,
		})
	}

	rows = present.DedupeRows(rows)
	for i := range rows {
		if !rows[i].Kind.OrderSignificant() {
			rows[i].Movies = h.shuffler.Arrange(ctx, sid, rows[i].Title, rows[i].Movies)
		}
		rows[i].Total = len(rows[i].Movies)
		rows[i].Movies = h.pager.Window(rows[i].Movies, interactions)
	}

	writeJSON(w, http.StatusOK, BrowseResponse{SessionID: sid, Rows: rows})
}

func reverse(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}
