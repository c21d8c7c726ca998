package handler

import (
	"context"
	"net/http"

	"github.com/rs/xid"

	"github.com/cineniche/catalog-service/internal/domain"
	"github.com/cineniche/catalog-service/internal/present"
	"github.com/cineniche/catalog-service/internal/service"
	"github.com/cineniche/catalog-service/internal/session"
)

// HeaderSessionID carries the browsing-session id. The server mints one
// when the client doesn't send it and echoes it back either way.
const HeaderSessionID = "X-Session-Id"

// Catalog is the read surface of the movie catalog.
type Catalog interface {
	ListMovies(ctx context.Context) ([]domain.Movie, error)
	GetMovie(ctx context.Context, showID string) (*domain.Movie, error)
}

// Ratings persists rating triples and feeds the trending row.
type Ratings interface {
	SaveRating(ctx context.Context, rating domain.Rating) error
	TrendingShowIDs(ctx context.Context, minRatings, limit int) ([]string, error)
}

type Handler struct {
	service  *service.Service
	catalog  Catalog
	ratings  Ratings
	sessions session.Store
	shuffler *present.Shuffler
	pager    present.Pager
	searcher present.Searcher
}

func NewHandler(svc *service.Service, catalog Catalog, ratings Ratings, sessions session.Store) *Handler {
	return &Handler{
		service:  svc,
		catalog:  catalog,
		ratings:  ratings,
		sessions: sessions,
		shuffler: present.NewShuffler(sessions),
		pager:    present.NewPager(present.DefaultBatchSize),
		searcher: present.NewSearcher(present.DefaultMinScore, present.DefaultMaxSuggestions),
	}
}

// sessionID returns the request's session id, minting and echoing a new
// one when absent.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	sid := r.Header.Get(HeaderSessionID)
	if sid == "" {
		sid = xid.New().String()
	}
	w.Header().Set(HeaderSessionID, sid)
	return sid
}
