// Package present arranges resolved movie rows for display: cross-row
// deduplication, session-stable shuffling, incremental reveal, and the
// fuzzy search fallback. Every piece is independent; the browse handler
// composes them.
package present

import (
	"context"
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/cineniche/catalog-service/internal/domain"
	"github.com/cineniche/catalog-service/internal/session"
)

// Shuffler applies a Fisher-Yates shuffle to a row once per session and
// replays the cached permutation on every re-render, so scrolling or
// remounting never reorders what the user already saw. A fresh session
// gets a fresh shuffle.
type Shuffler struct {
	sessions session.Store
}

func NewShuffler(sessions session.Store) *Shuffler {
	return &Shuffler{sessions: sessions}
}

// Arrange returns the row's movies in the session's shuffled order. On the
// first render of a row the shuffle is computed and cached under the row
// title. Movies that appear in the row but not in the cached permutation
// (catalog grew mid-session) keep their source order at the tail. Session
// store failures degrade to the unshuffled source order.
func (s *Shuffler) Arrange(ctx context.Context, sessionID, rowTitle string, movies []domain.Movie) []domain.Movie {
	if len(movies) < 2 {
		return movies
	}

	order, found, err := s.sessions.Permutation(ctx, sessionID, rowTitle)
	if err != nil {
		log.Warn().Str("row", rowTitle).Err(err).Msg("shuffle cache read failed, serving source order")
		return movies
	}

	if !found {
		shuffled := append([]domain.Movie(nil), movies...)
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		order = make([]string, len(shuffled))
		for i := range shuffled {
			order[i] = shuffled[i].ShowID
		}
		if err := s.sessions.SavePermutation(ctx, sessionID, rowTitle, order); err != nil {
			log.Warn().Str("row", rowTitle).Err(err).Msg("shuffle cache write failed")
		}
		return shuffled
	}

	return applyOrder(movies, order)
}

func applyOrder(movies []domain.Movie, order []string) []domain.Movie {
	byID := make(map[string]int, len(movies))
	for i := range movies {
		byID[movies[i].ShowID] = i
	}

	out := make([]domain.Movie, 0, len(movies))
	taken := make(map[string]bool, len(movies))
	for _, id := range order {
		if i, ok := byID[id]; ok && !taken[id] {
			out = append(out, movies[i])
			taken[id] = true
		}
	}
	for i := range movies {
		if !taken[movies[i].ShowID] {
			out = append(out, movies[i])
		}
	}
	return out
}
