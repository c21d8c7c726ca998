package present

import (
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/cineniche/catalog-service/internal/domain"
)

const (
	// DefaultMinScore is the similarity floor (0-100) for a fuzzy
	// suggestion.
	DefaultMinScore = 70
	// DefaultMaxSuggestions caps the "did you mean" list.
	DefaultMaxSuggestions = 10
)

// Searcher runs exact substring search over the searchable movie fields
// and falls back to fuzzy similarity only when exact search comes back
// literally empty for a non-empty query. Fuzzy results never merge with
// or replace exact ones.
type Searcher struct {
	MinScore       int
	MaxSuggestions int
}

func NewSearcher(minScore, maxSuggestions int) Searcher {
	if minScore <= 0 || minScore > 100 {
		minScore = DefaultMinScore
	}
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}
	return Searcher{MinScore: minScore, MaxSuggestions: maxSuggestions}
}

// Search returns matching movies and whether the fuzzy fallback produced
// them. A blank query matches nothing.
func (s Searcher) Search(query string, catalog []domain.Movie) (results []domain.Movie, fuzzy bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, false
	}

	if exact := s.Exact(query, catalog); len(exact) > 0 {
		return exact, false
	}
	return s.Suggest(query, catalog), true
}

// Exact performs case-insensitive substring matching over title, cast,
// director, and release year, preserving catalog order.
func (s Searcher) Exact(query string, catalog []domain.Movie) []domain.Movie {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []domain.Movie
	for i := range catalog {
		if movieMatches(&catalog[i], q) {
			out = append(out, catalog[i])
		}
	}
	return out
}

func movieMatches(m *domain.Movie, q string) bool {
	return strings.Contains(strings.ToLower(m.Title), q) ||
		strings.Contains(strings.ToLower(m.Cast), q) ||
		strings.Contains(strings.ToLower(m.Director), q) ||
		strings.Contains(strconv.Itoa(m.ReleaseYear), q)
}

// Suggest scores every catalog entry against the query and returns up to
// MaxSuggestions movies at or above MinScore, best first; ties break on
// title so the list is stable.
func (s Searcher) Suggest(query string, catalog []domain.Movie) []domain.Movie {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	type scored struct {
		movie domain.Movie
		score int
	}
	var candidates []scored
	for i := range catalog {
		if score := fuzzyScore(&catalog[i], q); score >= s.MinScore {
			candidates = append(candidates, scored{movie: catalog[i], score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].movie.Title < candidates[j].movie.Title
	})

	if len(candidates) > s.MaxSuggestions {
		candidates = candidates[:s.MaxSuggestions]
	}
	out := make([]domain.Movie, len(candidates))
	for i, c := range candidates {
		out[i] = c.movie
	}
	return out
}

// fuzzyScore is the best similarity between the query and any searchable
// field of the movie, on a 0-100 scale. Fields are scored whole and per
// word, so a one-word typo still finds a long title or a name buried in a
// cast list.
func fuzzyScore(m *domain.Movie, q string) int {
	best := 0
	for _, field := range []string{m.Title, m.Cast, m.Director, strconv.Itoa(m.ReleaseYear)} {
		field = strings.ToLower(field)
		if field == "" {
			continue
		}
		if s := similarity(q, field); s > best {
			best = s
		}
		for _, word := range strings.FieldsFunc(field, func(r rune) bool {
			return r == ' ' || r == ',' || r == ';'
		}) {
			if s := similarity(q, word); s > best {
				best = s
			}
		}
	}
	return best
}

// similarity converts edit distance to a 0-100 ratio, 100 being an exact
// match.
func similarity(a, b string) int {
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 100 - (100*dist)/longest
}
