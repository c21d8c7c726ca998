// Package resolver joins recommendation identifiers back to full catalog
// records. Input order is the ranking signal from the recommendation store,
// so output preserves it; identifiers with no catalog match are dropped
// silently rather than surfaced as errors or placeholders.
package resolver

import (
	"strings"

	"github.com/cineniche/catalog-service/internal/domain"
)

// ResolveIDs maps show ids to catalog records. Matching is exact and
// case-sensitive.
func ResolveIDs(ids []string, catalog []domain.Movie) []domain.Movie {
	byID := make(map[string]int, len(catalog))
	for i := range catalog {
		if _, seen := byID[catalog[i].ShowID]; !seen {
			byID[catalog[i].ShowID] = i
		}
	}

	out := make([]domain.Movie, 0, len(ids))
	for _, id := range ids {
		if i, ok := byID[id]; ok {
			out = append(out, catalog[i])
		}
	}
	return out
}

// ResolveTitles maps titles to catalog records, for the hybrid path whose
// stored lists hold titles rather than ids. Incidental whitespace is
// trimmed on both sides of the comparison but matching stays exact; fuzzy
// matching belongs to the search fallback, not resolution. When the
// catalog holds duplicate titles the first record wins, a known limitation
// of title-keyed lookups.
func ResolveTitles(titles []string, catalog []domain.Movie) []domain.Movie {
	byTitle := make(map[string]int, len(catalog))
	for i := range catalog {
		key := strings.TrimSpace(catalog[i].Title)
		if _, seen := byTitle[key]; !seen {
			byTitle[key] = i
		}
	}

	out := make([]domain.Movie, 0, len(titles))
	for _, title := range titles {
		if i, ok := byTitle[strings.TrimSpace(title)]; ok {
			out = append(out, catalog[i])
		}
	}
	return out
}
