package present

import "github.com/cineniche/catalog-service/internal/domain"

// DedupeRows suppresses a movie from a row when a higher-priority row
// already shows it. Rows must be supplied highest-priority first
// (personalized, recently rated, trending, per-genre, catalog-wide), which
// makes suppression a single pass. Rows emptied entirely by suppression
// are dropped.
func DedupeRows(rows []domain.BrowseRow) []domain.BrowseRow {
	seen := make(map[string]bool)
	out := make([]domain.BrowseRow, 0, len(rows))

	for _, row := range rows {
		kept := make([]domain.Movie, 0, len(row.Movies))
		for _, m := range row.Movies {
			if seen[m.ShowID] {
				continue
			}
			seen[m.ShowID] = true
			kept = append(kept, m)
		}
		if len(kept) == 0 {
			continue
		}
		row.Movies = kept
		row.Total = len(kept)
		out = append(out, row)
	}
	return out
}
