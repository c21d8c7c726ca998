package present

import "github.com/cineniche/catalog-service/internal/domain"

// DefaultBatchSize is the initial reveal count for a large result set.
const DefaultBatchSize = 50

// Pager implements incremental "see more" reveal: the first render shows
// one batch, and each see-more interaction reveals one batch more, capped
// at the full set length.
type Pager struct {
	BatchSize int
}

func NewPager(batchSize int) Pager {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return Pager{BatchSize: batchSize}
}

// Reveal returns how many items are visible after n see-more interactions
// (n = 0 is the initial render).
func (p Pager) Reveal(total, interactions int) int {
	if interactions < 0 {
		interactions = 0
	}
	visible := p.BatchSize * (interactions + 1)
	if visible > total || visible < 0 {
		return total
	}
	return visible
}

// Window slices the visible prefix of a movie set after n see-more
// interactions.
func (p Pager) Window(movies []domain.Movie, interactions int) []domain.Movie {
	return movies[:p.Reveal(len(movies), interactions)]
}
