package repository

import (
	"context"
	"fmt"

	"github.com/cineniche/catalog-service/internal/domain"
)

// SaveRating upserts a user's rating for a show. Re-rating replaces the
// previous value.
func (r *Repository) SaveRating(ctx context.Context, rating domain.Rating) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO movies_ratings (user_id, show_id, rating)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, show_id) DO UPDATE SET rating = EXCLUDED.rating`,
		rating.UserID, rating.ShowID, rating.Rating,
	)
	if err != nil {
		return fmt.Errorf("save rating user=%d show=%s: %w", rating.UserID, rating.ShowID, err)
	}
	return nil
}

// TrendingShowIDs ranks shows by average rating weighted by volume. Shows
// with fewer than minRatings ratings are excluded so a single five-star
// rating can't top the row.
func (r *Repository) TrendingShowIDs(ctx context.Context, minRatings, limit int) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT show_id
		 FROM movies_ratings
		 GROUP BY show_id
		 HAVING COUNT(*) >= $1
		 ORDER BY AVG(rating) * LN(COUNT(*) + 1) DESC, show_id
		 LIMIT $2`,
		minRatings, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query trending shows: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan trending show id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over trending shows: %w", err)
	}
	return ids, nil
}
