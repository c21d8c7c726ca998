package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cineniche/catalog-service/internal/domain"
)

// HybridRow returns the stored hybrid recommendation payload for a title.
// The payload is the raw JSON string array as written by the offline job;
// decoding happens at the service boundary so a corrupt row can be absorbed
// there. found is false when no entry exists for the title.
func (r *Repository) HybridRow(ctx context.Context, title string) (string, bool, error) {
	var raw string
	err := r.pool.QueryRow(ctx,
		`SELECT recommendation FROM hybrid_recommendations WHERE title = $1`,
		title,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("query hybrid recommendations title=%q: %w", title, err)
	}
	return raw, true, nil
}

// UserRow returns the stored personalized recommendation payload for a user.
func (r *Repository) UserRow(ctx context.Context, userID int64) (string, bool, error) {
	var raw string
	err := r.pool.QueryRow(ctx,
		`SELECT recommendation FROM user_recommendations WHERE user_id = $1`,
		userID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("query user recommendations user=%d: %w", userID, err)
	}
	return raw, true, nil
}

// GenreRows returns every per-genre recommendation row for a user. The
// recommendations column stays in its stored serialized form.
func (r *Repository) GenreRows(ctx context.Context, userID int64) ([]domain.GenreRecommendation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, genre, recommendations
		 FROM user_genre_recommendations
		 WHERE user_id = $1
		 ORDER BY genre`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query genre recommendations user=%d: %w", userID, err)
	}
	defer rows.Close()

	var recs []domain.GenreRecommendation
	for rows.Next() {
		var rec domain.GenreRecommendation
		if err := rows.Scan(&rec.UserID, &rec.Genre, &rec.Recommendations); err != nil {
			return nil, fmt.Errorf("scan genre recommendation: %w", err)
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over genre recommendations: %w", err)
	}
	return recs, nil
}
