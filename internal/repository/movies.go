package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cineniche/catalog-service/internal/domain"
)

const movieColumns = `show_id, type, title, director, "cast", country, release_year,
	rating, duration, description,
	action, adventure, anime_series_international_tv_shows,
	british_tv_shows_docuseries_international_tv_shows, children, comedies,
	comedies_dramas_international_movies, comedies_international_movies,
	comedies_romantic_movies, crime_tv_shows_docuseries, documentaries,
	documentaries_international_movies, docuseries, dramas,
	dramas_international_movies, dramas_romantic_movies, family_movies, fantasy,
	horror_movies, international_movies_thrillers,
	international_tv_shows_romantic_tv_shows_tv_dramas, kids_tv,
	language_tv_shows, musicals, nature_tv, reality_tv, spirituality, tv_action,
	tv_comedies, tv_dramas, talk_shows_tv_comedies, thrillers`

func scanMovie(row pgx.Row) (*domain.Movie, error) {
	m := &domain.Movie{}
	err := row.Scan(
		&m.ShowID, &m.Type, &m.Title, &m.Director, &m.Cast, &m.Country,
		&m.ReleaseYear, &m.Rating, &m.Duration, &m.Description,
		&m.Action, &m.Adventure, &m.AnimeSeriesIntlTV,
		&m.BritishDocuseriesIntlTV, &m.Children, &m.Comedies,
		&m.ComediesDramasIntlMovies, &m.ComediesIntlMovies,
		&m.ComediesRomanticMovies, &m.CrimeTVDocuseries, &m.Documentaries,
		&m.DocumentariesIntlMovies, &m.Docuseries, &m.Dramas,
		&m.DramasIntlMovies, &m.DramasRomanticMovies, &m.FamilyMovies,
		&m.Fantasy, &m.HorrorMovies, &m.IntlMoviesThrillers,
		&m.IntlTVRomanticTVDramas, &m.KidsTV, &m.LanguageTVShows, &m.Musicals,
		&m.NatureTV, &m.RealityTV, &m.Spirituality, &m.TVAction, &m.TVComedies,
		&m.TVDramas, &m.TalkShowsTVComedies, &m.Thrillers,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// List the full catalog in stable show_id order.
func (r *Repository) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	rows, err := r.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM movies_titles ORDER BY show_id`, movieColumns),
	)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	var movies []domain.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over movies: %w", err)
	}
	return movies, nil
}

// Get single movie
func (r *Repository) GetMovie(ctx context.Context, showID string) (*domain.Movie, error) {
	m, err := scanMovie(r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM movies_titles WHERE show_id = $1`, movieColumns),
		showID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, fmt.Errorf("query movie id=%s: %w", showID, err)
	}
	return m, nil
}
