// Package seeds loads a small demo catalog plus matching recommendation
// rows so a fresh environment has something to browse. It runs only when
// SEED_DEMO_DATA is set and the catalog is empty.
package seeds

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

type seedMovie struct {
	showID   string
	kind     string
	title    string
	director string
	cast     string
	country  string
	year     int
	rating   string
	duration string
	desc     string
	flags    map[string]int
}

var demoMovies = []seedMovie{
	{"s1", "Movie", "Inception", "Christopher Nolan", "Leonardo DiCaprio, Joseph Gordon-Levitt", "United States", 2010, "PG-13", "148 min",
		"A thief who steals corporate secrets through dream-sharing technology.", map[string]int{"action": 1, "thrillers": 1}},
	{"s2", "Movie", "Interstellar", "Christopher Nolan", "Matthew McConaughey, Anne Hathaway", "United States", 2014, "PG-13", "169 min",
		"Explorers travel through a wormhole in search of a new home for humanity.", map[string]int{"dramas": 1, "fantasy": 1}},
	{"s3", "Movie", "Memento", "Christopher Nolan", "Guy Pearce, Carrie-Anne Moss", "United States", 2000, "R", "113 min",
		"A man with short-term memory loss hunts his wife's killer.", map[string]int{"thrillers": 1}},
	{"s4", "Movie", "The Godfather", "Francis Ford Coppola", "Marlon Brando, Al Pacino", "United States", 1972, "R", "175 min",
		"The aging patriarch of a crime dynasty transfers control to his son.", map[string]int{"dramas": 1}},
	{"s5", "TV Show", "Planet Earth II", "", "David Attenborough", "United Kingdom", 2016, "TV-G", "1 Season",
		"Wildlife documentary series exploring the planet's habitats.", map[string]int{"documentaries": 1, "docuseries": 1, "nature_tv": 1}},
	{"s6", "Movie", "Spirited Away", "Hayao Miyazaki", "Rumi Hiiragi, Miyu Irino", "Japan", 2001, "PG", "125 min",
		"A girl wanders into a world of spirits and must free her parents.", map[string]int{"fantasy": 1, "family_movies": 1, "children": 1}},
	{"s7", "Movie", "Parasite", "Bong Joon-ho", "Song Kang-ho, Lee Sun-kyun", "South Korea", 2019, "R", "132 min",
		"A poor family schemes its way into the employ of a wealthy household.", map[string]int{"dramas": 1, "thrillers": 1, "dramas_international_movies": 1}},
	{"s8", "TV Show", "The Office", "", "Steve Carell, Rainn Wilson", "United States", 2005, "TV-14", "9 Seasons",
		"Mockumentary on a group of office workers.", map[string]int{"tv_comedies": 1}},
}

var demoHybrid = map[string][]string{
	"Inception":     {"Interstellar", "Memento"},
	"Interstellar":  {"Inception", "Spirited Away"},
	"The Godfather": {"Parasite", "Memento"},
}

var demoUserRecs = map[int64][]string{
	2:  {"s1", "s2", "s7"},
	19: {"s4", "s7", "s3"},
}

var demoGenreRecs = map[int64]map[string][]string{
	2: {
		"Thriller":    {"s3", "s7"},
		"Documentary": {"s5"},
	},
	19: {
		"Drama": {"s2", "s7"},
	},
}

func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	rng := rand.New(rand.NewSource(42))

	log.Info().Msg("[seed] inserting demo catalog")
	for _, m := range demoMovies {
		cols := "show_id, type, title, director, \"cast\", country, release_year, rating, duration, description"
		args := []any{m.showID, m.kind, m.title, m.director, m.cast, m.country, m.year, m.rating, m.duration, m.desc}
		ph := "$1, $2, $3, $4, $5, $6, $7, $8, $9, $10"
		i := len(args)
		for col, v := range m.flags {
			i++
			cols += ", " + col
			ph += fmt.Sprintf(", $%d", i)
			args = append(args, v)
		}
		if _, err := pool.Exec(ctx, fmt.Sprintf(
			`INSERT INTO movies_titles (%s) VALUES (%s) ON CONFLICT (show_id) DO NOTHING`, cols, ph,
		), args...); err != nil {
			return fmt.Errorf("seed movie %s: %w", m.showID, err)
		}
	}

	log.Info().Msg("[seed] inserting demo ratings")
	for userID := int64(1); userID <= 20; userID++ {
		for _, m := range demoMovies {
			if rng.Float64() < 0.5 {
				continue
			}
			if _, err := pool.Exec(ctx,
				`INSERT INTO movies_ratings (user_id, show_id, rating) VALUES ($1, $2, $3)
				 ON CONFLICT (user_id, show_id) DO NOTHING`,
				userID, m.showID, 1+rng.Intn(5),
			); err != nil {
				return fmt.Errorf("seed rating: %w", err)
			}
		}
	}

	log.Info().Msg("[seed] inserting recommendation rows")
	for title, recs := range demoHybrid {
		payload, _ := json.Marshal(recs)
		if _, err := pool.Exec(ctx,
			`INSERT INTO hybrid_recommendations (title, recommendation) VALUES ($1, $2)
			 ON CONFLICT (title) DO NOTHING`,
			title, string(payload),
		); err != nil {
			return fmt.Errorf("seed hybrid recommendation %q: %w", title, err)
		}
	}
	for userID, recs := range demoUserRecs {
		payload, _ := json.Marshal(recs)
		if _, err := pool.Exec(ctx,
			`INSERT INTO user_recommendations (user_id, recommendation) VALUES ($1, $2)
			 ON CONFLICT (user_id) DO NOTHING`,
			userID, string(payload),
		); err != nil {
			return fmt.Errorf("seed user recommendation %d: %w", userID, err)
		}
	}
	for userID, genres := range demoGenreRecs {
		for genre, recs := range genres {
			payload, _ := json.Marshal(recs)
			if _, err := pool.Exec(ctx,
				`INSERT INTO user_genre_recommendations (user_id, genre, recommendations) VALUES ($1, $2, $3)
				 ON CONFLICT (user_id, genre) DO NOTHING`,
				userID, genre, string(payload),
			); err != nil {
				return fmt.Errorf("seed genre recommendation %d/%s: %w", userID, genre, err)
			}
		}
	}

	log.Info().Msg("[seed] done")
	return nil
}
