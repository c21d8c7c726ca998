package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cineniche/catalog-service/internal/config"
	"github.com/cineniche/catalog-service/internal/handler"
	"github.com/cineniche/catalog-service/internal/migrate"
	"github.com/cineniche/catalog-service/internal/repository"
	"github.com/cineniche/catalog-service/internal/router"
	"github.com/cineniche/catalog-service/internal/service"
	"github.com/cineniche/catalog-service/internal/session"
	"github.com/cineniche/catalog-service/seeds"
)

func main() {
	_ = godotenv.Load()
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ------------ PostgreSQL ---------------
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse database config")
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("database not ready")
	}
	log.Info().Msg("connected to PostgreSQL")

	// ------------ Migrations ---------------
	// for migrate-down using CLI command
	if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
		if err := migrate.Down(cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate down")
		}
		log.Info().Msg("migrations dropped")
		return
	}

	if err := migrate.Up(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate up")
	}
	log.Info().Msg("migrations applied")

	// ------------ Seed Data ---------------
	if cfg.SeedDemo {
		if err := checkSeed(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("failed to seed demo data")
		}
	}

	// ------------ Redis ---------------
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	log.Info().Msg("connected to Redis")

	// ---------------- Server --------------------
	repo := repository.NewRepository(pool)
	svc := service.NewService(repo)
	sessions := session.NewRedis(redisClient, cfg.SessionTTL)
	h := handler.NewHandler(svc, repo, repo, sessions)
	mux := router.Setup(h, []byte(cfg.JWTSecret), cfg.CORSOrigins)

	srv := &http.Server{Addr: cfg.Addr(), Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		log.Info().Msgf("waiting for database... (%d/30)", i+1)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(1 * time.Second):
		}
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func checkSeed(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM movies_titles").Scan(&count); err != nil {
		return fmt.Errorf("check catalog count: %w", err)
	}
	if count > 0 {
		log.Info().Int("movies", count).Msg("catalog already seeded, skipping")
		return nil
	}
	return seeds.Setup(ctx, pool)
}
