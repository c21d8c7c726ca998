package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/cineniche/catalog-service/internal/domain"
)

// Store is the read side of the precomputed recommendation tables. Raw
// payloads are the JSON string arrays written by the offline job.
type Store interface {
	HybridRow(ctx context.Context, title string) (raw string, found bool, err error)
	UserRow(ctx context.Context, userID int64) (raw string, found bool, err error)
	GenreRows(ctx context.Context, userID int64) ([]domain.GenreRecommendation, error)
}

// Service is a thin adapter over the recommendation store. It does no
// ranking or filtering of its own; stored order is authoritative.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// DecodeList decodes a stored recommendation payload. The per-genre
// endpoint ships this payload verbatim (a JSON string holding a JSON
// array), so every consumer that needs the decoded list goes through
// here rather than parsing ad hoc.
func DecodeList(raw string) ([]string, error) {
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("decode recommendation list: %w", err)
	}
	return list, nil
}

// HybridRecommendations returns the stored title-keyed list for an exact
// title match. A blank title, a missing entry, and a corrupt entry all
// yield an empty list; only store failures are errors. A corrupt blob is
// logged and absorbed so it can never break catalog browsing.
func (s *Service) HybridRecommendations(ctx context.Context, title string) ([]string, error) {
	if strings.TrimSpace(title) == "" {
		return nil, nil
	}

	raw, found, err := s.store.HybridRow(ctx, title)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	recs, err := DecodeList(raw)
	if err != nil {
		log.Warn().Str("title", title).Err(err).Msg("corrupt hybrid recommendation row, treating as missing")
		return nil, nil
	}
	return recs, nil
}

// UserRecommendations returns the stored personalized list for a user.
// Same empty-on-miss, fail-soft-on-corruption semantics as the hybrid path.
func (s *Service) UserRecommendations(ctx context.Context, userID int64) ([]string, error) {
	raw, found, err := s.store.UserRow(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	recs, err := DecodeList(raw)
	if err != nil {
		log.Warn().Int64("user_id", userID).Err(err).Msg("corrupt user recommendation row, treating as missing")
		return nil, nil
	}
	return recs, nil
}

// GenreRecommendations returns every per-genre row for a user with each
// row's list still in its stored serialized form; callers decode with
// DecodeList when they need the ids.
func (s *Service) GenreRecommendations(ctx context.Context, userID int64) ([]domain.GenreRecommendation, error) {
	return s.store.GenreRows(ctx, userID)
}
