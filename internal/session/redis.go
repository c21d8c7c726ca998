package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 12 * time.Hour

// Redis is the production Store. Keys are namespaced per session and
// TTL-bound so abandoned sessions expire on their own.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Redis{client: client, ttl: ttl}
}

func shuffleKey(sessionID, rowTitle string) string {
	return fmt.Sprintf("sess:%s:shuffle:%s", sessionID, rowTitle)
}

func recentKey(sessionID string) string {
	return fmt.Sprintf("sess:%s:recent", sessionID)
}

func (s *Redis) Permutation(ctx context.Context, sessionID, rowTitle string) ([]string, bool, error) {
	val, err := s.client.Get(ctx, shuffleKey(sessionID, rowTitle)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get shuffle permutation: %w", err)
	}

	var order []string
	if err := json.Unmarshal([]byte(val), &order); err != nil {
		return nil, false, fmt.Errorf("unmarshal shuffle permutation %s: %w", rowTitle, err)
	}
	return order, true, nil
}

func (s *Redis) SavePermutation(ctx context.Context, sessionID, rowTitle string, order []string) error {
	val, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal shuffle permutation: %w", err)
	}
	if err := s.client.Set(ctx, shuffleKey(sessionID, rowTitle), val, s.ttl).Err(); err != nil {
		return fmt.Errorf("set shuffle permutation: %w", err)
	}
	return nil
}

func (s *Redis) RecentlyRated(ctx context.Context, sessionID string) ([]string, error) {
	ids, err := s.client.LRange(ctx, recentKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("get recently rated: %w", err)
	}
	return ids, nil
}

func (s *Redis) AppendRecentlyRated(ctx context.Context, sessionID, showID string) error {
	key := recentKey(sessionID)
	pipe := s.client.TxPipeline()
	pipe.LRem(ctx, key, 0, showID)
	pipe.RPush(ctx, key, showID)
	pipe.LTrim(ctx, key, int64(-recentlyRatedCap), -1)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append recently rated %s: %w", showID, err)
	}
	return nil
}

func (s *Redis) Clear(ctx context.Context, sessionID string) error {
	pattern := fmt.Sprintf("sess:%s:*", sessionID)
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("session delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}
