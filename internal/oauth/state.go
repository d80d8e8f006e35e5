package oauth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const statePrefix = "oauthstate:"

// DefaultStateTTL ограничивает время между уходом на страницу согласия
// и возвратом на callback.
const DefaultStateTTL = 10 * time.Minute

// StateStore хранит одноразовые state-значения OAuth-редиректа в Redis.
type StateStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStateStore(rdb *redis.Client, ttl time.Duration) *StateStore {
	if ttl <= 0 {
		ttl = DefaultStateTTL
	}
	return &StateStore{redis: rdb, ttl: ttl}
}

// Issue генерирует случайный state и сохраняет его с TTL.
func (s *StateStore) Issue(ctx context.Context) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	state := hex.EncodeToString(buf)

	if err := s.redis.Set(ctx, statePrefix+state, 1, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}
	return state, nil
}

// Consume атомарно удаляет state; false — state неизвестен, истёк или уже
// был использован.
func (s *StateStore) Consume(ctx context.Context, state string) (bool, error) {
	if state == "" {
		return false, nil
	}
	deleted, err := s.redis.Del(ctx, statePrefix+state).Result()
	if err != nil {
		return false, fmt.Errorf("failed to consume oauth state: %w", err)
	}
	return deleted > 0, nil
}
