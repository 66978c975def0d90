package redisstore

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "pairscan:cooldown:"

// CooldownStore shares alert cooldowns between processes. A key lives for the
// cooldown window, so expiry is Redis time rather than the caller's clock.
type CooldownStore struct {
	Client *redis.Client
	Prefix string
}

func New(client *redis.Client) *CooldownStore {
	return &CooldownStore{Client: client, Prefix: defaultPrefix}
}

// NewScoped keeps its keys apart from other scopes sharing the same Redis.
func NewScoped(client *redis.Client, scope string) *CooldownStore {
	if scope == "" {
		return New(client)
	}
	return &CooldownStore{Client: client, Prefix: defaultPrefix + scope + ":"}
}

func (s *CooldownStore) Reserve(ctx context.Context, key string, now time.Time, window time.Duration) (bool, error) {
	ok, err := s.Client.SetNX(ctx, s.Prefix+key, strconv.FormatInt(now.UnixMilli(), 10), window).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Ping reports whether Redis is reachable.
func (s *CooldownStore) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}
