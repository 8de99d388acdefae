package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"manutencao_xpto/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

const blacklistPrefix = "jwt:blacklist:"

// Blacklist tracks revoked bearer tokens in redis. Tokens land here on
// logout and stay until their own expiry would have passed anyway.

type Blacklist struct {
	rdb *redis.Client
}

func NewBlacklist(cfg config.RedisConfig) *Blacklist {
	return &Blacklist{
		rdb: redis.NewClient(&redis.Options{
			Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Username:    cfg.User,
			Password:    cfg.Password,
			DialTimeout: cfg.DialTimeout,
			ReadTimeout: cfg.ReadTimeout,
		}),
	}
}

// IsBlacklisted reports whether the token has been revoked. Redis being
// unreachable is reported as an error so the middleware can fail closed.
func (b *Blacklist) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	err := b.rdb.Get(ctx, blacklistPrefix+token).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Revoke blacklists a token for ttl.
func (b *Blacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	return b.rdb.Set(ctx, blacklistPrefix+token, "revoked", ttl).Err()
}
