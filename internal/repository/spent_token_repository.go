package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SpentTokenRepository tracks redeemed reset-token ids so a capability cannot
// be redeemed twice inside its validity window. The fingerprint binding
// remains the primary invalidation mechanism; this set only closes the
// immediate-replay window.
type SpentTokenRepository interface {
	IsSpent(ctx context.Context, jti string) (bool, error)
	MarkSpent(ctx context.Context, jti string, ttl time.Duration) error
}

const spentKeyPrefix = "reset:spent:"

type spentTokenRepository struct {
	client *redis.Client
}

// NewSpentTokenRepository returns a Redis-backed implementation. Entries
// expire with the token they mark, so the set stays small.
func NewSpentTokenRepository(client *redis.Client) SpentTokenRepository {
	return &spentTokenRepository{client: client}
}

func (r *spentTokenRepository) IsSpent(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, spentKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *spentTokenRepository) MarkSpent(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return r.client.Set(ctx, spentKeyPrefix+jti, "1", ttl).Err()
}
