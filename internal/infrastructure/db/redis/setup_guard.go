package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const setupGuardKey = "setup:admin"

// SetupGuard implements ports.SetupGuard with a Redis SETNX key that never
// expires, so only one replica ever runs the admin bootstrap.
type SetupGuard struct {
	client redis.Cmdable
	key    string
}

func NewSetupGuard(client redis.Cmdable) *SetupGuard {
	return &SetupGuard{client: client, key: setupGuardKey}
}

func (g *SetupGuard) Claim(ctx context.Context) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key, "1", 0).Result()
	if err != nil {
		return false, fmt.Errorf("setup guard claim: %w", err)
	}
	return ok, nil
}

func (g *SetupGuard) Release(ctx context.Context) error {
	if err := g.client.Del(ctx, g.key).Err(); err != nil {
		return fmt.Errorf("setup guard release: %w", err)
	}
	return nil
}
