package readiness

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisProber struct {
	opts *redis.Options
}

// NewRedisProber checks readiness by sending a PING to the server at the
// given redis:// or rediss:// URL.
func NewRedisProber(target string) (Prober, error) {
	opts, err := redis.ParseURL(target)
	if err != nil {
		return nil, fmt.Errorf("invalid redis target: %w", err)
	}

	return &redisProber{opts: opts}, nil
}

func (p *redisProber) Name() string { return "redis" }

func (p *redisProber) Probe(ctx context.Context) error {
	client := redis.NewClient(p.opts)
	defer func() { _ = client.Close() }()

	return client.Ping(ctx).Err()
}
