package ratelimit

import (
	"context"
	"fmt"
	"time"

	"taskboard/internal/core/config"
)

const (
	BackendLocal = "local"
	BackendRedis = "redis"
)

// FromConfig 未启用时返回 nil；redis 后端启动时 ping 一次
func FromConfig(ctx context.Context, c config.RateLimit, rc config.Redis) (Limiter, func(), error) {
	if !c.Enabled {
		return nil, func() {}, nil
	}
	switch c.Backend {
	case BackendLocal, "":
		return NewLocal(c.RPS, c.Burst), func() {}, nil
	case BackendRedis:
		rdb := NewRedisClient(rc.Addr, rc.Password, rc.DB)
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", rc.Addr, err)
		}
		return NewRedis(rdb, c.Requests, time.Duration(c.WindowSec)*time.Second), func() { _ = rdb.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown rate limit backend %q", c.Backend)
}
