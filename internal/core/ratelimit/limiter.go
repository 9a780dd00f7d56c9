package ratelimit

import "context"

// Limiter 按 key（通常是客户端 IP）判断是否放行
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
