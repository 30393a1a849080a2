package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// tokenBucketScript performs an atomic check-and-consume against a single
// Redis hash keyed per user, refilling proportionally to elapsed time since
// the last check. Kept in Lua so the refill-then-consume sequence is
// race-free across replicas sharing one Redis instance.
const tokenBucketScript = `
local key = KEYS[1]
local rps = tonumber(ARGV[1])
local now = tonumber(ARGV[2])

local data = redis.call("HMGET", key, "tokens", "ts")
local tokens = tonumber(data[1])
local ts = tonumber(data[2])

if tokens == nil then
  tokens = rps
  ts = now
end

local delta = math.max(0, now - ts)
tokens = math.min(rps, tokens + delta * rps)

local allowed = 0
if tokens >= 1 then
  tokens = tokens - 1
  allowed = 1
end

redis.call("HMSET", key, "tokens", tokens, "ts", now)
redis.call("EXPIRE", key, 60)

return allowed
`

// RedisLimiter is the horizontally shareable Rate Limiter implementation,
// selected by config for multi-instance deployments; it satisfies the same
// Limiter interface as InMemoryLimiter so callers are agnostic to which is
// wired.
type RedisLimiter struct {
	client *redis.Client
	rps    int
	script *redis.Script
}

func NewRedisLimiter(client *redis.Client, rps int) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		rps:    rps,
		script: redis.NewScript(tokenBucketScript),
	}
}

func (l *RedisLimiter) Check(ctx context.Context, userID string) (bool, error) {
	key := "flashsale:ratelimit:" + userID
	now := float64(time.Now().UnixNano()) / 1e9

	res, err := l.script.Run(ctx, l.client, []string{key}, l.rps, now).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}
