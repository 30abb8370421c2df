package rate_limit

import (
	"context"
	"fmt"
	"time"

	"agilcurn/internal/cache"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

// RateLimiter throttles invitation sending per inviting user with a fixed
// window counter in valkey.
type RateLimiter struct {
	client valkey.Client
}

type RateLimitResult struct {
	Allowed   bool `json:"allowed"`
	Remaining int  `json:"remaining"`
}

const (
	defaultTimeout = 5 * time.Second
	keyPrefix      = "rate_limit:user:"
)

// Atomically increments the window counter and sets its expiry on first hit.
const fixedWindowLuaScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])

local count = redis.call('INCR', key)
if count == 1 then
    redis.call('EXPIRE', key, window)
end

local allowed = 0
if count <= limit then
    allowed = 1
end

return {allowed, math.max(0, limit - count)}
`

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		client: cache.GetCache(),
	}
}

func (r *RateLimiter) CheckRateLimit(userID uuid.UUID, limit int, window time.Duration) (*RateLimitResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if limit <= 0 {
		limit = 30
	}
	if window <= 0 {
		window = time.Minute
	}

	key := keyPrefix + userID.String()

	result := r.client.Do(ctx, r.client.B().Eval().
		Script(fixedWindowLuaScript).
		Numkeys(1).
		Key(key).
		Arg(fmt.Sprintf("%d", limit)).
		Arg(fmt.Sprintf("%d", int(window.Seconds()))).
		Build())

	if result.Error() != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", result.Error())
	}

	values, err := result.AsIntSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate limit result: %w", err)
	}

	if len(values) < 2 {
		return nil, fmt.Errorf("invalid rate limit result: expected 2 values, got %d", len(values))
	}

	return &RateLimitResult{
		Allowed:   values[0] == 1,
		Remaining: int(values[1]),
	}, nil
}

func (r *RateLimiter) ResetRateLimit(userID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	key := keyPrefix + userID.String()

	result := r.client.Do(ctx, r.client.B().Del().Key(key).Build())
	return result.Error()
}
