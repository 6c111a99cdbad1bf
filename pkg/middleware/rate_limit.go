package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware allows limit requests per window for each client key.
// With a Redis client it keeps a fixed window counter there, otherwise it
// falls back to an in-process token bucket per key whose idle entries are
// swept until ctx is done.
func RateLimitMiddleware(ctx context.Context, redisClient *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	var local *keyLimiter
	if redisClient == nil {
		local = newKeyLimiter(limit, window)
		go local.run(ctx, time.Minute)
	}

	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:%s:%s", c.FullPath(), clientKey(c))
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))

		allowed := true
		if local != nil {
			allowed = local.allow(key)
		} else {
			reqCtx := c.Request.Context()
			count, err := redisClient.Incr(reqCtx, key).Result()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Rate limit check failed"})
				c.Abort()
				return
			}
			if count == 1 {
				redisClient.Expire(reqCtx, key, window)
			}
			allowed = count <= int64(limit)
		}

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "error": "Rate limit exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func clientKey(c *gin.Context) string {
	if userID := c.GetString(ContextUserID); userID != "" {
		return userID
	}
	return c.ClientIP()
}

type limiterEntry struct {
	limiter      *rate.Limiter
	lastAccessed time.Time
}

type keyLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	every    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

func newKeyLimiter(limit int, window time.Duration) *keyLimiter {
	return &keyLimiter{
		limiters: make(map[string]*limiterEntry),
		every:    rate.Every(window / time.Duration(limit)),
		burst:    limit,
		idle:     2 * window,
		now:      time.Now,
	}
}

func (k *keyLimiter) allow(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	entry, exists := k.limiters[key]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(k.every, k.burst)}
		k.limiters[key] = entry
	}
	entry.lastAccessed = now

	return entry.limiter.AllowN(now, 1)
}

func (k *keyLimiter) sweep() {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	for key, entry := range k.limiters {
		if now.Sub(entry.lastAccessed) > k.idle {
			delete(k.limiters, key)
		}
	}
}

func (k *keyLimiter) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			k.sweep()
		}
	}
}
