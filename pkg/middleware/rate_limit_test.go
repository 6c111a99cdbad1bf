package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRateLimitRouter(t *testing.T, redisClient *redis.Client, limit int) *gin.Engine {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	router := setupTestRouter()
	router.Use(RateLimitMiddleware(ctx, redisClient, limit, time.Minute))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func doRequest(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.RemoteAddr = remoteAddr
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_LocalLimiter(t *testing.T) {
	router := setupRateLimitRouter(t, nil, 2)

	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.1:1234").Code)

	w := doRequest(router, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Rate limit exceeded"}`, w.Body.String())
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))

	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.2:1234").Code, "keys are per client")
}

func TestRateLimitMiddleware_RedisFixedWindow(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	router := setupRateLimitRouter(t, client, 2)
	key := "rate_limit:/test:10.0.0.1"

	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.1:1234").Code)
	assert.Equal(t, time.Minute, server.TTL(key), "the first hit opens the window")
	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.1:1234").Code)

	w := doRequest(router, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Rate limit exceeded"}`, w.Body.String())

	count, err := server.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "3", count)

	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.2:1234").Code, "keys are per client")

	server.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.1:1234").Code, "a new window starts after expiry")
}

func TestRateLimitMiddleware_RedisUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	router := setupRateLimitRouter(t, client, 2)

	assert.Equal(t, http.StatusInternalServerError, doRequest(router, "10.0.0.1:1234").Code)
}

func TestKeyLimiter_SweepDropsIdleEntries(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	limiter := newKeyLimiter(1, time.Minute)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.allow("a"))
	assert.False(t, limiter.allow("a"))

	now = now.Add(3 * time.Minute)
	limiter.sweep()
	assert.Empty(t, limiter.limiters)

	assert.True(t, limiter.allow("a"))
}
