package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenarsag/foodgram/backend/internal/testhelpers"
)

func limitedRouter(rl *RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler())
	r.POST("/", AuthMiddleware(fakeValidator{"alice": 1, "bob": 2}), rl.RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func post(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterWithoutRedisAllowsEverything(t *testing.T) {
	r := limitedRouter(NewRecipeCreationRateLimiter(nil, 1))
	for i := 0; i < 3; i++ {
		w := post(r, "alice")
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { client.Close() })

	w := post(limitedRouter(NewRecipeCreationRateLimiter(client, 1)), "alice")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
}

func TestRateLimiterEnforcesLimitPerUser(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	rl := NewRecipeCreationRateLimiter(client, 2)
	r := limitedRouter(rl)

	w := post(r, "alice")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusCreated, post(r, "alice").Code)

	w = post(r, "alice")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	// bob is counted separately
	assert.Equal(t, http.StatusCreated, post(r, "bob").Code)

	remaining, reset, err := rl.GetRemainingRequests(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)
	assert.True(t, reset.After(time.Now()))

	remaining, _, err = rl.GetRemainingRequests(context.Background(), "99")
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)
}
