package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	libredis "github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/planmeet/meeting-scheduler-backend/config"
)

// RateLimiter returns a Gin middleware that limits requests per IP.
// Uses the Redis store when REDIS_ADDR is configured so the limit holds
// across instances; falls back to the in-memory store otherwise.
func RateLimiter(cfg *config.Config) gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  120,
	}

	var store limiter.Store
	if cfg.RedisAddr != "" {
		client := libredis.NewClient(&libredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		redisStore, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
			Prefix: "scheduler_ratelimit",
		})
		if err != nil {
			log.Printf("⚠️ Redis rate limit store unavailable, using memory store: %v", err)
			store = memory.NewStore()
		} else {
			store = redisStore
		}
	} else {
		store = memory.NewStore()
	}

	instance := limiter.New(store, rate)
	return ginlimiter.NewMiddleware(instance)
}
