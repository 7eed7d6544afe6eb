package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RXAliman/scrunch/internal/infra/cache"
	"github.com/RXAliman/scrunch/internal/utils"
)

// RateLimitMiddleware caps how often one account can perform an action
// within a window. Anonymous requests are keyed by client IP. Redis
// failures fail open so a cache outage never blocks writes.
func RateLimitMiddleware(rdb *cache.RedisCache, action string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		subject := c.ClientIP()
		if viewer := utils.GetViewer(c); viewer.Authenticated {
			subject = fmt.Sprintf("account:%d", viewer.AccountID)
		}
		key := fmt.Sprintf("rate:limit:%s:%s", subject, action)

		allowed, err := rdb.AllowRequest(c, key, limit, window)
		if err != nil {
			zap.L().Warn("rate limit check failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			utils.Error(c, http.StatusTooManyRequests, "too many requests, slow down")
			return
		}
		c.Next()
	}
}
