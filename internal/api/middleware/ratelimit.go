package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/inorbyt/chain-sync/internal/api/shared/errors"
	"github.com/inorbyt/chain-sync/internal/logger"
	"github.com/inorbyt/chain-sync/internal/ratelimit"
)

const (
	RETRY_AFTER_HEADER          = "Retry-After"
	RATE_LIMIT_REMAINING_HEADER = "X-RateLimit-Remaining"
)

// RateLimit limits requests per client. Authenticated requests are keyed by
// their subject and anonymous ones by client IP. Limiter errors let the
// request through.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rateLimitKey(c)

		decision, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.WarnCtx(c.Request.Context(), "Rate limiter unavailable, allowing request",
				zap.Error(err),
				zap.String("key", key),
			)
			c.Next()
			return
		}

		c.Header(RATE_LIMIT_REMAINING_HEADER, strconv.Itoa(decision.Remaining))
		if !decision.Allowed {
			c.Header(RETRY_AFTER_HEADER, strconv.Itoa(retryAfterSeconds(decision)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierrors.NewTooManyRequestsError("Rate limit exceeded"))
			return
		}

		c.Next()
	}
}

func rateLimitKey(c *gin.Context) string {
	if subject := AuthSubject(c); subject != "" {
		return "sub:" + subject
	}
	return "ip:" + c.ClientIP()
}

func retryAfterSeconds(decision ratelimit.Decision) int {
	seconds := int(math.Ceil(decision.RetryAfter.Seconds()))
	if seconds < 1 {
		return 1
	}
	return seconds
}
