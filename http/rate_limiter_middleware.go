package http

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// RateLimitMiddleware rejects clients that exhausted their bucket with
// 429 and a Retry-After header in whole seconds.
func RateLimitMiddleware(
	limiter *RateLimiter,
	logger *zap.Logger,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				// RealIP leaves a bare address without a port.
				client = r.RemoteAddr
			}

			ok, retryAfter := limiter.Allow(client)
			if !ok {
				seconds := int(math.Ceil(retryAfter.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				logger.Info("rate limit exceeded", zap.String("client", client), zap.Int("retry_after", seconds))
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
