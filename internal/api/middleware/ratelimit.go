package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"skillmatch/internal/api/respond"
	redisstore "skillmatch/internal/storage/redis"
)

const counterTimeout = 2 * time.Second

// ClientHeader identifies the caller for rate limiting. The remote address is
// used when it is missing.
const ClientHeader = "X-User-ID"

// Counter counts hits in a window that expires after ttl
type Counter interface {
	IncrementWithExpiry(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RateLimit allows limit requests per client per minute. A nil counter or a
// non-positive limit disables it; counter errors let the request through.
func RateLimit(counter Counter, limit int, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if counter == nil || limit <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientID(r)

			ctx, cancel := context.WithTimeout(r.Context(), counterTimeout)
			defer cancel()

			count, err := counter.IncrementWithExpiry(ctx, redisstore.RateLimitKey(client), redisstore.RateLimitWindowTTL)
			if err != nil {
				logger.Error("failed to check rate limit",
					zap.String("client", client),
					zap.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(limit) {
				logger.Warn("rate limit exceeded",
					zap.String("client", client),
					zap.Int64("count", count),
				)

				w.Header().Set("Retry-After", "60")
				respond.Error(w, http.StatusTooManyRequests,
					fmt.Sprintf("rate limit exceeded: at most %d requests per minute", limit))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientID(r *http.Request) string {
	if id := r.Header.Get(ClientHeader); id != "" {
		return id
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
