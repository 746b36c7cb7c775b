package middleware

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimit rejects callers exceeding maxPerMin requests per minute with
// 429. Counters live in Redis under a fixed one-minute window, so limits
// hold across replicas.
func RateLimit(rdb *redis.Client, maxPerMin int, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			key := fmt.Sprintf("ratelimit:%s:%s", ip, time.Now().Format("15:04"))

			n, err := rdb.Incr(r.Context(), key).Result()
			if err != nil {
				// Degrade open: a Redis outage must not take bookings down.
				log.Warn("rate limiter unavailable", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if n == 1 {
				rdb.Expire(r.Context(), key, time.Minute)
			}
			if n > int64(maxPerMin) {
				log.Warn("rate limit exceeded", zap.String("ip", ip))
				http.Error(w, "rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
