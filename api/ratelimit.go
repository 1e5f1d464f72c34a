package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/akdeniz-handel/catalog-backend/errs"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// rateLimiter throttles per-IP using a fixed Redis window (INCR + EXPIRE).
// With no Redis client configured it is a no-op.
type rateLimiter struct {
	responder Responder
	rdb       *redis.Client
	limit     int
	window    time.Duration
	prefix    string
}

func newRateLimiter(rdb *redis.Client, prefix string, limit int, window time.Duration) rateLimiter {
	logger := log.With().Str("handlerName", "rateLimiter").Logger()
	return rateLimiter{
		responder: NewResponder(logger),
		rdb:       rdb,
		limit:     limit,
		window:    window,
		prefix:    prefix,
	}
}

func (m rateLimiter) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.rdb == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		key := fmt.Sprintf("ratelimit:%s:%s", m.prefix, clientIP(r))

		count, err := m.rdb.Incr(ctx, key).Result()
		if err != nil {
			// Redis being down must not take the API with it.
			log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			m.rdb.Expire(ctx, key, m.window)
		}

		if count > int64(m.limit) {
			ttl, _ := m.rdb.TTL(ctx, key).Result()
			retryAfter := int(ttl.Seconds())
			if retryAfter <= 0 {
				retryAfter = int(m.window.Seconds())
			}
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			m.responder.WriteError(w, errs.NewRateLimitError(retryAfter))
			return
		}

		next.ServeHTTP(w, r)
	})
}
