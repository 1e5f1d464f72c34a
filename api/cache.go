package api

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// responseCache caches anonymous GET responses in Redis for a fixed TTL.
// Authenticated requests bypass the cache so staff always see fresh data.
// With no Redis client configured it is a no-op.
type responseCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func newResponseCache(rdb *redis.Client, ttl time.Duration) responseCache {
	return responseCache{rdb: rdb, ttl: ttl}
}

type recordingResponseWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *recordingResponseWriter) WriteHeader(statusCode int) {
	w.status = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *recordingResponseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// cacheKey derives the redis key from the path plus the query string with
// its parameters in sorted order, so parameter order does not split the
// cache.
func cacheKey(r *http.Request) string {
	key := "cache:" + r.URL.Path
	if query := r.URL.Query().Encode(); query != "" {
		key += "?" + query
	}
	return key
}

func (c responseCache) cache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c.rdb == nil || r.Method != http.MethodGet || r.Header.Get("Authorization") != "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		key := cacheKey(r)

		if cached, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Header().Set("X-Cache", "HIT")
			w.Write(cached)
			return
		}

		w.Header().Set("X-Cache", "MISS")
		rrw := &recordingResponseWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(rrw, r)

		if rrw.status == http.StatusOK && rrw.body.Len() > 0 {
			// Populate off the request path; the response is already sent.
			payload := append([]byte(nil), rrw.body.Bytes()...)
			go func() {
				// The request context is gone by the time this runs.
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
					log.Warn().Err(err).Str("key", key).Msg("failed to cache response")
				}
			}()
		}
	})
}
