package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"task-manager-api.com/task-manager-api/internal/metrics"
)

type KeyFunc func(c echo.Context) string

func KeyByIP(c echo.Context) string {
	return c.RealIP()
}

// RateLimiter allows limit requests per key in each fixed window. name
// labels the limiter in metrics.
func RateLimiter(name string, limit int, window time.Duration, key KeyFunc, now func() time.Time) echo.MiddlewareFunc {
	type bucket struct {
		count int
		start time.Time
	}

	if key == nil {
		key = KeyByIP
	}
	if now == nil {
		now = time.Now
	}

	var (
		mu        sync.Mutex
		buckets   = make(map[string]*bucket)
		lastSweep time.Time
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			t := now()
			k := key(c)

			mu.Lock()
			if t.Sub(lastSweep) > window {
				for id, b := range buckets {
					if t.Sub(b.start) > window {
						delete(buckets, id)
					}
				}
				lastSweep = t
			}

			b, ok := buckets[k]
			if !ok || t.Sub(b.start) > window {
				b = &bucket{start: t}
				buckets[k] = b
			}

			if b.count >= limit {
				mu.Unlock()
				metrics.RateLimited.WithLabelValues(name).Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			b.count++
			mu.Unlock()

			return next(c)
		}
	}
}
