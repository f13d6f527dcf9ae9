package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "task-manager-api.com/task-manager-api/internal/errors"
	"task-manager-api.com/task-manager-api/internal/metrics"
)

func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			metrics.HTTPDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
			metrics.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(statusOf(c, err))).Inc()
			return err
		}
	}
}

func statusOf(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return apperrors.StatusCode(err)
}
