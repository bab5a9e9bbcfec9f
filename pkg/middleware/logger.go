package middleware

import (
	"net/http"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/context"
	"github.com/labstack/echo/v4"
)

// Logger writes one access line per request once the error handler has
// rendered the response. Server errors log at error level, everything else at
// info.
func Logger(logger ectologger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			ctx := c.Request().Context()
			fields := context.LogFields(ctx)
			fields["status"] = c.Response().Status
			fields["latency_ms"] = time.Since(start).Milliseconds()
			fields["bytes_in"] = c.Request().ContentLength
			fields["bytes_out"] = c.Response().Size
			fields["remote_ip"] = c.RealIP()

			entry := logger.WithContext(ctx).WithFields(fields)
			if c.Response().Status >= http.StatusInternalServerError {
				entry.Error("request failed")
			} else {
				entry.Info("request handled")
			}
			return nil
		}
	}
}
