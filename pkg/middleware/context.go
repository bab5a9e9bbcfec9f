package middleware

import (
	"github.com/Ramsey-B/fern/pkg/context"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context puts the request ID, method, route template and step ID on the
// request context. The request ID comes from X-Request-Id when the caller
// sent one and is echoed back.
func Context() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			ctx := req.Context()
			ctx = context.SetRequestID(ctx, requestID)
			ctx = context.SetMethod(ctx, req.Method)
			ctx = context.SetRoute(ctx, c.Path())
			if stepID := c.Param("id"); stepID != "" {
				ctx = context.SetStepID(ctx, stepID)
			}

			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}
