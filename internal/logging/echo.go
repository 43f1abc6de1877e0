package logging

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const headerRequestID = "X-Request-ID"

// EchoMiddleware returns an echo middleware that:
//  1. Reads or generates a request ID (X-Request-ID).
//  2. Stores a child logger with request metadata in the request context.
//  3. Echoes the request ID back in the response.
//  4. Logs the completed request with status and latency.
func EchoMiddleware(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			reqID := req.Header.Get(headerRequestID)
			if reqID == "" {
				reqID = uuid.New().String()
			}

			child := logger.With().
				Str(FieldRequestID, reqID).
				Str(FieldMethod, req.Method).
				Str(FieldPath, req.URL.Path).
				Str(FieldClientIP, c.RealIP()).
				Logger()

			c.Response().Header().Set(headerRequestID, reqID)
			c.SetRequest(req.WithContext(WithLogger(req.Context(), child)))

			err := next(c)
			if err != nil {
				// let echo write the error response so the logged status is the real one
				c.Error(err)
			}

			evt := child.Info()
			if c.Response().Status >= 500 {
				evt = child.Error()
			}
			if uid := c.Get(FieldUserID); uid != nil {
				evt = evt.Str(FieldUserID, fmt.Sprint(uid))
			}
			evt.Str(FieldRoute, c.Path()).
				Int(FieldStatus, c.Response().Status).
				Float64(FieldLatency, float64(time.Since(start).Milliseconds())).
				Msg("request completed")
			return nil
		}
	}
}
