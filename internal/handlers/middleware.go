package handlers

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/lyftr/webhook-service/internal/metrics"
)

// Context keys the webhook handler sets for the request log line.
const (
	contextKeyMessageID = "message_id"
	contextKeyDuplicate = "dup"
	contextKeyResult    = "result"
)

// RequestLogger counts every finished request in the HTTP outcome counter and
// emits one structured log line for it.
func RequestLogger(collector *metrics.Collector) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			collector.HTTPRequest(req.Method, req.URL.Path, status)

			entry := log.JSON{
				"request_id": requestID(c),
				"method":     req.Method,
				"path":       req.URL.Path,
				"status":     status,
				"latency_ms": time.Since(start).Milliseconds(),
			}
			if id, ok := c.Get(contextKeyMessageID).(string); ok {
				entry[contextKeyMessageID] = id
			}
			if dup, ok := c.Get(contextKeyDuplicate).(bool); ok {
				entry[contextKeyDuplicate] = dup
			}
			if result, ok := c.Get(contextKeyResult).(string); ok {
				entry[contextKeyResult] = result
			}
			c.Logger().Infoj(entry)

			return err
		}
	}
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
