package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/lyftr/webhook-service/internal/metrics"
	"github.com/lyftr/webhook-service/internal/model"
	"github.com/lyftr/webhook-service/pkg/signature"
)

// SignatureHeader carries the lowercase hex HMAC-SHA256 digest of the raw
// request body.
const SignatureHeader = "X-Signature"

// Webhook ingests one signed message. The signature is verified over the raw
// body before any parsing; on mismatch nothing else runs and no state is
// mutated. A replayed message_id is accepted without writing (idempotent).
func Webhook(secret string, messages MessageStore, collector *metrics.Collector) echo.HandlerFunc {
	return func(c echo.Context) error {
		body := c.Request().Body
		defer body.Close()

		rawRequest, err := io.ReadAll(body)
		if err != nil {
			collector.WebhookResult(metrics.ResultError)
			c.Set(contextKeyResult, metrics.ResultError)
			c.Logger().Errorj(log.JSON{
				"message":    "reading request body failed",
				"request_id": requestID(c),
				"error":      err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, model.ErrorResponse{Detail: "internal server error"})
		}

		provided := c.Request().Header.Get(SignatureHeader)
		if !signature.Verify(secret, rawRequest, provided) {
			collector.WebhookResult(metrics.ResultInvalidSignature)
			c.Set(contextKeyResult, metrics.ResultInvalidSignature)
			c.Logger().Errorj(log.JSON{
				"message":    "invalid X-Signature",
				"request_id": requestID(c),
			})
			return c.JSON(http.StatusUnauthorized, model.ErrorResponse{Detail: "invalid signature"})
		}

		var payload model.WebhookMessage
		if err := json.Unmarshal(rawRequest, &payload); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, model.ValidationErrorResponse{
				Detail: []model.FieldError{{Field: "body", Reason: "malformed JSON payload"}},
			})
		}

		if fieldErr := payload.Validate(); fieldErr != nil {
			return c.JSON(http.StatusUnprocessableEntity, model.ValidationErrorResponse{
				Detail: []model.FieldError{*fieldErr},
			})
		}

		created, err := messages.Insert(payload.Record())
		if err != nil {
			collector.WebhookResult(metrics.ResultError)
			c.Set(contextKeyMessageID, payload.MessageID)
			c.Set(contextKeyResult, metrics.ResultError)
			c.Logger().Errorj(log.JSON{
				"message":    "inserting message failed",
				"request_id": requestID(c),
				"message_id": payload.MessageID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, model.ErrorResponse{Detail: "internal server error"})
		}

		result := metrics.ResultCreated
		if !created {
			result = metrics.ResultDuplicate
		}
		collector.WebhookResult(result)

		c.Set(contextKeyMessageID, payload.MessageID)
		c.Set(contextKeyDuplicate, !created)
		c.Set(contextKeyResult, result)

		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}
