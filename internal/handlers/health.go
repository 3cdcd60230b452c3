package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lyftr/webhook-service/internal/model"
)

// HealthLive always reports alive once the process serves traffic.
func HealthLive() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "alive"})
	}
}

// HealthReady reports ready only when the webhook secret is configured and
// the store's schema is reachable. Both failures collapse into the same 503.
func HealthReady(secret string, messages MessageStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		if strings.TrimSpace(secret) == "" || !messages.Ready() {
			return c.JSON(http.StatusServiceUnavailable, model.ErrorResponse{Detail: "service not ready"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	}
}
