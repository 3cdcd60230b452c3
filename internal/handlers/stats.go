package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/lyftr/webhook-service/internal/model"
)

// Stats serves the aggregate view over the whole store.
func Stats(messages MessageStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, err := messages.Stats()
		if err != nil {
			c.Logger().Errorj(log.JSON{
				"message":    "aggregating stats failed",
				"request_id": requestID(c),
				"error":      err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, model.ErrorResponse{Detail: "internal server error"})
		}
		return c.JSON(http.StatusOK, stats)
	}
}
