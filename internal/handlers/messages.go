package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/lyftr/webhook-service/internal/model"
	"github.com/lyftr/webhook-service/internal/store"
)

const (
	defaultLimit = 50
	minLimit     = 1
	maxLimit     = 100
)

// Messages lists stored messages with optional filters and pagination. The
// limit is clamped to [1, 100]; a negative offset is rejected rather than
// clamped.
func Messages(messages MessageStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit, fieldErr := intParam(c, "limit", defaultLimit)
		if fieldErr != nil {
			return c.JSON(http.StatusUnprocessableEntity, model.ValidationErrorResponse{
				Detail: []model.FieldError{*fieldErr},
			})
		}

		offset, fieldErr := intParam(c, "offset", 0)
		if fieldErr != nil {
			return c.JSON(http.StatusUnprocessableEntity, model.ValidationErrorResponse{
				Detail: []model.FieldError{*fieldErr},
			})
		}
		if offset < 0 {
			return c.JSON(http.StatusUnprocessableEntity, model.ValidationErrorResponse{
				Detail: []model.FieldError{{Field: "offset", Reason: "must not be negative"}},
			})
		}

		if limit < minLimit {
			limit = minLimit
		}
		if limit > maxLimit {
			limit = maxLimit
		}

		records, total, err := messages.Query(store.Filter{
			From:   c.QueryParam("from"),
			Since:  c.QueryParam("since"),
			Q:      c.QueryParam("q"),
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			c.Logger().Errorj(log.JSON{
				"message":    "listing messages failed",
				"request_id": requestID(c),
				"error":      err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, model.ErrorResponse{Detail: "internal server error"})
		}

		return c.JSON(http.StatusOK, model.MessagesResponse{
			Data:   records,
			Total:  total,
			Limit:  limit,
			Offset: offset,
		})
	}
}

func intParam(c echo.Context, name string, fallback int) (int, *model.FieldError) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &model.FieldError{Field: name, Reason: "must be an integer"}
	}
	return value, nil
}
