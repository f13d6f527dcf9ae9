package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	apperrors "task-manager-api.com/task-manager-api/internal/errors"
)

// ErrorHandler renders every error as {"message": ...}. Domain errors carry
// their own status; anything unrecognised is logged and hidden behind a 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		status = he.Code
		message = fmt.Sprint(he.Message)
	case apperrors.StatusCode(err) != http.StatusInternalServerError:
		status = apperrors.StatusCode(err)
		message = err.Error()
	default:
		log.Error().Err(err).Str("method", c.Request().Method).Str("path", c.Path()).Msg("unhandled error")
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, echo.Map{"message": message})
	}
	if writeErr != nil {
		log.Error().Err(writeErr).Msg("failed to write error response")
	}
}
