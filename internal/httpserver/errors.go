package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/showcase/internal/service"
)

// fail logs err under event and converts it into the matching HTTP error. Store failures get one
// generic message; the cause only goes to the log.
func fail(l *slog.Logger, event string, err error, internalMsg string) error {
	var refErr *service.ReferenceError
	switch {
	case errors.As(err, &refErr):
		l.Warn(event, "status", 409, "reason", "still referenced", "count", refErr.Count, "error", err)
		return echo.NewHTTPError(http.StatusConflict, map[string]any{
			"message": refErr.Error(),
			"count":   refErr.Count,
		})
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", 400, "reason", "invalid input", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", 404, "reason", "not found", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		l.Warn(event, "status", 409, "reason", "conflict", "error", err)
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		l.Error(event, "status", 500, "reason", internalMsg, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, internalMsg)
	}
}

func parseID(c echo.Context, l *slog.Logger, event string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn(event, "status", 400, "reason", "id not a uuid", "error", err)
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "id not a uuid")
	}
	return id, nil
}

func bind(c echo.Context, l *slog.Logger, event string, dst any) error {
	if err := c.Bind(dst); err != nil {
		l.Warn(event, "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	return nil
}
