package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/storefront/internal/models"
)

type Controller interface {
	Health(c echo.Context) error
}

type controller struct{}

func NewController() Controller {
	return &controller{}
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "storefront",
	})
}

// httpError maps domain errors onto HTTP statuses.
func httpError(err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, models.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrNotAuthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrSuperseded):
		return echo.NewHTTPError(http.StatusConflict, "request superseded by a newer one")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
