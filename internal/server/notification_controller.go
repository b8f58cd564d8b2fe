package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/storefront/internal/usecase"
)

type NotificationController interface {
	ListNotifications(c echo.Context) error
	Dismiss(c echo.Context) error
}

type notificationController struct {
	notifier usecase.Notifier
}

func NewNotificationController(notifier usecase.Notifier) NotificationController {
	return &notificationController{
		notifier: notifier,
	}
}

func (h *notificationController) ListNotifications(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"notifications": h.notifier.Active(),
	})
}

func (h *notificationController) Dismiss(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing notification id")
	}

	h.notifier.Dismiss(id)
	return c.NoContent(http.StatusNoContent)
}
