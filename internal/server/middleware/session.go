package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/internal/usecase"
)

const sessionContextKey = "session"

// RequireSession guards account routes: without an active session the
// request is rejected and the client is told where to go.
func RequireSession(auth usecase.AuthUsecase) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			status := auth.Current(c.Request().Context())
			if status.State != models.AuthStateAuthenticated {
				return echo.NewHTTPError(http.StatusUnauthorized, "login required")
			}

			c.Set(sessionContextKey, status.Session)
			return next(c)
		}
	}
}

// RequireAnonymous guards the login and register routes, mirroring the
// storefront redirect of authenticated users to their account view.
func RequireAnonymous(auth usecase.AuthUsecase) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			status := auth.Current(c.Request().Context())
			if status.State == models.AuthStateAuthenticated {
				return echo.NewHTTPError(http.StatusConflict, "already authenticated")
			}
			return next(c)
		}
	}
}

// SessionFromContext returns the session stored by RequireSession.
func SessionFromContext(c echo.Context) *models.Session {
	session, _ := c.Get(sessionContextKey).(*models.Session)
	return session
}
