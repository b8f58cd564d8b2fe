package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/storefront/internal/models"
	pkgmdw "github.com/nguyentranbao-ct/storefront/internal/server/middleware"
	"github.com/nguyentranbao-ct/storefront/internal/usecase"
)

type AuthController interface {
	Status(c echo.Context) error
	Login(c echo.Context) error
	Register(c echo.Context) error
	ResetPassword(c echo.Context) error
	Logout(c echo.Context) error
	GetProfile(c echo.Context) error
	UpdateProfile(c echo.Context) error
}

type authController struct {
	authUsecase usecase.AuthUsecase
}

func NewAuthController(authUsecase usecase.AuthUsecase) AuthController {
	return &authController{
		authUsecase: authUsecase,
	}
}

func (ac *authController) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, ac.authUsecase.Current(c.Request().Context()))
}

func (ac *authController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	session, err := ac.authUsecase.Login(ctx, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"session": session,
	})
}

func (ac *authController) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	session, err := ac.authUsecase.Register(ctx, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"session": session,
	})
}

func (ac *authController) ResetPassword(c echo.Context) error {
	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if err := ac.authUsecase.ResetPassword(ctx, req); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Password reset link sent to your email",
	})
}

func (ac *authController) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	if err := ac.authUsecase.Logout(ctx); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "logged out successfully",
	})
}

func (ac *authController) GetProfile(c echo.Context) error {
	return c.JSON(http.StatusOK, pkgmdw.SessionFromContext(c))
}

func (ac *authController) UpdateProfile(c echo.Context) error {
	var req models.ProfileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	session, err := ac.authUsecase.UpdateProfile(ctx, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, session)
}
