package server

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/carousell/ct-go/pkg/logger"
	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"

	"github.com/nguyentranbao-ct/storefront/internal/config"
	pkgmdw "github.com/nguyentranbao-ct/storefront/internal/server/middleware"
	"github.com/nguyentranbao-ct/storefront/internal/usecase"
)

func StartServer(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	handler Controller,
	catalogCtrl CatalogController,
	cartCtrl CartController,
	wishlistCtrl WishlistController,
	notificationCtrl NotificationController,
	authCtrl AuthController,
	authUsecase usecase.AuthUsecase,
) {
	e := echo.New()
	e.Validator = pkgmdw.NewValidator()
	e.HTTPErrorHandler = pkgmdw.ErrorHandler(logger.MustNamed("http_error"))

	logConfig := pkgmdw.LogRequestConfig{
		Logger: logger.MustNamed("http"),
		Enabled: func(c echo.Context) bool {
			uri := c.Request().RequestURI
			return uri != "/health" && uri != "/metrics"
		},
	}

	e.Use(pkgmdw.Metrics())
	e.Use(pkgmdw.RequestID())
	e.Use(pkgmdw.LogRequest(logConfig))
	e.Use(pkgmdw.CORS(regexp.MustCompile(conf.Server.CORSPattern)))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Errorw(c.Request().Context(), "PANIC RECOVER", "error", err, "stack", string(stack))
			return nil
		},
	}))

	e.GET("/health", handler.Health)

	api := e.Group("/api/v1")

	api.GET("/products", catalogCtrl.ListProducts)
	api.GET("/products/:id", catalogCtrl.GetProduct)

	api.GET("/cart", cartCtrl.GetCart)
	api.POST("/cart/items", cartCtrl.AddItem)
	api.PUT("/cart/items/:id", cartCtrl.UpdateQuantity)
	api.DELETE("/cart/items/:id", cartCtrl.RemoveItem)
	api.DELETE("/cart", cartCtrl.Clear)

	api.GET("/wishlist", wishlistCtrl.GetWishlist)
	api.POST("/wishlist/toggle", wishlistCtrl.Toggle)

	api.GET("/notifications", notificationCtrl.ListNotifications)
	api.DELETE("/notifications/:id", notificationCtrl.Dismiss)

	auth := api.Group("/auth")
	auth.GET("/status", authCtrl.Status)
	auth.POST("/login", authCtrl.Login, pkgmdw.RequireAnonymous(authUsecase))
	auth.POST("/register", authCtrl.Register, pkgmdw.RequireAnonymous(authUsecase))
	auth.POST("/reset-password", authCtrl.ResetPassword)
	auth.POST("/logout", authCtrl.Logout)

	account := api.Group("/account", pkgmdw.RequireSession(authUsecase))
	account.GET("/profile", authCtrl.GetProfile)
	account.PUT("/profile", authCtrl.UpdateProfile)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infow(ctx, "starting HTTP server", "addr", conf.Server.Addr)
				if err := e.Start(conf.Server.Addr); !errors.Is(err, http.ErrServerClosed) {
					sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}
