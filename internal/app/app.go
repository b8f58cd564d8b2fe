package app

import (
	"github.com/carousell/ct-go/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/nguyentranbao-ct/storefront/internal/events"
	"github.com/nguyentranbao-ct/storefront/internal/repo/catalog"
	"github.com/nguyentranbao-ct/storefront/internal/server"
	"github.com/nguyentranbao-ct/storefront/internal/usecase"
)

func Invoke(funcs ...any) *fx.App {
	log := logger.MustNamed("app")
	conf := config.MustLoad()
	log.Debugw("config loaded", log.Reflect("config", conf))
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Provide(
			newStore,

			catalog.NewClient,
			events.NewPublisher,

			usecase.NewNotifier,
			usecase.NewCartUsecase,
			usecase.NewWishlistUsecase,
			usecase.NewCatalogUsecase,
			usecase.NewAuthUsecase,

			server.NewController,
			server.NewCatalogController,
			server.NewCartController,
			server.NewWishlistController,
			server.NewNotificationController,
			server.NewAuthController,
		),
		fx.Supply(conf),
		fx.Invoke(funcs...),
	)
}
