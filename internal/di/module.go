package di

import (
	"go.uber.org/fx"

	"github.com/darkahs/storefront/internal/adapter/cloudinary"
	"github.com/darkahs/storefront/internal/adapter/paystack"
	"github.com/darkahs/storefront/internal/app"
	"github.com/darkahs/storefront/internal/config"
	"github.com/darkahs/storefront/internal/logger"
	"github.com/darkahs/storefront/internal/pkg/auth"
	"github.com/darkahs/storefront/internal/pkg/metrics"
	"github.com/darkahs/storefront/internal/server/http/handlers"
	"github.com/darkahs/storefront/internal/server/http/router"
	"github.com/darkahs/storefront/internal/storage/postgres"
	"github.com/darkahs/storefront/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		metrics.Module,
		postgres.Module,
		paystack.Module,
		cloudinary.Module,
		usecase.Module,
		fx.Provide(
			func(client paystack.Client) usecase.PaymentVerifier { return client },
			func(facade *app.StoreFacade) handlers.StoreFacade { return facade },
			func(storage *postgres.Storage) router.Pinger { return storage },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
