package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/darkahs/storefront/internal/config"
	"github.com/darkahs/storefront/internal/domain/repository"
	pkgAuth "github.com/darkahs/storefront/internal/pkg/auth"
	"github.com/darkahs/storefront/internal/pkg/metrics"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newAuthUseCase,
	NewCartUseCase,
	newOrderUseCase,
	NewProductUseCase,
)

type authParams struct {
	fx.In

	Users    repository.UserRepository
	Hasher   pkgAuth.PasswordHasher
	Strategy pkgAuth.Strategy
	Config   *config.Config
}

func newAuthUseCase(p authParams) *AuthUseCase {
	return NewAuthUseCase(p.Users, p.Hasher, p.Strategy, p.Config.AdminEmail, p.Config.AdminPassword)
}

type orderParams struct {
	fx.In

	Orders   repository.OrderRepository
	Verifier PaymentVerifier
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Orders, p.Verifier, p.Metrics, p.Logger)
}
