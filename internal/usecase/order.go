package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/darkahs/storefront/internal/adapter/paystack"
	"github.com/darkahs/storefront/internal/checkout"
	domainErrors "github.com/darkahs/storefront/internal/domain/errors"
	"github.com/darkahs/storefront/internal/domain/model"
	"github.com/darkahs/storefront/internal/domain/repository"
	"github.com/darkahs/storefront/internal/pkg/metrics"
)

// PaymentVerifier asks the payment processor for a transaction outcome.
type PaymentVerifier interface {
	Verify(ctx context.Context, reference string) (*model.Payment, error)
}

// OrderUseCase turns verified payments into orders and serves the order
// lifecycle to the storefront and admin surfaces.
type OrderUseCase struct {
	orders   repository.OrderRepository
	verifier PaymentVerifier
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, verifier PaymentVerifier, m *metrics.Metrics, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, verifier: verifier, metrics: m, logger: logger}
}

// Materialize verifies the referenced transaction against the gateway,
// decodes the checkout metadata and persists exactly one order for the
// reference. A repeated call for an already-materialized reference returns
// the existing order with created=false.
func (u *OrderUseCase) Materialize(ctx context.Context, reference string) (*model.Order, bool, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, false, domainErrors.ErrEmptyReference
	}

	payment, err := u.verifier.Verify(ctx, reference)
	if err != nil {
		var rejected paystack.RejectedError
		if errors.As(err, &rejected) {
			u.metrics.PaymentRejected()
		}
		return nil, false, err
	}
	u.metrics.PaymentVerified()

	details, err := checkout.Decode(payment.Metadata)
	if err != nil {
		return nil, false, err
	}

	order := &model.Order{
		ID:               uuid.NewString(),
		Reference:        payment.Reference,
		BuyerID:          details.BuyerID,
		LineItems:        details.Items,
		ShippingAddress:  details.Address,
		TotalAmount:      float64(payment.AmountMinor) / 100,
		Status:           model.OrderStatusProcessing,
		PaymentConfirmed: true,
		PaymentMethod:    model.PaymentMethodPaystack,
	}

	stored, created, err := u.orders.CreateFromPayment(ctx, order)
	if err != nil {
		// Money has moved but no record exists. The client may safely retry
		// verification: the reference constraint makes it idempotent.
		u.logger.Error("payment confirmed but order was not persisted",
			slog.String("reference", reference),
			slog.String("error", err.Error()),
		)
		return nil, false, err
	}

	if created {
		u.metrics.OrderMaterialized()
	} else {
		u.metrics.DuplicateVerification()
	}
	return stored, created, nil
}

// ListByBuyer returns the buyer's orders, newest first.
func (u *OrderUseCase) ListByBuyer(ctx context.Context, buyerID string) ([]model.Order, error) {
	return u.orders.ListByBuyer(ctx, buyerID)
}

// ListAll returns every order, newest first.
func (u *OrderUseCase) ListAll(ctx context.Context) ([]model.Order, error) {
	return u.orders.ListAll(ctx)
}

// SetStatus overwrites the order status. Only the value is validated; any
// status may replace any other, including moves out of Delivered/Cancelled.
func (u *OrderUseCase) SetStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	if !status.Valid() {
		return domainErrors.ErrInvalidStatus
	}
	return u.orders.UpdateStatus(ctx, orderID, status)
}
