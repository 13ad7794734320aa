package sales

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/sales-order-api/internal/domains/sales/application"
	salestypes "github.com/Apurer/sales-order-api/internal/domains/sales/application/types"
	"github.com/Apurer/sales-order-api/internal/domains/sales/domain"
	salesports "github.com/Apurer/sales-order-api/internal/domains/sales/ports"
)

const (
	// PersistOrderActivityName validates and stores a new sales order.
	PersistOrderActivityName = "sales.activities.PersistOrder"
	// InvalidInputErrorType marks activity failures that retrying cannot fix.
	InvalidInputErrorType = "InvalidInput"
	// ConflictErrorType marks a create whose id or invoice number is already taken.
	ConflictErrorType = "Conflict"
)

// Activities groups activities that operate on the sales bounded context.
type Activities struct {
	service salesports.Service
}

// NewActivities wires the sales service into the Temporal activities bundle.
func NewActivities(service salesports.Service) *Activities {
	return &Activities{service: service}
}

// PersistOrder creates the order through the application service.
func (a *Activities) PersistOrder(ctx context.Context, input salestypes.CreateOrderInput) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order persist activity not initialized", "orderId", input.ID)
		return nil, errors.New("order persist activity not initialized")
	}
	logger.Info("PersistOrder activity started", "orderId", input.ID, "customerId", input.CustomerID)
	order, err := a.service.CreateOrder(ctx, input)
	if err != nil {
		logger.Error("PersistOrder activity failed", "orderId", input.ID, "error", err)
		if errors.Is(err, application.ErrInvalidInput) {
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), InvalidInputErrorType, err)
		}
		if errors.Is(err, salesports.ErrConflict) {
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), ConflictErrorType, err)
		}
		return nil, err
	}
	logger.Info("PersistOrder activity completed", "orderId", order.ID, "invoice", order.InvoiceNumber)
	return order, nil
}
