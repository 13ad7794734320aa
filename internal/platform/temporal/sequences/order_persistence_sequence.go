package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	salestypes "github.com/Apurer/sales-order-api/internal/domains/sales/application/types"
	"github.com/Apurer/sales-order-api/internal/domains/sales/domain"
	salesactivities "github.com/Apurer/sales-order-api/internal/platform/temporal/activities/sales"
)

// RunOrderPersistenceSequence executes the activity that stores a new sales order.
func RunOrderPersistenceSequence(ctx workflow.Context, input salestypes.CreateOrderInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        2 * time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        10 * time.Second,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: []string{salesactivities.InvalidInputErrorType, salesactivities.ConflictErrorType},
		},
	}

	var order domain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, options), salesactivities.PersistOrderActivityName, input).Get(ctx, &order)
	if err != nil {
		logger.Error("order persistence sequence failed", "orderId", input.ID, "error", err)
		return nil, err
	}
	logger.Info("order persistence sequence persisted", "orderId", order.ID)
	return &order, nil
}
