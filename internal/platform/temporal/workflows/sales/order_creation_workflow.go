package sales

import (
	"go.temporal.io/sdk/workflow"

	salestypes "github.com/Apurer/sales-order-api/internal/domains/sales/application/types"
	"github.com/Apurer/sales-order-api/internal/domains/sales/domain"
	"github.com/Apurer/sales-order-api/internal/platform/temporal/sequences"
)

const (
	// OrderCreationWorkflowName is the public identifier for registering the workflow.
	OrderCreationWorkflowName = "sales.workflows.OrderCreation"
	// OrderCreationTaskQueue is the queue consumed by the worker processing sales workflows.
	OrderCreationTaskQueue = "SALES_ORDER_CREATION"
)

// OrderCreationWorkflowInput captures the payload required to create a sales order.
type OrderCreationWorkflowInput struct {
	Command salestypes.CreateOrderInput
	TraceID string
}

// OrderCreationWorkflow orchestrates the activities needed to persist a sales order.
func OrderCreationWorkflow(ctx workflow.Context, input OrderCreationWorkflowInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	orderID := input.Command.ID
	logger.Info("OrderCreationWorkflow started", withTraceID(input.TraceID, "orderId", orderID)...)
	order, err := sequences.RunOrderPersistenceSequence(ctx, input.Command)
	if err != nil {
		logger.Error("OrderCreationWorkflow failed", withTraceID(input.TraceID, "orderId", orderID, "error", err)...)
		return nil, err
	}
	logger.Info("OrderCreationWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID, "status", string(order.Status))...)
	return order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
