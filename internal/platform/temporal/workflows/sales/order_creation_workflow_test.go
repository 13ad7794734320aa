package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/Apurer/sales-order-api/internal/domains/sales/adapters/memory"
	"github.com/Apurer/sales-order-api/internal/domains/sales/application"
	salestypes "github.com/Apurer/sales-order-api/internal/domains/sales/application/types"
	"github.com/Apurer/sales-order-api/internal/domains/sales/domain"
	salesactivities "github.com/Apurer/sales-order-api/internal/platform/temporal/activities/sales"
)

var workflowNow = time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	catalog := memory.NewCatalog()
	orders := memory.NewOrderRepository()
	require.NoError(t, memory.SeedDemo(context.Background(), catalog, orders, workflowNow))
	service := application.NewService(orders, catalog, application.WithClock(func() time.Time { return workflowNow }))

	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	activities := salesactivities.NewActivities(service)
	env.RegisterActivityWithOptions(activities.PersistOrder, activity.RegisterOptions{Name: salesactivities.PersistOrderActivityName})
	return env
}

func TestOrderCreationWorkflow_PersistsOrder(t *testing.T) {
	env := newTestEnv(t)
	env.ExecuteWorkflow(OrderCreationWorkflow, OrderCreationWorkflowInput{
		Command: salestypes.CreateOrderInput{
			ID:         "ord-wf-1",
			CustomerID: "cust-001",
			StoreID:    "store-001",
			OrderDate:  workflowNow,
			Items: []salestypes.LineItemInput{
				{ItemID: "item-001", Quantity: 2, UnitPrice: decimal.RequireFromString("10.25")},
			},
		},
		TraceID: "trace-1",
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var order domain.Order
	require.NoError(t, env.GetWorkflowResult(&order))
	require.Equal(t, "ord-wf-1", order.ID)
	require.Equal(t, domain.StatusDraft, order.Status)
	require.True(t, decimal.RequireFromString("20.5").Equal(order.TotalAmount))
}

func TestOrderCreationWorkflow_InvalidInputIsNotRetried(t *testing.T) {
	env := newTestEnv(t)
	env.ExecuteWorkflow(OrderCreationWorkflow, OrderCreationWorkflowInput{
		Command: salestypes.CreateOrderInput{
			ID:         "ord-wf-2",
			CustomerID: "cust-unknown",
			StoreID:    "store-001",
			OrderDate:  workflowNow,
		},
	})

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, salesactivities.InvalidInputErrorType, appErr.Type())
	require.True(t, appErr.NonRetryable())
}

func TestOrderCreationWorkflow_TakenOrderIDIsNotRetried(t *testing.T) {
	env := newTestEnv(t)
	env.ExecuteWorkflow(OrderCreationWorkflow, OrderCreationWorkflowInput{
		Command: salestypes.CreateOrderInput{
			ID:         "ord-001",
			CustomerID: "cust-001",
			StoreID:    "store-001",
			OrderDate:  workflowNow,
		},
	})

	require.True(t, env.IsWorkflowCompleted())
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(env.GetWorkflowError(), &appErr))
	require.Equal(t, salesactivities.ConflictErrorType, appErr.Type())
	require.True(t, appErr.NonRetryable())
}
