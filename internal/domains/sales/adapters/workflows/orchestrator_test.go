package workflows

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/sales-order-api/internal/domains/sales/application"
	"github.com/Apurer/sales-order-api/internal/domains/sales/ports"
	salesactivities "github.com/Apurer/sales-order-api/internal/platform/temporal/activities/sales"
)

func TestTranslateWorkflowError(t *testing.T) {
	invalid := temporal.NewNonRetryableApplicationError("unknown customer", salesactivities.InvalidInputErrorType, nil)
	require.ErrorIs(t, translateWorkflowError(fmt.Errorf("workflow failed: %w", invalid)), application.ErrInvalidInput)

	conflict := temporal.NewNonRetryableApplicationError("order taken", salesactivities.ConflictErrorType, nil)
	translated := translateWorkflowError(fmt.Errorf("workflow failed: %w", conflict))
	require.ErrorIs(t, translated, ports.ErrConflict)
	require.Contains(t, translated.Error(), "order taken")

	other := errors.New("deadline exceeded")
	require.Same(t, other, translateWorkflowError(other))
}

func TestBuildOrderCreationWorkflowID(t *testing.T) {
	require.Equal(t, "sales-order-creation-ord-1", buildOrderCreationWorkflowID("ord-1"))
}
