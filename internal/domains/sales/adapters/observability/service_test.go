package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Apurer/sales-order-api/internal/domains/sales/adapters/memory"
	"github.com/Apurer/sales-order-api/internal/domains/sales/application"
	salestypes "github.com/Apurer/sales-order-api/internal/domains/sales/application/types"
	"github.com/Apurer/sales-order-api/internal/domains/sales/orderview"
	"github.com/Apurer/sales-order-api/internal/domains/sales/ports"
)

var fixedNow = time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)

type harness struct {
	service ports.Service
	spans   *tracetest.SpanRecorder
	reader  *sdkmetric.ManualReader
	logs    *bytes.Buffer
}

func newHarness(t *testing.T) harness {
	t.Helper()
	catalog := memory.NewCatalog()
	orders := memory.NewOrderRepository()
	require.NoError(t, memory.SeedDemo(context.Background(), catalog, orders, fixedNow))
	inner := application.NewService(orders, catalog, application.WithClock(func() time.Time { return fixedNow }))

	spans := tracetest.NewSpanRecorder()
	reader := sdkmetric.NewManualReader()
	logs := &bytes.Buffer{}
	service := New(inner,
		WithLogger(slog.New(slog.NewJSONHandler(logs, nil))),
		WithTracer(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans)).Tracer("test")),
		WithMeter(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")),
	)
	return harness{service: service, spans: spans, reader: reader, logs: logs}
}

func (h harness) collect(t *testing.T) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, h.reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Aggregation{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumOf(t *testing.T, data metricdata.Aggregation) int64 {
	t.Helper()
	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestService_RecordsMutations(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	created, err := h.service.CreateOrder(ctx, salestypes.CreateOrderInput{
		CustomerID: "cust-001",
		StoreID:    "store-001",
		OrderDate:  fixedNow,
	})
	require.NoError(t, err)
	_, err = h.service.UpdateOrderStatus(ctx, salestypes.UpdateStatusInput{ID: created.ID, Status: "completed"})
	require.NoError(t, err)
	require.NoError(t, h.service.DeleteOrder(ctx, created.ID))

	metrics := h.collect(t)
	require.Equal(t, int64(1), sumOf(t, metrics["sales.service.orders_created"]))
	require.Equal(t, int64(1), sumOf(t, metrics["sales.service.orders_status_changed"]))
	require.Equal(t, int64(1), sumOf(t, metrics["sales.service.orders_deleted"]))

	names := []string{}
	for _, span := range h.spans.Ended() {
		names = append(names, span.Name())
	}
	require.Equal(t, []string{"SalesService.CreateOrder", "SalesService.UpdateOrderStatus", "SalesService.DeleteOrder"}, names)
	require.Contains(t, h.logs.String(), "order created")
}

func TestService_OrderViewRecordsResultSize(t *testing.T) {
	h := newHarness(t)
	view, err := h.service.OrderView(context.Background(), orderview.Criteria{Status: orderview.StatusAll})
	require.NoError(t, err)
	require.Equal(t, view.Total, len(view.Orders))

	hist, ok := h.collect(t)["sales.service.view_result_size"].(metricdata.Histogram[int64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	require.Equal(t, uint64(1), hist.DataPoints[0].Count)
	require.Equal(t, int64(len(view.Orders)), hist.DataPoints[0].Sum)
}

func TestService_ErrorsMarkSpan(t *testing.T) {
	h := newHarness(t)
	_, err := h.service.GetOrder(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)

	ended := h.spans.Ended()
	require.Len(t, ended, 1)
	require.Equal(t, codes.Error, ended[0].Status().Code)
	require.Contains(t, h.logs.String(), "failed to load order")
}
