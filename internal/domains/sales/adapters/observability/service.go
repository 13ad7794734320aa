package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	salestypes "github.com/Apurer/sales-order-api/internal/domains/sales/application/types"
	"github.com/Apurer/sales-order-api/internal/domains/sales/domain"
	"github.com/Apurer/sales-order-api/internal/domains/sales/orderview"
	salesports "github.com/Apurer/sales-order-api/internal/domains/sales/ports"
)

const tracerName = "github.com/Apurer/sales-order-api/internal/domains/sales/adapters/observability/service"

// Service decorates the sales service with tracing, logging, and metrics.
type Service struct {
	inner   salesports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core sales service.
func New(inner salesports.Service, opts ...Option) salesports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.ListOrders")
	defer span.End()

	result, err := s.inner.ListOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*orderview.EnrichedOrder, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.GetOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	s.logInfo(ctx, "loading order", slog.String("order.id", id))
	result, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	s.logInfo(ctx, "order loaded", slog.String("order.id", id), slog.String("status", string(result.Order.Status)))
	return result, nil
}

func (s *Service) CreateOrder(ctx context.Context, input salestypes.CreateOrderInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.CreateOrder",
		trace.WithAttributes(
			attribute.String("order.customer_id", input.CustomerID),
			attribute.String("order.store_id", input.StoreID),
			attribute.Int("order.items", len(input.Items)),
		))
	defer span.End()

	s.logInfo(ctx, "creating order", slog.String("order.customer_id", input.CustomerID), slog.String("order.store_id", input.StoreID))
	result, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order", slog.String("order.customer_id", input.CustomerID))
	}
	span.SetAttributes(attribute.String("order.id", result.ID))
	s.metrics.recordCreated(ctx, result.Status)
	s.logInfo(ctx, "order created",
		slog.String("order.id", result.ID),
		slog.String("invoice", result.InvoiceNumber),
		slog.String("total", result.TotalAmount.StringFixed(2)))
	return result, nil
}

func (s *Service) UpdateOrderStatus(ctx context.Context, input salestypes.UpdateStatusInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.UpdateOrderStatus",
		trace.WithAttributes(attribute.String("order.id", input.ID), attribute.String("order.status", input.Status)))
	defer span.End()

	s.logInfo(ctx, "updating order status", slog.String("order.id", input.ID), slog.String("status", input.Status))
	result, err := s.inner.UpdateOrderStatus(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status", slog.String("order.id", input.ID))
	}
	s.metrics.recordStatusChanged(ctx, result.Status)
	s.logInfo(ctx, "order status updated", slog.String("order.id", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "SalesService.DeleteOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting order", slog.String("order.id", id))
	if err := s.inner.DeleteOrder(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.String("order.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "order deleted", slog.String("order.id", id))
	return nil
}

func (s *Service) OrderView(ctx context.Context, criteria orderview.Criteria) (*orderview.View, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.OrderView",
		trace.WithAttributes(
			attribute.String("view.status", string(criteria.Status)),
			attribute.Bool("view.has_query", criteria.Query != ""),
			attribute.Bool("view.has_start", !criteria.Start.IsZero()),
			attribute.Bool("view.has_end", !criteria.End.IsZero()),
		))
	defer span.End()

	result, err := s.inner.OrderView(ctx, criteria)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to build order view")
	}
	span.SetAttributes(
		attribute.Int("view.total", result.Total),
		attribute.Int("view.matched", len(result.Orders)),
		attribute.Int("view.today", result.Metrics.Total),
	)
	s.metrics.recordViewSize(ctx, len(result.Orders))
	return result, nil
}

func (s *Service) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.ListCustomers")
	defer span.End()

	result, err := s.inner.ListCustomers(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list customers")
	}
	return result, nil
}

func (s *Service) ListStores(ctx context.Context) ([]domain.Store, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.ListStores")
	defer span.End()

	result, err := s.inner.ListStores(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list stores")
	}
	return result, nil
}

func (s *Service) ListItems(ctx context.Context) ([]domain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "SalesService.ListItems")
	defer span.End()

	result, err := s.inner.ListItems(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list items")
	}
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersCreated       metric.Int64Counter
	ordersStatusChanged metric.Int64Counter
	ordersDeleted       metric.Int64Counter
	viewResultSize      metric.Int64Histogram
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersCreated, _ := m.Int64Counter("sales.service.orders_created", metric.WithDescription("Number of sales orders created"))
	ordersStatusChanged, _ := m.Int64Counter("sales.service.orders_status_changed", metric.WithDescription("Number of completions and cancellations"))
	ordersDeleted, _ := m.Int64Counter("sales.service.orders_deleted", metric.WithDescription("Number of sales orders deleted"))
	viewResultSize, _ := m.Int64Histogram("sales.service.view_result_size", metric.WithDescription("Rows returned by the filtered order view"))
	return serviceMetrics{
		ordersCreated:       ordersCreated,
		ordersStatusChanged: ordersStatusChanged,
		ordersDeleted:       ordersDeleted,
		viewResultSize:      viewResultSize,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context, status domain.Status) {
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordStatusChanged(ctx context.Context, status domain.Status) {
	if m.ordersStatusChanged != nil {
		m.ordersStatusChanged.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.ordersDeleted != nil {
		m.ordersDeleted.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordViewSize(ctx context.Context, size int) {
	if m.viewResultSize != nil {
		m.viewResultSize.Record(ctx, int64(size))
	}
}

var _ salesports.Service = (*Service)(nil)
