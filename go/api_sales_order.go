package salesorderserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
	openapitypes "github.com/oapi-codegen/runtime/types"

	saleshttpmapper "github.com/Apurer/sales-order-api/internal/domains/sales/adapters/http/mapper"
	salestypes "github.com/Apurer/sales-order-api/internal/domains/sales/application/types"
	"github.com/Apurer/sales-order-api/internal/domains/sales/domain"
	"github.com/Apurer/sales-order-api/internal/domains/sales/orderview"
	salesports "github.com/Apurer/sales-order-api/internal/domains/sales/ports"
	apierrors "github.com/Apurer/sales-order-api/internal/shared/errors"
)

// SalesOrderAPI wires HTTP transport with the sales service and workflows.
type SalesOrderAPI struct {
	service   salesports.Service
	workflows salesports.WorkflowOrchestrator
	location  *time.Location
}

// NewSalesOrderAPI creates a SalesOrderAPI backed by the provided service. Date-only filter
// bounds are interpreted in loc, or in the local zone when loc is nil.
func NewSalesOrderAPI(service salesports.Service, workflows salesports.WorkflowOrchestrator, loc *time.Location) SalesOrderAPI {
	if loc == nil {
		loc = time.Local
	}
	return SalesOrderAPI{service: service, workflows: workflows, location: loc}
}

// Get /api/v1/sales-orders
// Lists orders without joins
func (api *SalesOrderAPI) ListSalesOrders(c *gin.Context) {
	orders, err := api.service.ListOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, saleshttpmapper.FromDomainOrders(orders))
}

// Get /api/v1/sales-orders/view
// Enriched, filtered order listing with today's metrics
func (api *SalesOrderAPI) GetSalesOrderView(c *gin.Context) {
	criteria, err := api.parseCriteria(c)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	view, err := api.service.OrderView(c.Request.Context(), criteria)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, saleshttpmapper.FromView(view))
}

// Get /api/v1/sales-orders/:id
// Find an order with its customer and store
func (api *SalesOrderAPI) GetSalesOrder(c *gin.Context) {
	id := c.Param("id")
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, salesports.ErrNotFound) {
			respondProblem(c, apierrors.NewNotFoundProblem("SalesOrder", id))
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, saleshttpmapper.FromEnrichedOrder(*order))
}

// Post /api/v1/sales-orders
// Create a draft order
func (api *SalesOrderAPI) CreateSalesOrder(c *gin.Context) {
	var payload saleshttpmapper.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	created, err := api.createOrder(c.Request.Context(), saleshttpmapper.ToCreateOrderInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saleshttpmapper.FromDomainOrder(created))
}

func (api *SalesOrderAPI) createOrder(ctx context.Context, input salestypes.CreateOrderInput) (*domain.Order, error) {
	if api.workflows != nil {
		return api.workflows.CreateOrder(ctx, input)
	}
	return api.service.CreateOrder(ctx, input)
}

// Patch /api/v1/sales-orders/:id/status
// Mark an order completed or cancelled
func (api *SalesOrderAPI) UpdateSalesOrderStatus(c *gin.Context) {
	id := c.Param("id")
	var payload saleshttpmapper.UpdateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.UpdateOrderStatus(c.Request.Context(), salestypes.UpdateStatusInput{ID: id, Status: payload.Status})
	if err != nil {
		if errors.Is(err, salesports.ErrNotFound) {
			respondProblem(c, apierrors.NewNotFoundProblem("SalesOrder", id))
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, saleshttpmapper.FromDomainOrder(updated))
}

// Delete /api/v1/sales-orders/:id
// Deletes an order
func (api *SalesOrderAPI) DeleteSalesOrder(c *gin.Context) {
	id := c.Param("id")
	if err := api.service.DeleteOrder(c.Request.Context(), id); err != nil {
		if errors.Is(err, salesports.ErrNotFound) {
			respondProblem(c, apierrors.NewNotFoundProblem("SalesOrder", id))
			return
		}
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (api *SalesOrderAPI) parseCriteria(c *gin.Context) (orderview.Criteria, error) {
	status, err := orderview.ParseStatusFilter(c.Query("status"))
	if err != nil {
		return orderview.Criteria{}, apierrors.NewInvalidParameterProblem("status", err)
	}
	start, err := api.bindDateBound(c, "startDate", false)
	if err != nil {
		return orderview.Criteria{}, err
	}
	end, err := api.bindDateBound(c, "endDate", true)
	if err != nil {
		return orderview.Criteria{}, err
	}
	return orderview.Criteria{
		Query:  c.Query("q"),
		Status: status,
		Start:  start,
		End:    end,
	}, nil
}

// bindDateBound accepts RFC 3339 timestamps as-is. A bare date becomes the start or the end of
// that calendar day in the API location.
func (api *SalesOrderAPI) bindDateBound(c *gin.Context, name string, endOfDay bool) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, nil
	}
	var value time.Time
	if err := runtime.BindQueryParameter("form", true, false, name, c.Request.URL.Query(), &value); err != nil {
		return time.Time{}, apierrors.NewInvalidParameterProblem(name, err)
	}
	if len(raw) != len(openapitypes.DateFormat) {
		return value, nil
	}
	y, m, d := value.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, api.location)
	if endOfDay {
		return orderview.EndOfDay(day), nil
	}
	return day, nil
}
