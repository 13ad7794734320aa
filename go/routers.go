/*
 * Sales Order API
 *
 * Sales order management: order grid with search, status and date filters, today's metrics, and catalog reads.
 *
 * API version: 1.0.0
 */

package salesorderserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}

	return router
}

// DefaultHandleFunc answers routes that have no handler wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

type ApiHandleFunctions struct {

	// Routes for the SalesOrderAPI part of the API
	SalesOrderAPI SalesOrderAPI
	// Routes for the CatalogAPI part of the API
	CatalogAPI CatalogAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"Healthz",
			http.MethodGet,
			"/healthz",
			Healthz,
		},
		{
			"ListSalesOrders",
			http.MethodGet,
			"/api/v1/sales-orders",
			handleFunctions.SalesOrderAPI.ListSalesOrders,
		},
		{
			"GetSalesOrderView",
			http.MethodGet,
			"/api/v1/sales-orders/view",
			handleFunctions.SalesOrderAPI.GetSalesOrderView,
		},
		{
			"GetSalesOrder",
			http.MethodGet,
			"/api/v1/sales-orders/:id",
			handleFunctions.SalesOrderAPI.GetSalesOrder,
		},
		{
			"CreateSalesOrder",
			http.MethodPost,
			"/api/v1/sales-orders",
			handleFunctions.SalesOrderAPI.CreateSalesOrder,
		},
		{
			"UpdateSalesOrderStatus",
			http.MethodPatch,
			"/api/v1/sales-orders/:id/status",
			handleFunctions.SalesOrderAPI.UpdateSalesOrderStatus,
		},
		{
			"DeleteSalesOrder",
			http.MethodDelete,
			"/api/v1/sales-orders/:id",
			handleFunctions.SalesOrderAPI.DeleteSalesOrder,
		},
		{
			"ListCustomers",
			http.MethodGet,
			"/api/v1/customers",
			handleFunctions.CatalogAPI.ListCustomers,
		},
		{
			"ListStores",
			http.MethodGet,
			"/api/v1/stores",
			handleFunctions.CatalogAPI.ListStores,
		},
		{
			"ListItems",
			http.MethodGet,
			"/api/v1/items",
			handleFunctions.CatalogAPI.ListItems,
		},
	}
}

// Healthz reports liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
