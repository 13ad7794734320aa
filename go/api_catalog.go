package salesorderserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	saleshttpmapper "github.com/Apurer/sales-order-api/internal/domains/sales/adapters/http/mapper"
	salesports "github.com/Apurer/sales-order-api/internal/domains/sales/ports"
)

// CatalogAPI serves the reference data used by the order form and grid.
type CatalogAPI struct {
	service salesports.Service
}

// NewCatalogAPI creates a CatalogAPI backed by the sales service.
func NewCatalogAPI(service salesports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// Get /api/v1/customers
func (api *CatalogAPI) ListCustomers(c *gin.Context) {
	customers, err := api.service.ListCustomers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, saleshttpmapper.FromCustomers(customers))
}

// Get /api/v1/stores
func (api *CatalogAPI) ListStores(c *gin.Context) {
	stores, err := api.service.ListStores(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, saleshttpmapper.FromStores(stores))
}

// Get /api/v1/items
func (api *CatalogAPI) ListItems(c *gin.Context) {
	items, err := api.service.ListItems(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, saleshttpmapper.FromItems(items))
}
