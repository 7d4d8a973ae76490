package handler

import (
	"github.com/gin-gonic/gin"

	integrationapp "github.com/erp/syncbridge/internal/application/integration"
	"github.com/erp/syncbridge/internal/interfaces/http/dto"
)

// ERPHandler serves the ERP read endpoints
type ERPHandler struct {
	BaseHandler
	queries *integrationapp.ERPQueryService
}

// NewERPHandler creates a new ERPHandler
func NewERPHandler(queries *integrationapp.ERPQueryService) *ERPHandler {
	return &ERPHandler{queries: queries}
}

// ListProducts godoc
// @ID           listERPProducts
// @Summary      List ERP products
// @Tags         odoo
// @Produce      json
// @Success      200 {object} APIResponse[[]dto.ERPProduct]
// @Failure      500 {object} ErrorResponse
// @Router       /odoo/products [get]
func (h *ERPHandler) ListProducts(c *gin.Context) {
	items, err := h.queries.ListProducts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewERPProducts(items))
}

// ListStockQuants godoc
// @ID           listERPStockQuants
// @Summary      List ERP stock quantities per location
// @Tags         odoo
// @Produce      json
// @Success      200 {object} APIResponse[[]dto.ERPStockQuant]
// @Router       /odoo/productStock [get]
func (h *ERPHandler) ListStockQuants(c *gin.Context) {
	quants, err := h.queries.ListStockQuants(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewERPStockQuants(quants))
}

// ListSuppliers godoc
// @ID           listERPSuppliers
// @Summary      List ERP suppliers
// @Tags         odoo
// @Produce      json
// @Success      200 {object} APIResponse[[]dto.ERPSupplier]
// @Router       /odoo/suppliers [get]
func (h *ERPHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.queries.ListSuppliers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewERPSuppliers(suppliers))
}

// ListSaleOrders godoc
// @ID           listERPOrders
// @Summary      List ERP sales orders
// @Tags         odoo
// @Produce      json
// @Success      200 {object} APIResponse[[]dto.ERPSaleOrder]
// @Router       /odoo/orders [get]
func (h *ERPHandler) ListSaleOrders(c *gin.Context) {
	orders, err := h.queries.ListSaleOrders(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewERPSaleOrders(orders))
}

// ListCategories godoc
// @ID           listERPCategories
// @Summary      List ERP product categories
// @Tags         odoo
// @Produce      json
// @Success      200 {object} APIResponse[[]dto.ERPCategory]
// @Router       /odoo/productCategories [get]
func (h *ERPHandler) ListCategories(c *gin.Context) {
	categories, err := h.queries.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewERPCategories(categories))
}
