package handler

import (
	"github.com/gin-gonic/gin"

	integrationapp "github.com/erp/syncbridge/internal/application/integration"
	"github.com/erp/syncbridge/internal/interfaces/http/dto"
)

// StorefrontHandler serves the storefront read endpoints and product deactivation
type StorefrontHandler struct {
	BaseHandler
	queries  *integrationapp.StorefrontQueryService
	statuses *integrationapp.ProductStatusService
	labels   dto.Labels
}

// NewStorefrontHandler creates a new StorefrontHandler. locale selects the
// default language of display labels.
func NewStorefrontHandler(queries *integrationapp.StorefrontQueryService, statuses *integrationapp.ProductStatusService, locale string) *StorefrontHandler {
	return &StorefrontHandler{
		queries:  queries,
		statuses: statuses,
		labels:   dto.LabelsFor(locale),
	}
}

func (h *StorefrontHandler) labelsFor(c *gin.Context) dto.Labels {
	return dto.LabelsForRequest(c.GetHeader("Accept-Language"), h.labels)
}

// ListProducts godoc
// @ID           listStorefrontProducts
// @Summary      List storefront products
// @Tags         prestashop
// @Produce      json
// @Success      200 {object} APIResponse[[]dto.ProductRow]
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /prestashop/product [get]
func (h *StorefrontHandler) ListProducts(c *gin.Context) {
	products, err := h.queries.ListProducts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewProductRows(products, h.labelsFor(c)))
}

// GetProduct godoc
// @ID           getStorefrontProduct
// @Summary      Get a storefront product by reference
// @Tags         prestashop
// @Produce      json
// @Param        sku path string true "Product reference"
// @Success      200 {object} APIResponse[map[string]any]
// @Failure      404 {object} ErrorResponse
// @Router       /prestashop/product/{sku} [get]
func (h *StorefrontHandler) GetProduct(c *gin.Context) {
	record, err := h.queries.GetProduct(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// DeactivateProduct godoc
// @ID           deactivateStorefrontProduct
// @Summary      Deactivate a storefront product
// @Description  Marks the product inactive without deleting it
// @Tags         prestashop
// @Produce      json
// @Param        sku path string true "Product reference"
// @Success      200 {object} APIResponse[dto.DeactivatedProduct]
// @Failure      404 {object} ErrorResponse
// @Router       /prestashop/product/{sku}/deactivate [post]
func (h *StorefrontHandler) DeactivateProduct(c *gin.Context) {
	product, err := h.statuses.Deactivate(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "product deactivated", dto.NewDeactivatedProduct(*product, h.labelsFor(c)))
}

// ListOrders godoc
// @ID           listStorefrontOrders
// @Summary      List storefront orders
// @Tags         prestashop
// @Produce      json
// @Success      200 {object} APIResponse[[]dto.OrderRow]
// @Failure      404 {object} ErrorResponse
// @Router       /prestashop/orders [get]
func (h *StorefrontHandler) ListOrders(c *gin.Context) {
	orders, err := h.queries.ListOrders(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewOrderRows(orders))
}

// GetOrder godoc
// @ID           getStorefrontOrder
// @Summary      Get a storefront order by reference
// @Tags         prestashop
// @Produce      json
// @Param        reference path string true "Order reference"
// @Success      200 {object} APIResponse[dto.OrderRow]
// @Failure      404 {object} ErrorResponse
// @Router       /prestashop/order/{reference} [get]
func (h *StorefrontHandler) GetOrder(c *gin.Context) {
	order, err := h.queries.GetOrder(c.Request.Context(), c.Param("reference"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewOrderRow(*order))
}

// ListCustomers godoc
// @ID           listStorefrontCustomers
// @Summary      List storefront customers
// @Tags         prestashop
// @Produce      json
// @Success      200 {object} APIResponse[[]map[string]any]
// @Failure      404 {object} ErrorResponse
// @Router       /prestashop/customers [get]
func (h *StorefrontHandler) ListCustomers(c *gin.Context) {
	customers, err := h.queries.ListCustomers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customers)
}

// ListPayments godoc
// @ID           listStorefrontPayments
// @Summary      List storefront order payments
// @Tags         prestashop
// @Produce      json
// @Success      200 {object} APIResponse[[]map[string]any]
// @Router       /prestashop/payments [get]
func (h *StorefrontHandler) ListPayments(c *gin.Context) {
	payments, err := h.queries.ListPayments(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// GetPayment godoc
// @ID           getStorefrontPayment
// @Summary      Get a storefront order payment
// @Tags         prestashop
// @Produce      json
// @Param        id path string true "Payment ID"
// @Success      200 {object} APIResponse[map[string]any]
// @Failure      404 {object} ErrorResponse
// @Router       /prestashop/payments/{id} [get]
func (h *StorefrontHandler) GetPayment(c *gin.Context) {
	payment, err := h.queries.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}
