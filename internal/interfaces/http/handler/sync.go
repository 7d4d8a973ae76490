package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	integrationapp "github.com/erp/syncbridge/internal/application/integration"
	"github.com/erp/syncbridge/internal/domain/integration"
	"github.com/erp/syncbridge/internal/domain/shared"
	"github.com/erp/syncbridge/internal/infrastructure/logger"
	"github.com/erp/syncbridge/internal/interfaces/http/dto"
)

// SyncHandler triggers catalog reconciliation in both directions
type SyncHandler struct {
	BaseHandler
	catalog *integrationapp.CatalogSyncService
	erp     *integrationapp.ERPSyncService
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(catalog *integrationapp.CatalogSyncService, erp *integrationapp.ERPSyncService) *SyncHandler {
	return &SyncHandler{catalog: catalog, erp: erp}
}

// SyncCatalog godoc
// @ID           syncCatalogToStorefront
// @Summary      Push the ERP catalog to the storefront
// @Description  Creates missing products and pushes stock for every ERP product.
// @Description  A POST body may restrict the pass to a list of references.
// @Tags         sync
// @Accept       json
// @Produce      json
// @Param        request body dto.BulkSyncRequest false "References to sync"
// @Success      200 {object} APIResponse[dto.BulkSyncResponse]
// @Failure      500 {object} ErrorResponse
// @Router       /prestashop/products/from-odoo/bulk [post]
func (h *SyncHandler) SyncCatalog(c *gin.Context) {
	var req dto.BulkSyncRequest
	if c.Request.Method == http.MethodPost && c.Request.Body != nil {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			h.HandleError(c, shared.Invalid("invalid request body: %v", err))
			return
		}
	}

	report, err := h.catalog.SyncCatalog(detached(c), req.References)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewBulkSyncResponse(report))
}

// detached keeps request-scoped values but drops the caller's cancellation,
// so a bulk pass that has started runs to completion after a disconnect.
func detached(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

// SyncProduct godoc
// @ID           syncProductToStorefront
// @Summary      Push one ERP product to the storefront
// @Tags         sync
// @Produce      json
// @Param        reference path string true "Product reference"
// @Success      200 {object} APIResponse[dto.SyncedProduct]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /prestashop/products/from-odoo/{reference} [get]
func (h *SyncHandler) SyncProduct(c *gin.Context) {
	outcome, err := h.catalog.SyncSKU(c.Request.Context(), c.Param("reference"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	switch {
	case outcome.Kind.IsSkipped():
		h.Skipped(c, outcome.Detail)
	case outcome.Kind.IsFailure():
		h.outcomeError(c, outcome)
	default:
		h.SuccessWithMessage(c, dto.SyncOutcomeMessage(outcome), dto.NewSyncedProduct(outcome))
	}
}

// outcomeError answers a failed single-product sync. The status follows the
// cause when one is known.
func (h *SyncHandler) outcomeError(c *gin.Context, outcome integration.SyncOutcome) {
	status := http.StatusBadGateway
	if outcome.Cause != nil {
		status = dto.ClassifyError(outcome.Cause).HTTPStatus
		if status == http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
	}
	logger.GetGinLogger(c).Warn("Product sync failed",
		zap.String("sku", outcome.SKU),
		zap.String("outcome", outcome.Kind.String()),
		zap.Error(outcome.Cause),
	)
	c.JSON(status, dto.NewErrorResponseWithDetail(strconv.Itoa(status), outcome.Detail, outcome.Kind.String()))
}

// SyncERP godoc
// @ID           syncStorefrontToERP
// @Summary      Write storefront price and stock drift back to the ERP
// @Tags         sync
// @Produce      json
// @Success      200 {object} APIResponse[dto.DriftReportResponse]
// @Failure      500 {object} ErrorResponse
// @Router       /prestashop/sync/prestashop-to-odoo [get]
func (h *SyncHandler) SyncERP(c *gin.Context) {
	report, err := h.erp.SyncAll(detached(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewDriftReportResponse(report))
}

// SyncERPReference godoc
// @ID           syncStorefrontReferenceToERP
// @Summary      Write one product's storefront drift back to the ERP
// @Tags         sync
// @Produce      json
// @Param        reference path string true "Product reference"
// @Success      200 {object} APIResponse[dto.DriftRow]
// @Failure      404 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /prestashop/sync/prestashop-to-odoo/{reference} [get]
func (h *SyncHandler) SyncERPReference(c *gin.Context) {
	entry, err := h.erp.SyncReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewDriftRow(*entry))
}
