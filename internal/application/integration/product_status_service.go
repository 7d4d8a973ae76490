package integration

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/erp/syncbridge/internal/domain/integration"
)

// ProductStatusService hides storefront products without deleting them
type ProductStatusService struct {
	storefront integration.StorefrontCatalog
	logger     *zap.Logger
}

// NewProductStatusService creates a new ProductStatusService
func NewProductStatusService(storefront integration.StorefrontCatalog, log *zap.Logger) *ProductStatusService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductStatusService{storefront: storefront, logger: log}
}

// Deactivate marks the product with the given reference inactive and returns it
// as it looks after the change.
func (s *ProductStatusService) Deactivate(ctx context.Context, reference string) (*integration.StorefrontProduct, error) {
	if err := integration.RequireConfigured(integration.SystemStorefront, s.storefront); err != nil {
		return nil, err
	}
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, integration.ErrInvalidSKU
	}

	product, err := s.storefront.GetProductByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(product.ID) == "" {
		return nil, integration.ErrPlatformInvalidResponse
	}

	if err := s.storefront.DeactivateProduct(ctx, product.ID); err != nil {
		s.logger.Warn("Product deactivation failed",
			zap.String("reference", reference),
			zap.String("product_id", product.ID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product deactivated",
		zap.String("reference", reference),
		zap.String("product_id", product.ID))

	deactivated := *product
	deactivated.Active = false
	return &deactivated, nil
}
