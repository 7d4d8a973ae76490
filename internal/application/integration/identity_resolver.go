package integration

import (
	"context"

	"go.uber.org/zap"

	"github.com/erp/syncbridge/internal/domain/integration"
)

// IdentityResolver maps an ERP SKU to the storefront product carrying it as reference
type IdentityResolver struct {
	storefront integration.StorefrontCatalog
	logger     *zap.Logger
}

// NewIdentityResolver creates a new IdentityResolver
func NewIdentityResolver(storefront integration.StorefrontCatalog, logger *zap.Logger) *IdentityResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityResolver{
		storefront: storefront,
		logger:     logger,
	}
}

// Resolve returns the storefront product for sku, or nil when the storefront has none.
// When several products share the reference the first one wins.
func (r *IdentityResolver) Resolve(ctx context.Context, sku string) (*integration.StorefrontProductRef, error) {
	if sku == "" {
		return nil, integration.ErrInvalidSKU
	}

	ids, err := r.storefront.FindProductIDsByReference(ctx, sku)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > 1 {
		r.logger.Warn("Ambiguous storefront reference, using first match",
			zap.String("sku", sku),
			zap.Strings("product_ids", ids))
	}
	return &integration.StorefrontProductRef{InternalID: ids[0], SKU: sku}, nil
}
