package integration

import (
	"context"
	"time"
)

// ---------------------------------------------------------------------------
// Storefront ports
// ---------------------------------------------------------------------------

// StorefrontCatalog is the port used by the reconciliation engine to read and
// write storefront products and their stock records.
type StorefrontCatalog interface {
	// FindProductIDsByReference returns the ids of products whose reference equals sku,
	// in storefront order. An empty slice means no match.
	FindProductIDsByReference(ctx context.Context, sku string) ([]string, error)

	// CreateProduct creates a new active product from the draft
	CreateProduct(ctx context.Context, draft ProductDraft) error

	// GetStockRecord returns the stock record for a product, or nil when none exists
	GetStockRecord(ctx context.Context, productID string) (*StockRecord, error)

	// PatchStockQuantity updates only the quantity of a stock record
	PatchStockQuantity(ctx context.Context, stockID string, quantity int64) error

	// PutStockRecord replaces a stock record
	PutStockRecord(ctx context.Context, record StockRecord) error

	// ListProducts returns every storefront product
	ListProducts(ctx context.Context) ([]StorefrontProduct, error)

	// GetProductByReference returns the first product with the given reference.
	// Returns ErrProductNotFound when none matches.
	GetProductByReference(ctx context.Context, reference string) (*StorefrontProduct, error)

	// GetProductRecord returns the first product with the given reference as the
	// storefront sent it. Returns ErrProductNotFound when none matches.
	GetProductRecord(ctx context.Context, reference string) (Record, error)

	// DeactivateProduct marks a product inactive
	DeactivateProduct(ctx context.Context, productID string) error
}

// StorefrontSales is the port for storefront order, customer and payment reads
type StorefrontSales interface {
	ListOrders(ctx context.Context) ([]StorefrontOrder, error)
	GetOrderByReference(ctx context.Context, reference string) (*StorefrontOrder, error)
	ListCustomers(ctx context.Context) ([]Record, error)
	ListPayments(ctx context.Context) ([]Record, error)
	GetPayment(ctx context.Context, paymentID string) (Record, error)
}

// ---------------------------------------------------------------------------
// ERP ports
// ---------------------------------------------------------------------------

// ERPCatalog is the port used by the reconciliation engine to read ERP products
// and write back storefront drift.
type ERPCatalog interface {
	// ListProducts returns every ERP product with SKU, price and on-hand quantity
	ListProducts(ctx context.Context) ([]CatalogItem, error)

	// FindProductBySKU returns the first ERP product whose internal reference equals sku.
	// Returns ErrProductNotFound when none matches.
	FindProductBySKU(ctx context.Context, sku string) (*CatalogItem, error)

	// WriteProduct writes the changeset to the ERP product
	WriteProduct(ctx context.Context, erpID int64, changes ERPChangeset) error
}

// ERPDirectory is the port for the ERP pass-through reads
type ERPDirectory interface {
	ListStockQuants(ctx context.Context) ([]StockQuant, error)
	ListSuppliers(ctx context.Context) ([]Supplier, error)
	ListSaleOrders(ctx context.Context) ([]SaleOrder, error)
	ListCategories(ctx context.Context) ([]ProductCategory, error)
}

// ---------------------------------------------------------------------------
// Upstream request deadlines
// ---------------------------------------------------------------------------

type upstreamTimeoutKey struct{}

// WithUpstreamTimeout overrides the per-request timeout adapters apply to
// upstream calls made with the returned context.
func WithUpstreamTimeout(ctx context.Context, timeout time.Duration) context.Context {
	return context.WithValue(ctx, upstreamTimeoutKey{}, timeout)
}

// UpstreamTimeout returns the per-request timeout carried by ctx, if any
func UpstreamTimeout(ctx context.Context) (time.Duration, bool) {
	timeout, ok := ctx.Value(upstreamTimeoutKey{}).(time.Duration)
	return timeout, ok && timeout > 0
}
