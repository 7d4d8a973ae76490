package integration

import (
	"context"
	"strings"

	"github.com/erp/syncbridge/internal/domain/integration"
)

// ---------------------------------------------------------------------------
// Storefront reads
// ---------------------------------------------------------------------------

// StorefrontQueryService serves read-only storefront lookups.
// Empty collections are reported as not found.
type StorefrontQueryService struct {
	catalog integration.StorefrontCatalog
	sales   integration.StorefrontSales
}

// NewStorefrontQueryService creates a new StorefrontQueryService
func NewStorefrontQueryService(catalog integration.StorefrontCatalog, sales integration.StorefrontSales) *StorefrontQueryService {
	return &StorefrontQueryService{catalog: catalog, sales: sales}
}

// ListProducts returns every storefront product
func (s *StorefrontQueryService) ListProducts(ctx context.Context) ([]integration.StorefrontProduct, error) {
	if err := integration.RequireConfigured(integration.SystemStorefront, s.catalog); err != nil {
		return nil, err
	}
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, integration.ErrProductNotFound
	}
	return products, nil
}

// GetProduct returns the storefront product with the given reference as sent by the storefront
func (s *StorefrontQueryService) GetProduct(ctx context.Context, reference string) (integration.Record, error) {
	if err := integration.RequireConfigured(integration.SystemStorefront, s.catalog); err != nil {
		return nil, err
	}
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, integration.ErrInvalidSKU
	}
	return s.catalog.GetProductRecord(ctx, reference)
}

// ListOrders returns every storefront order
func (s *StorefrontQueryService) ListOrders(ctx context.Context) ([]integration.StorefrontOrder, error) {
	if err := integration.RequireConfigured(integration.SystemStorefront, s.sales); err != nil {
		return nil, err
	}
	orders, err := s.sales.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, integration.ErrOrderNotFound
	}
	return orders, nil
}

// GetOrder returns the storefront order with the given reference
func (s *StorefrontQueryService) GetOrder(ctx context.Context, reference string) (*integration.StorefrontOrder, error) {
	if err := integration.RequireConfigured(integration.SystemStorefront, s.sales); err != nil {
		return nil, err
	}
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, integration.ErrOrderNotFound
	}
	return s.sales.GetOrderByReference(ctx, reference)
}

// ListCustomers returns every storefront customer
func (s *StorefrontQueryService) ListCustomers(ctx context.Context) ([]integration.Record, error) {
	if err := integration.RequireConfigured(integration.SystemStorefront, s.sales); err != nil {
		return nil, err
	}
	customers, err := s.sales.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, integration.ErrCustomerNotFound
	}
	return customers, nil
}

// ListPayments returns every order payment. An empty list is a valid answer.
func (s *StorefrontQueryService) ListPayments(ctx context.Context) ([]integration.Record, error) {
	if err := integration.RequireConfigured(integration.SystemStorefront, s.sales); err != nil {
		return nil, err
	}
	return s.sales.ListPayments(ctx)
}

// GetPayment returns one order payment
func (s *StorefrontQueryService) GetPayment(ctx context.Context, paymentID string) (integration.Record, error) {
	if err := integration.RequireConfigured(integration.SystemStorefront, s.sales); err != nil {
		return nil, err
	}
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, integration.ErrPaymentNotFound
	}
	return s.sales.GetPayment(ctx, paymentID)
}

// ---------------------------------------------------------------------------
// ERP reads
// ---------------------------------------------------------------------------

// ERPQueryService serves read-only ERP lookups
type ERPQueryService struct {
	catalog   integration.ERPCatalog
	directory integration.ERPDirectory
}

// NewERPQueryService creates a new ERPQueryService
func NewERPQueryService(catalog integration.ERPCatalog, directory integration.ERPDirectory) *ERPQueryService {
	return &ERPQueryService{catalog: catalog, directory: directory}
}

// ListProducts returns every ERP product
func (s *ERPQueryService) ListProducts(ctx context.Context) ([]integration.CatalogItem, error) {
	if err := integration.RequireConfigured(integration.SystemERP, s.catalog); err != nil {
		return nil, err
	}
	return s.catalog.ListProducts(ctx)
}

// ListStockQuants returns ERP stock quantities per location
func (s *ERPQueryService) ListStockQuants(ctx context.Context) ([]integration.StockQuant, error) {
	if err := integration.RequireConfigured(integration.SystemERP, s.directory); err != nil {
		return nil, err
	}
	return s.directory.ListStockQuants(ctx)
}

// ListSuppliers returns ERP partners ranked as suppliers
func (s *ERPQueryService) ListSuppliers(ctx context.Context) ([]integration.Supplier, error) {
	if err := integration.RequireConfigured(integration.SystemERP, s.directory); err != nil {
		return nil, err
	}
	return s.directory.ListSuppliers(ctx)
}

// ListSaleOrders returns ERP sales orders
func (s *ERPQueryService) ListSaleOrders(ctx context.Context) ([]integration.SaleOrder, error) {
	if err := integration.RequireConfigured(integration.SystemERP, s.directory); err != nil {
		return nil, err
	}
	return s.directory.ListSaleOrders(ctx)
}

// ListCategories returns ERP product categories
func (s *ERPQueryService) ListCategories(ctx context.Context) ([]integration.ProductCategory, error) {
	if err := integration.RequireConfigured(integration.SystemERP, s.directory); err != nil {
		return nil, err
	}
	return s.directory.ListCategories(ctx)
}
