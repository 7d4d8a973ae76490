package integration

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/erp/syncbridge/internal/domain/integration"
)

// MockStorefrontCatalog is a mock implementation of integration.StorefrontCatalog
type MockStorefrontCatalog struct {
	mock.Mock
}

func (m *MockStorefrontCatalog) FindProductIDsByReference(ctx context.Context, sku string) ([]string, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStorefrontCatalog) CreateProduct(ctx context.Context, draft integration.ProductDraft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockStorefrontCatalog) GetStockRecord(ctx context.Context, productID string) (*integration.StockRecord, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.StockRecord), args.Error(1)
}

func (m *MockStorefrontCatalog) PatchStockQuantity(ctx context.Context, stockID string, quantity int64) error {
	args := m.Called(ctx, stockID, quantity)
	return args.Error(0)
}

func (m *MockStorefrontCatalog) PutStockRecord(ctx context.Context, record integration.StockRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockStorefrontCatalog) ListProducts(ctx context.Context) ([]integration.StorefrontProduct, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.StorefrontProduct), args.Error(1)
}

func (m *MockStorefrontCatalog) GetProductByReference(ctx context.Context, reference string) (*integration.StorefrontProduct, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.StorefrontProduct), args.Error(1)
}

func (m *MockStorefrontCatalog) GetProductRecord(ctx context.Context, reference string) (integration.Record, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(integration.Record), args.Error(1)
}

func (m *MockStorefrontCatalog) DeactivateProduct(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// MockStorefrontSales is a mock implementation of integration.StorefrontSales
type MockStorefrontSales struct {
	mock.Mock
}

func (m *MockStorefrontSales) ListOrders(ctx context.Context) ([]integration.StorefrontOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.StorefrontOrder), args.Error(1)
}

func (m *MockStorefrontSales) GetOrderByReference(ctx context.Context, reference string) (*integration.StorefrontOrder, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.StorefrontOrder), args.Error(1)
}

func (m *MockStorefrontSales) ListCustomers(ctx context.Context) ([]integration.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.Record), args.Error(1)
}

func (m *MockStorefrontSales) ListPayments(ctx context.Context) ([]integration.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.Record), args.Error(1)
}

func (m *MockStorefrontSales) GetPayment(ctx context.Context, paymentID string) (integration.Record, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(integration.Record), args.Error(1)
}

// MockERPCatalog is a mock implementation of integration.ERPCatalog
type MockERPCatalog struct {
	mock.Mock
}

func (m *MockERPCatalog) ListProducts(ctx context.Context) ([]integration.CatalogItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.CatalogItem), args.Error(1)
}

func (m *MockERPCatalog) FindProductBySKU(ctx context.Context, sku string) (*integration.CatalogItem, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.CatalogItem), args.Error(1)
}

func (m *MockERPCatalog) WriteProduct(ctx context.Context, erpID int64, changes integration.ERPChangeset) error {
	args := m.Called(ctx, erpID, changes)
	return args.Error(0)
}

// MockERPDirectory is a mock implementation of integration.ERPDirectory
type MockERPDirectory struct {
	mock.Mock
}

func (m *MockERPDirectory) ListStockQuants(ctx context.Context) ([]integration.StockQuant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.StockQuant), args.Error(1)
}

func (m *MockERPDirectory) ListSuppliers(ctx context.Context) ([]integration.Supplier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.Supplier), args.Error(1)
}

func (m *MockERPDirectory) ListSaleOrders(ctx context.Context) ([]integration.SaleOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.SaleOrder), args.Error(1)
}

func (m *MockERPDirectory) ListCategories(ctx context.Context) ([]integration.ProductCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.ProductCategory), args.Error(1)
}

// unconfiguredStorefront reports itself as not configured
type unconfiguredStorefront struct {
	*MockStorefrontCatalog
}

func (unconfiguredStorefront) IsConfigured() bool { return false }

// unconfiguredERP reports itself as not configured
type unconfiguredERP struct {
	*MockERPCatalog
}

func (unconfiguredERP) IsConfigured() bool { return false }
