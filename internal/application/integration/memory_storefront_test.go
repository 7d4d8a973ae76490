package integration

import (
	"context"
	"strconv"
	"sync"

	"github.com/erp/syncbridge/internal/domain/integration"
)

// memoryStorefront keeps products and stock between calls, the way the
// webservice does: creating a product also creates its stock row at zero.
type memoryStorefront struct {
	mu       sync.Mutex
	nextID   int
	products []integration.StorefrontProduct
	stock    map[string]*integration.StockRecord // product id -> row
	creates  int
	patches  int
}

func newMemoryStorefront() *memoryStorefront {
	return &memoryStorefront{nextID: 40, stock: map[string]*integration.StockRecord{}}
}

func (m *memoryStorefront) FindProductIDsByReference(ctx context.Context, sku string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := []string{}
	for _, p := range m.products {
		if p.Reference == sku {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

func (m *memoryStorefront) CreateProduct(ctx context.Context, draft integration.ProductDraft) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	m.nextID++
	id := strconv.Itoa(m.nextID)
	m.products = append(m.products, integration.StorefrontProduct{
		ID:        id,
		Reference: draft.SKU,
		Name:      integration.PlainText(draft.Name),
		Price:     draft.Price,
		Active:    true,
	})
	m.stock[id] = &integration.StockRecord{ID: "9" + id, ProductID: id}
	return nil
}

func (m *memoryStorefront) GetStockRecord(ctx context.Context, productID string) (*integration.StockRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.stock[productID]
	if !ok {
		return nil, nil
	}
	out := row.WithDefaults()
	return &out, nil
}

func (m *memoryStorefront) PatchStockQuantity(ctx context.Context, stockID string, quantity int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.stock {
		if row.ID == stockID {
			m.patches++
			row.Quantity = quantity
			return nil
		}
	}
	return integration.ErrProductNotFound
}

func (m *memoryStorefront) PutStockRecord(ctx context.Context, record integration.StockRecord) error {
	return m.PatchStockQuantity(ctx, record.ID, record.Quantity)
}

func (m *memoryStorefront) ListProducts(ctx context.Context) ([]integration.StorefrontProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]integration.StorefrontProduct(nil), m.products...), nil
}

func (m *memoryStorefront) GetProductByReference(ctx context.Context, reference string) (*integration.StorefrontProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.Reference == reference {
			out := p
			return &out, nil
		}
	}
	return nil, integration.ErrProductNotFound
}

func (m *memoryStorefront) GetProductRecord(ctx context.Context, reference string) (integration.Record, error) {
	p, err := m.GetProductByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	return integration.Record{"id": p.ID, "reference": p.Reference}, nil
}

func (m *memoryStorefront) DeactivateProduct(ctx context.Context, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == productID {
			m.products[i].Active = false
			return nil
		}
	}
	return integration.ErrProductNotFound
}

func (m *memoryStorefront) quantityOf(sku string) (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.Reference == sku {
			if row, ok := m.stock[p.ID]; ok {
				return row.Quantity, true
			}
		}
	}
	return 0, false
}
