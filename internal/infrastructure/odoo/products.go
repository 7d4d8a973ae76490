package odoo

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/erp/syncbridge/internal/domain/integration"
)

const modelProduct = "product.product"

var productFields = []string{"id", "name", "default_code", "list_price", "qty_available"}

// ListProducts returns every ERP product with SKU, price and on-hand quantity
func (c *Client) ListProducts(ctx context.Context) ([]integration.CatalogItem, error) {
	rows, err := c.searchRead(ctx, modelProduct, nil, productFields)
	if err != nil {
		return nil, err
	}

	items := make([]integration.CatalogItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, toCatalogItem(row))
	}
	return items, nil
}

// FindProductBySKU returns the first product whose internal reference equals sku
func (c *Client) FindProductBySKU(ctx context.Context, sku string) (*integration.CatalogItem, error) {
	domain := []interface{}{condition("default_code", "=", sku)}
	rows, err := c.searchRead(ctx, modelProduct, domain, productFields)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, integration.ErrProductNotFound
	}
	item := toCatalogItem(rows[0])
	return &item, nil
}

// WriteProduct writes the changeset to product.product
func (c *Client) WriteProduct(ctx context.Context, erpID int64, changes integration.ERPChangeset) error {
	if changes.IsEmpty() {
		return nil
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	s, err := c.connect(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	values := make(map[string]interface{}, 2)
	for field, value := range changes.Fields() {
		values[field] = value.InexactFloat64()
	}

	var ok interface{}
	args := []interface{}{[]interface{}{erpID}, values}
	if err := s.executeKw(ctx, modelProduct, "write", args, nil, &ok); err != nil {
		return fmt.Errorf("%w: product %d: %v", integration.ErrERPWriteFailed, erpID, err)
	}
	if written, isBool := ok.(bool); isBool && !written {
		return fmt.Errorf("%w: product %d: write returned false", integration.ErrERPWriteFailed, erpID)
	}

	c.logger.Info("odoo product written",
		zap.Int64("erp_id", erpID),
		zap.Any("fields", values),
	)
	return nil
}

func toCatalogItem(row map[string]interface{}) integration.CatalogItem {
	return integration.CatalogItem{
		ERPID:    rowID(row),
		SKU:      asString(row["default_code"]),
		Name:     asString(row["name"]),
		Price:    asDecimal(row["list_price"]),
		Quantity: asDecimal(row["qty_available"]),
	}
}
