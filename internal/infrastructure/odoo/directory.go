package odoo

import (
	"context"

	"github.com/erp/syncbridge/internal/domain/integration"
)

// ListStockQuants returns stock.quant rows
func (c *Client) ListStockQuants(ctx context.Context) ([]integration.StockQuant, error) {
	rows, err := c.searchRead(ctx, "stock.quant", nil, []string{"id", "product_id", "location_id", "quantity"})
	if err != nil {
		return nil, err
	}

	quants := make([]integration.StockQuant, 0, len(rows))
	for _, row := range rows {
		quants = append(quants, integration.StockQuant{
			ID:       rowID(row),
			Product:  asMany2One(row["product_id"]),
			Location: asMany2One(row["location_id"]),
			Quantity: asDecimal(row["quantity"]),
		})
	}
	return quants, nil
}

// ListSuppliers returns partners with a positive supplier rank
func (c *Client) ListSuppliers(ctx context.Context) ([]integration.Supplier, error) {
	domain := []interface{}{condition("supplier_rank", ">", 0)}
	fields := []string{"id", "name", "active", "contact_address", "email", "is_company", "display_name"}
	rows, err := c.searchRead(ctx, "res.partner", domain, fields)
	if err != nil {
		return nil, err
	}

	suppliers := make([]integration.Supplier, 0, len(rows))
	for _, row := range rows {
		suppliers = append(suppliers, integration.Supplier{
			ID:             rowID(row),
			Name:           asString(row["name"]),
			DisplayName:    asString(row["display_name"]),
			Email:          asString(row["email"]),
			ContactAddress: asString(row["contact_address"]),
			Active:         asBool(row["active"]),
			IsCompany:      asBool(row["is_company"]),
		})
	}
	return suppliers, nil
}

// ListSaleOrders returns sale.order headers
func (c *Client) ListSaleOrders(ctx context.Context) ([]integration.SaleOrder, error) {
	fields := []string{"id", "name", "date_order", "state", "amount_total", "partner_id"}
	rows, err := c.searchRead(ctx, "sale.order", nil, fields)
	if err != nil {
		return nil, err
	}

	orders := make([]integration.SaleOrder, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, integration.SaleOrder{
			ID:          rowID(row),
			Name:        asString(row["name"]),
			DateOrder:   asString(row["date_order"]),
			State:       asString(row["state"]),
			AmountTotal: asDecimal(row["amount_total"]),
			Partner:     asMany2One(row["partner_id"]),
		})
	}
	return orders, nil
}

// ListCategories returns product.category rows
func (c *Client) ListCategories(ctx context.Context) ([]integration.ProductCategory, error) {
	rows, err := c.searchRead(ctx, "product.category", nil, []string{"id", "name", "display_name"})
	if err != nil {
		return nil, err
	}

	categories := make([]integration.ProductCategory, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, integration.ProductCategory{
			ID:          rowID(row),
			Name:        asString(row["name"]),
			DisplayName: asString(row["display_name"]),
		})
	}
	return categories, nil
}
