package prestashop

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erp/syncbridge/internal/domain/integration"
)

// GetStockRecord returns the first stock record of a product, or nil when the
// storefront has none.
func (c *Client) GetStockRecord(ctx context.Context, productID string) (*integration.StockRecord, error) {
	filter, err := filterValue(productID)
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("filter[id_product]", filter)
	query.Set("display", "full")

	doc, err := c.getXML(ctx, "/api/stock_availables", query)
	if err != nil {
		return nil, err
	}

	node := doc.Find(resourceStockAvailables, resourceStockAvailable)
	if node == nil {
		return nil, nil
	}

	quantity, ok := parseQuantity(node.Text("quantity"))
	record := integration.StockRecord{
		ID:                 node.Text("id"),
		ProductID:          node.Text("id_product"),
		ProductAttributeID: node.Text("id_product_attribute"),
		ShopID:             node.Text("id_shop"),
		ShopGroupID:        node.Text("id_shop_group"),
		Quantity:           quantity,
		DependsOnStock:     node.Text("depends_on_stock"),
		OutOfStock:         node.Text("out_of_stock"),
		QuantityInvalid:    !ok,
	}.WithDefaults()
	return &record, nil
}

// PatchStockQuantity updates only the quantity of a stock record
func (c *Client) PatchStockQuantity(ctx context.Context, stockID string, quantity int64) error {
	stock := NewElement(resourceStockAvailable,
		NewLeaf("id", stockID),
		NewLeaf("quantity", strconv.FormatInt(quantity, 10)),
	)
	return c.sendXML(ctx, http.MethodPatch, stockPath(stockID), document(stock))
}

// PutStockRecord replaces a stock record with every field populated
func (c *Client) PutStockRecord(ctx context.Context, record integration.StockRecord) error {
	record = record.WithDefaults()
	stock := NewElement(resourceStockAvailable,
		NewLeaf("id", record.ID),
		NewLeaf("id_product", record.ProductID),
		NewLeaf("id_product_attribute", record.ProductAttributeID),
		NewLeaf("id_shop", record.ShopID),
		NewLeaf("id_shop_group", record.ShopGroupID),
		NewLeaf("quantity", strconv.FormatInt(record.Quantity, 10)),
		NewLeaf("depends_on_stock", record.DependsOnStock),
		NewLeaf("out_of_stock", record.OutOfStock),
	)
	return c.sendXML(ctx, http.MethodPut, stockPath(record.ID), document(stock))
}

func stockPath(stockID string) string {
	return "/api/stock_availables/" + url.PathEscape(stockID)
}

// parseQuantity reads a stock quantity, truncating any fractional part.
// ok is false for an empty or non-numeric value.
func parseQuantity(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return d.IntPart(), true
}
