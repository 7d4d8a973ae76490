package prestashop

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/erp/syncbridge/internal/domain/integration"
)

// Defaults applied to products created from the ERP
const (
	defaultShopID     = "1"
	defaultCategoryID = "2"
	defaultLanguageID = "1"
)

// nonWritableProductFields are returned by GET but rejected by PUT
var nonWritableProductFields = []string{
	"manufacturer_name",
	"quantity",
	"position_in_category",
	"id_default_image",
	"id_default_combination",
}

// ---------------------------------------------------------------------------
// Identity
// ---------------------------------------------------------------------------

// FindProductIDsByReference returns the ids of products whose reference equals sku
func (c *Client) FindProductIDsByReference(ctx context.Context, sku string) ([]string, error) {
	filter, err := filterValue(sku)
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("filter[reference]", filter)
	query.Set("display", "[id]")

	doc, err := c.getXML(ctx, "/api/products", query)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, 1)
	for _, product := range doc.Find(resourceProducts).ChildrenNamed(resourceProduct) {
		if id := product.Text("id"); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

// CreateProduct creates an active product visible everywhere in the default category
func (c *Client) CreateProduct(ctx context.Context, draft integration.ProductDraft) error {
	product := NewElement(resourceProduct,
		NewLeaf("id_shop_default", defaultShopID),
		NewLeaf("id_category_default", defaultCategoryID),
		NewElement("associations",
			NewElement("categories",
				NewElement("category", NewLeaf("id", defaultCategoryID)),
			),
		),
		NewLeaf("reference", draft.SKU),
		NewLeaf("price", draft.Price.String()),
		NewLeaf("active", "1"),
		NewLeaf("visibility", "both"),
		NewLeaf("available_for_order", "1"),
		NewLeaf("show_price", "1"),
		NewLeaf("indexed", "1"),
		NewLeaf("state", "1"),
		NewElement("name", NewLeaf("language", draft.Name).WithAttr("id", defaultLanguageID)),
		NewElement("link_rewrite", NewLeaf("language", draft.LinkRewrite()).WithAttr("id", defaultLanguageID)),
	)

	if err := c.sendXML(ctx, http.MethodPost, "/api/products", document(product)); err != nil {
		return err
	}
	c.logger.Info("prestashop product created", zap.String("sku", draft.SKU))
	return nil
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// ListProducts returns every storefront product
func (c *Client) ListProducts(ctx context.Context) ([]integration.StorefrontProduct, error) {
	data, err := c.getJSON(ctx, "/api/products", nil)
	if err != nil {
		return nil, err
	}
	payload, err := DecodeList[productRow](data, resourceProducts)
	if err != nil {
		return nil, err
	}

	products := make([]integration.StorefrontProduct, 0, len(payload.Items))
	for _, row := range payload.Items {
		products = append(products, row.toDomain())
	}
	return products, nil
}

// GetProductByReference returns the first product with the given reference
func (c *Client) GetProductByReference(ctx context.Context, reference string) (*integration.StorefrontProduct, error) {
	query, err := referenceQuery(reference)
	if err != nil {
		return nil, err
	}
	data, err := c.getJSON(ctx, "/api/products", query)
	if err != nil {
		return nil, err
	}
	payload, err := DecodeList[productRow](data, resourceProducts)
	if err != nil {
		return nil, err
	}
	row, ok := payload.First()
	if !ok {
		return nil, integration.ErrProductNotFound
	}
	product := row.toDomain()
	return &product, nil
}

// GetProductRecord returns the first product with the given reference as sent by the storefront
func (c *Client) GetProductRecord(ctx context.Context, reference string) (integration.Record, error) {
	query, err := referenceQuery(reference)
	if err != nil {
		return nil, err
	}
	data, err := c.getJSON(ctx, "/api/products", query)
	if err != nil {
		return nil, err
	}
	payload, err := DecodeList[integration.Record](data, resourceProducts)
	if err != nil {
		return nil, err
	}
	record, ok := payload.First()
	if !ok {
		return nil, integration.ErrProductNotFound
	}
	return record, nil
}

// ---------------------------------------------------------------------------
// Deactivate
// ---------------------------------------------------------------------------

// DeactivateProduct reads the full product, sets active to 0 and writes it back
func (c *Client) DeactivateProduct(ctx context.Context, productID string) error {
	path := "/api/products/" + url.PathEscape(productID)

	doc, err := c.getXML(ctx, path, nil)
	if err != nil {
		return err
	}

	product := doc.Find(resourceProduct)
	active := product.Find("active")
	if active == nil {
		return fmt.Errorf("%w: product %s has no active field", integration.ErrPlatformInvalidResponse, productID)
	}
	active.SetText("0")
	product.Remove(nonWritableProductFields...)

	if err := c.sendXML(ctx, http.MethodPut, path, doc); err != nil {
		return err
	}
	c.logger.Info("prestashop product deactivated", zap.String("product_id", productID))
	return nil
}

func referenceQuery(reference string) (url.Values, error) {
	filter, err := filterValue(reference)
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("filter[reference]", filter)
	query.Set("limit", "1")
	return query, nil
}
