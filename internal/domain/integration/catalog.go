package integration

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// CatalogItem is an ERP product as seen by the sync engine
// ---------------------------------------------------------------------------

// CatalogItem is a sellable ERP product. It is read fresh on every pass and never persisted.
type CatalogItem struct {
	ERPID    int64
	SKU      string
	Name     string
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// NormalizedSKU returns the SKU without surrounding whitespace
func (c CatalogItem) NormalizedSKU() string {
	return strings.TrimSpace(c.SKU)
}

// HasSKU returns true if the item carries a usable SKU
func (c CatalogItem) HasSKU() bool {
	return c.NormalizedSKU() != ""
}

// IsZeroPriceAndStock returns true when both price and quantity are zero.
// Such items are never created in the storefront.
func (c CatalogItem) IsZeroPriceAndStock() bool {
	return c.Price.IsZero() && c.Quantity.IsZero()
}

// Validate checks the item invariants
func (c CatalogItem) Validate() error {
	if !c.HasSKU() {
		return ErrInvalidSKU
	}
	if c.Price.IsNegative() || c.Quantity.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// StockUnits returns the quantity as whole storefront units, truncated toward zero
func (c CatalogItem) StockUnits() int64 {
	return c.Quantity.IntPart()
}

// ---------------------------------------------------------------------------
// Storefront product model
// ---------------------------------------------------------------------------

// StorefrontProductRef links a SKU to the storefront's internal product id
type StorefrontProductRef struct {
	InternalID string
	SKU        string
}

// LocalizedValue is one language variant of a storefront text field
type LocalizedValue struct {
	LanguageID string
	Value      string
}

// LocalizedText is a storefront text field that may carry several languages
type LocalizedText []LocalizedValue

// PlainText builds a single-valued LocalizedText
func PlainText(value string) LocalizedText {
	return LocalizedText{{Value: value}}
}

// First returns the first localized value, or "" when empty
func (t LocalizedText) First() string {
	if len(t) == 0 {
		return ""
	}
	return t[0].Value
}

// StorefrontProduct is a storefront catalog row
type StorefrontProduct struct {
	ID        string
	Reference string
	Name      LocalizedText
	Price     decimal.Decimal
	Quantity  decimal.Decimal
	Active    bool
	// PriceInvalid is set when the storefront sent an empty or non-numeric
	// price; Price is zero and must not be compared.
	PriceInvalid bool
}

// DisplayName returns the name shown to users
func (p StorefrontProduct) DisplayName() string {
	return p.Name.First()
}

// ProductDraft carries the fields populated when creating a storefront product
type ProductDraft struct {
	SKU   string
	Name  string
	Price decimal.Decimal
}

// DraftFromCatalogItem builds the creation payload for an ERP item
func DraftFromCatalogItem(item CatalogItem) ProductDraft {
	return ProductDraft{
		SKU:   item.NormalizedSKU(),
		Name:  item.Name,
		Price: item.Price,
	}
}

// LinkRewrite returns the URL slug used for new products
func (d ProductDraft) LinkRewrite() string {
	return strings.ToLower(d.SKU)
}

// ---------------------------------------------------------------------------
// StockRecord is the storefront inventory row for a product
// ---------------------------------------------------------------------------

// Stock record defaults applied when the storefront omits a field
const (
	DefaultProductAttributeID = "0"
	DefaultShopID             = "1"
	DefaultShopGroupID        = "0"
	DefaultDependsOnStock     = "0"
	DefaultOutOfStock         = "2"
)

// StockRecord is the storefront inventory row. It is created by the storefront;
// this system only reads and updates it.
type StockRecord struct {
	ID                 string
	ProductID          string
	ProductAttributeID string
	ShopID             string
	ShopGroupID        string
	Quantity           int64
	DependsOnStock     string
	OutOfStock         string
	// QuantityInvalid marks an empty or non-numeric quantity
	QuantityInvalid bool
}

// WithDefaults fills empty fields with storefront defaults
func (r StockRecord) WithDefaults() StockRecord {
	if r.ProductAttributeID == "" {
		r.ProductAttributeID = DefaultProductAttributeID
	}
	if r.ShopID == "" {
		r.ShopID = DefaultShopID
	}
	if r.ShopGroupID == "" {
		r.ShopGroupID = DefaultShopGroupID
	}
	if r.DependsOnStock == "" {
		r.DependsOnStock = DefaultDependsOnStock
	}
	if r.OutOfStock == "" {
		r.OutOfStock = DefaultOutOfStock
	}
	return r
}

// WithQuantity returns a copy of the record with the quantity replaced
func (r StockRecord) WithQuantity(quantity int64) StockRecord {
	r.Quantity = quantity
	r.QuantityInvalid = false
	return r
}

// ---------------------------------------------------------------------------
// Storefront sales model
// ---------------------------------------------------------------------------

// StorefrontOrder is a storefront order header
type StorefrontOrder struct {
	ID           string
	Reference    string
	TotalPaid    decimal.Decimal
	DateAdd      string
	CustomerID   string
	CurrentState string
}

// Record is an upstream resource passed through without a typed model
type Record map[string]any

// ---------------------------------------------------------------------------
// ERP read model
// ---------------------------------------------------------------------------

// Many2One is an ERP relational reference rendered as id and display name
type Many2One struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StockQuant is an ERP stock quantity at a location
type StockQuant struct {
	ID       int64
	Product  *Many2One
	Location *Many2One
	Quantity decimal.Decimal
}

// Supplier is an ERP partner with a positive supplier rank
type Supplier struct {
	ID             int64
	Name           string
	DisplayName    string
	Email          string
	ContactAddress string
	Active         bool
	IsCompany      bool
}

// SaleOrder is an ERP sales order header
type SaleOrder struct {
	ID          int64
	Name        string
	DateOrder   string
	State       string
	AmountTotal decimal.Decimal
	Partner     *Many2One
}

// ProductCategory is an ERP product category
type ProductCategory struct {
	ID          int64
	Name        string
	DisplayName string
}
