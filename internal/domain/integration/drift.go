package integration

import (
	"github.com/shopspring/decimal"
)

// ERP field names written back by the storefront to ERP pass
const (
	ERPFieldListPrice    = "list_price"
	ERPFieldQtyAvailable = "qty_available"
)

// ERPChangeset holds only the ERP product fields whose storefront value differs
type ERPChangeset struct {
	ListPrice    *decimal.Decimal
	QtyAvailable *decimal.Decimal
}

// IsEmpty returns true when nothing differs
func (c ERPChangeset) IsEmpty() bool {
	return c.ListPrice == nil && c.QtyAvailable == nil
}

// Fields returns the changeset keyed by ERP field name
func (c ERPChangeset) Fields() map[string]decimal.Decimal {
	fields := make(map[string]decimal.Decimal, 2)
	if c.ListPrice != nil {
		fields[ERPFieldListPrice] = *c.ListPrice
	}
	if c.QtyAvailable != nil {
		fields[ERPFieldQtyAvailable] = *c.QtyAvailable
	}
	return fields
}

// ComputeChangeset compares an ERP item with its storefront counterpart.
// Values are compared for exact decimal equality. The quantity is only compared
// when the storefront quantity is known.
func ComputeChangeset(erp CatalogItem, storefrontPrice decimal.Decimal, storefrontQty *decimal.Decimal) ERPChangeset {
	var changes ERPChangeset
	if !erp.Price.Equal(storefrontPrice) {
		price := storefrontPrice
		changes.ListPrice = &price
	}
	if storefrontQty != nil && !erp.Quantity.Equal(*storefrontQty) {
		qty := *storefrontQty
		changes.QtyAvailable = &qty
	}
	return changes
}

// ---------------------------------------------------------------------------
// DriftReport describes a storefront to ERP pass
// ---------------------------------------------------------------------------

// DriftEntry describes one matched product of a storefront to ERP pass
type DriftEntry struct {
	Reference      string
	ERPID          int64
	StorefrontID   string
	PriceBefore    decimal.Decimal
	PriceAfter     decimal.Decimal
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	Changes        ERPChangeset
	Written        bool
	Error          string
}

// NewDriftEntry builds the before/after view of applying changes to item
func NewDriftEntry(item CatalogItem, storefrontID string, changes ERPChangeset) DriftEntry {
	entry := DriftEntry{
		Reference:      item.NormalizedSKU(),
		ERPID:          item.ERPID,
		StorefrontID:   storefrontID,
		PriceBefore:    item.Price,
		PriceAfter:     item.Price,
		QuantityBefore: item.Quantity,
		QuantityAfter:  item.Quantity,
		Changes:        changes,
	}
	if changes.ListPrice != nil {
		entry.PriceAfter = *changes.ListPrice
	}
	if changes.QtyAvailable != nil {
		entry.QuantityAfter = *changes.QtyAvailable
	}
	return entry
}

// DriftReport aggregates a storefront to ERP pass
type DriftReport struct {
	Checked       int
	Updated       []DriftEntry
	Unchanged     []string
	Unmatched     []string
	DuplicateSKUs []string
	Failed        []DriftEntry
}

// NewDriftReport creates an empty report
func NewDriftReport() *DriftReport {
	return &DriftReport{
		Updated:       make([]DriftEntry, 0),
		Unchanged:     make([]string, 0),
		Unmatched:     make([]string, 0),
		DuplicateSKUs: make([]string, 0),
		Failed:        make([]DriftEntry, 0),
	}
}

// Record files an entry according to whether it was written or failed
func (r *DriftReport) Record(entry DriftEntry) {
	r.Checked++
	switch {
	case entry.Error != "":
		r.Failed = append(r.Failed, entry)
	case entry.Written:
		r.Updated = append(r.Updated, entry)
	default:
		r.Unchanged = append(r.Unchanged, entry.Reference)
	}
}
