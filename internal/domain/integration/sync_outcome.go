package integration

import (
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// SyncOutcomeKind classifies the result of pushing one ERP item to the storefront
// ---------------------------------------------------------------------------

// SyncOutcomeKind classifies the result of syncing one catalog item
type SyncOutcomeKind string

const (
	// OutcomeCreated indicates the product did not exist and was created
	OutcomeCreated SyncOutcomeKind = "created"
	// OutcomeUpdated indicates the product existed and only its stock was pushed
	OutcomeUpdated SyncOutcomeKind = "updated"
	// OutcomeSkippedZeroPriceAndStock indicates price and quantity were both zero
	OutcomeSkippedZeroPriceAndStock SyncOutcomeKind = "skipped_zero_price_and_stock"
	// OutcomeSkippedNoInventoryRecord indicates the storefront had no stock record for the product
	OutcomeSkippedNoInventoryRecord SyncOutcomeKind = "skipped_no_inventory_record"
	// OutcomeFailedCreate indicates creation failed or could not be confirmed
	OutcomeFailedCreate SyncOutcomeKind = "failed_create"
	// OutcomeFailedStockUpdate indicates both the partial and the full stock update failed
	OutcomeFailedStockUpdate SyncOutcomeKind = "failed_stock_update"
)

// IsValid returns true if the kind is valid
func (k SyncOutcomeKind) IsValid() bool {
	switch k {
	case OutcomeCreated, OutcomeUpdated,
		OutcomeSkippedZeroPriceAndStock, OutcomeSkippedNoInventoryRecord,
		OutcomeFailedCreate, OutcomeFailedStockUpdate:
		return true
	default:
		return false
	}
}

// String returns the string representation of SyncOutcomeKind
func (k SyncOutcomeKind) String() string {
	return string(k)
}

// IsSkipped returns true for the skip outcomes
func (k SyncOutcomeKind) IsSkipped() bool {
	return k == OutcomeSkippedZeroPriceAndStock || k == OutcomeSkippedNoInventoryRecord
}

// IsFailure returns true for the failure outcomes
func (k SyncOutcomeKind) IsFailure() bool {
	return k == OutcomeFailedCreate || k == OutcomeFailedStockUpdate
}

// ActionLabel returns the human-readable action for single-item responses
func (k SyncOutcomeKind) ActionLabel() string {
	switch k {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeSkippedZeroPriceAndStock, OutcomeSkippedNoInventoryRecord:
		return "skipped"
	default:
		return "failed"
	}
}

// SyncOutcome is the result of syncing one catalog item
type SyncOutcome struct {
	Kind         SyncOutcomeKind
	ERPID        int64
	SKU          string
	Name         string
	Price        decimal.Decimal
	Quantity     int64
	StorefrontID string
	Detail       string
	// Cause is the error behind a failure outcome, if any
	Cause error
}

// NewSyncOutcome creates an outcome for the given item
func NewSyncOutcome(kind SyncOutcomeKind, item CatalogItem, detail string) SyncOutcome {
	return SyncOutcome{
		Kind:     kind,
		ERPID:    item.ERPID,
		SKU:      item.NormalizedSKU(),
		Name:     item.Name,
		Price:    item.Price,
		Quantity: item.StockUnits(),
		Detail:   detail,
	}
}

// WithCause returns a copy of the outcome carrying the error that produced it
func (o SyncOutcome) WithCause(err error) SyncOutcome {
	o.Cause = err
	return o
}

// WithStorefrontID returns a copy of the outcome carrying the storefront product id
func (o SyncOutcome) WithStorefrontID(id string) SyncOutcome {
	o.StorefrontID = id
	return o
}

// ---------------------------------------------------------------------------
// BulkSyncReport aggregates outcomes of a catalog pass
// ---------------------------------------------------------------------------

// BulkSyncReport aggregates all outcomes of a bulk ERP to storefront pass.
// Item failures are collected, never raised.
type BulkSyncReport struct {
	Total                    int
	Created                  []SyncOutcome
	Updated                  []SyncOutcome
	SkippedZeroPriceAndStock []SyncOutcome
	SkippedNoInventoryRecord []SyncOutcome
	SkippedInvalidSKU        []int64
	Errors                   []SyncOutcome
}

// NewBulkSyncReport creates an empty report
func NewBulkSyncReport() *BulkSyncReport {
	return &BulkSyncReport{
		Created:                  make([]SyncOutcome, 0),
		Updated:                  make([]SyncOutcome, 0),
		SkippedZeroPriceAndStock: make([]SyncOutcome, 0),
		SkippedNoInventoryRecord: make([]SyncOutcome, 0),
		SkippedInvalidSKU:        make([]int64, 0),
		Errors:                   make([]SyncOutcome, 0),
	}
}

// Record files an outcome under its category
func (r *BulkSyncReport) Record(o SyncOutcome) {
	r.Total++
	switch o.Kind {
	case OutcomeCreated:
		r.Created = append(r.Created, o)
	case OutcomeUpdated:
		r.Updated = append(r.Updated, o)
	case OutcomeSkippedZeroPriceAndStock:
		r.SkippedZeroPriceAndStock = append(r.SkippedZeroPriceAndStock, o)
	case OutcomeSkippedNoInventoryRecord:
		r.SkippedNoInventoryRecord = append(r.SkippedNoInventoryRecord, o)
	default:
		r.Errors = append(r.Errors, o)
	}
}

// RecordInvalidSKU notes an ERP row that has no SKU
func (r *BulkSyncReport) RecordInvalidSKU(erpID int64) {
	r.Total++
	r.SkippedInvalidSKU = append(r.SkippedInvalidSKU, erpID)
}

// HasFailures returns true if any item failed
func (r *BulkSyncReport) HasFailures() bool {
	return len(r.Errors) > 0
}

// Succeeded returns the number of created and updated items
func (r *BulkSyncReport) Succeeded() int {
	return len(r.Created) + len(r.Updated)
}
