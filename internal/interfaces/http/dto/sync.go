package dto

import (
	"github.com/shopspring/decimal"

	"github.com/erp/syncbridge/internal/domain/integration"
)

// ---------------------------------------------------------------------------
// ERP to storefront
// ---------------------------------------------------------------------------

// SyncedProduct is the data of a successful single-product sync
type SyncedProduct struct {
	StorefrontID string          `json:"id_prestashop"`
	Reference    string          `json:"referencia"`
	Name         string          `json:"nombre"`
	Price        decimal.Decimal `json:"precio"`
	SyncedStock  int64           `json:"stock_sincronizado"`
}

// NewSyncedProduct shapes a successful outcome
func NewSyncedProduct(o integration.SyncOutcome) SyncedProduct {
	return SyncedProduct{
		StorefrontID: o.StorefrontID,
		Reference:    o.SKU,
		Name:         o.Name,
		Price:        o.Price,
		SyncedStock:  o.Quantity,
	}
}

// SyncOutcomeMessage returns the message for a successful single-product sync
func SyncOutcomeMessage(o integration.SyncOutcome) string {
	return "product " + o.Kind.ActionLabel() + " successfully"
}

// OutcomeRow is one item of a bulk sync report
type OutcomeRow struct {
	ERPID        int64           `json:"odoo_id"`
	Reference    string          `json:"referencia"`
	Name         string          `json:"nombre,omitempty"`
	Price        decimal.Decimal `json:"precio"`
	Stock        int64           `json:"stock"`
	StorefrontID string          `json:"id_prestashop,omitempty"`
	Detail       string          `json:"detalle,omitempty"`
}

// BulkSyncResponse summarizes a bulk ERP to storefront pass
type BulkSyncResponse struct {
	Total                    int          `json:"total"`
	Created                  []OutcomeRow `json:"created"`
	Updated                  []OutcomeRow `json:"updated"`
	SkippedZeroPriceAndStock []OutcomeRow `json:"skipped_zero_price_and_stock"`
	SkippedNoInventoryRecord []OutcomeRow `json:"skipped_no_inventory_record"`
	SkippedInvalidSKU        []int64      `json:"skipped_invalid_sku"`
	Errors                   []OutcomeRow `json:"errors"`
}

// NewBulkSyncResponse shapes a bulk report
func NewBulkSyncResponse(r *integration.BulkSyncReport) BulkSyncResponse {
	return BulkSyncResponse{
		Total:                    r.Total,
		Created:                  outcomeRows(r.Created),
		Updated:                  outcomeRows(r.Updated),
		SkippedZeroPriceAndStock: outcomeRows(r.SkippedZeroPriceAndStock),
		SkippedNoInventoryRecord: outcomeRows(r.SkippedNoInventoryRecord),
		SkippedInvalidSKU:        append([]int64{}, r.SkippedInvalidSKU...),
		Errors:                   outcomeRows(r.Errors),
	}
}

func outcomeRows(outcomes []integration.SyncOutcome) []OutcomeRow {
	rows := make([]OutcomeRow, 0, len(outcomes))
	for _, o := range outcomes {
		rows = append(rows, OutcomeRow{
			ERPID:        o.ERPID,
			Reference:    o.SKU,
			Name:         o.Name,
			Price:        o.Price,
			Stock:        o.Quantity,
			StorefrontID: o.StorefrontID,
			Detail:       o.Detail,
		})
	}
	return rows
}

// ---------------------------------------------------------------------------
// Storefront to ERP
// ---------------------------------------------------------------------------

// DriftRow describes one reconciled reference
type DriftRow struct {
	Reference      string                     `json:"referencia"`
	ERPID          int64                      `json:"odoo_id"`
	StorefrontID   string                     `json:"id_prestashop"`
	PriceBefore    decimal.Decimal            `json:"precio_antes"`
	PriceAfter     decimal.Decimal            `json:"precio_despues"`
	QuantityBefore decimal.Decimal            `json:"stock_antes"`
	QuantityAfter  decimal.Decimal            `json:"stock_despues"`
	Changes        map[string]decimal.Decimal `json:"cambios"`
	Written        bool                       `json:"actualizado"`
	Error          string                     `json:"error,omitempty"`
}

// NewDriftRow shapes a drift entry
func NewDriftRow(e integration.DriftEntry) DriftRow {
	return DriftRow{
		Reference:      e.Reference,
		ERPID:          e.ERPID,
		StorefrontID:   e.StorefrontID,
		PriceBefore:    e.PriceBefore,
		PriceAfter:     e.PriceAfter,
		QuantityBefore: e.QuantityBefore,
		QuantityAfter:  e.QuantityAfter,
		Changes:        e.Changes.Fields(),
		Written:        e.Written,
		Error:          e.Error,
	}
}

// DriftReportResponse summarizes a storefront to ERP pass
type DriftReportResponse struct {
	Checked       int        `json:"checked"`
	Updated       []DriftRow `json:"updated"`
	Unchanged     []string   `json:"unchanged"`
	Unmatched     []string   `json:"unmatched"`
	DuplicateSKUs []string   `json:"duplicate_skus"`
	Failed        []DriftRow `json:"failed"`
}

// NewDriftReportResponse shapes a drift report
func NewDriftReportResponse(r *integration.DriftReport) DriftReportResponse {
	resp := DriftReportResponse{
		Checked:       r.Checked,
		Updated:       make([]DriftRow, 0, len(r.Updated)),
		Unchanged:     append([]string{}, r.Unchanged...),
		Unmatched:     append([]string{}, r.Unmatched...),
		DuplicateSKUs: append([]string{}, r.DuplicateSKUs...),
		Failed:        make([]DriftRow, 0, len(r.Failed)),
	}
	for _, e := range r.Updated {
		resp.Updated = append(resp.Updated, NewDriftRow(e))
	}
	for _, e := range r.Failed {
		resp.Failed = append(resp.Failed, NewDriftRow(e))
	}
	return resp
}
