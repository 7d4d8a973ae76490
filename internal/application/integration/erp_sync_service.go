package integration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/syncbridge/internal/domain/integration"
	"github.com/erp/syncbridge/internal/infrastructure/logger"
	"github.com/erp/syncbridge/internal/infrastructure/telemetry"
)

// ERPSyncService writes storefront price and stock drift back into the ERP.
// Prices and quantities are compared for exact equality.
type ERPSyncService struct {
	erp         integration.ERPCatalog
	storefront  integration.StorefrontCatalog
	syncMetrics *telemetry.SyncMetrics
	logger      *zap.Logger
}

// NewERPSyncService creates a new ERPSyncService
func NewERPSyncService(erp integration.ERPCatalog, storefront integration.StorefrontCatalog, log *zap.Logger) *ERPSyncService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ERPSyncService{
		erp:        erp,
		storefront: storefront,
		logger:     log,
	}
}

// SetSyncMetrics sets the reconciliation metrics collector
func (s *ERPSyncService) SetSyncMetrics(m *telemetry.SyncMetrics) {
	s.syncMetrics = m
}

// SyncAll compares every storefront product with the ERP product sharing its
// reference and writes the differing fields to the ERP. Write failures are
// collected in the report.
func (s *ERPSyncService) SyncAll(ctx context.Context) (*integration.DriftReport, error) {
	if err := s.requireConfigured(); err != nil {
		return nil, err
	}

	start := time.Now()
	ctx, log := logger.WithSyncRun(ctx, s.logger, logger.SyncRun{
		ID:        uuid.NewString(),
		Direction: DirectionStorefrontToERP,
	})
	ctx, span := telemetry.StartServiceSpan(ctx, "erp_sync", "sync_all")
	defer span.End()

	items, err := s.erp.ListProducts(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	report := integration.NewDriftReport()
	index := make(map[string]integration.CatalogItem, len(items))
	for _, item := range items {
		if !item.HasSKU() {
			continue
		}
		sku := item.NormalizedSKU()
		if prev, ok := index[sku]; ok {
			// later rows overwrite earlier ones
			report.DuplicateSKUs = append(report.DuplicateSKUs, sku)
			log.Warn("Duplicate ERP SKU, keeping last row",
				logger.SKU(sku),
				zap.Int64("replaced_erp_id", prev.ERPID),
				zap.Int64("erp_id", item.ERPID))
		}
		index[sku] = item
	}

	products, err := s.storefront.ListProducts(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	log.Info("ERP sync started",
		zap.Int("erp_items", len(index)),
		zap.Int("storefront_products", len(products)))

	for _, product := range products {
		reference := strings.TrimSpace(product.Reference)
		if reference == "" {
			continue
		}
		item, ok := index[reference]
		if !ok {
			report.Unmatched = append(report.Unmatched, reference)
			continue
		}

		entry := s.reconcile(ctx, log, item, product)
		report.Record(entry)
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrItemCount, report.Checked)
	if s.syncMetrics != nil {
		s.syncMetrics.RecordPass(ctx, DirectionStorefrontToERP, time.Since(start))
	}
	log.Info("ERP sync finished",
		zap.Int("checked", report.Checked),
		zap.Int("updated", len(report.Updated)),
		zap.Int("unchanged", len(report.Unchanged)),
		zap.Int("unmatched", len(report.Unmatched)),
		zap.Int("failed", len(report.Failed)),
		zap.Duration("duration", time.Since(start)))

	return report, nil
}

// SyncReference runs the comparison for one reference without scanning either catalog
func (s *ERPSyncService) SyncReference(ctx context.Context, reference string) (*integration.DriftEntry, error) {
	if err := s.requireConfigured(); err != nil {
		return nil, err
	}
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, integration.ErrInvalidSKU
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "erp_sync", "sync_reference", telemetry.SpanAttrSKU, reference)
	defer span.End()

	item, err := s.erp.FindProductBySKU(ctx, reference)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	product, err := s.storefront.GetProductByReference(ctx, reference)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if product.PriceInvalid {
		err := fmt.Errorf("%w: %s: %s", integration.ErrPlatformInvalidResponse, reference, detailPriceUnreadable)
		telemetry.RecordError(span, err)
		return nil, err
	}

	entry := s.reconcile(ctx, s.logger, *item, *product)
	if entry.Error != "" {
		return &entry, fmt.Errorf("%w: %s", integration.ErrERPWriteFailed, entry.Error)
	}
	return &entry, nil
}

// reconcile computes the changeset for one matched pair and writes it when not empty
func (s *ERPSyncService) reconcile(ctx context.Context, log *zap.Logger, item integration.CatalogItem, product integration.StorefrontProduct) integration.DriftEntry {
	sku := item.NormalizedSKU()

	if product.PriceInvalid {
		log.Warn("Storefront price unreadable, leaving ERP product untouched",
			logger.SKU(sku), zap.String("storefront_id", product.ID))
		entry := integration.NewDriftEntry(item, product.ID, integration.ERPChangeset{})
		entry.Error = detailPriceUnreadable
		return entry
	}

	var storefrontQty *decimal.Decimal
	record, err := s.storefront.GetStockRecord(ctx, product.ID)
	switch {
	case err != nil:
		log.Warn("Stock record lookup failed, comparing price only", logger.SKU(sku), zap.Error(err))
	case record == nil:
		log.Debug("No stock record, comparing price only", logger.SKU(sku))
	case record.QuantityInvalid:
		log.Warn("Stock quantity unreadable, comparing price only",
			logger.SKU(sku), zap.String("stock_id", record.ID))
	default:
		qty := decimal.NewFromInt(record.Quantity)
		storefrontQty = &qty
	}

	changes := integration.ComputeChangeset(item, product.Price, storefrontQty)
	entry := integration.NewDriftEntry(item, product.ID, changes)
	if changes.IsEmpty() {
		return entry
	}

	err = s.erp.WriteProduct(ctx, item.ERPID, changes)
	if s.syncMetrics != nil {
		s.syncMetrics.RecordERPWrite(ctx, err)
	}
	if err != nil {
		log.Warn("ERP write failed", logger.SKU(sku), zap.Int64("erp_id", item.ERPID), zap.Error(err))
		entry.Error = err.Error()
		return entry
	}

	entry.Written = true
	log.Info("ERP product updated from storefront",
		logger.SKU(sku),
		zap.Int64("erp_id", item.ERPID),
		zap.String("price_before", entry.PriceBefore.String()),
		zap.String("price_after", entry.PriceAfter.String()),
		zap.String("quantity_before", entry.QuantityBefore.String()),
		zap.String("quantity_after", entry.QuantityAfter.String()))
	return entry
}

func (s *ERPSyncService) requireConfigured() error {
	if err := integration.RequireConfigured(integration.SystemStorefront, s.storefront); err != nil {
		return err
	}
	return integration.RequireConfigured(integration.SystemERP, s.erp)
}
