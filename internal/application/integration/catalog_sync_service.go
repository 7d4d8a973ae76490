package integration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erp/syncbridge/internal/domain/integration"
	"github.com/erp/syncbridge/internal/domain/shared"
	"github.com/erp/syncbridge/internal/infrastructure/logger"
	"github.com/erp/syncbridge/internal/infrastructure/telemetry"
)

// Pass directions used in logs and metrics
const (
	DirectionERPToStorefront = "odoo_to_prestashop"
	DirectionStorefrontToERP = "prestashop_to_odoo"
)

// Outcome details reported to callers
const (
	detailZeroPriceAndStock = "price and stock are zero"
	detailNoInventoryRecord = "inventory record not found"
	detailInvalidStockID    = "inventory record id is not valid"
	detailClaimHeld         = "sync already in progress"
	detailCreateFailed      = "failed to create product in storefront"
	detailCreateUnconfirmed = "product created but its id could not be confirmed"
	detailStockUpdateFailed = "failed to update stock quantity"
	detailPriceUnreadable   = "storefront price is not a number"
)

const claimKeyPrefix = "sku:"

// claimedCalls is the most storefront requests made while a SKU claim is
// held: resolve, create, resolve again, stock read, patch and put.
const claimedCalls = 6

// CatalogSyncConfig holds settings for the ERP to storefront pass
type CatalogSyncConfig struct {
	Claims shared.ClaimConfig
	// SingleItemTimeout bounds each storefront request of a single-SKU sync
	SingleItemTimeout time.Duration
}

// DefaultCatalogSyncConfig returns the default configuration
func DefaultCatalogSyncConfig() CatalogSyncConfig {
	return CatalogSyncConfig{
		Claims:            shared.DefaultClaimConfig(),
		SingleItemTimeout: 40 * time.Second,
	}
}

// CatalogSyncService pushes ERP products and their stock into the storefront.
// Items are processed one at a time; a failure on one item never stops the pass.
type CatalogSyncService struct {
	erp         integration.ERPCatalog
	storefront  integration.StorefrontCatalog
	resolver    *IdentityResolver
	claims      shared.ClaimStore
	config      CatalogSyncConfig
	syncMetrics *telemetry.SyncMetrics
	logger      *zap.Logger
}

// NewCatalogSyncService creates a new CatalogSyncService. claims may be nil.
func NewCatalogSyncService(
	erp integration.ERPCatalog,
	storefront integration.StorefrontCatalog,
	claims shared.ClaimStore,
	config CatalogSyncConfig,
	log *zap.Logger,
) *CatalogSyncService {
	if log == nil {
		log = zap.NewNop()
	}
	if floor := minClaimTTL(config.SingleItemTimeout); floor > 0 && config.Claims.TTL <= floor {
		log.Warn("SKU claim TTL shorter than a single sync, raising it",
			zap.Duration("configured", config.Claims.TTL),
			zap.Duration("ttl", floor+config.SingleItemTimeout))
		config.Claims.TTL = floor + config.SingleItemTimeout
	}
	return &CatalogSyncService{
		erp:        erp,
		storefront: storefront,
		resolver:   NewIdentityResolver(storefront, log),
		claims:     claims,
		config:     config,
		logger:     log,
	}
}

// SetSyncMetrics sets the reconciliation metrics collector
func (s *CatalogSyncService) SetSyncMetrics(m *telemetry.SyncMetrics) {
	s.syncMetrics = m
}

// SyncCatalog pushes every ERP product to the storefront. When references is
// not empty only products with those SKUs are processed.
func (s *CatalogSyncService) SyncCatalog(ctx context.Context, references []string) (*integration.BulkSyncReport, error) {
	if err := s.requireConfigured(); err != nil {
		return nil, err
	}

	start := time.Now()
	ctx, log := logger.WithSyncRun(ctx, s.logger, logger.SyncRun{
		ID:        uuid.NewString(),
		Direction: DirectionERPToStorefront,
	})
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog_sync", "sync_catalog")
	defer span.End()

	items, err := s.erp.ListProducts(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	items = filterByReference(items, references)

	log.Info("Catalog sync started", zap.Int("items", len(items)))

	report := integration.NewBulkSyncReport()
	for _, item := range items {
		if !item.HasSKU() {
			report.RecordInvalidSKU(item.ERPID)
			continue
		}

		outcome, err := s.syncItem(ctx, log, item)
		if err != nil {
			outcome = integration.NewSyncOutcome(integration.OutcomeFailedCreate, item, err.Error()).WithCause(err)
		}
		s.recordOutcome(ctx, log, outcome)
		report.Record(outcome)
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrItemCount, report.Total)
	if s.syncMetrics != nil {
		s.syncMetrics.RecordPass(ctx, DirectionERPToStorefront, time.Since(start))
	}
	log.Info("Catalog sync finished",
		zap.Int("total", report.Total),
		zap.Int("created", len(report.Created)),
		zap.Int("updated", len(report.Updated)),
		zap.Int("skipped_zero_price_and_stock", len(report.SkippedZeroPriceAndStock)),
		zap.Int("skipped_no_inventory_record", len(report.SkippedNoInventoryRecord)),
		zap.Int("skipped_invalid_sku", len(report.SkippedInvalidSKU)),
		zap.Int("errors", len(report.Errors)),
		zap.Duration("duration", time.Since(start)))

	return report, nil
}

// SyncSKU pushes one ERP product, looked up by internal reference, to the storefront.
// Storefront lookup failures are returned as errors instead of outcomes.
func (s *CatalogSyncService) SyncSKU(ctx context.Context, sku string) (integration.SyncOutcome, error) {
	if err := s.requireConfigured(); err != nil {
		return integration.SyncOutcome{}, err
	}
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return integration.SyncOutcome{}, integration.ErrInvalidSKU
	}

	if s.config.SingleItemTimeout > 0 {
		ctx = integration.WithUpstreamTimeout(ctx, s.config.SingleItemTimeout)
	}
	log := s.logger.With(zap.String("direction", DirectionERPToStorefront))

	item, err := s.erp.FindProductBySKU(ctx, sku)
	if err != nil {
		return integration.SyncOutcome{}, err
	}

	outcome, err := s.syncItem(ctx, log, *item)
	if err != nil {
		return integration.SyncOutcome{}, err
	}
	s.recordOutcome(ctx, log, outcome)
	return outcome, nil
}

// syncItem runs the per-item decision procedure. The returned error is a
// storefront identity lookup failure; every other failure becomes an outcome.
func (s *CatalogSyncService) syncItem(ctx context.Context, log *zap.Logger, item integration.CatalogItem) (integration.SyncOutcome, error) {
	sku := item.NormalizedSKU()
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog_sync", "sync_sku",
		telemetry.SpanAttrSKU, sku,
		telemetry.SpanAttrERPID, item.ERPID,
	)
	defer span.End()

	outcome, err := s.decide(ctx, log, item)
	if err != nil {
		telemetry.RecordError(span, err)
		return outcome, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrOutcome, outcome.Kind,
		telemetry.SpanAttrStorefrontID, outcome.StorefrontID,
	)
	return outcome, nil
}

func (s *CatalogSyncService) decide(ctx context.Context, log *zap.Logger, item integration.CatalogItem) (integration.SyncOutcome, error) {
	sku := item.NormalizedSKU()

	if err := item.Validate(); err != nil {
		return integration.NewSyncOutcome(integration.OutcomeFailedCreate, item, err.Error()).WithCause(err), nil
	}
	if item.IsZeroPriceAndStock() {
		return integration.NewSyncOutcome(integration.OutcomeSkippedZeroPriceAndStock, item, detailZeroPriceAndStock), nil
	}

	release, held := s.claim(ctx, log, sku)
	if held {
		return integration.NewSyncOutcome(integration.OutcomeFailedCreate, item, detailClaimHeld).WithCause(integration.ErrSKUClaimHeld), nil
	}
	defer release()

	ref, err := s.resolver.Resolve(ctx, sku)
	if err != nil {
		return integration.SyncOutcome{}, fmt.Errorf("resolve %s: %w", sku, err)
	}

	kind := integration.OutcomeUpdated
	if ref == nil {
		kind = integration.OutcomeCreated
		if err := s.storefront.CreateProduct(ctx, integration.DraftFromCatalogItem(item)); err != nil {
			log.Warn("Storefront product creation failed", logger.SKU(sku), zap.Error(err))
			return integration.NewSyncOutcome(integration.OutcomeFailedCreate, item, detailCreateFailed+": "+err.Error()).WithCause(err), nil
		}

		ref, err = s.resolver.Resolve(ctx, sku)
		if err != nil || ref == nil {
			log.Warn("Created product could not be resolved", logger.SKU(sku), zap.Error(err))
			return integration.NewSyncOutcome(integration.OutcomeFailedCreate, item, detailCreateUnconfirmed), nil
		}
	}

	return s.pushStock(ctx, log, item, kind, ref.InternalID), nil
}

// pushStock writes the ERP quantity to the product's stock record,
// falling back to a full replacement when the partial update is refused.
func (s *CatalogSyncService) pushStock(ctx context.Context, log *zap.Logger, item integration.CatalogItem, kind integration.SyncOutcomeKind, productID string) integration.SyncOutcome {
	sku := item.NormalizedSKU()

	record, err := s.storefront.GetStockRecord(ctx, productID)
	if err != nil {
		log.Warn("Stock record lookup failed", logger.SKU(sku), zap.Error(err))
		return integration.NewSyncOutcome(integration.OutcomeSkippedNoInventoryRecord, item, detailNoInventoryRecord).WithStorefrontID(productID)
	}
	if record == nil {
		return integration.NewSyncOutcome(integration.OutcomeSkippedNoInventoryRecord, item, detailNoInventoryRecord).WithStorefrontID(productID)
	}
	if record.ID == "" {
		return integration.NewSyncOutcome(integration.OutcomeSkippedNoInventoryRecord, item, detailInvalidStockID).WithStorefrontID(productID)
	}

	quantity := item.StockUnits()
	if err := s.storefront.PatchStockQuantity(ctx, record.ID, quantity); err != nil {
		log.Debug("Partial stock update refused, replacing record",
			logger.SKU(sku),
			zap.String("stock_id", record.ID),
			zap.Error(err))

		if err := s.storefront.PutStockRecord(ctx, record.WithQuantity(quantity)); err != nil {
			log.Warn("Stock update failed", logger.SKU(sku), zap.Error(err))
			return integration.NewSyncOutcome(integration.OutcomeFailedStockUpdate, item, detailStockUpdateFailed+": "+err.Error()).
				WithStorefrontID(productID).
				WithCause(err)
		}
	}

	return integration.NewSyncOutcome(kind, item, "").WithStorefrontID(productID)
}

// minClaimTTL is the longest a single-SKU sync can hold its claim. A claim
// must outlive it or a second caller can take the SKU mid-write.
func minClaimTTL(singleItemTimeout time.Duration) time.Duration {
	return claimedCalls * singleItemTimeout
}

// claim takes the per-SKU claim. It returns a release func and whether
// another caller already holds the SKU. Store failures are logged and ignored.
func (s *CatalogSyncService) claim(ctx context.Context, log *zap.Logger, sku string) (func(), bool) {
	noop := func() {}
	if s.claims == nil || !s.config.Claims.Enabled {
		return noop, false
	}

	key := claimKeyPrefix + sku
	token, ok, err := s.claims.Claim(ctx, key, s.config.Claims.TTL)
	if err != nil {
		log.Warn("SKU claim unavailable, continuing without it", logger.SKU(sku), zap.Error(err))
		return noop, false
	}
	if !ok {
		return noop, true
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.claims.Release(releaseCtx, key, token); err != nil {
			log.Warn("SKU claim release failed", logger.SKU(sku), zap.Error(err))
		}
	}, false
}

func (s *CatalogSyncService) recordOutcome(ctx context.Context, log *zap.Logger, outcome integration.SyncOutcome) {
	fields := []zap.Field{
		logger.SKU(outcome.SKU),
		zap.String("outcome", outcome.Kind.String()),
	}
	if outcome.StorefrontID != "" {
		fields = append(fields, zap.String("storefront_id", outcome.StorefrontID))
	}
	if outcome.Detail != "" {
		fields = append(fields, zap.String("detail", outcome.Detail))
	}

	if outcome.Kind.IsFailure() {
		log.Warn("Catalog item not synced", fields...)
	} else {
		log.Info("Catalog item synced", fields...)
	}

	if s.syncMetrics != nil {
		s.syncMetrics.RecordOutcome(ctx, outcome.Kind)
	}
}

func (s *CatalogSyncService) requireConfigured() error {
	if err := integration.RequireConfigured(integration.SystemStorefront, s.storefront); err != nil {
		return err
	}
	return integration.RequireConfigured(integration.SystemERP, s.erp)
}

// filterByReference keeps items whose SKU is listed. An empty list keeps everything.
func filterByReference(items []integration.CatalogItem, references []string) []integration.CatalogItem {
	if len(references) == 0 {
		return items
	}
	wanted := make(map[string]struct{}, len(references))
	for _, ref := range references {
		if ref = strings.TrimSpace(ref); ref != "" {
			wanted[ref] = struct{}{}
		}
	}
	out := make([]integration.CatalogItem, 0, len(wanted))
	for _, item := range items {
		if _, ok := wanted[item.NormalizedSKU()]; ok {
			out = append(out, item)
		}
	}
	return out
}
