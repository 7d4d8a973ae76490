package scheduler

import (
	"context"
	"time"

	"github.com/erp/syncbridge/internal/domain/integration"
)

// CatalogSyncer runs the ERP to storefront pass
type CatalogSyncer interface {
	SyncCatalog(ctx context.Context, references []string) (*integration.BulkSyncReport, error)
}

// DriftSyncer runs the storefront to ERP pass
type DriftSyncer interface {
	SyncAll(ctx context.Context) (*integration.DriftReport, error)
}

// CatalogSyncTask pushes the whole ERP catalog every interval
func CatalogSyncTask(interval time.Duration, syncer CatalogSyncer) Task {
	return Task{
		Kind:     JobKindCatalogSync,
		Interval: interval,
		Run: func(ctx context.Context) (JobResult, error) {
			report, err := syncer.SyncCatalog(ctx, nil)
			if err != nil {
				return JobResult{}, err
			}
			return JobResult{Total: report.Total, Failed: len(report.Errors)}, nil
		},
	}
}

// ERPDriftTask writes storefront drift back to the ERP every interval
func ERPDriftTask(interval time.Duration, syncer DriftSyncer) Task {
	return Task{
		Kind:     JobKindERPDrift,
		Interval: interval,
		Run: func(ctx context.Context) (JobResult, error) {
			report, err := syncer.SyncAll(ctx)
			if err != nil {
				return JobResult{}, err
			}
			return JobResult{Total: report.Checked, Failed: len(report.Failed)}, nil
		},
	}
}
