package scheduler

import (
	"time"

	"github.com/google/uuid"
)

// JobKind names a recurring reconciliation pass
type JobKind string

const (
	// JobKindCatalogSync pushes the ERP catalog to the storefront
	JobKindCatalogSync JobKind = "CATALOG_SYNC"
	// JobKindERPDrift writes storefront price and stock drift back to the ERP
	JobKindERPDrift JobKind = "ERP_DRIFT"
)

// JobStatus represents the status of a sync job
type JobStatus string

const (
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusPartial JobStatus = "PARTIAL"
	JobStatusFailed  JobStatus = "FAILED"
)

// JobResult summarizes what a pass touched
type JobResult struct {
	Total  int
	Failed int
}

// Job is one run of a recurring pass
type Job struct {
	ID          uuid.UUID  `json:"id"`
	Kind        JobKind    `json:"kind"`
	Status      JobStatus  `json:"status"`
	Manual      bool       `json:"manual"`
	Error       string     `json:"error,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Total       int        `json:"total"`
	Failed      int        `json:"failed"`
}

// NewJob creates a running job of the given kind
func NewJob(kind JobKind, manual bool) *Job {
	return &Job{
		ID:        uuid.New(),
		Kind:      kind,
		Status:    JobStatusRunning,
		Manual:    manual,
		StartedAt: time.Now(),
	}
}

// Complete records the pass counts. Any failed item makes the job partial,
// and a job where every item failed is failed.
func (j *Job) Complete(result JobResult) {
	now := time.Now()
	j.CompletedAt = &now
	j.Total = result.Total
	j.Failed = result.Failed

	switch {
	case result.Failed == 0:
		j.Status = JobStatusSuccess
	case result.Failed >= result.Total:
		j.Status = JobStatusFailed
	default:
		j.Status = JobStatusPartial
	}
}

// Fail marks the job as failed before it produced any counts
func (j *Job) Fail(err string) {
	now := time.Now()
	j.Status = JobStatusFailed
	j.CompletedAt = &now
	j.Error = err
}

// Duration returns how long the job ran, or has been running
func (j *Job) Duration() time.Duration {
	if j.CompletedAt == nil {
		return time.Since(j.StartedAt)
	}
	return j.CompletedAt.Sub(j.StartedAt)
}
