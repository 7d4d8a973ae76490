// Package scheduler runs the reconciliation passes on a fixed interval.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RunFunc executes one pass and reports its counts
type RunFunc func(ctx context.Context) (JobResult, error)

// Task binds a job kind to the pass it runs. A zero Interval registers the
// task for manual triggers only.
type Task struct {
	Kind     JobKind
	Interval time.Duration
	Run      RunFunc
}

// SchedulerConfig holds scheduler configuration
type SchedulerConfig struct {
	Enabled    bool
	JobTimeout time.Duration
	// RunOnStart fires every interval task once as soon as the scheduler starts
	RunOnStart bool
}

// DefaultSchedulerConfig returns default scheduler configuration
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Enabled:    false,
		JobTimeout: 30 * time.Minute,
	}
}

// SyncScheduler fires reconciliation passes on their intervals and keeps the
// last job of each kind. Two runs of the same kind never overlap.
type SyncScheduler struct {
	config SchedulerConfig
	tasks  map[JobKind]Task
	logger *zap.Logger

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	inFlight  map[JobKind]bool
	last      map[JobKind]Job
}

// NewSyncScheduler creates a scheduler for the given tasks
func NewSyncScheduler(config SchedulerConfig, logger *zap.Logger, tasks ...Task) (*SyncScheduler, error) {
	if config.JobTimeout <= 0 {
		return nil, fmt.Errorf("%w: job timeout must be positive", ErrInvalidConfig)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	byKind := make(map[JobKind]Task, len(tasks))
	for _, task := range tasks {
		if task.Run == nil {
			return nil, fmt.Errorf("%w: task %s has no run function", ErrInvalidConfig, task.Kind)
		}
		if task.Interval < 0 {
			return nil, fmt.Errorf("%w: task %s has a negative interval", ErrInvalidConfig, task.Kind)
		}
		if _, dup := byKind[task.Kind]; dup {
			return nil, fmt.Errorf("%w: task %s registered twice", ErrInvalidConfig, task.Kind)
		}
		byKind[task.Kind] = task
	}

	return &SyncScheduler{
		config:   config,
		tasks:    byKind,
		logger:   logger,
		inFlight: make(map[JobKind]bool),
		last:     make(map[JobKind]Job),
	}, nil
}

// Start starts one loop per interval task. A disabled scheduler stays stopped.
func (s *SyncScheduler) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.logger.Info("Sync scheduler disabled")
		return nil
	}

	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	loopCtx := s.ctx

	var loops []Task
	for _, task := range s.tasks {
		if task.Interval > 0 {
			loops = append(loops, task)
		}
	}
	s.wg.Add(len(loops))
	s.mu.Unlock()

	for _, task := range loops {
		go s.runLoop(loopCtx, task)

		s.logger.Info("Sync task scheduled",
			zap.String("kind", string(task.Kind)),
			zap.Duration("interval", task.Interval),
		)
	}

	s.logger.Info("Sync scheduler started",
		zap.Int("tasks", len(s.tasks)),
		zap.Duration("job_timeout", s.config.JobTimeout),
	)

	return nil
}

// Stop cancels in-flight passes and waits for them to return
func (s *SyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Sync scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Sync scheduler stop timed out")
		return ctx.Err()
	}
}

// IsRunning reports whether the scheduler loops are active
func (s *SyncScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// Trigger starts a manual run of kind in the background and returns the new job
func (s *SyncScheduler) Trigger(kind JobKind) (Job, error) {
	task, ok := s.tasks[kind]
	if !ok {
		return Job{}, fmt.Errorf("%w: %s", ErrUnknownJobKind, kind)
	}

	// wg.Add happens under mu so that Stop cannot reach wg.Wait between the
	// running check and the Add.
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return Job{}, ErrSchedulerNotRunning
	}
	ctx := s.ctx
	job, err := s.beginLocked(kind, true)
	if err != nil {
		s.mu.Unlock()
		return Job{}, err
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		s.finish(ctx, task, job)
	}()

	return *job, nil
}

// Jobs returns the latest job of each kind, ordered by kind
func (s *SyncScheduler) Jobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make([]Job, 0, len(s.last))
	for _, job := range s.last {
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, k int) bool { return jobs[i].Kind < jobs[k].Kind })
	return jobs
}

// LastJob returns the latest job of kind
func (s *SyncScheduler) LastJob(kind JobKind) (Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.last[kind]
	return job, ok
}

func (s *SyncScheduler) runLoop(ctx context.Context, task Task) {
	defer s.wg.Done()

	if s.config.RunOnStart {
		s.fire(ctx, task)
	}

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fire(ctx, task)
		}
	}
}

// fire runs one scheduled pass inline, skipping it when a manual run of the
// same kind is still going
func (s *SyncScheduler) fire(ctx context.Context, task Task) {
	job, err := s.begin(task.Kind, false)
	if err != nil {
		s.logger.Debug("Skipping scheduled sync",
			zap.String("kind", string(task.Kind)),
			zap.Error(err),
		)
		return
	}
	s.finish(ctx, task, job)
}

func (s *SyncScheduler) begin(kind JobKind, manual bool) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beginLocked(kind, manual)
}

// beginLocked marks kind in flight. The caller holds mu.
func (s *SyncScheduler) beginLocked(kind JobKind, manual bool) (*Job, error) {
	if s.inFlight[kind] {
		return nil, ErrJobAlreadyRunning
	}
	s.inFlight[kind] = true

	job := NewJob(kind, manual)
	s.last[kind] = *job
	return job, nil
}

func (s *SyncScheduler) finish(ctx context.Context, task Task, job *Job) {
	s.logger.Info("Sync job started",
		zap.String("job_id", job.ID.String()),
		zap.String("kind", string(job.Kind)),
		zap.Bool("manual", job.Manual),
	)

	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	result, err := task.Run(jobCtx)
	if err != nil {
		job.Fail(err.Error())
		s.logger.Error("Sync job failed",
			zap.String("job_id", job.ID.String()),
			zap.String("kind", string(job.Kind)),
			zap.Duration("duration", job.Duration()),
			zap.Error(err),
		)
	} else {
		job.Complete(result)
		s.logger.Info("Sync job completed",
			zap.String("job_id", job.ID.String()),
			zap.String("kind", string(job.Kind)),
			zap.String("status", string(job.Status)),
			zap.Int("total", job.Total),
			zap.Int("failed", job.Failed),
			zap.Duration("duration", job.Duration()),
		)
	}

	s.mu.Lock()
	s.last[job.Kind] = *job
	delete(s.inFlight, job.Kind)
	s.mu.Unlock()
}
