package features

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"interview-service/internal/metrics"
	"interview-service/pkg/broker"
)

// Notifier hands a notification to the bus without waiting for delivery.
type Notifier interface {
	Notify(pattern string, payload any)
}

type NotificationJob struct {
	Pattern    string
	Payload    any
	EnqueuedAt time.Time
}

// EmitterPool publishes notifications from a bounded queue on a fixed set of
// workers. A full queue drops the notification.
type EmitterPool struct {
	client      broker.Client
	jobQueue    chan NotificationJob
	workerCount int
	emitTimeout time.Duration
	logger      *zap.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup

	// Metrics
	totalJobsEnqueued  int64
	totalJobsProcessed int64
	totalJobsFailed    int64
	totalJobsDropped   int64
	activeWorkers      int64
}

func NewEmitterPool(client broker.Client, workers, queueSize int, emitTimeout time.Duration, logger *zap.Logger) *EmitterPool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers
	}
	return &EmitterPool{
		client:      client,
		jobQueue:    make(chan NotificationJob, queueSize),
		workerCount: workers,
		emitTimeout: emitTimeout,
		logger:      logger,
	}
}

func (wp *EmitterPool) Start() {
	wp.logger.Info("Starting notification worker pool",
		zap.Int("workerCount", wp.workerCount),
		zap.Int("queueCapacity", cap(wp.jobQueue)))

	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Stop rejects new notifications and waits until the queued ones are published.
func (wp *EmitterPool) Stop() {
	wp.mu.Lock()
	if wp.stopped {
		wp.mu.Unlock()
		return
	}
	wp.stopped = true
	close(wp.jobQueue)
	wp.mu.Unlock()

	wp.wg.Wait()
}

func (wp *EmitterPool) worker(workerID int) {
	defer wp.wg.Done()
	atomic.AddInt64(&wp.activeWorkers, 1)
	defer atomic.AddInt64(&wp.activeWorkers, -1)

	jobsProcessed := 0
	for job := range wp.jobQueue {
		metrics.EmitQueueSize.Set(float64(len(wp.jobQueue)))
		wp.emit(workerID, job)
		jobsProcessed++
	}

	wp.logger.Debug("Worker stopping - job queue closed",
		zap.Int("workerID", workerID),
		zap.Int("jobsProcessed", jobsProcessed))
}

func (wp *EmitterPool) emit(workerID int, job NotificationJob) {
	ctx, cancel := context.WithTimeout(context.Background(), wp.emitTimeout)
	defer cancel()

	err := wp.client.Emit(ctx, job.Pattern, job.Payload)
	atomic.AddInt64(&wp.totalJobsProcessed, 1)
	if err != nil {
		atomic.AddInt64(&wp.totalJobsFailed, 1)
		metrics.NotificationsEmitted.WithLabelValues(job.Pattern, metrics.OutcomeFailed).Inc()
		wp.logger.Error("Failed to emit notification",
			zap.Int("workerID", workerID),
			zap.String("pattern", job.Pattern),
			zap.Error(err))
		return
	}

	metrics.NotificationsEmitted.WithLabelValues(job.Pattern, metrics.OutcomeSent).Inc()
	wp.logger.Debug("Notification emitted",
		zap.Int("workerID", workerID),
		zap.String("pattern", job.Pattern),
		zap.Duration("totalTime", time.Since(job.EnqueuedAt)))
}

func (wp *EmitterPool) Notify(pattern string, payload any) {
	job := NotificationJob{Pattern: pattern, Payload: payload, EnqueuedAt: time.Now()}

	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.stopped {
		wp.drop(job, "Notification pool stopped, dropping notification")
		return
	}

	select {
	case wp.jobQueue <- job:
		atomic.AddInt64(&wp.totalJobsEnqueued, 1)
		metrics.EmitQueueSize.Set(float64(len(wp.jobQueue)))
	default:
		wp.drop(job, "Notification queue is full, dropping notification")
	}
}

func (wp *EmitterPool) drop(job NotificationJob, msg string) {
	atomic.AddInt64(&wp.totalJobsDropped, 1)
	metrics.NotificationsEmitted.WithLabelValues(job.Pattern, metrics.OutcomeDropped).Inc()
	wp.logger.Warn(msg,
		zap.String("pattern", job.Pattern),
		zap.Int("queueSize", len(wp.jobQueue)),
		zap.Int("queueCapacity", cap(wp.jobQueue)),
		zap.Int64("activeWorkers", atomic.LoadInt64(&wp.activeWorkers)))
}

// GetMetrics returns worker pool metrics
func (wp *EmitterPool) GetMetrics() map[string]interface{} {
	return map[string]interface{}{
		"total_jobs_enqueued":  atomic.LoadInt64(&wp.totalJobsEnqueued),
		"total_jobs_processed": atomic.LoadInt64(&wp.totalJobsProcessed),
		"total_jobs_failed":    atomic.LoadInt64(&wp.totalJobsFailed),
		"total_jobs_dropped":   atomic.LoadInt64(&wp.totalJobsDropped),
		"active_workers":       atomic.LoadInt64(&wp.activeWorkers),
		"queue_size":           len(wp.jobQueue),
		"queue_capacity":       cap(wp.jobQueue),
	}
}
