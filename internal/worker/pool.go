// Package worker implements the buffered worker pool that ships query events
// to ClickHouse without holding up the HTTP response:
// - Load shedding when the queue is full
// - Batch inserts for efficient ClickHouse writes
// - Graceful shutdown with flush guarantees

package worker

import (
	"context"
	"sync"
	"time"
	"unicode"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/mlr-stats/stats-api/internal/models"
)

const (
	insertQueryEvents = `
		INSERT INTO stats_api.query_events (
			id, timestamp, endpoint, groups, season, status, rows, duration_ms
		)
	`
	maxParamLength = 256
	insertTimeout  = 10 * time.Second
)

// Prometheus metrics
var (
	eventsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stats_api_query_events_ingested_total",
		Help: "Total number of query events queued",
	})

	eventsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stats_api_query_events_processed_total",
		Help: "Total number of query events written to ClickHouse",
	})

	eventsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stats_api_query_events_failed_total",
		Help: "Total number of query events that failed to write",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stats_api_query_events_queue_depth",
		Help: "Current depth of the query event queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stats_api_query_events_batch_insert_duration_seconds",
		Help:    "Duration of query event batch inserts to ClickHouse",
		Buckets: prometheus.DefBuckets,
	})

	eventsLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stats_api_query_events_load_shed_total",
		Help: "Total number of query events dropped due to load shedding",
	})
)

// Job represents a unit of work for the worker pool
type Job struct {
	Event      *models.QueryEvent
	ReceivedAt time.Time
}

// PoolConfig configures the worker pool
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	ClickHouse    driver.Conn
	Logger        *zap.Logger
}

// Pool manages a pool of workers writing query events in batches
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.RWMutex
	closed   bool
	logger   *zap.SugaredLogger
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 5000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 200
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 2 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		ctx:      ctx,
		cancel:   cancel,
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	// Start queue depth reporter
	go p.reportQueueDepth()

	p.logger.Infow("Worker pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop drains the queue, flushes every worker's batch and waits for them.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobQueue)
	p.mu.Unlock()

	p.logger.Info("Stopping worker pool...")
	p.wg.Wait()
	p.cancel()
	p.logger.Info("Worker pool stopped")
}

// Enqueue adds an event to the queue without blocking. It returns false and
// drops the event when the queue is full or the pool is stopped.
func (p *Pool) Enqueue(event *models.QueryEvent) bool {
	if event == nil {
		return false
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	job := Job{
		Event:      event,
		ReceivedAt: time.Now(),
	}

	// The read lock keeps Stop from closing the queue mid-send
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}

	select {
	case p.jobQueue <- job:
		eventsIngested.Inc()
		return true
	default:
		eventsLoadShed.Inc()
		return false
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// worker processes jobs from the queue in batches
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]Job, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if err := p.processBatch(batch); err != nil {
			p.logger.Errorw("Batch processing failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			eventsFailed.Add(float64(len(batch)))
		} else {
			p.logger.Debugw("Batch processed", "worker", id, "batchSize", len(batch), "duration", time.Since(start))
			eventsProcessed.Add(float64(len(batch)))
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				// Channel closed, flush remaining
				flush()
				return
			}

			batch = append(batch, job)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-p.ctx.Done():
			flush()
			return
		}
	}
}

// processBatch writes a batch of query events to ClickHouse
func (p *Pool) processBatch(batch []Job) error {
	if len(batch) == 0 {
		return nil
	}

	// Shutdown cancels the pool context, so the final flush gets its own deadline
	ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
	defer cancel()

	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, insertQueryEvents)
	if err != nil {
		return err
	}

	for _, job := range batch {
		event := job.Event
		ts := event.Timestamp
		if ts.IsZero() {
			ts = job.ReceivedAt
		}

		err := chBatch.Append(
			event.ID,
			ts,
			sanitizeParam(event.Endpoint),
			sanitizeParam(event.Groups),
			sanitizeParam(event.Season),
			int32(event.Status),
			uint32(max(event.Rows, 0)),
			event.DurationMS,
		)
		if err != nil {
			p.logger.Warnw("Failed to append query event to batch", "error", err, "endpoint", event.Endpoint)
			continue
		}
	}

	if err := chBatch.Send(); err != nil {
		p.logger.Errorw("Failed to send batch to ClickHouse", "error", err, "batchSize", len(batch))
		return err
	}
	return nil
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}

// Helper functions

// sanitizeParam drops control characters from a caller supplied value and
// caps its length.
func sanitizeParam(s string) string {
	clean := true
	for _, r := range s {
		if unicode.IsControl(r) {
			clean = false
			break
		}
	}
	if clean && len(s) <= maxParamLength {
		return s
	}

	out := make([]rune, 0, len(s))
	size := 0
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		n := len(string(r))
		if size+n > maxParamLength {
			break
		}
		out = append(out, r)
		size += n
	}
	return string(out)
}
