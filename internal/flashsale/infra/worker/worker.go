// Package worker implements the queue worker: a single long-running
// consumer draining the bounded queue and driving the fulfillment
// transaction, with a heartbeat goroutine and a graceful Stop built on a
// wait group. It runs a receive-process-record loop over
// the in-process queue.Queue — there is no durable cross-restart queue or
// broker to consume from here.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"flashsale/internal/flashsale/domain/model"
	"flashsale/internal/flashsale/domain/service"
	"flashsale/internal/flashsale/infra/messaging"
	"flashsale/internal/flashsale/infra/queue"
	"flashsale/internal/flashsale/infra/statusstore"
	"flashsale/shared/apperrors"
	"flashsale/shared/infra/database"
	"flashsale/shared/metrics"
)

// Config holds the fields this single-worker loop actually uses.
type Config struct {
	WorkerID          string
	HeartbeatInterval time.Duration
	MaxRetries        uint64
	RetryBackoffBase  time.Duration
	ShutdownTimeout   time.Duration
}

func DefaultConfig() Config {
	return Config{
		WorkerID:          "worker-1",
		HeartbeatInterval: 30 * time.Second,
		MaxRetries:        3,
		RetryBackoffBase:  10 * time.Millisecond,
		ShutdownTimeout:   30 * time.Second,
	}
}

// HealthStatus is set to Healthy by Start and to Stopped by Stop.
type HealthStatus int

const (
	HealthUnknown HealthStatus = iota
	HealthHealthy
	HealthStopped
)

// Metrics is the worker's own counters, separate from the process-wide
// Prometheus metrics.Metrics (which the worker also updates for
// order_queue_depth).
type Metrics struct {
	mu               sync.RWMutex
	OrdersProcessed  int64
	OrdersSucceeded  int64
	OrdersFailed     int64
	OrdersRetried    int64
	LastActivityTime time.Time
}

func (m *Metrics) recordProcessed(success bool, retried bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OrdersProcessed++
	if success {
		m.OrdersSucceeded++
	} else {
		m.OrdersFailed++
	}
	if retried {
		m.OrdersRetried++
	}
	m.LastActivityTime = time.Now()
}

func (m *Metrics) Snapshot() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Metrics{
		OrdersProcessed:  m.OrdersProcessed,
		OrdersSucceeded:  m.OrdersSucceeded,
		OrdersFailed:     m.OrdersFailed,
		OrdersRetried:    m.OrdersRetried,
		LastActivityTime: m.LastActivityTime,
	}
}

// Worker is the single consumer task over the bounded queue. Multiple
// Workers over the same Queue are permitted without changing the external
// contract, since each order_id is enqueued exactly
// once and the Status Store's single-writer-per-key invariant does not
// depend on worker count.
type Worker struct {
	cfg         Config
	q           *queue.Queue
	db          database.Database
	fulfillment *service.FulfillmentService
	store       *statusstore.Store
	publisher   messaging.EventPublisher
	metrics     *metrics.Metrics
	workerStats *Metrics
	log         *zap.Logger

	mu            sync.RWMutex
	health        HealthStatus
	lastHeartbeat time.Time
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

func New(
	cfg Config,
	q *queue.Queue,
	db database.Database,
	fulfillment *service.FulfillmentService,
	store *statusstore.Store,
	publisher messaging.EventPublisher,
	m *metrics.Metrics,
	log *zap.Logger,
) *Worker {
	return &Worker{
		cfg:         cfg,
		q:           q,
		db:          db,
		fulfillment: fulfillment,
		store:       store,
		publisher:   publisher,
		metrics:     m,
		workerStats: &Metrics{},
		log:         log,
		health:      HealthUnknown,
	}
}

// Start launches the consume loop and a heartbeat goroutine. It returns
// immediately; call Stop to drain and shut down.
func (w *Worker) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.mu.Lock()
	w.health = HealthHealthy
	w.lastHeartbeat = time.Now()
	w.mu.Unlock()

	w.wg.Add(2)
	// The consume loop does not inherit cancellation: it ends only when Recv
	// reports the queue closed, so buffered items are still fulfilled.
	go w.consumeLoop(context.WithoutCancel(ctx))
	go w.heartbeatLoop(ctx)
}

// Stop cancels the heartbeat loop and lets the consume loop finish
// draining whatever the queue has already buffered before returning (it
// only stops once Recv reports the queue closed).
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(w.cfg.ShutdownTimeout):
		w.log.Warn("worker shutdown timed out waiting for drain", zap.String("worker_id", w.cfg.WorkerID))
	}

	w.mu.Lock()
	w.health = HealthStopped
	w.mu.Unlock()
}

func (w *Worker) heartbeatLoop(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.cfg.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.mu.Lock()
			w.lastHeartbeat = time.Now()
			w.mu.Unlock()
			w.metrics.QueueDepth.Set(float64(w.q.Len()))
			stats := w.db.Stats()
			w.metrics.PoolActiveConns.Set(float64(stats.InUse))
			w.metrics.PoolIdleConns.Set(float64(stats.Idle))
		}
	}
}

// consumeLoop is the receive-process-record loop. It never panics
// the worker on a single failed item; errors are logged and recorded as
// Failed in the status store, and the loop continues.
func (w *Worker) consumeLoop(ctx context.Context) {
	defer w.wg.Done()

	for {
		item, ok := w.q.Recv()
		if !ok {
			return
		}
		w.processItem(ctx, item)
		w.metrics.QueueDepth.Set(float64(w.q.Len()))
	}
}

func (w *Worker) processItem(ctx context.Context, item model.QueueItem) {
	order, retried, err := w.fulfillWithRetry(ctx, item.Command)
	if err != nil {
		reason := err.Error()
		if ae, ok := apperrors.AsServiceError(err); ok {
			reason = ae.Message
		} else if re, ok := apperrors.AsRepoError(err); ok {
			reason = re.Error()
		}
		w.store.Update(item.OrderID, model.Failed(reason))
		w.workerStats.recordProcessed(false, retried)
		w.log.Warn("order fulfillment failed",
			zap.String("order_id", item.OrderID.String()),
			zap.String("reason", reason),
		)
		w.publisher.PublishOrderFailed(ctx, item.OrderID, reason)
		return
	}

	w.store.Update(item.OrderID, model.Completed(order))
	w.workerStats.recordProcessed(true, retried)
	w.log.Info("order fulfilled",
		zap.String("order_id", item.OrderID.String()),
		zap.Int("quantity", order.Quantity),
	)
	w.publisher.PublishOrderConfirmed(ctx, order)
}

// fulfillWithRetry opens a transaction per attempt and
// invokes the fulfillment transaction inside it, retrying up to
// cfg.MaxRetries times on a serialization failure or a lost race against
// the idempotency_key unique constraint — both of which require the whole
// fulfillment to run again from step 1, not just the failing statement.
func (w *Worker) fulfillWithRetry(ctx context.Context, cmd model.CreateOrderCommand) (*model.Order, bool, error) {
	backoff := retry.NewExponential(w.cfg.RetryBackoffBase)
	backoff = retry.WithMaxRetries(w.cfg.MaxRetries, backoff)

	var result *model.Order
	retried := false
	attempt := 0

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if attempt > 0 {
			retried = true
		}
		attempt++

		tx, err := w.db.Begin()
		if err != nil {
			return apperrors.NewRepoConnectionPool(err)
		}

		order, err := w.fulfillment.Fulfill(ctx, tx, cmd)
		if err != nil {
			_ = tx.Rollback()
			if apperrors.IsRetryable(err) || service.IsRaceLost(err) {
				return retry.RetryableError(err)
			}
			return err
		}

		if err := tx.Commit(); err != nil {
			return apperrors.NewRepoDatabase("commit", err)
		}

		result = order
		return nil
	})

	return result, retried, err
}

// Health reports the current health status and the time of the last
// recorded heartbeat.
func (w *Worker) Health() (HealthStatus, time.Time) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.health, w.lastHeartbeat
}

func (w *Worker) StatsSnapshot() Metrics {
	return w.workerStats.Snapshot()
}
