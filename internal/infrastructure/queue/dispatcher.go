package queue

import (
	"context"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/societyhub/apartment-system/internal/core/domain"
	"github.com/societyhub/apartment-system/internal/core/ports"
	"github.com/societyhub/apartment-system/internal/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes visitor notifications to a fixed set of workers, sharded
// by visitor id so notifications about one visitor are processed in order.
type Dispatcher struct {
	workers []chan domain.VisitorNotification
	service ports.NotificationService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.NotificationService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.VisitorNotification, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.VisitorNotification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands n to the worker responsible for its visitor. It never blocks
// the request path: when that worker's buffer is full the notification is
// dropped and counted.
func (d *Dispatcher) Enqueue(n domain.VisitorNotification) {
	idx := d.shardIndex(n.VisitorID)
	select {
	case d.workers[idx] <- n:
		metrics.NotificationsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.NotificationsErrorsTotal.WithLabelValues("queue_full").Inc()
		d.log.Warn().Int64("visitor_id", n.VisitorID).Int("worker_id", idx).Msg("notification queue full, dropping")
	}
}

// shardIndex maps a visitor id deterministically to a worker index.
func (d *Dispatcher) shardIndex(visitorID int64) int {
	n := int64(len(d.workers))
	return int(((visitorID % n) + n) % n)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.VisitorNotification) {
	defer d.wg.Done()
	depth := metrics.NotificationsQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			// Processing outlives the request that enqueued n but not shutdown.
			if err := d.service.Process(ctx, n); err != nil {
				d.log.Error().Err(err).
					Int64("visitor_id", n.VisitorID).
					Str("kind", string(n.Kind)).
					Int("worker_id", id).
					Msg("notification processing failed")
			}
		}
	}
}
