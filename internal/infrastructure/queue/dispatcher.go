package queue

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	"github.com/adsc/report-system/internal/core/domain"
	"github.com/adsc/report-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Observer receives dispatcher outcomes. Observer methods must not block.
type Observer interface {
	Written()
	Failed()
	Dropped()
}

type nopObserver struct{}

func (nopObserver) Written() {}
func (nopObserver) Failed()  {}
func (nopObserver) Dropped() {}

// Dispatcher writes activity entries in the background. Entries are sharded
// by user id so one user's entries are written in order.
type Dispatcher struct {
	workers  []chan domain.ActivityLog
	service  ports.ActivityService
	observer Observer
	log      zerolog.Logger

	mu      sync.RWMutex
	closed  bool
	running conc.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used. observer may be nil.
func NewDispatcher(numWorkers int, service ports.ActivityService, observer Observer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if observer == nil {
		observer = nopObserver{}
	}
	d := &Dispatcher{
		workers:  make([]chan domain.ActivityLog, numWorkers),
		service:  service,
		observer: observer,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ActivityLog, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers run until Stop drains them.
func (d *Dispatcher) Start() {
	for i, ch := range d.workers {
		d.running.Go(func() { d.runWorker(i, ch) })
	}
}

// Record enqueues an entry without blocking. A full shard drops the entry.
func (d *Dispatcher) Record(entry domain.ActivityLog) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.drop(entry, "dispatcher stopped")
		return
	}

	select {
	case d.workers[d.shardIndex(entry.UserID)] <- entry:
	default:
		d.drop(entry, "activity queue full")
	}
}

func (d *Dispatcher) drop(entry domain.ActivityLog, reason string) {
	d.observer.Dropped()
	d.log.Warn().
		Str("action", string(entry.Action)).
		Str("user_id", entry.UserID).
		Msg(reason + ", activity entry dropped")
}

// Pending is the number of queued entries across all shards.
func (d *Dispatcher) Pending() int {
	n := 0
	for _, ch := range d.workers {
		n += len(ch)
	}
	return n
}

// Stop closes the queues and waits for queued entries to be written, or for
// ctx to end.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.running.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(id int, ch <-chan domain.ActivityLog) {
	for entry := range ch {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := d.service.Write(ctx, entry)
		cancel()
		if err != nil {
			d.observer.Failed()
			d.log.Error().Err(err).
				Str("action", string(entry.Action)).
				Str("user_id", entry.UserID).
				Int("worker_id", id).
				Msg("activity write failed")
			continue
		}
		d.observer.Written()
	}
}
