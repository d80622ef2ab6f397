package writer

import (
	"sync"
	"time"

	"github.com/structlog-go/structlog/core"
)

// AsyncConfig holds configuration for an async writer
type AsyncConfig struct {
	// QueueSize is the capacity of the bounded queue (default: 1000)
	QueueSize int
	// Policy defines the behavior when the queue is full (default: Block)
	Policy OverflowPolicy
	// BlockTimeout bounds the wait of the Block policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout bounds queue draining on Close (default: 5s)
	DrainTimeout time.Duration
}

func applyAsyncDefaults(cfg *AsyncConfig) {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}
	if cfg.BlockTimeout == 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = 5 * time.Second
	}
}

// Async decouples producers from destination latency. Records are
// enqueued onto a bounded FIFO channel and consumed by a single
// background goroutine, which is the only caller of the wrapped writer.
// The single-consumer property alone serializes the destination, and
// FIFO consumption preserves the order in which records were enqueued.
//
// When the queue is full the configured OverflowPolicy decides the
// outcome. With the default Block policy the producer waits up to
// BlockTimeout for space and the incoming record is dropped when the
// wait expires; DropOldest evicts the head of the queue instead, and
// DropNewest drops the incoming record without waiting. Every drop is
// counted in Stats rather than surfaced per event.
type Async struct {
	w            Writer
	queue        chan *core.Record
	wg           sync.WaitGroup
	policy       OverflowPolicy
	blockTimeout time.Duration
	drainTimeout time.Duration
	closed       chan struct{}
	closeOnce    sync.Once
	stats        Stats
}

// NewAsync wraps w behind a bounded queue and starts the consumer.
// Once wrapped, no other caller may write to w directly.
func NewAsync(w Writer, cfg AsyncConfig) *Async {
	applyAsyncDefaults(&cfg)
	a := &Async{
		w:            w,
		queue:        make(chan *core.Record, cfg.QueueSize),
		policy:       cfg.Policy,
		blockTimeout: cfg.BlockTimeout,
		drainTimeout: cfg.DrainTimeout,
		closed:       make(chan struct{}),
	}
	a.wg.Add(1)
	go a.process()
	return a
}

// Write enqueues rec for background delivery. It never returns an
// error: overflow and post-shutdown drops are recorded in Stats, since
// per-event propagation would defeat the decoupling.
func (a *Async) Write(rec *core.Record) error {
	select {
	case <-a.closed:
		a.drop(rec)
		return nil
	default:
	}

	switch a.policy {
	case DropOldest:
		select {
		case a.queue <- rec:
			a.sweepAfterClose()
			return nil
		default:
		}
		// Queue full - evict the oldest to make room
		select {
		case old := <-a.queue:
			a.drop(old)
		default:
		}
		select {
		case a.queue <- rec:
			a.sweepAfterClose()
		default:
			// Still full, drop the incoming record
			a.drop(rec)
		}
		return nil

	case DropNewest:
		select {
		case a.queue <- rec:
			a.sweepAfterClose()
		default:
			a.drop(rec)
		}
		return nil

	default: // Block
		select {
		case a.queue <- rec:
			a.sweepAfterClose()
			return nil
		default:
		}
		a.stats.blocked.Add(1)
		timer := time.NewTimer(a.blockTimeout)
		select {
		case a.queue <- rec:
			timer.Stop()
			a.sweepAfterClose()
		case <-timer.C:
			a.drop(rec)
		case <-a.closed:
			timer.Stop()
			a.drop(rec)
		}
		return nil
	}
}

// sweepAfterClose re-checks the shutdown flag after a successful
// enqueue. A send can complete after Close has already drained the
// queue; without the sweep that record would be stranded, neither
// written nor counted. Pulling one record drops the sender's own
// record or an equivalent one another racer already accounted for.
func (a *Async) sweepAfterClose() {
	select {
	case <-a.closed:
		select {
		case rec := <-a.queue:
			a.drop(rec)
		default:
		}
	default:
	}
}

// CanRecycleRecord returns false because the consumer goroutine
// processes records after Write returns.
func (a *Async) CanRecycleRecord() bool {
	return false
}

// Unwrap returns the wrapped synchronous writer. The panic capture
// path uses it to bypass the queue when the process is about to die.
func (a *Async) Unwrap() Writer {
	return a.w
}

// Stats returns a snapshot of the drop, block, and processed counters.
func (a *Async) Stats() Snapshot {
	return a.stats.Snapshot()
}

func (a *Async) drop(rec *core.Record) {
	a.stats.dropped.Add(1)
	core.PutRecord(rec)
}

func (a *Async) consume(rec *core.Record) {
	if err := a.w.Write(rec); err != nil {
		ReportFailure(err)
	} else {
		a.stats.processed.Add(1)
	}
	core.PutRecord(rec)
}

// process is the single consumer goroutine
func (a *Async) process() {
	defer a.wg.Done()

	for {
		select {
		case rec := <-a.queue:
			a.consume(rec)
		case <-a.closed:
			// Drain remaining records with a bounded grace period
			deadline := time.After(a.drainTimeout)
			for {
				select {
				case rec := <-a.queue:
					a.consume(rec)
				case <-deadline:
					return
				default:
					// Queue empty
					return
				}
			}
		}
	}
}

// Close stops accepting records, drains the remaining queue up to
// DrainTimeout, then closes the wrapped writer. Only after the drain
// completes does Close return, so callers get the drain-then-signal
// durability contract for everything enqueued before shutdown.
func (a *Async) Close() error {
	var err error
	a.closeOnce.Do(func() {
		close(a.closed)
		a.wg.Wait()

		// Anything the drain deadline left behind counts as dropped
		for {
			select {
			case rec := <-a.queue:
				a.drop(rec)
			default:
				err = a.w.Close()
				return
			}
		}
	})
	return err
}
