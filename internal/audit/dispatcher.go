package audit

import (
	"context"
	"sync"
	"sync/atomic"
)

// Dispatcher decouples flow execution from sink latency: events are
// queued onto a buffered channel and forwarded by a single worker
// goroutine.
type Dispatcher struct {
	sink       Sink
	dropIfFull bool

	queue chan Event
	done  chan struct{}

	worker  sync.WaitGroup
	dropped atomic.Uint64
	closed  atomic.Bool
	once    sync.Once
}

// NewDispatcher starts the worker. buffer is clamped to at least one
// slot; a nil sink degrades to NoOpSink.
func NewDispatcher(sink Sink, buffer int, dropIfFull bool) *Dispatcher {
	if buffer <= 0 {
		buffer = 1
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	d := &Dispatcher{
		sink:       sink,
		dropIfFull: dropIfFull,
		queue:      make(chan Event, buffer),
		done:       make(chan struct{}),
	}

	d.worker.Add(1)
	go d.forward()

	return d
}

func (d *Dispatcher) forward() {
	defer d.worker.Done()

	for {
		select {
		case event := <-d.queue:
			d.sink.Emit(context.Background(), event)
		case <-d.done:
			d.drain()
			return
		}
	}
}

// drain flushes whatever is still queued at close time.
func (d *Dispatcher) drain() {
	for {
		select {
		case event := <-d.queue:
			d.sink.Emit(context.Background(), event)
		default:
			return
		}
	}
}

// Emit queues one event. In drop-if-full mode the call never blocks; a
// full queue increments the drop counter instead. Otherwise it blocks
// until the queue accepts, the context ends, or the dispatcher closes.
func (d *Dispatcher) Emit(ctx context.Context, event Event) {
	if d == nil || d.closed.Load() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if d.dropIfFull {
		select {
		case d.queue <- event:
		case <-d.done:
		default:
			d.dropped.Add(1)
		}
		return
	}

	select {
	case d.queue <- event:
	case <-ctx.Done():
	case <-d.done:
	}
}

// Close drains the queue and stops the worker. Safe to call more than
// once and on a nil dispatcher.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() {
		d.closed.Store(true)
		close(d.done)
		d.worker.Wait()
	})
}

// Dropped reports how many events drop-if-full mode discarded.
func (d *Dispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
