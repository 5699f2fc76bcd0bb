package audit

import (
	"sync"
	"sync/atomic"
)

// DispatcherConfig tunes the async forwarding pipeline.
type DispatcherConfig struct {
	// BufferSize is the queue depth between producers and the sink.
	BufferSize int
	// DropIfFull drops events when the queue is full instead of
	// blocking the caller. Auth paths should never stall on a slow
	// sink, so this is the default in the engine.
	DropIfFull bool
}

// Dispatcher decouples event producers from a Sink with a buffered
// queue drained by a single goroutine. It is itself a Sink, so it can
// sit in front of any other implementation.
type Dispatcher struct {
	sink    Sink
	queue   chan Event
	dropIf  bool
	dropped atomic.Uint64

	closeOnce sync.Once
	done      chan struct{}
}

// NewDispatcher starts the drain goroutine and returns the dispatcher.
// Call Close to flush and stop it.
func NewDispatcher(sink Sink, cfg DispatcherConfig) *Dispatcher {
	size := cfg.BufferSize
	if size <= 0 {
		size = 1024
	}

	d := &Dispatcher{
		sink:   sink,
		queue:  make(chan Event, size),
		dropIf: cfg.DropIfFull,
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for event := range d.queue {
		d.sink.Write(event)
	}
}

// Write enqueues one event. With DropIfFull set a full queue increments
// the dropped counter instead of blocking.
func (d *Dispatcher) Write(event Event) {
	if d.dropIf {
		select {
		case d.queue <- event:
		default:
			d.dropped.Add(1)
		}
		return
	}
	d.queue <- event
}

// Dropped reports how many events were discarded due to a full queue.
func (d *Dispatcher) Dropped() uint64 {
	return d.dropped.Load()
}

// Close stops intake, drains the queue into the sink and waits for the
// drain goroutine to exit. It is idempotent; Write after Close panics.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
		<-d.done
	})
}
