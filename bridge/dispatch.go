package bridge

import (
	"context"
	"sync"
)

// Dispatcher serializes all controller work onto a single goroutine, the
// host analog of the platform main looper. Handlers posted while another
// handler runs execute strictly after it returns; nothing in the controller
// needs locking as a result.
//
// The queue is unbounded so Post never blocks, which keeps the "control
// returns immediately" contract for subsystems posting results from their
// own goroutines.
type Dispatcher struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	closed bool
}

// NewDispatcher creates a Dispatcher. Run must be called for posted work to
// execute.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		wake: make(chan struct{}, 1),
	}
}

// Post enqueues fn. Safe to call from any goroutine, including from a
// handler already running on the dispatcher.
func (d *Dispatcher) Post(fn func()) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.queue = append(d.queue, fn)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Run executes posted work until ctx is cancelled. It must be called from
// exactly one goroutine.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			d.mu.Lock()
			d.closed = true
			d.queue = nil
			d.mu.Unlock()
			return
		case <-d.wake:
			d.drain()
		}
	}
}

func (d *Dispatcher) drain() {
	for {
		d.mu.Lock()
		if len(d.queue) == 0 {
			d.mu.Unlock()
			return
		}
		fn := d.queue[0]
		d.queue = d.queue[1:]
		d.mu.Unlock()

		fn()
	}
}

// call runs fn on the dispatcher and waits for it to finish. Used for
// introspection from other goroutines; never call it from a handler already
// on the dispatcher.
func (d *Dispatcher) call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	d.Post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
