package bus

import (
	"context"
	"sync"

	"github.com/yanun0323/logs"

	"main/pkg/exception"
)

// Handler processes one event. The consumption loop invokes exactly one
// handler at a time, so handlers never need their own locking for state
// that only the bus touches.
type Handler func(Event)

// Bus is a bounded in-memory dispatch queue with per-type handlers.
// Delivery order equals post order; no ordering is guaranteed across
// event types beyond that single FIFO.
type Bus struct {
	ch       chan Event
	mu       sync.RWMutex
	closed   bool
	handlers map[EventType]Handler
}

// New allocates a bus with the given queue capacity.
func New(capacity int) *Bus {
	if capacity <= 0 {
		capacity = 1
	}
	return &Bus{
		ch:       make(chan Event, capacity),
		handlers: make(map[EventType]Handler),
	}
}

// Register binds a handler to an event type. Register before Run; the
// handler table is not guarded against concurrent mutation.
func (b *Bus) Register(t EventType, h Handler) error {
	if h == nil {
		return exception.ErrNilBusHandler
	}
	if !t.IsAvailable() {
		return exception.ErrUnknownBusType
	}
	b.handlers[t] = h
	return nil
}

// Post enqueues an event without blocking the caller. The closed check
// and the send share the lock with Close, so a post racing a teardown
// returns ErrBusClosed instead of hitting a closed channel.
func (b *Bus) Post(e Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return exception.ErrBusClosed
	}
	select {
	case b.ch <- e:
		return nil
	default:
		return exception.ErrBusQueueFull
	}
}

// Close stops the bus from accepting new events. Events already queued
// are still delivered by Run.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	close(b.ch)
}

// Run consumes events until the context is done or the bus is closed
// and drained. Events without a registered handler are dropped with a
// warning rather than stalling the queue.
func (b *Bus) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-b.ch:
			if !ok {
				return
			}
			h, ok := b.handlers[e.Type()]
			if !ok {
				logs.Warnf("bus: no handler for event type %d, dropped", e.Type())
				continue
			}
			h(e)
		}
	}
}
