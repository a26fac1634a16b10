package stream

import (
	"context"
	"sync"
)

// Channel is an unbounded FIFO queue connecting exactly one producer goroutine
// to exactly one consumer. Send never blocks; Receive blocks until an event is
// available or the channel is closed and drained.
//
// End-of-stream is signaled natively rather than with a sentinel value:
// Receive reports ok == false once Close has been called and every queued
// event has been delivered. The last real event a well-formed run delivers is
// its close event; the ok == false return is the termination signal and must
// not be treated as an event.
type Channel struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Event
	closed bool
}

// NewChannel creates an empty, open channel. Each run owns exactly one
// channel; channels are never reused across runs.
func NewChannel() *Channel {
	c := &Channel{}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Send enqueues an event. It never blocks. Sending on a closed channel is a
// protocol violation by the producer; the event is dropped rather than
// delivered out of contract.
func (c *Channel) Send(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.queue = append(c.queue, ev)
	c.cond.Signal()
}

// Close marks the channel as finished. Idempotent: closing twice has no
// additional effect, so both a success path and a deferred cleanup path may
// call it safely. Events already queued remain receivable.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.cond.Broadcast()
}

// Receive blocks until an event is available and returns it with ok == true.
// It returns ok == false when no event will ever be delivered again: either
// the channel is closed and drained, or ctx was canceled. Callers must stop
// calling Receive once ok == false.
func (c *Channel) Receive(ctx context.Context) (Event, bool) {
	// Wake waiters when the context is canceled; Wait cannot observe
	// ctx.Done() on its own.
	stop := context.AfterFunc(ctx, func() {
		c.mu.Lock()
		c.cond.Broadcast()
		c.mu.Unlock()
	})
	defer stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.queue) == 0 && !c.closed && ctx.Err() == nil {
		c.cond.Wait()
	}
	if len(c.queue) == 0 || ctx.Err() != nil {
		return Event{}, false
	}
	ev := c.queue[0]
	c.queue = c.queue[1:]
	return ev, true
}

// Len reports the number of undelivered events. Intended for tests and
// diagnostics only.
func (c *Channel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}
