// Package spsc provides a bounded single-producer/single-consumer queue.
//
// The queue is split at construction into a Producer and a Consumer handle.
// Exactly one goroutine may own each handle; ownership is transferred by
// handing the pointer to that goroutine, never by sharing it. Push and Pop
// never block and never take a lock.
package spsc

import (
	"errors"
	"sync/atomic"
)

var (
	// ErrFull is returned by Push when the queue holds Cap values.
	ErrFull = errors.New("spsc: queue full")
	// ErrEmpty is returned by Pop when no value is available.
	ErrEmpty = errors.New("spsc: queue empty")
)

// noCopy makes go vet's copylocks check flag handles passed by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// ring is the shared storage. head is written only by the consumer, tail only
// by the producer. Both are monotonically increasing; the slot index is the
// counter modulo len(buf).
type ring[T any] struct {
	buf  []T
	head atomic.Uint64
	_    [56]byte // keep head and tail on separate cache lines
	tail atomic.Uint64
}

// Producer is the write half of a queue.
type Producer[T any] struct {
	_ noCopy
	r *ring[T]

	// cached copy of r.head, refreshed only when the queue looks full
	head uint64
}

// Consumer is the read half of a queue.
type Consumer[T any] struct {
	_ noCopy
	r *ring[T]

	// cached copy of r.tail, refreshed only when the queue looks empty
	tail uint64
}

// New creates a queue holding at most capacity values and returns its two
// halves. A capacity below 1 is raised to 1.
func New[T any](capacity int) (*Producer[T], *Consumer[T]) {
	if capacity < 1 {
		capacity = 1
	}
	r := &ring[T]{buf: make([]T, capacity)}
	return &Producer[T]{r: r}, &Consumer[T]{r: r}
}

// Push appends v to the queue. It returns ErrFull without blocking when the
// consumer has not drained enough values.
func (p *Producer[T]) Push(v T) error {
	tail := p.r.tail.Load()
	size := uint64(len(p.r.buf))
	if tail-p.head == size {
		p.head = p.r.head.Load()
		if tail-p.head == size {
			return ErrFull
		}
	}
	p.r.buf[tail%size] = v
	p.r.tail.Store(tail + 1)
	return nil
}

// Pop removes and returns the oldest value. It returns the zero value and
// ErrEmpty without blocking when nothing is queued.
func (c *Consumer[T]) Pop() (T, error) {
	var zero T
	head := c.r.head.Load()
	if head == c.tail {
		c.tail = c.r.tail.Load()
		if head == c.tail {
			return zero, ErrEmpty
		}
	}
	i := head % uint64(len(c.r.buf))
	v := c.r.buf[i]
	c.r.buf[i] = zero // drop references held by the slot
	c.r.head.Store(head + 1)
	return v, nil
}

// Len returns the number of values waiting to be popped.
func (c *Consumer[T]) Len() int {
	c.tail = c.r.tail.Load()
	return int(c.tail - c.r.head.Load())
}

