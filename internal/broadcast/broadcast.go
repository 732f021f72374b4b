// Package broadcast implements a single-producer, multi-subscriber channel
// with bounded per-subscriber lag tolerance.
package broadcast

import "sync"

// Broadcaster fans out published values to all current subscribers. Each
// subscriber owns a bounded buffer; when it fills up, the oldest unread
// values are dropped and delivery resumes from the newest, so a slow
// subscriber only degrades its own freshness, never the producer or the
// other subscribers.
type Broadcaster[T any] struct {
	mu   sync.Mutex
	subs map[*Subscriber[T]]struct{}
	size int
}

// Subscriber is a single consumer attached to a Broadcaster.
type Subscriber[T any] struct {
	ch chan T
	b  *Broadcaster[T]
}

// New returns a Broadcaster whose subscribers buffer up to size values.
func New[T any](size int) *Broadcaster[T] {
	if size <= 0 {
		size = 1
	}

	return &Broadcaster[T]{
		subs: make(map[*Subscriber[T]]struct{}),
		size: size,
	}
}

// Subscribe attaches a new subscriber which receives every value published
// after this call, subject to the lag-drop policy.
func (b *Broadcaster[T]) Subscribe() *Subscriber[T] {
	sub := &Subscriber[T]{
		ch: make(chan T, b.size),
		b:  b,
	}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	return sub
}

// Publish delivers v to every subscriber without ever blocking the caller.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subs {
		sub.offer(v)
	}
}

// Len reports the number of attached subscribers.
func (b *Broadcaster[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.subs)
}

func (s *Subscriber[T]) offer(v T) {
	for {
		select {
		case s.ch <- v:
			return
		default:
		}

		// buffer is full: drop the oldest unread value and retry
		select {
		case <-s.ch:
		default:
		}
	}
}

// Ch returns the channel values are delivered on.
func (s *Subscriber[T]) Ch() <-chan T {
	return s.ch
}

// Close detaches the subscriber. Values published afterwards are no longer
// delivered; already buffered values remain readable.
func (s *Subscriber[T]) Close() {
	s.b.mu.Lock()
	delete(s.b.subs, s)
	s.b.mu.Unlock()
}
