package notifications

import (
	"context"
	"sync"
	"time"
)

// EventType identifies a change to the set of visible notifications.
type EventType string

const (
	EventPublished EventType = "published"
	EventDismissed EventType = "dismissed"
	EventExpired   EventType = "expired"
	EventCleared   EventType = "cleared"
)

// Event describes a single change applied by the Manager.
// Notification is zero for EventCleared; Removed is only set for EventCleared.
type Event struct {
	Type         EventType
	Notification Notification
	Removed      int
	At           time.Time
}

// Subscription receives change events from a Manager.
type Subscription struct {
	ch     chan Event
	stop   chan struct{}
	closed bool
	mu     sync.RWMutex
}

func newSubscription(bufferSize int) *Subscription {
	return &Subscription{
		ch:   make(chan Event, bufferSize),
		stop: make(chan struct{}),
	}
}

// Events returns the channel events are delivered on.
// The channel is closed when the subscription or the Manager is closed.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close stops delivery and closes the events channel. It is idempotent.
func (s *Subscription) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		close(s.stop)
		s.closed = true
	}
	return nil
}

func (s *Subscription) done() <-chan struct{} {
	return s.stop
}

func (s *Subscription) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func (s *Subscription) send(e Event) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- e:
		return true
	default:
		return false
	}
}

// feed fans events out to subscribers without ever blocking the publisher.
// A subscriber whose buffer is full misses the event; the renderer is
// expected to resync from List.
type feed struct {
	subs       map[*Subscription]struct{}
	bufferSize int
	closed     bool
	mu         sync.Mutex
	wg         sync.WaitGroup
}

func newFeed(bufferSize int) *feed {
	return &feed{
		subs:       make(map[*Subscription]struct{}),
		bufferSize: max(bufferSize, 1),
	}
}

func (f *feed) subscribe(ctx context.Context) *Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()

	sub := newSubscription(f.bufferSize)
	if f.closed {
		_ = sub.Close()
		return sub
	}
	f.subs[sub] = struct{}{}

	if ctx.Done() != nil {
		f.wg.Add(1)
		go func() {
			defer f.wg.Done()
			select {
			case <-ctx.Done():
				f.unsubscribe(sub)
			case <-sub.done():
			}
		}()
	}

	return sub
}

func (f *feed) emit(e Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	for sub := range f.subs {
		if !sub.send(e) && sub.isClosed() {
			delete(f.subs, sub)
		}
	}
}

func (f *feed) unsubscribe(sub *Subscription) {
	f.mu.Lock()
	delete(f.subs, sub)
	f.mu.Unlock()
	_ = sub.Close()
}

func (f *feed) close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	for sub := range f.subs {
		_ = sub.Close()
	}
	clear(f.subs)
	f.mu.Unlock()

	f.wg.Wait()
}

func (f *feed) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
