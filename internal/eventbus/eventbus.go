// Package eventbus decouples the plan-computing surfaces (HTTP, MQTT, CLI)
// from the recording loop: handlers publish computed plans, the service
// consumes and records them.
package eventbus

import (
	"sync"
	"time"

	"github.com/tanklogix/loadplan/core/model"
)

// PlanComputed is emitted once per planning pass.
type PlanComputed struct {
	PlanID    string
	Source    string
	TrailerID string
	Result    model.PlanResult
	Elapsed   time.Duration
	At        time.Time
}

// Bus is a fan-out publish/subscribe bus for plan events. Delivery is
// non-blocking: a slow subscriber drops events rather than stalling a
// planning surface.
type Bus struct {
	mu     sync.RWMutex
	subs   []chan PlanComputed
	closed bool
}

// New creates a new Bus.
func New() *Bus { return &Bus{} }

// Publish sends the event to all subscribers.
func (b *Bus) Publish(e PlanComputed) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe registers a new subscriber and returns its channel.
func (b *Bus) Subscribe() <-chan PlanComputed {
	ch := make(chan PlanComputed, 8)
	b.mu.Lock()
	if b.closed {
		close(ch)
	} else {
		b.subs = append(b.subs, ch)
	}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (b *Bus) Unsubscribe(sub <-chan PlanComputed) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, ch := range b.subs {
		if ch == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			if !b.closed {
				close(ch)
			}
			return
		}
	}
}

// Close closes all subscriber channels and clears the list.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
	b.mu.Unlock()
}
