package events

import (
	"sync"
)

// Emitter is the host notification surface the HUD subscribes to
// Tests inject a fake; the CLI uses Bus
type Emitter interface {
	// Subscribe registers fn for events of type t and returns a removal function
	Subscribe(t EventType, fn func(Event)) (unsubscribe func())
}

type subscription struct {
	id uint64
	fn func(Event)
}

// Bus is an in-process Emitter with synchronous fan-out
// Subscribers are invoked on the publishing goroutine in subscription order
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[EventType][]subscription
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{subs: make(map[EventType][]subscription)}
}

// Subscribe implements Emitter
func (b *Bus) Subscribe(t EventType, fn func(Event)) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[t] = append(b.subs[t], subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			list := b.subs[t]
			for i, s := range list {
				if s.id == id {
					b.subs[t] = append(list[:i:i], list[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish delivers ev to every subscriber of its type
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	list := b.subs[ev.Type]
	fns := make([]func(Event), len(list))
	for i, s := range list {
		fns[i] = s.fn
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Emit is shorthand for Publish(NewEvent(t, payload))
func (b *Bus) Emit(t EventType, payload any) {
	b.Publish(NewEvent(t, payload))
}

// SubscriberCount returns the number of subscribers for t
func (b *Bus) SubscriberCount(t EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[t])
}
