package events

import (
	"sync"
)

// DefaultSubscriptionCapacity is the buffer size of a single subscription
// channel. When a subscriber falls behind, the oldest buffered events are
// dropped first.
const DefaultSubscriptionCapacity = 64

// Publisher accepts events for delivery. It is implemented by the Bus and
// satisfied by a nil *Bus, so components can publish unconditionally.
type Publisher interface {
	Publish(Event)
}

// Bus fans node events out to subscribers. Publishing never blocks: a slow
// subscriber loses its oldest buffered events instead of stalling the
// publishing component.
type Bus struct {
	lk   sync.Mutex
	subs map[*Subscription]struct{}
}

// NewBus creates a new event Bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[*Subscription]struct{}),
	}
}

// Publish delivers the event to all active subscriptions. A nil Bus drops
// all events.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}

	b.lk.Lock()
	defer b.lk.Unlock()
	for sub := range b.subs {
		sub.push(e)
	}
}

// Subscribe creates a Subscription with the default buffer capacity.
func (b *Bus) Subscribe() *Subscription {
	return b.SubscribeWithCapacity(DefaultSubscriptionCapacity)
}

// SubscribeWithCapacity creates a Subscription buffering up to capacity
// events.
func (b *Bus) SubscribeWithCapacity(capacity int) *Subscription {
	if capacity <= 0 {
		capacity = DefaultSubscriptionCapacity
	}

	sub := &Subscription{
		bus: b,
		ch:  make(chan Event, capacity),
	}

	b.lk.Lock()
	b.subs[sub] = struct{}{}
	b.lk.Unlock()
	return sub
}

func (b *Bus) unsubscribe(sub *Subscription) {
	b.lk.Lock()
	delete(b.subs, sub)
	b.lk.Unlock()
}

// Subscription is a single subscriber's bounded view of the event stream.
type Subscription struct {
	bus *Bus
	ch  chan Event
}

// Events returns the channel events are delivered on.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Cancel detaches the subscription from the bus. Buffered events stay
// readable.
func (s *Subscription) Cancel() {
	s.bus.unsubscribe(s)
}

// push enqueues the event, evicting the oldest buffered one when full.
func (s *Subscription) push(e Event) {
	for {
		select {
		case s.ch <- e:
			return
		default:
		}

		select {
		case <-s.ch:
		default:
		}
	}
}
