// Package events fans record-store mutations out to subscribers.
package events

import (
	"slices"
	"sync"
	"time"

	"FreshKeep/entities"
)

type Type string

const (
	FoodAdded             Type = "food_added"
	FoodUpdated           Type = "food_updated"
	FoodRemoved           Type = "food_removed"
	DonationCreated       Type = "donation_created"
	DonationUpdated       Type = "donation_updated"
	DonationClaimed       Type = "donation_claimed"
	DonationStatusChanged Type = "donation_status_changed"
)

// Event carries a snapshot of the record after the mutation. For
// FoodRemoved, Food is the record as it was before removal.
type Event struct {
	Type       Type
	At         time.Time
	Food       *entities.FoodItem
	Donation   *entities.Donation
	PrevStatus string
}

type Handler func(Event)

type (
	Bus interface {
		Subscribe(h Handler) (unsubscribe func())
		Publish(e Event)
	}

	bus struct {
		mu       sync.RWMutex
		next     int
		handlers map[int]Handler
	}
)

func NewBus() Bus {
	return &bus{handlers: make(map[int]Handler)}
}

func (b *bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.handlers[id] = h

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.handlers, id)
		})
	}
}

// Publish calls every handler synchronously, in subscription order.
func (b *bus) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}

	b.mu.RLock()
	ids := make([]int, 0, len(b.handlers))
	for id := range b.handlers {
		ids = append(ids, id)
	}
	handlers := make([]Handler, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		handlers = append(handlers, b.handlers[id])
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(e)
	}
}

// Nop is a Bus that drops everything.
var Nop Bus = nopBus{}

type nopBus struct{}

func (nopBus) Subscribe(Handler) func() { return func() {} }
func (nopBus) Publish(Event)            {}
