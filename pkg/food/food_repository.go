package food

import (
	"context"
	"slices"
	"sync"
	"time"

	"FreshKeep/domain"
	"FreshKeep/entities"
	"FreshKeep/pkg/events"
	"FreshKeep/pkg/storage"

	"github.com/google/uuid"
)

type (
	FoodRepository interface {
		Add(ctx context.Context, item entities.FoodItem) (string, error)
		Update(ctx context.Context, id string, patch domain.FoodItemPatch) (entities.FoodItem, error)
		Remove(ctx context.Context, id string) error
		Get(ctx context.Context, id string) (entities.FoodItem, error)
		List(ctx context.Context) []entities.FoodItem
	}

	foodRepository struct {
		mu    sync.RWMutex
		items []entities.FoodItem
		slot  *storage.Slot[entities.FoodItem]
		bus   events.Bus
		now   func() time.Time
	}
)

// NewFoodRepository loads the inventory from key, falling back to the
// seed inventory dated in now()'s location, and mirrors every later
// mutation back to it.
func NewFoodRepository(ctx context.Context, store storage.KeyValueStore, key string, bus events.Bus, now func() time.Time) FoodRepository {
	if bus == nil {
		bus = events.Nop
	}
	if now == nil {
		now = time.Now
	}
	slot := storage.NewSlot[entities.FoodItem](store, key)
	return &foodRepository{
		items: slot.Load(ctx, func() []entities.FoodItem { return SeedFoodItems(now().Location()) }),
		slot:  slot,
		bus:   bus,
		now:   now,
	}
}

func (r *foodRepository) Add(ctx context.Context, item entities.FoodItem) (string, error) {
	r.mu.Lock()
	if item.ID == "" || r.indexOf(item.ID) >= 0 {
		item.ID = uuid.NewString()
	}
	r.items = append(r.items, item)
	r.persist(ctx)
	r.mu.Unlock()

	r.bus.Publish(events.Event{Type: events.FoodAdded, At: r.now(), Food: &item})
	return item.ID, nil
}

func (r *foodRepository) Update(ctx context.Context, id string, patch domain.FoodItemPatch) (entities.FoodItem, error) {
	r.mu.Lock()
	i := r.indexOf(id)
	if i < 0 {
		r.mu.Unlock()
		return entities.FoodItem{}, domain.ErrFoodItemNotFound
	}
	updated := r.items[i]
	applyPatch(&updated, patch)
	if !updated.PurchaseDate.IsZero() && updated.ExpiryDate.Before(updated.PurchaseDate) {
		r.mu.Unlock()
		return entities.FoodItem{}, domain.ErrExpiryBeforeBought
	}
	r.items[i] = updated
	r.persist(ctx)
	r.mu.Unlock()

	r.bus.Publish(events.Event{Type: events.FoodUpdated, At: r.now(), Food: &updated})
	return updated, nil
}

func (r *foodRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	i := r.indexOf(id)
	if i < 0 {
		r.mu.Unlock()
		return domain.ErrFoodItemNotFound
	}
	removed := r.items[i]
	r.items = slices.Delete(r.items, i, i+1)
	r.persist(ctx)
	r.mu.Unlock()

	r.bus.Publish(events.Event{Type: events.FoodRemoved, At: r.now(), Food: &removed})
	return nil
}

func (r *foodRepository) Get(_ context.Context, id string) (entities.FoodItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return entities.FoodItem{}, domain.ErrFoodItemNotFound
	}
	return r.items[i], nil
}

func (r *foodRepository) List(_ context.Context) []entities.FoodItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.items)
}

// indexOf expects r.mu to be held.
func (r *foodRepository) indexOf(id string) int {
	return slices.IndexFunc(r.items, func(it entities.FoodItem) bool { return it.ID == id })
}

// persist expects r.mu to be held so mirror writes land in mutation order.
func (r *foodRepository) persist(ctx context.Context) {
	r.slot.Save(context.WithoutCancel(ctx), slices.Clone(r.items))
}

func applyPatch(item *entities.FoodItem, p domain.FoodItemPatch) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.PurchaseDate != nil {
		item.PurchaseDate = *p.PurchaseDate
	}
	if p.ExpiryDate != nil {
		item.ExpiryDate = *p.ExpiryDate
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.Unit != nil {
		item.Unit = *p.Unit
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}
	if p.ImageURL != nil {
		item.ImageURL = *p.ImageURL
	}
}
