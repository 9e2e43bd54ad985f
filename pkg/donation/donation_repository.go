package donation

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"FreshKeep/domain"
	"FreshKeep/entities"
	"FreshKeep/pkg/events"
	"FreshKeep/pkg/storage"

	"github.com/google/uuid"
)

type (
	DonationRepository interface {
		Add(ctx context.Context, d entities.Donation) (entities.Donation, error)
		Update(ctx context.Context, id string, patch domain.DonationPatch) (entities.Donation, error)
		Claim(ctx context.Context, id, claimantID string) (entities.Donation, error)
		Transition(ctx context.Context, id, status string) (entities.Donation, error)
		AppendImage(ctx context.Context, id, imageURL string) (entities.Donation, error)
		Get(ctx context.Context, id string) (entities.Donation, error)
		List(ctx context.Context) []entities.Donation
	}

	donationRepository struct {
		mu        sync.RWMutex
		donations []entities.Donation
		slot      *storage.Slot[entities.Donation]
		bus       events.Bus
		now       func() time.Time
	}
)

// NewDonationRepository loads donations from key, falling back to the
// seed listings (anchored at now()), and mirrors every later mutation.
func NewDonationRepository(ctx context.Context, store storage.KeyValueStore, key string, bus events.Bus, now func() time.Time) DonationRepository {
	if bus == nil {
		bus = events.Nop
	}
	if now == nil {
		now = time.Now
	}
	slot := storage.NewSlot[entities.Donation](store, key)
	return &donationRepository{
		donations: slot.Load(ctx, func() []entities.Donation { return SeedDonations(now()) }),
		slot:      slot,
		bus:       bus,
		now:       now,
	}
}

// Add lists a new donation. Status, claimant and timestamps are owned by
// the repository and overwritten here.
func (r *donationRepository) Add(ctx context.Context, d entities.Donation) (entities.Donation, error) {
	now := r.now()
	d = d.Clone()
	d.Status = domain.StatusAvailable
	d.ClaimedBy = ""
	d.CreatedAt = now
	d.UpdatedAt = now
	d.Allergens = NormalizeTags(d.Allergens)
	d.DietaryInfo = NormalizeTags(d.DietaryInfo)

	r.mu.Lock()
	if d.ID == "" || r.indexOf(d.ID) >= 0 {
		d.ID = uuid.NewString()
	}
	r.donations = append(r.donations, d)
	r.persist(ctx)
	r.mu.Unlock()

	out := d.Clone()
	r.bus.Publish(events.Event{Type: events.DonationCreated, At: now, Donation: &out})
	return d.Clone(), nil
}

func (r *donationRepository) Update(ctx context.Context, id string, patch domain.DonationPatch) (entities.Donation, error) {
	r.mu.Lock()
	i := r.indexOf(id)
	if i < 0 {
		r.mu.Unlock()
		return entities.Donation{}, domain.ErrDonationNotFound
	}
	d := r.donations[i].Clone()
	applyPatch(&d, patch)
	if !d.AvailableFrom.IsZero() && d.AvailableUntil.Before(d.AvailableFrom) {
		r.mu.Unlock()
		return entities.Donation{}, domain.ErrInvalidAvailability
	}
	d.UpdatedAt = r.now()
	r.donations[i] = d
	r.persist(ctx)
	r.mu.Unlock()

	out := d.Clone()
	r.bus.Publish(events.Event{Type: events.DonationUpdated, At: d.UpdatedAt, Donation: &out})
	return d.Clone(), nil
}

func (r *donationRepository) Claim(ctx context.Context, id, claimantID string) (entities.Donation, error) {
	claimantID = strings.TrimSpace(claimantID)
	if claimantID == "" {
		return entities.Donation{}, domain.ErrMissingClaimant
	}

	r.mu.Lock()
	i := r.indexOf(id)
	if i < 0 {
		r.mu.Unlock()
		return entities.Donation{}, domain.ErrDonationNotFound
	}
	if r.donations[i].Status != domain.StatusAvailable {
		r.mu.Unlock()
		return entities.Donation{}, domain.ErrDonationNotAvailable
	}
	r.donations[i].Status = domain.StatusClaimed
	r.donations[i].ClaimedBy = claimantID
	r.donations[i].UpdatedAt = r.now()
	d := r.donations[i].Clone()
	r.persist(ctx)
	r.mu.Unlock()

	out := d.Clone()
	r.bus.Publish(events.Event{Type: events.DonationClaimed, At: d.UpdatedAt, Donation: &out, PrevStatus: domain.StatusAvailable})
	return d, nil
}

// Transition moves a claimed donation along its pickup lifecycle, or
// cancels it. Canceling drops the claimant.
func (r *donationRepository) Transition(ctx context.Context, id, status string) (entities.Donation, error) {
	if !domain.IsDonationStatus(status) {
		return entities.Donation{}, domain.ErrInvalidDonationStatus
	}

	r.mu.Lock()
	i := r.indexOf(id)
	if i < 0 {
		r.mu.Unlock()
		return entities.Donation{}, domain.ErrDonationNotFound
	}
	prev := r.donations[i].Status
	if !domain.CanTransition(prev, status) {
		r.mu.Unlock()
		return entities.Donation{}, domain.ErrInvalidStatusTransition
	}
	r.donations[i].Status = status
	if !domain.HasClaimant(status) {
		r.donations[i].ClaimedBy = ""
	}
	r.donations[i].UpdatedAt = r.now()
	d := r.donations[i].Clone()
	r.persist(ctx)
	r.mu.Unlock()

	out := d.Clone()
	r.bus.Publish(events.Event{Type: events.DonationStatusChanged, At: d.UpdatedAt, Donation: &out, PrevStatus: prev})
	return d, nil
}

// AppendImage adds imageURL to the end of the gallery under the lock, so
// concurrent uploads never drop each other's images.
func (r *donationRepository) AppendImage(ctx context.Context, id, imageURL string) (entities.Donation, error) {
	r.mu.Lock()
	i := r.indexOf(id)
	if i < 0 {
		r.mu.Unlock()
		return entities.Donation{}, domain.ErrDonationNotFound
	}
	r.donations[i].Images = append(slices.Clone(r.donations[i].Images), imageURL)
	r.donations[i].UpdatedAt = r.now()
	d := r.donations[i].Clone()
	r.persist(ctx)
	r.mu.Unlock()

	out := d.Clone()
	r.bus.Publish(events.Event{Type: events.DonationUpdated, At: d.UpdatedAt, Donation: &out})
	return d, nil
}

func (r *donationRepository) Get(_ context.Context, id string) (entities.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return entities.Donation{}, domain.ErrDonationNotFound
	}
	return r.donations[i].Clone(), nil
}

func (r *donationRepository) List(_ context.Context) []entities.Donation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot()
}

// snapshot, indexOf and persist expect r.mu to be held.
func (r *donationRepository) snapshot() []entities.Donation {
	out := make([]entities.Donation, len(r.donations))
	for i, d := range r.donations {
		out[i] = d.Clone()
	}
	return out
}

func (r *donationRepository) indexOf(id string) int {
	return slices.IndexFunc(r.donations, func(d entities.Donation) bool { return d.ID == id })
}

func (r *donationRepository) persist(ctx context.Context) {
	r.slot.Save(context.WithoutCancel(ctx), r.snapshot())
}

func applyPatch(d *entities.Donation, p domain.DonationPatch) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Quantity != nil {
		d.Quantity = *p.Quantity
	}
	if p.Category != nil {
		d.Category = *p.Category
	}
	if p.Address != nil {
		d.Location.Address = *p.Address
	}
	if p.Coordinates != nil {
		d.Location.Coordinates = *p.Coordinates
	}
	if p.Temperature != nil {
		t := *p.Temperature
		d.Temperature = &t
	}
	if p.AvailableFrom != nil {
		d.AvailableFrom = *p.AvailableFrom
	}
	if p.AvailableUntil != nil {
		d.AvailableUntil = *p.AvailableUntil
	}
	if p.PackagingInfo != nil {
		d.PackagingInfo = *p.PackagingInfo
	}
	if p.Allergens != nil {
		d.Allergens = NormalizeTags(p.Allergens)
	}
	if p.DietaryInfo != nil {
		d.DietaryInfo = NormalizeTags(p.DietaryInfo)
	}
	if p.SafetyChecklist != nil {
		sc := *p.SafetyChecklist
		d.SafetyChecklist = &sc
	}
	if p.Images != nil {
		d.Images = slices.Clone(p.Images)
	}
}

// NormalizeTags trims each tag and drops empties and repeats, keeping the
// first occurrence.
func NormalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}
