package donation

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"FreshKeep/domain"
	"FreshKeep/entities"
	"FreshKeep/pkg/events"
	"FreshKeep/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "foodRescueDonations"

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *clock {
	return &clock{t: time.Date(2025, 4, 27, 9, 0, 0, 0, time.UTC)}
}

type fixture struct {
	repo  DonationRepository
	store storage.KeyValueStore
	clock *clock
	seen  []events.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: storage.NewMemoryStore(), clock: newClock()}
	bus := events.NewBus()
	bus.Subscribe(func(e events.Event) { f.seen = append(f.seen, e) })
	f.repo = NewDonationRepository(context.Background(), f.store, testKey, bus, f.clock.now)
	return f
}

func (f *fixture) stored(t *testing.T) []entities.Donation {
	t.Helper()
	raw, ok, err := f.store.Get(context.Background(), testKey)
	require.NoError(t, err)
	require.True(t, ok)
	var out []entities.Donation
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func TestDonationRepository_SeedIsAnchoredAtStart(t *testing.T) {
	f := newFixture(t)
	list := f.repo.List(context.Background())
	require.Len(t, list, 4)

	start := f.clock.now()
	for _, d := range list {
		assert.Equal(t, domain.StatusAvailable, d.Status)
		assert.True(t, d.AvailableFrom.Equal(start))
	}
	assert.True(t, list[0].AvailableUntil.Equal(start.Add(5*time.Hour)))
	assert.True(t, list[1].AvailableUntil.Equal(start.Add(2*time.Hour)))
	assert.True(t, list[3].AvailableUntil.Equal(start.Add(48*time.Hour)))
}

func TestDonationRepository_MalformedSlotFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, testKey, `[{"id": 5}]`))

	repo := NewDonationRepository(ctx, store, testKey, nil, newClock().now)
	assert.Len(t, repo.List(ctx), 4)
}

func TestDonationRepository_AddOwnsStatusAndTimestamps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.repo.Add(ctx, entities.Donation{
		Title:     "Soup",
		Status:    domain.StatusDelivered,
		ClaimedBy: "someone",
		Allergens: []string{" celery", "celery", "", "mustard"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.StatusAvailable, created.Status)
	assert.Empty(t, created.ClaimedBy)
	assert.True(t, created.CreatedAt.Equal(f.clock.now()))
	assert.True(t, created.UpdatedAt.Equal(created.CreatedAt))
	assert.Equal(t, []string{"celery", "mustard"}, created.Allergens)

	assert.Len(t, f.stored(t), 5)
	require.Len(t, f.seen, 1)
	assert.Equal(t, events.DonationCreated, f.seen[0].Type)
}

func TestDonationRepository_ClaimOnlyFromAvailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.clock.advance(time.Minute)
	claimed, err := f.repo.Claim(ctx, "1", "foodbank-7")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClaimed, claimed.Status)
	assert.Equal(t, "foodbank-7", claimed.ClaimedBy)
	assert.True(t, claimed.UpdatedAt.Equal(f.clock.now()))
	assert.True(t, claimed.UpdatedAt.After(claimed.CreatedAt))

	_, err = f.repo.Claim(ctx, "1", "shelter-2")
	assert.ErrorIs(t, err, domain.ErrDonationNotAvailable)

	again, err := f.repo.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClaimed, again.Status)
	assert.Equal(t, "foodbank-7", again.ClaimedBy)

	require.Len(t, f.seen, 1)
	assert.Equal(t, events.DonationClaimed, f.seen[0].Type)
	assert.Equal(t, domain.StatusAvailable, f.seen[0].PrevStatus)
}

func TestDonationRepository_ClaimValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.repo.Claim(ctx, "1", "  ")
	assert.ErrorIs(t, err, domain.ErrMissingClaimant)
	_, err = f.repo.Claim(ctx, "missing", "foodbank-7")
	assert.ErrorIs(t, err, domain.ErrDonationNotFound)
	assert.Empty(t, f.seen)
}

func TestDonationRepository_TransitionsMoveForwardOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.repo.Transition(ctx, "1", domain.StatusInTransit)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition, "must be claimed first")

	_, err = f.repo.Claim(ctx, "1", "foodbank-7")
	require.NoError(t, err)

	_, err = f.repo.Transition(ctx, "1", domain.StatusDelivered)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition, "cannot skip in_transit")

	d, err := f.repo.Transition(ctx, "1", domain.StatusInTransit)
	require.NoError(t, err)
	assert.Equal(t, "foodbank-7", d.ClaimedBy)

	d, err = f.repo.Transition(ctx, "1", domain.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, d.Status)

	for _, to := range []string{domain.StatusAvailable, domain.StatusClaimed, domain.StatusInTransit, domain.StatusCanceled} {
		_, err = f.repo.Transition(ctx, "1", to)
		assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition, to)
	}

	_, err = f.repo.Transition(ctx, "1", "lost")
	assert.ErrorIs(t, err, domain.ErrInvalidDonationStatus)

	assert.Equal(t, domain.StatusDelivered, f.stored(t)[0].Status)
}

func TestDonationRepository_CancelClearsClaimant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.repo.Claim(ctx, "2", "foodbank-7")
	require.NoError(t, err)

	d, err := f.repo.Transition(ctx, "2", domain.StatusCanceled)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCanceled, d.Status)
	assert.Empty(t, d.ClaimedBy)

	_, err = f.repo.Claim(ctx, "2", "shelter-2")
	assert.ErrorIs(t, err, domain.ErrDonationNotAvailable)

	last := f.seen[len(f.seen)-1]
	assert.Equal(t, events.DonationStatusChanged, last.Type)
	assert.Equal(t, domain.StatusClaimed, last.PrevStatus)
}

func TestDonationRepository_UpdateUsesTypedSetters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.clock.advance(time.Hour)

	patch := new(domain.DonationPatch).
		SetQuantity(20, "kg").
		SetLocation("1 Harbor Road, Portside", entities.Coordinates{Latitude: 1, Longitude: 2})
	d, err := f.repo.Update(ctx, "1", *patch)
	require.NoError(t, err)

	assert.Equal(t, entities.DonationQuantity{Value: 20, Unit: "kg"}, d.Quantity)
	assert.Equal(t, "1 Harbor Road, Portside", d.Location.Address)
	assert.Equal(t, "Wedding Reception Surplus", d.Title)
	assert.Equal(t, []string{"dairy", "gluten", "nuts"}, d.Allergens)
	assert.True(t, d.UpdatedAt.Equal(f.clock.now()))

	start := f.clock.now()
	bad := new(domain.DonationPatch).SetAvailability(start, start.Add(-time.Hour))
	_, err = f.repo.Update(ctx, "1", *bad)
	assert.ErrorIs(t, err, domain.ErrInvalidAvailability)

	_, err = f.repo.Update(ctx, "missing", domain.DonationPatch{})
	assert.ErrorIs(t, err, domain.ErrDonationNotFound)
}

func TestDonationRepository_SnapshotsShareNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	list := f.repo.List(ctx)
	list[0].Allergens[0] = "changed"
	list[0].SafetyChecklist.ProperlyStored = false
	*list[0].Temperature = 99

	d, err := f.repo.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "dairy", d.Allergens[0])
	assert.True(t, d.SafetyChecklist.ProperlyStored)
	assert.Equal(t, 4.0, *d.Temperature)
}

func TestNormalizeTags(t *testing.T) {
	assert.Nil(t, NormalizeTags(nil))
	assert.Equal(t, []string{}, NormalizeTags([]string{" ", ""}))
	assert.Equal(t, []string{"nuts", "soy"}, NormalizeTags([]string{"nuts", " soy ", "nuts"}))
}

func TestDonationRepository_ConcurrentClaimsHaveOneWinner(t *testing.T) {
	ctx := context.Background()
	c := newClock()
	repo := NewDonationRepository(ctx, storage.NewMemoryStore(), testKey, nil, c.now)

	const n = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []string
		losses  int
	)
	for i := 0; i < n; i++ {
		claimant := fmt.Sprintf("foodbank-%d", i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Claim(ctx, "3", claimant)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				winners = append(winners, claimant)
				return
			}
			assert.ErrorIs(t, err, domain.ErrDonationNotAvailable)
			losses++
		}()
	}
	wg.Wait()

	require.Len(t, winners, 1)
	assert.Equal(t, n-1, losses)

	d, err := repo.Get(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClaimed, d.Status)
	assert.Equal(t, winners[0], d.ClaimedBy)
}

func TestDonationRepository_AppendImageUnderLock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	d, err := f.repo.AppendImage(ctx, "1", "https://bucket.test/donations/a.jpg")
	require.NoError(t, err)
	require.Len(t, d.Images, 2)
	assert.Equal(t, "https://bucket.test/donations/a.jpg", d.Images[1])
	assert.Equal(t, d.Images, f.stored(t)[0].Images)

	_, err = f.repo.AppendImage(ctx, "missing", "x")
	assert.ErrorIs(t, err, domain.ErrDonationNotFound)

	repo := NewDonationRepository(ctx, storage.NewMemoryStore(), testKey, nil, f.clock.now)
	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		url := fmt.Sprintf("https://bucket.test/donations/%d.jpg", i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AppendImage(ctx, "4", url)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.Get(ctx, "4")
	require.NoError(t, err)
	assert.Len(t, got.Images, n+1)
}

func TestDonationRepository_EventsUseInjectedClock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.clock.advance(time.Hour)

	_, err := f.repo.Claim(ctx, "1", "foodbank-1")
	require.NoError(t, err)
	_, err = f.repo.Transition(ctx, "1", domain.StatusInTransit)
	require.NoError(t, err)

	require.Len(t, f.seen, 2)
	for _, e := range f.seen {
		assert.True(t, e.At.Equal(f.clock.now()), e.Type)
	}
}
