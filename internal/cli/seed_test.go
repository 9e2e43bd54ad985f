package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"FreshKeep/entities"
	"FreshKeep/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedSlots_FillsOnlyEmptySlots(t *testing.T) {
	t.Setenv("FOOD_SLOT_KEY", "food")
	t.Setenv("DONATION_SLOT_KEY", "donations")
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "donations", "[]"))

	var out bytes.Buffer
	require.NoError(t, seedSlots(ctx, store, time.Date(2025, 4, 27, 9, 0, 0, 0, time.UTC), &out))

	items := storage.NewSlot[entities.FoodItem](store, "food").Load(ctx, nil)
	assert.Len(t, items, 5)

	donations := storage.NewSlot[entities.Donation](store, "donations").Load(ctx, nil)
	assert.Empty(t, donations, "an emptied slot is not reseeded")

	assert.Contains(t, out.String(), "food: seeded 5 records")
	assert.Contains(t, out.String(), "donations: already populated, skipped")
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	cmd := NewRootCommand()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "migrate", "seed"})

	flag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "config.yaml", flag.DefValue)
}
