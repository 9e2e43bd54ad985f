package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"FreshKeep/cmd/config"
	"FreshKeep/entities"
	"FreshKeep/internal/utils"
	"FreshKeep/pkg/donation"
	"FreshKeep/pkg/food"
	"FreshKeep/pkg/storage"

	"github.com/spf13/cobra"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write sample data into empty slots",
		Long: `Write the sample inventory and donation listings into any slot that
has never been saved. Slots that already hold data, even an empty list,
are left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := config.OpenStore()
			if err != nil {
				return err
			}
			now, err := config.Clock()
			if err != nil {
				return err
			}
			return seedSlots(cmd.Context(), store, now(), cmd.OutOrStdout())
		},
	}
}

func seedSlots(ctx context.Context, store storage.KeyValueStore, now time.Time, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	foodSlot := storage.NewSlot[entities.FoodItem](store, utils.GetConfig("FOOD_SLOT_KEY"))
	if err := seedSlot(ctx, foodSlot, food.SeedFoodItems(now.Location()), out); err != nil {
		return err
	}

	donationSlot := storage.NewSlot[entities.Donation](store, utils.GetConfig("DONATION_SLOT_KEY"))
	return seedSlot(ctx, donationSlot, donation.SeedDonations(now), out)
}

func seedSlot[T any](ctx context.Context, slot *storage.Slot[T], records []T, out io.Writer) error {
	exists, err := slot.Exists(ctx)
	if err != nil {
		return fmt.Errorf("checking %s: %w", slot.Key(), err)
	}
	if exists {
		fmt.Fprintf(out, "%s: already populated, skipped\n", slot.Key())
		return nil
	}
	slot.Save(ctx, records)
	fmt.Fprintf(out, "%s: seeded %d records\n", slot.Key(), len(records))
	return nil
}
