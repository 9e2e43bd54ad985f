package food

import (
	"time"

	"FreshKeep/entities"
)

// SeedFoodItems is the starter inventory used when nothing has been
// persisted yet. Dates are midnights in loc; a nil loc means UTC.
func SeedFoodItems(loc *time.Location) []entities.FoodItem {
	if loc == nil {
		loc = time.UTC
	}
	seedDate := func(year int, month time.Month, day int) time.Time {
		return time.Date(year, month, day, 0, 0, 0, 0, loc)
	}

	return []entities.FoodItem{
		{
			ID:           "1",
			Name:         "Milk",
			Category:     "Dairy",
			PurchaseDate: seedDate(2025, time.April, 24),
			ExpiryDate:   seedDate(2025, time.May, 1),
			Quantity:     1,
			Unit:         "gallon",
			ImageURL:     "https://images.unsplash.com/photo-1550583724-b2692b85b150?auto=format&fit=crop&w=100&h=100&q=80",
		},
		{
			ID:           "2",
			Name:         "Spinach",
			Category:     "Vegetables",
			PurchaseDate: seedDate(2025, time.April, 25),
			ExpiryDate:   seedDate(2025, time.April, 29),
			Quantity:     1,
			Unit:         "bag",
			ImageURL:     "https://images.unsplash.com/photo-1576045057995-568f588f82fb?auto=format&fit=crop&w=100&h=100&q=80",
		},
		{
			ID:           "3",
			Name:         "Chicken Breast",
			Category:     "Meat",
			PurchaseDate: seedDate(2025, time.April, 24),
			ExpiryDate:   seedDate(2025, time.May, 3),
			Quantity:     2,
			Unit:         "lbs",
			Notes:        "Free-range",
			ImageURL:     "https://images.unsplash.com/photo-1604503468506-a8da13d82791?auto=format&fit=crop&w=100&h=100&q=80",
		},
		{
			ID:           "4",
			Name:         "Tomatoes",
			Category:     "Vegetables",
			PurchaseDate: seedDate(2025, time.April, 23),
			ExpiryDate:   seedDate(2025, time.April, 27),
			Quantity:     5,
			Unit:         "pcs",
			ImageURL:     "https://images.unsplash.com/photo-1592924357228-91a4daadcfea?auto=format&fit=crop&w=100&h=100&q=80",
		},
		{
			ID:           "5",
			Name:         "Cheddar Cheese",
			Category:     "Dairy",
			PurchaseDate: seedDate(2025, time.April, 22),
			ExpiryDate:   seedDate(2025, time.May, 15),
			Quantity:     0.5,
			Unit:         "lb",
			ImageURL:     "https://images.unsplash.com/photo-1618164436241-4473940d1f5c?auto=format&fit=crop&w=100&h=100&q=80",
		},
	}
}
