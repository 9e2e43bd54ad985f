package donation

import (
	"time"

	"FreshKeep/domain"
	"FreshKeep/entities"
)

// SeedDonations returns the starter listings, all available from now.
func SeedDonations(now time.Time) []entities.Donation {
	four := 4.0
	listing := func(d entities.Donation, hours int) entities.Donation {
		d.AvailableFrom = now
		d.AvailableUntil = now.Add(time.Duration(hours) * time.Hour)
		d.Status = domain.StatusAvailable
		d.CreatedAt = now
		d.UpdatedAt = now
		return d
	}

	return []entities.Donation{
		listing(entities.Donation{
			ID:          "1",
			Title:       "Wedding Reception Surplus",
			Description: "Assorted canapés, finger sandwiches, and dessert platters from a wedding reception. All items professionally prepared and stored properly.",
			Quantity:    entities.DonationQuantity{Value: 15, Unit: "kg"},
			Category:    domain.CategoryPreparedMeals,
			Location: entities.DonationLocation{
				Address:     "123 Grand Avenue, Cityville",
				Coordinates: entities.Coordinates{Latitude: 37.7749, Longitude: -122.4194},
			},
			Temperature:   &four,
			DonorID:       "hotel1",
			PackagingInfo: "In sealed catering trays",
			Allergens:     []string{"dairy", "gluten", "nuts"},
			DietaryInfo:   []string{"contains meat", "contains seafood"},
			SafetyChecklist: &entities.SafetyChecklist{
				ProperlyStored:        true,
				TemperatureControlled: true,
				ContaminationFree:     true,
				FreshlyPrepared:       true,
			},
			Images: []string{"https://images.unsplash.com/photo-1555244162-803834f70033?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=60"},
		}, 5),
		listing(entities.Donation{
			ID:          "2",
			Title:       "Corporate Lunch Leftovers",
			Description: "Mediterranean lunch boxes with falafel, hummus, salad and pita bread. Enough for approximately 20 people.",
			Quantity:    entities.DonationQuantity{Value: 8, Unit: "boxes"},
			Category:    domain.CategoryPreparedMeals,
			Location: entities.DonationLocation{
				Address:     "555 Business Park, Downtown",
				Coordinates: entities.Coordinates{Latitude: 37.7833, Longitude: -122.4167},
			},
			DonorID:       "corp1",
			PackagingInfo: "Individual compostable containers",
			Allergens:     []string{"sesame"},
			DietaryInfo:   []string{"vegetarian options available"},
			SafetyChecklist: &entities.SafetyChecklist{
				ProperlyStored:    true,
				ContaminationFree: true,
				FreshlyPrepared:   true,
			},
			Images: []string{"https://images.unsplash.com/photo-1512621776951-a57141f2eefd?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=60"},
		}, 2),
		listing(entities.Donation{
			ID:          "3",
			Title:       "Fresh Bread and Pastries",
			Description: "End-of-day bakery items including sourdough bread, croissants, and muffins. Still fresh and delicious!",
			Quantity:    entities.DonationQuantity{Value: 5, Unit: "kg"},
			Category:    domain.CategoryBakery,
			Location: entities.DonationLocation{
				Address:     "789 Main Street, Bakersville",
				Coordinates: entities.Coordinates{Latitude: 37.7695, Longitude: -122.4285},
			},
			DonorID:   "bakery1",
			Allergens: []string{"gluten", "dairy", "eggs"},
			SafetyChecklist: &entities.SafetyChecklist{
				ProperlyStored:    true,
				ContaminationFree: true,
				FreshlyPrepared:   true,
			},
			Images: []string{"https://images.unsplash.com/photo-1608198093002-ad4e005484ec?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=60"},
		}, 24),
		listing(entities.Donation{
			ID:          "4",
			Title:       "Fresh Fruits and Vegetables",
			Description: "Assortment of fruits and vegetables from our local grocery. Slightly blemished but perfectly edible.",
			Quantity:    entities.DonationQuantity{Value: 10, Unit: "kg"},
			Category:    domain.CategoryFruitsVegetables,
			Location: entities.DonationLocation{
				Address:     "456 Market St, Cityville",
				Coordinates: entities.Coordinates{Latitude: 37.7739, Longitude: -122.4312},
			},
			DonorID: "grocery1",
			SafetyChecklist: &entities.SafetyChecklist{
				ProperlyStored:        true,
				TemperatureControlled: true,
				ContaminationFree:     true,
			},
			Images: []string{"https://images.unsplash.com/photo-1610832958506-aa56368176cf?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=60"},
		}, 48),
	}
}
