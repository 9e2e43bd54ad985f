package entities

import (
	"slices"
	"time"
)

type DonationQuantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type DonationLocation struct {
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
}

type SafetyChecklist struct {
	ProperlyStored        bool `json:"properly_stored"`
	TemperatureControlled bool `json:"temperature_controlled"`
	ContaminationFree     bool `json:"contamination_free"`
	FreshlyPrepared       bool `json:"freshly_prepared"`
}

func (s SafetyChecklist) AllPassed() bool {
	return s.ProperlyStored && s.TemperatureControlled && s.ContaminationFree && s.FreshlyPrepared
}

type Donation struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Quantity        DonationQuantity `json:"quantity"`
	Category        string           `json:"category"`
	Location        DonationLocation `json:"location"`
	Temperature     *float64         `json:"temperature"`
	AvailableFrom   time.Time        `json:"available_from"`
	AvailableUntil  time.Time        `json:"available_until"`
	Status          string           `json:"status"` // available, claimed, in_transit, delivered, canceled
	DonorID         string           `json:"donor_id"`
	ClaimedBy       string           `json:"claimed_by,omitempty"`
	PackagingInfo   string           `json:"packaging_info,omitempty"`
	Allergens       []string         `json:"allergens,omitempty"`
	DietaryInfo     []string         `json:"dietary_info,omitempty"`
	SafetyChecklist *SafetyChecklist `json:"safety_checklist,omitempty"`
	Images          []string         `json:"images,omitempty"`

	Timestamp
}

// Clone returns a copy that shares no slices or pointers with d.
func (d Donation) Clone() Donation {
	out := d
	if d.Temperature != nil {
		t := *d.Temperature
		out.Temperature = &t
	}
	if d.SafetyChecklist != nil {
		sc := *d.SafetyChecklist
		out.SafetyChecklist = &sc
	}
	out.Allergens = slices.Clone(d.Allergens)
	out.DietaryInfo = slices.Clone(d.DietaryInfo)
	out.Images = slices.Clone(d.Images)
	return out
}
