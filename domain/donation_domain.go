package domain

import (
	"errors"
	"math"
	"mime/multipart"
	"time"

	"FreshKeep/entities"
)

const (
	StatusAvailable = "available"
	StatusClaimed   = "claimed"
	StatusInTransit = "in_transit"
	StatusDelivered = "delivered"
	StatusCanceled  = "canceled"

	CategoryPreparedMeals    = "prepared_meals"
	CategoryFruitsVegetables = "fruits_vegetables"
	CategoryBakery           = "bakery"
	CategoryDairy            = "dairy"
	CategoryMeat             = "meat"
	CategoryDrinks           = "drinks"
	CategoryOther            = "other"

	// DefaultDonorID stands in for the signed-in donor until accounts exist.
	DefaultDonorID = "current-user-id"
)

var (
	MessageSuccessCreateDonation     = "donation listed successfully"
	MessageSuccessGetDonations       = "donations retrieved successfully"
	MessageSuccessUpdateDonation     = "donation updated successfully"
	MessageSuccessClaimDonation      = "donation claimed successfully"
	MessageSuccessGetDonationStats   = "donation statistics retrieved successfully"
	MessageSuccessUploadDonationFile = "donation image uploaded successfully"

	MessageFailedCreateDonation   = "failed to list donation"
	MessageFailedGetDonations     = "failed to retrieve donations"
	MessageFailedUpdateDonation   = "failed to update donation"
	MessageFailedClaimDonation    = "failed to claim donation"
	MessageFailedGetDonationStats = "failed to retrieve donation statistics"

	ErrDonationNotFound        = errors.New("donation not found")
	ErrDonationNotAvailable    = errors.New("donation is not available for claiming")
	ErrInvalidStatusTransition = errors.New("invalid donation status transition")
	ErrInvalidDonationStatus   = errors.New("invalid donation status")
	ErrInvalidDonationCategory = errors.New("invalid donation category")
	ErrInvalidAvailability     = errors.New("available until must not be before available from")
	ErrMissingClaimant         = errors.New("claimant is required")
	ErrMissingAddress          = errors.New("pickup address is required")
)

var donationCategoryLabels = map[string]string{
	CategoryPreparedMeals:    "Prepared Meals",
	CategoryFruitsVegetables: "Fruits & Vegetables",
	CategoryBakery:           "Bakery Items",
	CategoryDairy:            "Dairy Products",
	CategoryMeat:             "Meat & Protein",
	CategoryDrinks:           "Beverages",
	CategoryOther:            "Other Items",
}

var donationStatusLabels = map[string]string{
	StatusAvailable: "Available",
	StatusClaimed:   "Claimed",
	StatusInTransit: "In Transit",
	StatusDelivered: "Delivered",
	StatusCanceled:  "Canceled",
}

// progression holds the rank of each non-terminal step; canceled sits
// outside it.
var progression = map[string]int{
	StatusAvailable: 0,
	StatusClaimed:   1,
	StatusInTransit: 2,
	StatusDelivered: 3,
}

func CategoryLabel(category string) string {
	if label, ok := donationCategoryLabels[category]; ok {
		return label
	}
	return "Other Items"
}

func StatusLabel(status string) string {
	if label, ok := donationStatusLabels[status]; ok {
		return label
	}
	return "Unknown"
}

func IsDonationCategory(category string) bool {
	_, ok := donationCategoryLabels[category]
	return ok
}

func IsDonationStatus(status string) bool {
	_, ok := donationStatusLabels[status]
	return ok
}

// HasClaimant reports whether a donation in this status must carry a
// claimant.
func HasClaimant(status string) bool {
	rank, ok := progression[status]
	return ok && rank >= progression[StatusClaimed]
}

// CanTransition reports whether from -> to is a legal move. Claiming is
// not covered here: it needs a claimant and goes through Claim.
func CanTransition(from, to string) bool {
	if to == StatusCanceled {
		return from != StatusCanceled && from != StatusDelivered
	}
	fromRank, ok := progression[from]
	if !ok {
		return false
	}
	toRank, ok := progression[to]
	if !ok {
		return false
	}
	return toRank == fromRank+1 && to != StatusClaimed
}

// EstimateMealCount assumes 0.5kg of food per meal.
func EstimateMealCount(quantity float64) int {
	return int(math.Round(quantity * 2))
}

// EstimateCO2Savings assumes 2.5kg CO2 per kg of food waste.
func EstimateCO2Savings(quantity float64) float64 {
	return quantity * 2.5
}

type (
	DonationRequest struct {
		Title           string                    `json:"title" validate:"required"`
		Description     string                    `json:"description" validate:"omitempty"`
		Quantity        entities.DonationQuantity `json:"quantity"`
		Category        string                    `json:"category" validate:"required"`
		Location        entities.DonationLocation `json:"location"`
		Temperature     *float64                  `json:"temperature" validate:"omitempty"`
		AvailableFrom   string                    `json:"available_from" validate:"omitempty"`
		AvailableUntil  string                    `json:"available_until" validate:"required"`
		DonorID         string                    `json:"donor_id" validate:"omitempty"`
		PackagingInfo   string                    `json:"packaging_info" validate:"omitempty"`
		Allergens       []string                  `json:"allergens" validate:"omitempty,dive,required"`
		DietaryInfo     []string                  `json:"dietary_info" validate:"omitempty,dive,required"`
		SafetyChecklist *entities.SafetyChecklist `json:"safety_checklist" validate:"omitempty"`
		Images          []string                  `json:"images" validate:"omitempty,dive,url"`
	}

	UpdateDonationRequest struct {
		Title           *string                    `json:"title" validate:"omitempty,min=1"`
		Description     *string                    `json:"description" validate:"omitempty"`
		Quantity        *entities.DonationQuantity `json:"quantity" validate:"omitempty"`
		Category        *string                    `json:"category" validate:"omitempty"`
		Address         *string                    `json:"address" validate:"omitempty"`
		Coordinates     *entities.Coordinates      `json:"coordinates" validate:"omitempty"`
		Temperature     *float64                   `json:"temperature" validate:"omitempty"`
		AvailableFrom   *string                    `json:"available_from" validate:"omitempty"`
		AvailableUntil  *string                    `json:"available_until" validate:"omitempty"`
		PackagingInfo   *string                    `json:"packaging_info" validate:"omitempty"`
		Allergens       []string                   `json:"allergens" validate:"omitempty,dive,required"`
		DietaryInfo     []string                   `json:"dietary_info" validate:"omitempty,dive,required"`
		SafetyChecklist *entities.SafetyChecklist  `json:"safety_checklist" validate:"omitempty"`
	}

	ClaimDonationRequest struct {
		ClaimantID string `json:"claimant_id" validate:"required"`
	}

	UpdateDonationStatusRequest struct {
		Status string `json:"status" validate:"required,oneof=in_transit delivered canceled"`
	}

	UploadDonationImageRequest struct {
		DonationID string                `json:"donation_id" validate:"required"`
		Image      *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	DonationQuery struct {
		Search string `query:"q"`
		Status string `query:"status"`
		Sort   string `query:"sort"`
	}

	DonationResponse struct {
		entities.Donation
		CategoryLabel         string  `json:"category_label"`
		StatusLabel           string  `json:"status_label"`
		ShortAddress          string  `json:"short_address"`
		Tier                  string  `json:"tier"`
		TimeRemaining         string  `json:"time_remaining"`
		IsUrgent              bool    `json:"is_urgent"`
		Progress              float64 `json:"progress"`
		PickupWindow          string  `json:"pickup_window"`
		AvailableUntilText    string  `json:"available_until_text"`
		AllSafetyChecksPassed bool    `json:"all_safety_checks_passed"`
		Claimable             bool    `json:"claimable"`
		EstimatedMeals        int     `json:"estimated_meals"`
		EstimatedCO2Saved     float64 `json:"estimated_co2_saved"`
	}

	DonationListResponse struct {
		Total     int                `json:"total"`
		Donations []DonationResponse `json:"donations"`
	}

	DonationStatistics struct {
		TotalDonations       int            `json:"total_donations"`
		ByStatus             map[string]int `json:"by_status"`
		DeliveredQuantity    float64        `json:"delivered_quantity"`
		EstimatedMealsServed int            `json:"estimated_meals_served"`
		EstimatedCO2Reduced  float64        `json:"estimated_co2_reduced"`
		EstimatedImpact      string         `json:"estimated_impact"`
	}

	// DonationPatch is the typed patch applied by the donation repository.
	// Each nested group is replaced as a whole through its own setter.
	DonationPatch struct {
		Title           *string
		Description     *string
		Quantity        *entities.DonationQuantity
		Category        *string
		Address         *string
		Coordinates     *entities.Coordinates
		Temperature     *float64
		AvailableFrom   *time.Time
		AvailableUntil  *time.Time
		PackagingInfo   *string
		Allergens       []string
		DietaryInfo     []string
		SafetyChecklist *entities.SafetyChecklist
		Images          []string
	}
)

func (p *DonationPatch) SetQuantity(value float64, unit string) *DonationPatch {
	p.Quantity = &entities.DonationQuantity{Value: value, Unit: unit}
	return p
}

func (p *DonationPatch) SetLocation(address string, coords entities.Coordinates) *DonationPatch {
	p.Address = &address
	p.Coordinates = &coords
	return p
}

func (p *DonationPatch) SetAvailability(from, until time.Time) *DonationPatch {
	p.AvailableFrom = &from
	p.AvailableUntil = &until
	return p
}

func (p *DonationPatch) SetSafetyChecklist(checklist entities.SafetyChecklist) *DonationPatch {
	p.SafetyChecklist = &checklist
	return p
}
