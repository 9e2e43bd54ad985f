package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	DefaultFoodCategory = "Other"
	DefaultFoodUnit     = "pcs"
)

// FoodCategories is the fixed category set offered by the add-item form.
var FoodCategories = []string{
	"Fruits",
	"Vegetables",
	"Dairy",
	"Meat",
	"Seafood",
	"Bakery",
	"Pantry",
	"Frozen",
	"Beverages",
	"Snacks",
	"Other",
}

var (
	MessageSuccessAddFoodItem       = "food item added successfully"
	MessageSuccessUpdateFoodItem    = "food item updated successfully"
	MessageSuccessDeleteFoodItem    = "food item deleted successfully"
	MessageSuccessGetFoodItems      = "food items retrieved successfully"
	MessageSuccessGetCategories     = "food categories retrieved successfully"
	MessageSuccessUploadFoodImage   = "food image uploaded successfully"
	MessageSuccessGetDashboardStats = "dashboard statistics retrieved successfully"

	MessageFailedAddFoodItem       = "failed to add food item"
	MessageFailedUpdateFoodItem    = "failed to update food item"
	MessageFailedDeleteFoodItem    = "failed to delete food item"
	MessageFailedGetFoodItems      = "failed to retrieve food items"
	MessageFailedGetDashboardStats = "failed to retrieve dashboard statistics"

	ErrFoodItemNotFound   = errors.New("food item not found")
	ErrInvalidExpiryDate  = errors.New("invalid expiry date")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrInvalidCategory    = errors.New("invalid food category")
	ErrExpiryBeforeBought = errors.New("expiry date is before purchase date")
	ErrInvalidName        = errors.New("name must not be empty")
)

func IsFoodCategory(category string) bool {
	for _, c := range FoodCategories {
		if c == category {
			return true
		}
	}
	return false
}

type (
	AddFoodItemRequest struct {
		Name         string  `json:"name" validate:"required"`
		Category     string  `json:"category" validate:"omitempty"`
		PurchaseDate string  `json:"purchase_date" validate:"omitempty"`
		ExpiryDate   string  `json:"expiry_date" validate:"required"`
		Quantity     float64 `json:"quantity" validate:"omitempty,gt=0"`
		Unit         string  `json:"unit" validate:"omitempty"`
		Notes        string  `json:"notes" validate:"omitempty"`
		ImageURL     string  `json:"image_url" validate:"omitempty,url"`
	}

	// UpdateFoodItemRequest carries only the fields being replaced; nil
	// means unchanged.
	UpdateFoodItemRequest struct {
		Name         *string  `json:"name" validate:"omitempty,min=1"`
		Category     *string  `json:"category" validate:"omitempty"`
		PurchaseDate *string  `json:"purchase_date" validate:"omitempty"`
		ExpiryDate   *string  `json:"expiry_date" validate:"omitempty"`
		Quantity     *float64 `json:"quantity" validate:"omitempty,gt=0"`
		Unit         *string  `json:"unit" validate:"omitempty"`
		Notes        *string  `json:"notes" validate:"omitempty"`
		ImageURL     *string  `json:"image_url" validate:"omitempty"`
	}

	// FoodItemPatch is the typed patch applied by the food repository.
	FoodItemPatch struct {
		Name         *string
		Category     *string
		PurchaseDate *time.Time
		ExpiryDate   *time.Time
		Quantity     *float64
		Unit         *string
		Notes        *string
		ImageURL     *string
	}

	FoodItemQuery struct {
		Search   string `query:"q"`
		Category string `query:"category"`
		Sort     string `query:"sort"`
		Group    bool   `query:"group"`
	}

	UploadFoodImageRequest struct {
		FoodItemID string                `json:"food_id" validate:"required"`
		Image      *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	ExpiryBadge struct {
		Tier string `json:"tier"`
		Text string `json:"text"`
	}

	FoodItemResponse struct {
		ID            string      `json:"id"`
		Name          string      `json:"name"`
		Category      string      `json:"category"`
		PurchaseDate  time.Time   `json:"purchase_date"`
		ExpiryDate    time.Time   `json:"expiry_date"`
		Quantity      float64     `json:"quantity"`
		Unit          string      `json:"unit"`
		Notes         string      `json:"notes,omitempty"`
		ImageURL      string      `json:"image_url,omitempty"`
		Initial       string      `json:"initial"`
		Tier          string      `json:"tier"`
		DaysLeft      int         `json:"days_left"`
		Badge         ExpiryBadge `json:"badge"`
		Progress      float64     `json:"progress"`
		ExpiresToday  bool        `json:"expires_today"`
		PurchasedText string      `json:"purchased_text"`
		ExpiresText   string      `json:"expires_text"`
	}

	FoodCategoryGroup struct {
		Category string             `json:"category"`
		Items    []FoodItemResponse `json:"items"`
	}

	FoodItemListResponse struct {
		Total  int                 `json:"total"`
		Items  []FoodItemResponse  `json:"items"`
		Groups []FoodCategoryGroup `json:"groups,omitempty"`
	}

	DashboardStatsResponse struct {
		TotalItems     int    `json:"total_items"`
		SafeItems      int    `json:"safe_items"`
		WarningItems   int    `json:"warning_items"`
		CriticalItems  int    `json:"critical_items"`
		ExpiredItems   int    `json:"expired_items"`
		UnknownItems   int    `json:"unknown_items"`
		ExpiringToday  int    `json:"expiring_today"`
		ExpiringNotice string `json:"expiring_notice,omitempty"`
	}
)
