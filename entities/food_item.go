package entities

import (
	"time"
)

type FoodItem struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	PurchaseDate time.Time `json:"purchase_date"`
	ExpiryDate   time.Time `json:"expiry_date"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	Notes        string    `json:"notes,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
}
