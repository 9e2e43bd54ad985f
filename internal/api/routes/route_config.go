package routes

import (
	"FreshKeep/internal/api/handlers"
	"FreshKeep/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	FoodHandler     handlers.FoodHandler
	DonationHandler handlers.DonationHandler
	Middleware      middleware.Middleware
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.FoodItems()
	c.Donations()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works. test"})
	})
}

func (c *Config) FoodItems() {
	foodItems := c.App.Group("/api/v1/food-items")
	foodItems.Get("/dashboard", c.FoodHandler.GetDashboardStats)
	foodItems.Get("/categories", c.FoodHandler.GetCategories)

	// Basic CRUD operations
	foodItems.Post("", c.FoodHandler.AddFoodItem)
	foodItems.Get("", c.FoodHandler.GetFoodItems)
	foodItems.Get("/:id", c.FoodHandler.GetFoodItemDetails)
	foodItems.Put("/:id", c.FoodHandler.UpdateFoodItem)
	foodItems.Delete("/:id", c.FoodHandler.DeleteFoodItem)

	foodItems.Post("/:id/image", c.FoodHandler.UploadFoodImage)
}

func (c *Config) Donations() {
	donations := c.App.Group("/api/v1/donations")
	donations.Get("/statistics", c.DonationHandler.GetDonationStatistics)

	donations.Post("", c.DonationHandler.CreateDonation)
	donations.Get("", c.DonationHandler.GetDonations)
	donations.Get("/:id", c.DonationHandler.GetDonationByID)
	donations.Patch("/:id", c.DonationHandler.UpdateDonation)

	// Marketplace flow
	donations.Post("/:id/claim", c.DonationHandler.ClaimDonation)
	donations.Post("/:id/status", c.DonationHandler.UpdateDonationStatus)
	donations.Post("/:id/images", c.DonationHandler.UploadDonationImage)
}
