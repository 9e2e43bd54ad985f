package config

import (
	"context"
	"errors"
	"os"
	"time"

	"FreshKeep/internal/api/handlers"
	"FreshKeep/internal/api/routes"
	"FreshKeep/internal/middleware"
	"FreshKeep/internal/utils"
	"FreshKeep/internal/utils/storage"
	"FreshKeep/pkg/donation"
	"FreshKeep/pkg/events"
	"FreshKeep/pkg/food"
	"FreshKeep/pkg/notify"
	kv "FreshKeep/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func NewApp(ctx context.Context, store kv.KeyValueStore) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware(utils.GetConfig("CORS_ALLOW_ORIGINS"))
	validator := utils.Validate

	now, err := Clock()
	if err != nil {
		return nil, err
	}

	// utils
	s3, err := newImageStore(ctx)
	if err != nil {
		return nil, err
	}

	// setting up logging and limiter; nothing below may fail once the
	// log file is open
	err = os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		return nil, err
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, err
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   utils.GetConfig("TIME_ZONE"),
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// notifications
	bus := events.NewBus()
	var mailer notify.Mailer
	if mailConfig, err := notify.LoadMailConfig(); err == nil {
		mailer = notify.NewSMTPMailer(mailConfig)
	} else {
		log.Infof("notices will only be logged: %v", err)
	}
	notifier := notify.New(mailer, utils.GetConfig("NOTIFY_EMAIL"))
	unsubscribe := notifier.Attach(bus)

	// Repository
	foodRepository := food.NewFoodRepository(ctx, store, utils.GetConfig("FOOD_SLOT_KEY"), bus, now)
	donationRepository := donation.NewDonationRepository(ctx, store, utils.GetConfig("DONATION_SLOT_KEY"), bus, now)

	// Service
	foodService := food.NewFoodService(foodRepository, s3, now)
	donationService := donation.NewDonationService(donationRepository, s3, SubmitDelay(), now)

	if stats, err := foodService.GetDashboardStats(ctx); err == nil {
		notifier.ExpiringToday(stats.ExpiringToday)
	}

	// Handler
	foodHandler := handlers.NewFoodHandler(foodService, validator)
	donationHandler := handlers.NewDonationHandler(donationService, validator)

	// routes
	routesConfig := routes.Config{
		App:             app,
		FoodHandler:     foodHandler,
		DonationHandler: donationHandler,
		Middleware:      middlewares,
	}
	routesConfig.Setup()

	app.Hooks().OnShutdown(func() error {
		unsubscribe()
		notifier.Wait()
		return file.Close()
	})
	return app, nil
}

// newImageStore returns nil when no bucket is configured, leaving image
// uploads disabled.
func newImageStore(ctx context.Context) (storage.AwsS3, error) {
	client, err := storage.NewAwsS3(ctx)
	switch {
	case err == nil:
		return client, nil
	case errors.Is(err, storage.ErrBucketNotConfigured):
		log.Warn("image uploads disabled: AWS_S3_BUCKET is not set")
		return nil, nil
	default:
		return nil, err
	}
}
