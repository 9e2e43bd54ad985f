package handlers

import (
	"context"
	"errors"

	"FreshKeep/domain"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps service errors onto response codes. Anything unknown is
// treated as a bad request.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrFoodItemNotFound), errors.Is(err, domain.ErrDonationNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidStatusTransition), errors.Is(err, domain.ErrDonationNotAvailable):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrStorageUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fiber.StatusRequestTimeout
	default:
		return fiber.StatusBadRequest
	}
}
