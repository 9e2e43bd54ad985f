package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	// SelectorAll disables category and status filtering.
	SelectorAll = "all"

	DateLayout = "2006-01-02"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedUploadImage    = "failed to upload image"

	ErrParseUUID          = errors.New("failed to parse UUID")
	ErrStorageUnavailable = errors.New("image storage is not configured")
	ErrInvalidDate        = errors.New("invalid date, expected YYYY-MM-DD or RFC 3339")
	ErrInvalidSortKey     = errors.New("invalid sort key")
	ErrInvalidImageFormat = errors.New("invalid image format")
)

// ParseDate accepts a calendar date, read as local midnight in loc, or a
// full RFC 3339 timestamp.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(DateLayout, value, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}
