package config

import (
	"fmt"
	"strconv"
	"time"

	"FreshKeep/internal/utils"
	"FreshKeep/pkg/donation"
	"FreshKeep/pkg/storage"

	"gorm.io/gorm"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// OpenStore picks the key-value backend named by STORAGE_DRIVER. The
// returned db is nil for the memory driver.
func OpenStore() (storage.KeyValueStore, *gorm.DB, error) {
	switch driver := utils.GetConfig("STORAGE_DRIVER"); driver {
	case "", DriverMemory:
		return storage.NewMemoryStore(), nil, nil
	case DriverPostgres:
		db, err := ConnectDB()
		if err != nil {
			return nil, nil, err
		}
		return storage.NewGormStore(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// Clock returns time.Now in the configured TIME_ZONE. Calendar-day math
// uses this location.
func Clock() (func() time.Time, error) {
	loc, err := time.LoadLocation(utils.GetConfig("TIME_ZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIME_ZONE: %w", err)
	}
	return func() time.Time { return time.Now().In(loc) }, nil
}

func SubmitDelay() time.Duration {
	ms, err := strconv.Atoi(utils.GetConfig("SUBMIT_DELAY_MS"))
	if err != nil || ms < 0 {
		return donation.DefaultSubmitDelay
	}
	return time.Duration(ms) * time.Millisecond
}
