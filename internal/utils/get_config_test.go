package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(path, []byte("APP_PORT: \"9000\"\nSTORAGE_DRIVER: postgres\nDB_HOST: db.internal\n"), 0o600)
	assert.NoError(t, err)

	LoadConfig(path)
	t.Cleanup(func() { config = Config{} })

	assert.Equal(t, "9000", GetConfig("APP_PORT"))
	assert.Equal(t, "db.internal", GetConfig("DB_HOST"))
	assert.Equal(t, "freshKeepInventory", GetConfig("FOOD_SLOT_KEY"), "falls back to the default")
	assert.Equal(t, "", GetConfig("AWS_S3_BUCKET"))

	t.Setenv("STORAGE_DRIVER", "memory")
	assert.Equal(t, "memory", GetConfig("STORAGE_DRIVER"), "environment wins over the file")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	t.Cleanup(func() { config = Config{} })

	assert.Equal(t, "8080", GetConfig("APP_PORT"))
	assert.Equal(t, "1500", GetConfig("SUBMIT_DELAY_MS"))
}

func TestInitValidator(t *testing.T) {
	InitValidator()
	first := Validate
	InitValidator()
	assert.Same(t, first, Validate)
}
