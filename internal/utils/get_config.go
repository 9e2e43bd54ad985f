package utils

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// App configuration
	AppPort          string `yaml:"APP_PORT"`
	TimeZone         string `yaml:"TIME_ZONE"`
	CORSAllowOrigins string `yaml:"CORS_ALLOW_ORIGINS"`

	// Persistence: "memory" or "postgres"
	StorageDriver   string `yaml:"STORAGE_DRIVER"`
	FoodSlotKey     string `yaml:"FOOD_SLOT_KEY"`
	DonationSlotKey string `yaml:"DONATION_SLOT_KEY"`
	SubmitDelayMS   string `yaml:"SUBMIT_DELAY_MS"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`
	NotifyEmail      string `yaml:"NOTIFY_EMAIL"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var defaults = map[string]string{
	"APP_PORT":          "8080",
	"TIME_ZONE":         "Local",
	"STORAGE_DRIVER":    "memory",
	"FOOD_SLOT_KEY":     "freshKeepInventory",
	"DONATION_SLOT_KEY": "foodRescueDonations",
	"SUBMIT_DELAY_MS":   "1500",
	"DB_PORT":           "5432",
	"SMTP_PORT":         "587",
}

var config Config

// LoadConfig reads path (config.yaml when empty), then a .env file if one
// exists. Process environment beats both.
func LoadConfig(path string) {
	if path == "" {
		path = "config.yaml"
	}

	config = Config{}
	if file, err := os.ReadFile(path); err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env file: %s\n", err)
	}
}

// GetConfig resolves key from the environment, then config.yaml, then the
// built-in default.
func GetConfig(key string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	if v := fromFile(key); v != "" {
		return v
	}
	return defaults[key]
}

func fromFile(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "TIME_ZONE":
		return config.TimeZone
	case "CORS_ALLOW_ORIGINS":
		return config.CORSAllowOrigins
	case "STORAGE_DRIVER":
		return config.StorageDriver
	case "FOOD_SLOT_KEY":
		return config.FoodSlotKey
	case "DONATION_SLOT_KEY":
		return config.DonationSlotKey
	case "SUBMIT_DELAY_MS":
		return config.SubmitDelayMS
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "NOTIFY_EMAIL":
		return config.NotifyEmail
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}
