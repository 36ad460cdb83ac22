package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	EmailSender string
	Password    string // SMTP Password
	AdminEmail  string // Receives the daily stats digest

	MediaStoreURL   string // Object storage endpoint; empty means local uploads
	MediaStoreToken string
	MediaCDNBase    string // Public base URL for stored media
	UploadDir       string

	ActiveWindowMinutes int // "currently active" means last seen within this window
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "peakform"),
		DBPort:     getEnv("DB_PORT", "5432"),

		EmailSender: getEnv("EMAIL_SENDER", ""),
		Password:    getEnv("EMAIL_PASSWORD", ""),
		AdminEmail:  getEnv("ADMIN_EMAIL", ""),

		MediaStoreURL:   getEnv("MEDIA_STORE_URL", ""),
		MediaStoreToken: getEnv("MEDIA_STORE_TOKEN", ""),
		MediaCDNBase:    getEnv("MEDIA_CDN_BASE", ""),
		UploadDir:       getEnv("UPLOAD_DIR", "./public/uploads"),

		ActiveWindowMinutes: getEnvInt("ACTIVE_WINDOW_MINUTES", 1),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.MediaStoreURL == "" {
		log.Println("Warning: MEDIA_STORE_URL not set. Video uploads will be stored locally.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
