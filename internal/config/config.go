package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the process-wide application configuration. It is built once
// at startup and injected into the components that need it.
type Config struct {
	Env       string
	SecretKey string
	JWTExpiry time.Duration
	Port      string

	MongoURI string
	MongoDB  string

	TMDBAPIKey  string
	TMDBBaseURL string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string

	MoviesFile string
	UploadDir  string
}

// Load builds the configuration from environment variables.
func Load() *Config {
	expiryHours, _ := strconv.Atoi(getEnv("JWT_EXPIRY_HOURS", "24"))

	secretKey := getEnv("SECRET_KEY", "supersecretkey")
	if getEnv("APP_ENV", "development") == "production" && secretKey == "supersecretkey" {
		fmt.Println("WARNING: running in production with the default SECRET_KEY, set the SECRET_KEY environment variable")
	}

	return &Config{
		Env:         getEnv("APP_ENV", "development"),
		SecretKey:   secretKey,
		JWTExpiry:   time.Duration(expiryHours) * time.Hour,
		Port:        getEnv("PORT", "5000"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "pn_movie"),
		TMDBAPIKey:  getEnv("TMDB_API_KEY", ""),
		TMDBBaseURL: getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		SMTPHost:    getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:    getEnv("SMTP_PORT", "587"),
		SMTPUser:    getEnv("SMTP_USER", ""),
		SMTPPass:    getEnv("SMTP_PASS", ""),
		MoviesFile:  getEnv("MOVIES_FILE", "my_movies.json"),
		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
