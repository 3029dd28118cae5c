package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	ServerPort string
	AdminEmail string

	// Translation service settings. Failures are non-fatal, so the timeout
	// bounds the worst case a question request can spend waiting on it.
	TranslateEndpoint  string
	TranslateTimeout   int // seconds
	TranslateCacheSize int
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "postgres"),
		DBName:             getEnv("DB_NAME", "skill_certification"),
		JWTSecret:          getEnv("JWT_SECRET", "secret"),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		AdminEmail:         getEnv("ADMIN_EMAIL", "admin@skilltest.com"),
		TranslateEndpoint:  getEnv("TRANSLATE_ENDPOINT", "https://translate.googleapis.com/translate_a/single"),
		TranslateTimeout:   getEnvInt("TRANSLATE_TIMEOUT_SECONDS", 5),
		TranslateCacheSize: getEnvInt("TRANSLATE_CACHE_SIZE", 2048),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
