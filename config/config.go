package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv            string
	Port              string
	DataDir           string
	JWTSecret         string
	AdminUsername     string
	AdminPasswordHash string
}

var (
	cfg  *Config
	once sync.Once
)

// LoadConfig reads the .env file once and builds the process configuration.
// A missing .env is not fatal; real environment variables take over.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: .env file not found. Relying on environment variables.")
		}
		cfg = &Config{
			AppEnv:            os.Getenv("APP_ENV"),
			Port:              envOr("PORT", "8080"),
			DataDir:           envOr("DATA_DIR", "data"),
			JWTSecret:         os.Getenv("JWT_SECRET_KEY"),
			AdminUsername:     os.Getenv("DASHBOARD_ADMIN_USER"),
			AdminPasswordHash: os.Getenv("DASHBOARD_ADMIN_PASSWORD_HASH"),
		}
	})
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
