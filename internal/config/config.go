package config

import (
	"os"
)

type Config struct {
	Port          string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	JWTSecret     string
	GinMode       string
	LogLevel      string
	WeatherAPIKey string
	WeatherCityID string
	WeatherURL    string
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "5000"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "taskuser"),
		DBPassword:    getEnv("DB_PASSWORD", "taskpassword"),
		DBName:        getEnv("DB_NAME", "task_management"),
		JWTSecret:     getEnv("JWT_SECRET", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		WeatherAPIKey: getEnv("OPENWEATHERMAP_API_KEY", ""),
		WeatherCityID: getEnv("CITY_ID", ""),
		WeatherURL:    getEnv("OPENWEATHERMAP_URL", "https://api.openweathermap.org"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
