package config

import (
	"fmt"
	"os"
)

// Storage driver names selectable via STORAGE_DRIVER.
const (
	StorageDriverMySQL = "mysql"
	StorageDriverFile  = "file"
)

// Config holds all configuration for our application
type Config struct {
	Port        string
	Origin      string
	Environment string
	Gemini      GeminiConfig
	Storage     StorageConfig
	Database    DatabaseConfig
}

// GeminiConfig holds generative model configuration
type GeminiConfig struct {
	APIKey string
	Model  string
}

// StorageConfig selects the persistence backend
type StorageConfig struct {
	Driver   string
	DataFile string
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "parenting_copilot"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	storage := StorageConfig{
		Driver:   getEnv("STORAGE_DRIVER", StorageDriverFile),
		DataFile: getEnv("DATA_FILE", "data/models.json"),
	}
	if storage.Driver != StorageDriverMySQL && storage.Driver != StorageDriverFile {
		return nil, fmt.Errorf("invalid STORAGE_DRIVER: %s", storage.Driver)
	}

	return &Config{
		Port:        getEnv("PORT", "5000"),
		Origin:      getEnv("ORIGIN", "http://localhost:3000"),
		Environment: getEnv("APP_ENV", "development"),
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Storage:  storage,
		Database: dbConfig,
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
