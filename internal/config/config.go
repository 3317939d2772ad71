package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(LevelForEnvironment(GetEnvWithDefault("APP_ENV", "development")))
}

// Supported store drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Environment     string `json:"environment"`
	Host            string `json:"host"`
	Port            int    `json:"port"`
	ShutdownTimeout int    `json:"shutdown_timeout_seconds"`
	ServiceName     string `json:"service_name"`

	// Store configuration
	StoreDriver string `json:"store_driver"`
	SeedData    bool   `json:"seed_data"`

	// Database configuration, used by the sqlite and postgres drivers
	DBPath     string `json:"db_path"`
	DBHost     string `json:"db_host"`
	DBPort     string `json:"db_port"`
	DBName     string `json:"db_name"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"db_password"`
	DBSSLMode  string `json:"db_sslmode"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// Optional endpoints
	SwaggerEnabled bool `json:"swagger_enabled"`
	MetricsEnabled bool `json:"metrics_enabled"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Environment: %s, Host: %s, Port: %d, StoreDriver: %s, SeedData: %t, DBPath: %s, DBHost: %s, DBPort: %s, DBName: %s, DBUser: %s, DBPassword: [REDACTED], LogLevel: %s, Swagger: %t, Metrics: %t}",
		c.Environment, c.Host, c.Port, c.StoreDriver, c.SeedData, c.DBPath, c.DBHost, c.DBPort, c.DBName, c.DBUser, c.LogLevel, c.SwaggerEnabled, c.MetricsEnabled)
}

// Address returns the host:port the server listens on
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsProduction reports whether the service runs with APP_ENV=production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// LoadConfig read the proper configuration from environment variables and returns a Config struct
// Returns an error if any environment variable is present but invalid
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config := &Config{
		Environment:     GetEnvWithDefault("APP_ENV", "development"),
		Host:            GetEnvWithDefault("APP_HOST", "localhost"),
		Port:            port,
		ShutdownTimeout: GetEnvAsType("SHUTDOWN_TIMEOUT_SECONDS", 10),
		ServiceName:     GetEnvWithDefault("SERVICE_NAME", "minimal-pizza-api"),
		StoreDriver:     strings.ToLower(GetEnvWithDefault("STORE_DRIVER", DriverMemory)),
		SeedData:        GetEnvAsType("SEED_DATA", false),
		DBPath:          GetEnvWithDefault("DB_PATH", "pizzas.sqlite"),
		DBHost:          GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:          GetEnvWithDefault("DB_PORT", "5432"),
		DBName:          GetEnvWithDefault("DB_NAME", "pizzas"),
		DBUser:          GetEnvWithDefault("DB_USER", "user"),
		DBPassword:      GetEnvWithDefault("DB_PASSWORD", "password"),
		DBSSLMode:       GetEnvWithDefault("DB_SSLMODE", "disable"),
		LogLevel:        GetEnvWithDefault("LOG_LEVEL", "info"),
		SwaggerEnabled:  GetEnvAsType("SWAGGER_ENABLED", true),
		MetricsEnabled:  GetEnvAsType("METRICS_ENABLED", true),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid APP_PORT %d: must be between 1 and 65535", c.Port)
	}
	if c.ShutdownTimeout < 1 {
		return fmt.Errorf("invalid SHUTDOWN_TIMEOUT_SECONDS %d: must be at least 1", c.ShutdownTimeout)
	}
	switch c.StoreDriver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q (supported: memory, sqlite, postgres)", c.StoreDriver)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return nil
}

// LevelForEnvironment maps APP_ENV to the default log level
func LevelForEnvironment(environment string) logrus.Level {
	switch environment {
	case "development":
		return logrus.DebugLevel
	case "production":
		return logrus.ErrorLevel
	default:
		// Default to info level for other environments
		return logrus.InfoLevel
	}
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Debugf("Environment variable %s not set, using default value: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			log.Warnf("Environment variable %s=%q is not an int, using default", key, value)
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			log.Warnf("Environment variable %s=%q is not a bool, using default", key, value)
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}
