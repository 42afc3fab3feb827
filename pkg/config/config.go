// Package config provides configuration management for the abstraccount
// client. It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	API   APIConfig
	Local LocalConfig
	Debug bool
}

// APIConfig represents abstraccount API configuration.
type APIConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// LocalConfig represents local data configuration.
type LocalConfig struct {
	DataRoot     string
	CacheDBPath  string
	ExportDir    string
	DisplayStyle string // path to the display style YAML, optional
}

// Load loads configuration from environment variables. It automatically
// loads a .env file from the current directory if available. You can
// optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	timeoutSeconds, err := parseIntEnv("ABSTRACCOUNT_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid ABSTRACCOUNT_TIMEOUT_SECONDS: %w", err)
	}

	config := &Config{
		API: APIConfig{
			BaseURL: getEnvOrDefault("ABSTRACCOUNT_API_URL", "http://localhost:8080"),
			Token:   os.Getenv("ABSTRACCOUNT_TOKEN"),
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
		Local: LocalConfig{
			DataRoot:     getEnvOrDefault("ABSTRACCOUNT_DATA_ROOT", "./data"),
			CacheDBPath:  os.Getenv("ABSTRACCOUNT_CACHE_DB_PATH"),
			ExportDir:    os.Getenv("ABSTRACCOUNT_EXPORT_DIR"),
			DisplayStyle: os.Getenv("ABSTRACCOUNT_DISPLAY_STYLE"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Validate checks that the named fields are set. Field names are
// dot-separated paths like "api.token".
func (c *Config) Validate(required ...string) error {
	var missing []string

	for _, path := range required {
		var value string
		switch path {
		case "api.baseUrl":
			value = c.API.BaseURL
		case "api.token":
			value = c.API.Token
		case "local.dataRoot":
			value = c.Local.DataRoot
		case "local.cacheDbPath":
			value = c.Local.CacheDBPath
		case "local.exportDir":
			value = c.Local.ExportDir
		default:
			missing = append(missing, path+" (unknown field)")
			continue
		}

		if value == "" {
			missing = append(missing, path)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s\nPlease check your .env file or environment variables", strings.Join(missing, ", "))
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default
// value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseIntEnv parses an int from an environment variable. Returns
// defaultValue if the environment variable is not set.
func parseIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %s", key, value)
	}

	return parsed, nil
}
