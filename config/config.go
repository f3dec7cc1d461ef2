package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/ottermq/sempctl/internal/core/management"
)

type Config struct {
	// Management endpoint
	VPN            string
	MgmtURL        string
	MgmtUsername   string
	MgmtPassword   string
	BrowserTimeout int
	TopicAliases   bool

	// Observability
	EnableMetrics   bool
	EnableTracing   bool
	TracingEndpoint string

	// Browse API
	WebAddr string

	Version string

	// Logging
	LogLevel string
}

// LoadConfig loads configuration from .env file, environment variables, or defaults
// Priority: environment variables > .env file > default values
func LoadConfig(version string) *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	return &Config{
		VPN:            getEnv("SEMPCTL_VPN", management.DefaultVPN),
		MgmtURL:        getEnv("SEMPCTL_MGMT_URL", "http://localhost:8080"),
		MgmtUsername:   getEnv("SEMPCTL_MGMT_USERNAME", "admin"),
		MgmtPassword:   getEnv("SEMPCTL_MGMT_PASSWORD", "admin"),
		BrowserTimeout: getEnvAsInt("SEMPCTL_BROWSER_TIMEOUT", management.DefaultBrowserTimeout),
		TopicAliases:   getEnvAsBool("SEMPCTL_TOPIC_ALIASES", false),

		EnableMetrics:   getEnvAsBool("SEMPCTL_ENABLE_METRICS", false),
		EnableTracing:   getEnvAsBool("SEMPCTL_ENABLE_TRACING", false),
		TracingEndpoint: getEnv("SEMPCTL_TRACING_ENDPOINT", ""),

		WebAddr: getEnv("SEMPCTL_WEB_ADDR", ":3000"),

		Version: version,

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// ConnectionProperties returns the management connection parameters held by c,
// parsed the same way a host's key/value connection properties are.
func (c *Config) ConnectionProperties() (management.ConnectionProperties, error) {
	return management.ParseConnectionProperties(map[string]string{
		management.PropVPN:            c.VPN,
		management.PropMgmtURL:        c.MgmtURL,
		management.PropMgmtUsername:   c.MgmtUsername,
		management.PropMgmtPassword:   c.MgmtPassword,
		management.PropBrowserTimeout: strconv.Itoa(c.BrowserTimeout),
		management.PropTopicAliases:   strconv.FormatBool(c.TopicAliases),
	})
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Invalid value for %s: %s, using default: %d\n", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Invalid value for %s: %s, using default: %t\n", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
