package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds application configuration loaded from environment variables and .env file.
type AppConfig struct {
	// Database config
	DBHost string
	DBPort int
	DBUser string
	DBPass string
	DBName string

	// Logging config
	LogLevel      string
	LogFile       string
	LogMaxSize    int // MB
	LogMaxBackups int
	LogMaxAge     int // days
	LogCompress   bool

	// Redaction config. When HideSensitiveFields is on, every read-facing
	// response has sensitive attribute values replaced with a mask token.
	HideSensitiveFields bool
	SensitiveFieldNames []string // extends the built-in sensitive-name set

	// TestConnectionEnabled gates the connection probe endpoint.
	// Disabled by default; probing arbitrary hosts is an operator decision.
	TestConnectionEnabled bool

	// DefaultConnectionsFile points to the YAML seed file used by the
	// default-connections endpoint.
	DefaultConnectionsFile string
}

// Cfg is the global application configuration instance.
var Cfg AppConfig

// LoadConfig loads application configuration from .env file and environment variables.
func LoadConfig() error {
	err := godotenv.Load()
	if err != nil {
		// Use standard log here since logger is not initialized yet
		log.Printf("[WARN] .env file not found or cannot be loaded: %v", err)
	} else {
		log.Printf("[INFO] .env file loaded successfully")
	}

	Cfg.DBHost = getEnv("DB_HOST", "127.0.0.1")
	Cfg.DBUser = getEnv("DB_USER", "root")
	Cfg.DBPass = getEnv("DB_PASS", "")
	Cfg.DBName = getEnv("DB_NAME", "connregistry")
	Cfg.DBPort = getEnvInt("DB_PORT", 3306)

	Cfg.LogLevel = getEnv("LOG_LEVEL", "INFO")
	Cfg.LogFile = getEnv("LOG_FILE", "/var/log/connregistry/connregistry.log")
	Cfg.LogMaxSize = getEnvInt("LOG_MAX_SIZE", 10)
	Cfg.LogMaxBackups = getEnvInt("LOG_MAX_BACKUPS", 3)
	Cfg.LogMaxAge = getEnvInt("LOG_MAX_AGE", 28)
	Cfg.LogCompress = getEnvBool("LOG_COMPRESS", true)

	Cfg.HideSensitiveFields = getEnvBool("HIDE_SENSITIVE_FIELDS", true)
	Cfg.SensitiveFieldNames = getEnvStringSlice("SENSITIVE_FIELD_NAMES", nil)

	Cfg.TestConnectionEnabled = strings.EqualFold(getEnv("TEST_CONNECTION", "Disabled"), "Enabled")
	Cfg.DefaultConnectionsFile = getEnv("DEFAULT_CONNECTIONS_FILE", "/etc/connregistry/default_connections.yaml")

	log.Printf("[INFO] Config loaded - DB: %s@%s:%d/%s, LogLevel: %s, HideSensitiveFields: %t",
		Cfg.DBUser, Cfg.DBHost, Cfg.DBPort, Cfg.DBName, Cfg.LogLevel, Cfg.HideSensitiveFields)

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if boolVal, err := strconv.ParseBool(val); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

// getEnvStringSlice parses a comma-separated environment variable into a string slice.
func getEnvStringSlice(key string, defaultVal []string) []string {
	if val := os.Getenv(key); val != "" {
		items := strings.Split(val, ",")
		result := make([]string, 0, len(items))
		for _, item := range items {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return defaultVal
}
