package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/MimeLyc/deepl-cli/pkg/log"
)

// Config holds all application configuration.
// Values come from, in increasing priority: built-in defaults, the JSON
// config file, environment variables.
//
// Environment Variables:
// - DEEPL_API_KEY: DeepL API key
// - DEEPL_API_URL: API endpoint override (default: derived from the key)
// - DEEPL_TIMEOUT: request timeout in seconds (default: 30)
// - DEEPL_MAX_WORKERS: concurrent batch translations (default: 3)
// - DEEPL_BATCH_DELAY: pacing between batch completions in seconds (default: 0.5)
// - DEEPL_SEGMENT_SIZE: maximum characters per translation chunk (default: 5000)
// - DEEPL_HISTORY_DB: history database path, "off" disables (default: ~/.config/deepl-cli/history.db)
// - DEEPL_WATCH_CRON: watch-mode schedule (default: every 10 minutes)
type Config struct {
	APIKey      string  `json:"api_key"`
	APIURL      string  `json:"api_endpoint"`
	Timeout     int     `json:"timeout_seconds"`
	MaxWorkers  int     `json:"batch_max_workers"`
	BatchDelay  float64 `json:"batch_delay_seconds"`
	SegmentSize int     `json:"segment_size"`
	HistoryDB   string  `json:"history_db"`
	WatchCron   string  `json:"watch_cron"`

	DefaultTargetLang string `json:"default_target_lang"`
	DefaultSourceLang string `json:"default_source_lang"`
}

// Option is a function type for configuring Config
type Option func(*Config)

// New creates a Config from the config file and environment variables.
func New(opts ...Option) (*Config, error) {
	// A local .env is a convenience for development, absence is fine.
	_ = godotenv.Load()

	config := &Config{
		Timeout:     30,
		MaxWorkers:  3,
		BatchDelay:  0.5,
		SegmentSize: 5000,
		WatchCron:   "*/10 * * * *",
	}

	if path := findConfigFile(); path != "" {
		if err := config.loadFile(path); err != nil {
			log.Warn("Failed to load config file %s: %v", path, err)
		} else {
			log.Debug("Loaded configuration from %s", path)
		}
	}

	config.APIKey = getEnvString("DEEPL_API_KEY", config.APIKey)
	config.APIURL = getEnvString("DEEPL_API_URL", config.APIURL)
	config.Timeout = getEnvInt("DEEPL_TIMEOUT", config.Timeout)
	config.MaxWorkers = getEnvInt("DEEPL_MAX_WORKERS", config.MaxWorkers)
	config.BatchDelay = getEnvFloat("DEEPL_BATCH_DELAY", config.BatchDelay)
	config.SegmentSize = getEnvInt("DEEPL_SEGMENT_SIZE", config.SegmentSize)
	config.HistoryDB = getEnvString("DEEPL_HISTORY_DB", config.HistoryDB)
	config.WatchCron = getEnvString("DEEPL_WATCH_CRON", config.WatchCron)

	if config.HistoryDB == "" {
		if home, err := os.UserHomeDir(); err == nil {
			config.HistoryDB = filepath.Join(home, ".config", "deepl-cli", "history.db")
		} else {
			config.HistoryDB = "off"
		}
	}

	// Apply custom options
	for _, opt := range opts {
		opt(config)
	}

	return config, nil
}

// HistoryEnabled reports whether translation history should be recorded.
func (c *Config) HistoryEnabled() bool {
	return !strings.EqualFold(c.HistoryDB, "off")
}

// ResolveAPIKey returns the API key to use, in priority order:
// explicit flag value, DEEPL_API_KEY (already merged into c.APIKey),
// then the per-user key files.
func (c *Config) ResolveAPIKey(flagKey string) string {
	if flagKey != "" {
		return flagKey
	}
	if c.APIKey != "" {
		return c.APIKey
	}

	for _, path := range apiKeyPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if key := strings.TrimSpace(string(data)); key != "" {
			log.Debug("Loaded API key from %s", path)
			return key
		}
	}
	return ""
}

// APIKeyLocations lists the key file paths checked by ResolveAPIKey,
// for use in error messages.
func APIKeyLocations() []string {
	return apiKeyPaths()
}

func apiKeyPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".token", "deepl-cli", "api_key"),
		filepath.Join(home, ".config", "deepl-cli", "api_key"),
		filepath.Join(home, ".config", ".deepl_apikey"),
		filepath.Join(home, ".deepl_apikey"),
	}
}

func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	candidates := []string{
		filepath.Join(home, ".config", "deepl-cli", "config.json"),
		filepath.Join(home, ".deepl-cli", "config.json"),
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, c)
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat gets a float value from environment variables with default
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
