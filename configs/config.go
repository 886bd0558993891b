package configs

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration values.
type Config struct {
	ServerHost       string
	ServerPort       string
	ServerMode       string
	DatabaseHost     string
	DatabasePort     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
	DatabaseURL      string
	LogLevel         string
	LogFile          string

	MaxConcurrentCrawls int
	CrawlQueueSize      int
	CrawlMaxPages       int
	CrawlTimeout        time.Duration
	FetchTimeout        time.Duration
	CrawlDelay          time.Duration
	UserAgent           string
	TargetLanguage      string
	LanguageConfidence  float64
	TopicFile           string
}

// Load reads configuration from environment variables, optionally seeded from a .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := LoadCrawl()
	if err != nil {
		return nil, err
	}

	// Server
	cfg.ServerHost = getEnv("HOST", "0.0.0.0")
	cfg.ServerPort = getEnv("PORT", "8080")
	cfg.ServerMode = getEnv("GIN_MODE", "debug")

	// Database
	cfg.DatabaseHost = getEnv("DB_HOST", "localhost")
	cfg.DatabasePort = getEnv("DB_PORT", "3306")
	cfg.DatabaseUser = getEnv("DB_USER", "")
	cfg.DatabasePassword = getEnv("DB_PASSWORD", "")
	cfg.DatabaseName = getEnv("DB_NAME", "")
	if cfg.DatabaseUser == "" || cfg.DatabasePassword == "" || cfg.DatabaseName == "" {
		return nil, fmt.Errorf("missing required database env vars")
	}
	// user:pass@tcp(host:port)/dbname?parseTime=true
	cfg.DatabaseURL = fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4",
		cfg.DatabaseUser, cfg.DatabasePassword,
		cfg.DatabaseHost, cfg.DatabasePort,
		cfg.DatabaseName,
	)

	// Worker pool
	if cfg.MaxConcurrentCrawls, err = getInt("MAX_CONCURRENT_CRAWLS", 4); err != nil {
		return nil, err
	}
	if cfg.CrawlQueueSize, err = getInt("CRAWL_QUEUE_SIZE", 128); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadCrawl reads only the crawl and logging settings. The CLI uses it
// because it needs no database.
func LoadCrawl() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	var err error

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFile = getEnv("LOG_FILE", "logs/siteinsight.log")

	if cfg.CrawlMaxPages, err = getInt("CRAWL_MAX_PAGES", 10); err != nil {
		return nil, err
	}
	if cfg.CrawlMaxPages < 1 {
		return nil, fmt.Errorf("invalid CRAWL_MAX_PAGES: must be at least 1")
	}
	if cfg.CrawlTimeout, err = getSeconds("CRAWL_TIMEOUT_SECONDS", 30); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = getSeconds("FETCH_TIMEOUT_SECONDS", 7); err != nil {
		return nil, err
	}
	delayMS, err := getInt("CRAWL_DELAY_MS", 100)
	if err != nil {
		return nil, err
	}
	cfg.CrawlDelay = time.Duration(delayMS) * time.Millisecond

	cfg.UserAgent = getEnv("USER_AGENT", "")
	cfg.TargetLanguage = getEnv("TARGET_LANGUAGE", "eng")
	conf := getEnv("LANGUAGE_CONFIDENCE", "0.5")
	if cfg.LanguageConfidence, err = strconv.ParseFloat(conf, 64); err != nil {
		return nil, fmt.Errorf("invalid LANGUAGE_CONFIDENCE: %w", err)
	}
	cfg.TopicFile = getEnv("TOPIC_FILE", "")

	return cfg, nil
}

// getEnv returns env var or default.
func getEnv(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func getInt(key string, def int) (int, error) {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(def)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getSeconds(key string, def int) (time.Duration, error) {
	n, err := getInt(key, def)
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Second, nil
}
