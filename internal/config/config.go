package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// DefaultSheetID is the Circle Condo damage survey response sheet.
const DefaultSheetID = "1Chr7GsJxl99sK9-9vW0ZM-t6xbphTLiUYn36v_HpHPI"

// Config holds all service settings, populated from environment variables.
type Config struct {
	// Survey sheet source.
	SheetID      string
	SheetBaseURL string
	SheetsAPIKey string
	SheetsRange  string
	FetchTimeout time.Duration
	CacheTTL     time.Duration

	PlanFile string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Optional report snapshot publishing.
	KafkaBrokers     []string
	KafkaReportTopic string
}

// PublishEnabled reports whether report snapshots should be written to Kafka.
func (c *Config) PublishEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults where
// unset. A .env file in the working directory is read first when present;
// variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parsePositiveDuration("FETCH_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}

	cacheTTL, err := time.ParseDuration(sharedcfg.EnvOrDefault("CACHE_TTL", "0s"))
	if err != nil || cacheTTL < 0 {
		return nil, errors.New("invalid CACHE_TTL")
	}

	var brokers []string
	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		SheetID:      strings.TrimSpace(sharedcfg.EnvOrDefault("SHEET_ID", DefaultSheetID)),
		SheetBaseURL: strings.TrimRight(sharedcfg.EnvOrDefault("SHEET_BASE_URL", "https://docs.google.com"), "/"),
		SheetsAPIKey: os.Getenv("SHEETS_API_KEY"),
		SheetsRange:  sharedcfg.EnvOrDefault("SHEETS_RANGE", "A:ZZ"),
		FetchTimeout: fetchTimeout,
		CacheTTL:     cacheTTL,

		PlanFile: sharedcfg.EnvOrDefault("PLAN_FILE", "meeting_plan_gantt_updated.html"),

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaBrokers:     brokers,
		KafkaReportTopic: sharedcfg.EnvOrDefault("KAFKA_REPORT_TOPIC", "quake-damage-reports"),
	}

	if cfg.SheetID == "" {
		return nil, errors.New("SHEET_ID is required")
	}
	if !strings.HasPrefix(cfg.SheetBaseURL, "http://") && !strings.HasPrefix(cfg.SheetBaseURL, "https://") {
		return nil, fmt.Errorf("invalid SHEET_BASE_URL %q", cfg.SheetBaseURL)
	}
	if cfg.PublishEnabled() && cfg.KafkaReportTopic == "" {
		return nil, errors.New("KAFKA_REPORT_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}
