package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Dataset source. Exactly one of DatasetURL and DatasetPath is set.
	DatasetURL     string
	DatasetPath    string
	DatasetTimeout time.Duration

	TrendCacheSize int

	// Selection-change events, feature-flagged via SELECTION_EVENTS_ENABLED / KAFKA_BROKERS.
	KafkaBrokers        []string
	KafkaSelectionTopic string
	EventsEnabled       bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	datasetTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("DATASET_TIMEOUT", "10s"))
	if err != nil || datasetTimeout <= 0 {
		return nil, errors.New("invalid DATASET_TIMEOUT")
	}

	trendCacheSize, err := parseTrendCacheSize()
	if err != nil {
		return nil, err
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = sharedcfg.ParseBrokers(raw)
	}
	eventsEnabled := len(brokers) > 0
	if v := os.Getenv("SELECTION_EVENTS_ENABLED"); v != "" {
		eventsEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DatasetURL:     os.Getenv("DATASET_URL"),
		DatasetPath:    os.Getenv("DATASET_PATH"),
		DatasetTimeout: datasetTimeout,

		TrendCacheSize: trendCacheSize,

		KafkaBrokers:        brokers,
		KafkaSelectionTopic: sharedcfg.EnvOrDefault("KAFKA_SELECTION_TOPIC", "market-selection-events"),
		EventsEnabled:       eventsEnabled,
	}

	if cfg.DatasetURL == "" && cfg.DatasetPath == "" {
		return nil, errors.New("one of DATASET_URL or DATASET_PATH is required")
	}
	if cfg.DatasetURL != "" && cfg.DatasetPath != "" {
		return nil, errors.New("DATASET_URL and DATASET_PATH are mutually exclusive")
	}
	if cfg.EventsEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("SELECTION_EVENTS_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.EventsEnabled && cfg.KafkaSelectionTopic == "" {
		return nil, errors.New("KAFKA_SELECTION_TOPIC is required")
	}

	return cfg, nil
}

func parseTrendCacheSize() (int, error) {
	s := os.Getenv("TREND_CACHE_SIZE")
	if s == "" {
		return 256, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid TREND_CACHE_SIZE")
	}
	return n, nil
}
