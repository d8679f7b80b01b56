package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Aggregator struct {
		URL         string        `yaml:"url"`
		Timeout     time.Duration `yaml:"timeout"`
		PeriodHours float64       `yaml:"period_hours"`
		UserAgent   string        `yaml:"user_agent"`
	} `yaml:"aggregator"`
	Paradex struct {
		BaseURL    string        `yaml:"base_url"`
		Quotes     []string      `yaml:"quotes"`
		Timeout    time.Duration `yaml:"timeout"`
		BatchSize  int           `yaml:"batch_size"`
		BatchDelay time.Duration `yaml:"batch_delay"`
		MaxRPS     float64       `yaml:"max_rps"`
	} `yaml:"paradex"`
	Refresh struct {
		Enabled  bool          `yaml:"enabled"`
		Interval time.Duration `yaml:"interval"`
	} `yaml:"refresh"`
	Ranker struct {
		Top int `yaml:"top"`
	} `yaml:"ranker"`
	Cache struct {
		Enabled bool          `yaml:"enabled"`
		Backend string        `yaml:"backend"` // memory or redis
		TTL     time.Duration `yaml:"ttl"`
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	// Venue alias overrides merged over the built-in table:
	// cleaned alias -> canonical venue label.
	Venues struct {
		Aliases map[string]string `yaml:"aliases"`
	} `yaml:"venues"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("AGGREGATOR_URL"); v != "" {
		c.Aggregator.URL = v
	}
	if v := os.Getenv("PARADEX_URL"); v != "" {
		c.Paradex.BaseURL = v
	}
	if v := os.Getenv("PARADEX_QUOTES"); v != "" {
		c.Paradex.Quotes = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.Aggregator.Timeout == 0 {
		c.Aggregator.Timeout = 12 * time.Second
	}
	if c.Aggregator.PeriodHours == 0 {
		c.Aggregator.PeriodHours = 8
	}
	if c.Aggregator.UserAgent == "" {
		c.Aggregator.UserAgent = "fundradar/1.0"
	}
	if len(c.Paradex.Quotes) == 0 {
		c.Paradex.Quotes = []string{"USD", "USDC"}
	}
	if c.Paradex.Timeout == 0 {
		c.Paradex.Timeout = 5 * time.Second
	}
	if c.Paradex.BatchSize == 0 {
		c.Paradex.BatchSize = 10
	}
	if c.Paradex.BatchDelay == 0 {
		c.Paradex.BatchDelay = 100 * time.Millisecond
	}
	if c.Refresh.Interval == 0 {
		c.Refresh.Interval = time.Minute
	}
	if c.Ranker.Top == 0 {
		c.Ranker.Top = 5
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 30 * time.Second
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Aggregator.URL == "" {
		return fmt.Errorf("aggregator.url is required")
	}
	if c.Paradex.BaseURL == "" {
		return fmt.Errorf("paradex.base_url is required")
	}
	if c.Paradex.BatchSize < 1 {
		return fmt.Errorf("paradex.batch_size must be positive, got %d", c.Paradex.BatchSize)
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("cache.backend must be 'memory' or 'redis', got '%s'", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required for the redis backend")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.Kafka.Enabled && c.Kafka.Topic == "" {
		return fmt.Errorf("kafka.topic is required when kafka is enabled")
	}
	return nil
}
