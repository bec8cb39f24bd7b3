package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config contains the settings shared by every footstats command.
// Each field can be set from the environment as FOOTSTATS_<FIELD_NAME>,
// ie FOOTSTATS_DATASETS_DIR, and command line flags override it.
type Config struct {
	// DatasetsDir is the root holding one directory per league
	DatasetsDir string `split_words:"true" default:"datasets"`

	// DbPath is the SQLite match archive
	DbPath string `split_words:"true" default:"footstats.db"`

	// FootballDataURL is the league page scraped for season files when fetch is given no page
	FootballDataURL string `envconfig:"FOOTBALL_DATA_URL" default:"https://www.football-data.co.uk/englandm.php"`

	// CABundle is an optional PEM bundle added to the system roots (corporate proxies)
	CABundle    string        `envconfig:"CA_BUNDLE"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	// TopN is the default number of rows printed by classify and rank
	TopN int `split_words:"true" default:"50"`

	// MaxGoals truncates the predictor's score matrix
	MaxGoals int `split_words:"true" default:"5"`

	LogLevel string `split_words:"true" default:"info"`
	// LogFile, when set, receives logs as well as the console
	LogFile string `split_words:"true"`
}

// Default returns the configuration with every default applied and nothing read from the environment
func Default() *Config {
	return &Config{
		DatasetsDir:     "datasets",
		DbPath:          "footstats.db",
		FootballDataURL: "https://www.football-data.co.uk/englandm.php",
		HTTPTimeout:     30 * time.Second,
		TopN:            50,
		MaxGoals:        5,
		LogLevel:        "info",
	}
}

// Load reads an optional .env file followed by the FOOTSTATS_ environment variables
func Load() (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	var config Config
	if err := envconfig.Process("footstats", &config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate ensures all configuration values are within reasonable ranges
func (c *Config) Validate() error {
	if c.DatasetsDir == "" {
		return fmt.Errorf("DatasetsDir must not be empty")
	}
	if c.MaxGoals < 0 || c.MaxGoals > 20 {
		return fmt.Errorf("MaxGoals should be between 0 and 20, got: %d", c.MaxGoals)
	}
	if c.TopN < 0 {
		return fmt.Errorf("TopN must not be negative, got: %d", c.TopN)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTPTimeout must be positive, got: %s", c.HTTPTimeout)
	}
	if _, err := url.ParseRequestURI(c.FootballDataURL); err != nil {
		return fmt.Errorf("FootballDataURL is not a valid URL: %w", err)
	}
	return nil
}
