// Package config loads the pipeline configuration from the environment,
// with an optional .env file for the object-storage credentials.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// envPrefix namespaces every environment variable this tool reads.
const envPrefix = "OE"

// Config is the complete application configuration.
type Config struct {
	Storage  StorageConfig  `envconfig:"STORAGE"`
	Output   OutputConfig   `envconfig:"OUTPUT"`
	Logging  LoggingConfig  `envconfig:"LOGGING"`
	Schedule ScheduleConfig `envconfig:"SCHEDULE"`

	// Years to pull, e.g. "2024,2025,2026". Empty means the current
	// year and the two preceding.
	Years []int `envconfig:"YEARS"`
}

// StorageConfig addresses the bucket holding the yearly match CSVs.
type StorageConfig struct {
	Bucket       string `envconfig:"BUCKET" default:"oracles-elixir" validate:"required"`
	Region       string `envconfig:"REGION" default:"us-east-1" validate:"required"`
	AccessID     string `envconfig:"ACCESS_ID"`
	AccessSecret string `envconfig:"ACCESS_SECRET"`
}

// OutputConfig controls where and how the result tables are written.
type OutputConfig struct {
	Dir    string `envconfig:"DIR" default:"data" validate:"required"`
	Format string `envconfig:"FORMAT" default:"csv" validate:"oneof=csv xlsx"`

	// Optional old-name to new-name mapping tables.
	TeamMappingsFile   string `envconfig:"TEAM_MAPPINGS_FILE"`
	PlayerMappingsFile string `envconfig:"PLAYER_MAPPINGS_FILE"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `envconfig:"OUTPUT" default:"stdout" validate:"oneof=stdout file both"`
	FilePath string `envconfig:"FILE_PATH" default:"logs/oecli.log"`
}

// ScheduleConfig configures the upcoming-matches API client.
type ScheduleConfig struct {
	BaseURL string        `envconfig:"BASE_URL" default:"https://api.pandascore.co" validate:"required,url"`
	Token   string        `envconfig:"TOKEN"`
	PerPage int           `envconfig:"PER_PAGE" default:"100" validate:"min=1,max=100"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"30s"`

	// Client-side request rate limit.
	RequestsPerSecond float64 `envconfig:"RPS" default:"2"`
}

// Load reads an optional .env file from the working directory, then the
// environment, then validates. envFile may be empty.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		// Best effort: a missing default .env is not an error.
		_ = godotenv.Load()
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if len(cfg.Years) == 0 {
		cfg.Years = DefaultYears(time.Now())
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// DefaultYears returns the analytics time frame: the current year and the
// two preceding.
func DefaultYears(now time.Time) []int {
	year := now.Year()
	return []int{year, year - 1, year - 2}
}
