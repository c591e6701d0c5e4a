package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/limaJavier/coursetables/pkg/exporter"
	"github.com/limaJavier/coursetables/pkg/model"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port    string        `yaml:"port" env:"COURSETABLES_SERVER_PORT"`
		Mode    string        `yaml:"mode" env:"COURSETABLES_SERVER_MODE"`
		Timeout time.Duration `yaml:"timeout" env:"COURSETABLES_SERVER_TIMEOUT"` // Upper bound on a single generation request
	} `yaml:"server"`

	Logging struct {
		Level  string `yaml:"level" env:"COURSETABLES_LOG_LEVEL"`
		Format string `yaml:"format" env:"COURSETABLES_LOG_FORMAT"`
	} `yaml:"logging"`

	Generator struct {
		Strategy   string `yaml:"strategy" env:"COURSETABLES_STRATEGY"`
		MaxResults int    `yaml:"max_results" env:"COURSETABLES_MAX_RESULTS"`
		PageSize   int    `yaml:"page_size" env:"COURSETABLES_PAGE_SIZE"`
	} `yaml:"generator"`

	Calendar struct {
		Timezone      string   `yaml:"timezone" env:"COURSETABLES_TIMEZONE"`
		FirstWeek     string   `yaml:"first_week" env:"COURSETABLES_FIRST_WEEK"` // 2006-01-02, empty for the current week
		PeriodStarts  []string `yaml:"period_starts" env:"COURSETABLES_PERIOD_STARTS"`
		PeriodMinutes int      `yaml:"period_minutes" env:"COURSETABLES_PERIOD_MINUTES"`
		Weeks         int      `yaml:"weeks" env:"COURSETABLES_WEEKS"`
	} `yaml:"calendar"`

	Database struct {
		Url string `yaml:"url" env:"COURSETABLES_DATABASE_URL"`
	} `yaml:"database"`
}

// LoadConfig reads the YAML file at path when it exists, then applies environment overrides.
// A missing file is not an error; defaults are used instead.
func LoadConfig(path string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "release"
	config.Server.Timeout = 30 * time.Second

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Generator.Strategy = "recursive"
	config.Generator.MaxResults = 0
	config.Generator.PageSize = 20

	config.Calendar.Timezone = "UTC"
	config.Calendar.PeriodMinutes = 50
	config.Calendar.Weeks = 15
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if config.Server.Timeout <= 0 {
		return fmt.Errorf("server timeout must be positive")
	}

	if _, err := zerolog.ParseLevel(config.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if config.Logging.Format != "json" && config.Logging.Format != "console" {
		return fmt.Errorf("log format must be json or console, got \"%v\"", config.Logging.Format)
	}

	if _, ok := model.Timetablers[config.Generator.Strategy]; !ok {
		return fmt.Errorf("unknown strategy \"%v\"", config.Generator.Strategy)
	}
	if config.Generator.MaxResults < 0 {
		return fmt.Errorf("max results must not be negative")
	}
	if config.Generator.PageSize < 1 {
		return fmt.Errorf("page size must be positive")
	}

	if _, err := time.LoadLocation(config.Calendar.Timezone); err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}
	if config.Calendar.FirstWeek != "" {
		if _, err := time.Parse(time.DateOnly, config.Calendar.FirstWeek); err != nil {
			return fmt.Errorf("invalid first week: %w", err)
		}
	}
	for _, start := range config.Calendar.PeriodStarts {
		if _, err := time.Parse("15:04", start); err != nil {
			return fmt.Errorf("invalid period start \"%v\"", start)
		}
	}
	if config.Calendar.PeriodMinutes < 1 {
		return fmt.Errorf("period length must be positive")
	}
	if config.Calendar.Weeks < 1 {
		return fmt.Errorf("weeks must be positive")
	}
	return nil
}

// Location returns the configured calendar time zone
func (c *Config) Location() *time.Location {
	location, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return time.UTC
	}
	return location
}

// FirstWeek returns the first teaching week, defaulting to now
func (c *Config) FirstWeek() time.Time {
	first, err := time.ParseInLocation(time.DateOnly, c.Calendar.FirstWeek, c.Location())
	if err != nil {
		return time.Now().In(c.Location())
	}
	return first
}

// ExportCalendar maps the calendar section onto the iCalendar exporter settings
func (c *Config) ExportCalendar() exporter.Calendar {
	return exporter.Calendar{
		Location:      c.Location(),
		FirstWeek:     c.FirstWeek(),
		PeriodStarts:  c.Calendar.PeriodStarts,
		PeriodMinutes: c.Calendar.PeriodMinutes,
		Weeks:         c.Calendar.Weeks,
	}
}
