package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. FLOODSPECTRE_YEAR_FROM.
const EnvPrefix = "FLOODSPECTRE"

// Config holds floodspectre configuration loaded from .floodspectre.yaml,
// .env and FLOODSPECTRE_* environment variables. Zero values mean "not set";
// the command falls back to its flag defaults for those.
type Config struct {
	Input                 string  `yaml:"input" envconfig:"INPUT"`
	OutputDir             string  `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	YearFrom              int     `yaml:"year_from" envconfig:"YEAR_FROM" validate:"omitempty,gte=1900,lte=2100"`
	YearTo                int     `yaml:"year_to" envconfig:"YEAR_TO" validate:"omitempty,gte=1900,lte=2100"`
	MinContractorProjects int     `yaml:"min_contractor_projects" envconfig:"MIN_CONTRACTOR_PROJECTS" validate:"gte=0"`
	TopContractors        int     `yaml:"top_contractors" envconfig:"TOP_CONTRACTORS" validate:"gte=0"`
	HighDelayDays         int     `yaml:"high_delay_days" envconfig:"HIGH_DELAY_DAYS" validate:"gte=0"`
	ReliabilityDelayDays  float64 `yaml:"reliability_delay_days" envconfig:"RELIABILITY_DELAY_DAYS" validate:"gte=0"`
	HighRiskThreshold     float64 `yaml:"high_risk_threshold" envconfig:"HIGH_RISK_THRESHOLD" validate:"gte=0,lte=100"`
	YoYMaxYear            int     `yaml:"yoy_max_year" envconfig:"YOY_MAX_YEAR" validate:"omitempty,gte=1900,lte=2100"`
	XLSX                  bool    `yaml:"xlsx" envconfig:"XLSX"`
	Chart                 bool    `yaml:"chart" envconfig:"CHART"`
	MetricsFile           string  `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	Profile               string  `yaml:"profile" envconfig:"PROFILE"`
	Region                string  `yaml:"region" envconfig:"REGION"`
	Timeout               string  `yaml:"timeout" envconfig:"TIMEOUT"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// TimeoutDuration parses the timeout string as a duration.
func (c Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Validate checks field ranges and cross-field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.YearFrom != 0 && c.YearTo != 0 && c.YearFrom > c.YearTo {
		return fmt.Errorf("invalid config: year_from %d is after year_to %d", c.YearFrom, c.YearTo)
	}
	if c.Timeout != "" {
		if _, err := time.ParseDuration(c.Timeout); err != nil {
			return fmt.Errorf("invalid config: timeout %q: %w", c.Timeout, err)
		}
	}
	return nil
}

// Load reads dir/.env into the environment (without overriding variables
// already set), then searches for .floodspectre.yaml or .floodspectre.yml in
// dir, applies FLOODSPECTRE_* overrides and validates the result. Returns an
// empty Config if nothing is configured.
func Load(dir string) (Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read %s: %w", filepath.Join(dir, ".env"), err)
	}

	cfg, err := loadFile(dir)
	if err != nil {
		return Config{}, err
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(dir string) (Config, error) {
	candidates := []string{
		filepath.Join(dir, ".floodspectre.yaml"),
		filepath.Join(dir, ".floodspectre.yml"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}

		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	return Config{}, nil
}
