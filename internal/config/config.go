package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Sources  SourcesConfig  `yaml:"sources" envconfig:"SOURCES"`
	Geo      GeoConfig      `yaml:"geo" envconfig:"GEO"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
}

// ServerConfig contains HTTP server configuration for the data API
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/housepulse.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// SourcesConfig locates the three monthly market exports. Each location may be
// an http(s) URL or a local file path; the fetcher decides by scheme.
type SourcesConfig struct {
	National     string        `yaml:"national" envconfig:"NATIONAL" default:"data/national_data.csv" validate:"required"`
	State        string        `yaml:"state" envconfig:"STATE" default:"data/state_data.csv" validate:"required"`
	Metro        string        `yaml:"metro" envconfig:"METRO" default:"data/metro_data.csv" validate:"required"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" envconfig:"FETCH_TIMEOUT" default:"2m"`
}

// GeoConfig configures the coordinate catalog and the optional geocoding fallback.
type GeoConfig struct {
	CBSACoordinates string        `yaml:"cbsa_coordinates" envconfig:"CBSA_COORDINATES" default:"data/cbsa_coordinates.csv"`
	GeocoderURL     string        `yaml:"geocoder_url" envconfig:"GEOCODER_URL"` // empty disables the fallback
	GeocoderRPS     float64       `yaml:"geocoder_rps" envconfig:"GEOCODER_RPS" default:"1"`
	GeocoderTimeout time.Duration `yaml:"geocoder_timeout" envconfig:"GEOCODER_TIMEOUT" default:"10s"`
}

// AnalysisConfig tunes the reconciler acceptance threshold.
type AnalysisConfig struct {
	MinConfidence float64 `yaml:"min_confidence" envconfig:"MIN_CONFIDENCE" default:"0.5" validate:"gte=0,lte=1"`
}

// envPrefix namespaces all environment variables (e.g. HP_SOURCES_NATIONAL).
const envPrefix = "HP"

// Load loads configuration from an optional YAML file overlaid by environment
// variables. Env values take precedence over file values.
func Load() (*Config, error) {
	return LoadFrom(configFilePath())
}

// LoadFrom loads configuration using an explicit config file path. A missing
// file is not an error; defaults plus environment variables apply.
func LoadFrom(configFile string) (*Config, error) {
	var cfg Config

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileCfg, err := loadFromFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			cfg = *fileCfg
		}
	}

	// envconfig fills zero-valued fields from defaults and overrides from env.
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks structural constraints on the loaded configuration
func (c *Config) validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}
	if c.Sources.FetchTimeout <= 0 {
		return fmt.Errorf("sources fetch_timeout must be positive, got %s", c.Sources.FetchTimeout)
	}
	if c.Geo.GeocoderURL != "" && c.Geo.GeocoderRPS <= 0 {
		return fmt.Errorf("geocoder_rps must be positive when a geocoder is configured")
	}
	return nil
}

// configFilePath returns the default config file location, overridable via env
func configFilePath() string {
	if p := os.Getenv(envPrefix + "_CONFIG_FILE"); p != "" {
		return p
	}
	return "config.yaml"
}
