// Package config loads the benchmark settings from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable names. The engine variables match what the OCR
// deployment already exports.
const (
	ConfigPathEnv      = "OCR_SIMILARITY_CONFIG"
	EngineURLEnv       = "OCR_ENDPOINT_URL"
	EngineAPIKeyEnv    = "RUNPOD_API_KEY"
	StorageEndpointEnv = "R2_ENDPOINT"
	ThresholdEnv       = "OCR_SIMILARITY_THRESHOLD"
)

// Config holds settings for the comparison commands and server.
type Config struct {
	Comparison ComparisonConfig `yaml:"comparison"`
	Engine     EngineConfig     `yaml:"engine"`
	Storage    StorageConfig    `yaml:"storage"`
	Report     ReportConfig     `yaml:"report"`
}

// ComparisonConfig tunes the scoring.
type ComparisonConfig struct {
	// Threshold is the pass/fail boundary on the 0-100 scale.
	Threshold float64 `yaml:"threshold"`
	// Precision is the decimal places of the score.
	Precision int `yaml:"precision"`
}

// EngineConfig describes the remote recognition endpoint.
type EngineConfig struct {
	URL            string `yaml:"url"`
	APIKey         string `yaml:"apiKey"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// Timeout resolves the configured engine timeout.
func (e EngineConfig) Timeout() time.Duration {
	if e.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(e.TimeoutSeconds) * time.Second
}

// StorageConfig describes the object store holding benchmark inputs.
type StorageConfig struct {
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`
	Profile  string `yaml:"profile"`
}

// ReportConfig tunes report rendering.
type ReportConfig struct {
	Title string `yaml:"title"`
	// TopMissing caps the missing-word histogram.
	TopMissing int `yaml:"topMissing"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Comparison: ComparisonConfig{Threshold: 70, Precision: 3},
		Engine:     EngineConfig{Model: "doctr", TimeoutSeconds: 600},
		Storage:    StorageConfig{Region: "auto"},
		Report:     ReportConfig{Title: "Batch OCR Report", TopMissing: 20},
	}
}

// Load reads YAML configuration from the path in OCR_SIMILARITY_CONFIG (if
// set) and applies environment overrides on top of the defaults.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(ConfigPathEnv); path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	cfg.applyEnvOverrides()
	return cfg, cfg.Validate()
}

// LoadFile reads YAML configuration from path over the defaults.
func LoadFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EngineURLEnv); v != "" {
		c.Engine.URL = v
	}
	if v := os.Getenv(EngineAPIKeyEnv); v != "" {
		c.Engine.APIKey = v
	}
	if v := os.Getenv(StorageEndpointEnv); v != "" {
		c.Storage.Endpoint = v
	}
	if v := os.Getenv(ThresholdEnv); v != "" {
		if th, err := strconv.ParseFloat(v, 64); err == nil {
			c.Comparison.Threshold = th
		}
	}
}

// Validate checks the loaded values.
func (c Config) Validate() error {
	if c.Comparison.Threshold < 0 || c.Comparison.Threshold > 100 {
		return fmt.Errorf("config: threshold %v out of range [0, 100]", c.Comparison.Threshold)
	}
	if c.Comparison.Precision < 0 {
		return fmt.Errorf("config: precision %d must not be negative", c.Comparison.Precision)
	}
	if c.Report.TopMissing < 0 {
		return fmt.Errorf("config: topMissing %d must not be negative", c.Report.TopMissing)
	}
	return nil
}
