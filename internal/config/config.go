package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/algotrace/internal/algorithms"
)

const (
	DefaultAlgorithm    = "binary-search"
	DefaultBaseInterval = time.Second
	DefaultSpeed        = 1.0
	DefaultMinSpeed     = 0.25
	DefaultMaxSpeed     = 16.0
	DefaultLogLevel     = "info"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Algorithm string         `yaml:"algorithm"`
	Preset    string         `yaml:"preset,omitempty"`
	Params    map[string]any `yaml:"params,omitempty"`

	BaseInterval time.Duration `yaml:"base_interval"`
	Speed        float64       `yaml:"speed"`
	MinSpeed     float64       `yaml:"min_speed"`
	MaxSpeed     float64       `yaml:"max_speed"`

	LogLevel string `yaml:"log_level"`
	// LogJSON, when set, is a file that receives every log record as JSON.
	LogJSON string `yaml:"log_json,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm:    DefaultAlgorithm,
		Preset:       algorithms.DefaultPreset,
		BaseInterval: DefaultBaseInterval,
		Speed:        DefaultSpeed,
		MinSpeed:     DefaultMinSpeed,
		MaxSpeed:     DefaultMaxSpeed,
		LogLevel:     DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := algorithms.Parse(c.Algorithm); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.BaseInterval <= 0 {
		return fmt.Errorf("%w: base_interval must be positive, got %v", ErrInvalidConfig, c.BaseInterval)
	}
	if c.MinSpeed <= 0 || c.MaxSpeed < c.MinSpeed {
		return fmt.Errorf("%w: speed bounds [%v, %v]", ErrInvalidConfig, c.MinSpeed, c.MaxSpeed)
	}
	if c.Speed < c.MinSpeed || c.Speed > c.MaxSpeed {
		return fmt.Errorf("%w: speed %v outside [%v, %v]", ErrInvalidConfig, c.Speed, c.MinSpeed, c.MaxSpeed)
	}
	return nil
}

// ClampSpeed limits s to the configured speed bounds.
func (c *Config) ClampSpeed(s float64) float64 {
	return min(max(s, c.MinSpeed), c.MaxSpeed)
}

// Input resolves the configured algorithm, preset and params.
func (c *Config) Input() (algorithms.Kind, algorithms.Input, error) {
	k, err := algorithms.Parse(c.Algorithm)
	if err != nil {
		return 0, algorithms.Input{}, err
	}
	in, err := algorithms.Resolve(k, c.Preset, c.Params)
	if err != nil {
		return 0, algorithms.Input{}, err
	}
	return k, in, nil
}
