package qmeasure

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix = "QMEASURE_"
	maxWires  = 30
)

/*
Config describes a measurement device. Wires is the size of the register the
backend simulates, Shots the number of samples drawn when samples are needed,
and Analytic selects exact statistics over sampled estimates. A zero Seed
seeds the device randomly.
*/
type Config struct {
	Wires    int    `koanf:"wires"`
	Shots    int    `koanf:"shots"`
	Analytic bool   `koanf:"analytic"`
	Seed     uint64 `koanf:"seed"`
}

func NewConfig() *Config {
	return &Config{
		Wires:    1,
		Shots:    1000,
		Analytic: true,
	}
}

/*
LoadConfig reads a YAML device configuration and overlays QMEASURE_*
environment variables (QMEASURE_SHOTS -> shots). Keys missing from both keep
the defaults of NewConfig. An empty path loads the environment only.
*/
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := NewConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.Wires < 1 || cfg.Wires > maxWires {
		return fmt.Errorf("wires must be in [1, %d], got %d", maxWires, cfg.Wires)
	}

	if cfg.Shots < 0 {
		return fmt.Errorf("shots must not be negative, got %d", cfg.Shots)
	}

	if !cfg.Analytic && cfg.Shots == 0 {
		return fmt.Errorf("a non-analytic device needs at least one shot")
	}

	return nil
}
