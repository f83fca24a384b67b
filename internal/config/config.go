package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML balance configuration loaded at startup.
type Config struct {
	Version   string    `yaml:"version" json:"version"`
	SeededRNG SeededRNG `yaml:"seeded_rng" json:"seeded_rng"`
	Clock     Clock     `yaml:"clock" json:"clock"`
	Economy   Economy   `yaml:"economy" json:"economy"`
	Shop      Shop      `yaml:"shop" json:"shop"`
}

// SeededRNG pins the random source for reproducible sessions.
type SeededRNG struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Seed    uint64 `yaml:"seed" json:"seed"`
}

type Clock struct {
	// TickRateMS is the wall-clock duration of one game hour.
	TickRateMS int `yaml:"tick_rate_ms" json:"tick_rate_ms"`
}

type Economy struct {
	StartingCurrency float64 `yaml:"starting_currency" json:"starting_currency"`
	// BaseResourceRate is the per-real-second trickle before sync
	// scaling.
	BaseResourceRate float64 `yaml:"base_resource_rate" json:"base_resource_rate"`
}

type Shop struct {
	Slots          int `yaml:"slots" json:"slots"`
	RestockDelayMS int `yaml:"restock_delay_ms" json:"restock_delay_ms"`
}

func (c *Config) ApplyDefaults() {
	if c.Clock.TickRateMS == 0 {
		c.Clock.TickRateMS = 30000
	}
	if c.Economy.StartingCurrency == 0 {
		c.Economy.StartingCurrency = 4999
	}
	if c.Economy.BaseResourceRate == 0 {
		c.Economy.BaseResourceRate = 0.05
	}
	if c.Shop.Slots == 0 {
		c.Shop.Slots = 3
	}
	if c.Shop.RestockDelayMS == 0 {
		c.Shop.RestockDelayMS = 4000
	}
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Config
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	return &r, nil
}
