package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level tallyup.yaml configuration.
type Config struct {
	Currency CurrencyConfig `yaml:"currency"`
	Import   ImportConfig   `yaml:"import"`
}

// CurrencyConfig controls currency resolution when neither the CSV nor the
// mapping carries a currency.
type CurrencyConfig struct {
	Default string `yaml:"default"`
}

// ImportConfig controls the import-directory workflow.
type ImportConfig struct {
	// MarkProcessed moves imported CSVs to import/processed/ after a
	// successful run.
	MarkProcessed bool `yaml:"mark_processed"`
}

// Load reads a tallyup.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Currency.Default == "" {
		cfg.Currency.Default = DefaultCurrency
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// DefaultCurrency is used when the config names none.
const DefaultCurrency = "CNY"

// Default returns a Config with sensible defaults for a new data dir.
func Default() *Config {
	return &Config{
		Currency: CurrencyConfig{Default: DefaultCurrency},
		Import:   ImportConfig{MarkProcessed: true},
	}
}
