package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level ledgerdesk.yaml configuration.
type Config struct {
	Remote   RemoteConfig   `yaml:"remote"`
	Currency CurrencyConfig `yaml:"currency"`
	Accounts AccountsConfig `yaml:"accounts"`
	Audit    AuditConfig    `yaml:"audit"`
}

// RemoteConfig points at the remote ledger service.
type RemoteConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// CurrencyConfig holds the application-wide currency settings.
type CurrencyConfig struct {
	Base string `yaml:"base"`
}

// AccountsConfig locates the local account snapshot.
type AccountsConfig struct {
	SnapshotPath string `yaml:"snapshot_path"`
}

// AuditConfig controls the local save audit log.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// Load reads a ledgerdesk.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
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

// Default returns a Config with sensible defaults for a new workspace.
func Default(baseURL, baseCurrency string) *Config {
	return &Config{
		Remote: RemoteConfig{
			BaseURL:        baseURL,
			TimeoutSeconds: 30,
		},
		Currency: CurrencyConfig{
			Base: baseCurrency,
		},
		Accounts: AccountsConfig{
			SnapshotPath: "accounts.csv",
		},
		Audit: AuditConfig{
			Enabled: true,
			Dir:     "logs",
		},
	}
}
