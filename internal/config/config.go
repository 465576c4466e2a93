package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Backend API settings
	API APIConfig `yaml:"api"`

	// Invoice settings
	Invoice InvoiceConfig `yaml:"invoice"`
}

type APIConfig struct {
	BaseURL string `yaml:"base_url"` // e.g. http://localhost:5000/api
}

type InvoiceConfig struct {
	OutputDir      string `yaml:"output_dir"`       // Directory for downloaded PDFs
	DefaultDueDays int    `yaml:"default_due_days"` // Pre-filled due date offset in forms
}

// DefaultConfigPath returns ~/.config/invoicepro/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "invoicepro", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "invoicepro", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:5000/api",
		},
		Invoice: InvoiceConfig{
			OutputDir:      filepath.Join(homeDir, ".config", "invoicepro", "invoices"),
			DefaultDueDays: 30,
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// INVOICEPRO_API_URL beats the file, for pointing at a staging backend
	if url := os.Getenv("INVOICEPRO_API_URL"); url != "" {
		cfg.API.BaseURL = url
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the download output directory
func (c *Config) EnsureDirectories() error {
	return os.MkdirAll(c.Invoice.OutputDir, 0755)
}
