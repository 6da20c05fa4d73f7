package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port        int `yaml:"port"`
		MetricsPort int `yaml:"metrics_port"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"` // sqlite3 or postgres
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`

	LLM struct {
		Provider string `yaml:"provider"` // openai or azure_openai
		Model    string `yaml:"model"`
	} `yaml:"llm"`

	Auth struct {
		JWTSecret  string `yaml:"jwt_secret"`
		SigningKey string `yaml:"proposal_signing_key"`
	} `yaml:"auth"`
}

// Load reads the configuration file and applies defaults. Secrets (API keys)
// come from the environment, not the file.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Server.MetricsPort = 9090
	cfg.Database.Driver = "sqlite3"
	cfg.Database.DSN = "mise.db"
	cfg.LLM.Provider = "openai"
	cfg.LLM.Model = "gpt-4o-mini"

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = os.Getenv("MISE_JWT_SECRET")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret (or MISE_JWT_SECRET) is required")
	}

	return cfg, nil
}
