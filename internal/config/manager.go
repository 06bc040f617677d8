// Package config handles the operator's persistent configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the operator's persistent preferences. Values set here are
// exported into the process environment at startup, so a saved config
// survives shell sessions without .env files.
type Config struct {
	LLMProvider        string `json:"llm_provider,omitempty"` // openai, anthropic, deepseek, ...
	APIKey             string `json:"api_key,omitempty"`
	Model              string `json:"model,omitempty"`
	BaseURL            string `json:"base_url,omitempty"`
	ObservabilityURL   string `json:"observability_url,omitempty"`
	ObservabilityToken string `json:"observability_token,omitempty"`
}

// Manager handles loading and saving the configuration.
type Manager struct {
	configDir string
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user config dir: %w", err)
	}
	return &Manager{configDir: filepath.Join(configDir, "sreagent")}, nil
}

// GetConfigPath returns the absolute path to the config.json file.
func (m *Manager) GetConfigPath() string {
	return filepath.Join(m.configDir, "config.json")
}

// Load reads the configuration from disk. A missing file returns an empty
// Config and no error.
func (m *Manager) Load() (*Config, error) {
	path := m.GetConfigPath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config json: %w", err)
	}
	return &cfg, nil
}

// Save writes the configuration to disk with restricted permissions (0600).
func (m *Manager) Save(cfg *Config) error {
	if err := os.MkdirAll(m.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0600: the file holds API keys.
	if err := os.WriteFile(m.GetConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ExportToEnv populates environment variables from the saved config.
// Explicit config values override whatever is already in the shell
// environment, so a saved setup wins over stale exports.
func (cfg *Config) ExportToEnv() {
	if cfg.LLMProvider != "" {
		os.Setenv("LLM_PROVIDER", cfg.LLMProvider)
	}
	if cfg.APIKey != "" {
		switch cfg.LLMProvider {
		case "anthropic":
			os.Setenv("ANTHROPIC_API_KEY", cfg.APIKey)
		case "deepseek":
			os.Setenv("DEEPSEEK_API_KEY", cfg.APIKey)
		case "groq":
			os.Setenv("GROQ_API_KEY", cfg.APIKey)
		default:
			os.Setenv("OPENAI_API_KEY", cfg.APIKey)
		}
	}
	if cfg.Model != "" {
		os.Setenv("MODEL_NAME", cfg.Model)
	}
	if cfg.BaseURL != "" {
		os.Setenv("OPENAI_BASE_URL", cfg.BaseURL)
	}
	if cfg.ObservabilityURL != "" {
		os.Setenv("OBSERVABILITY_STACK_URL", cfg.ObservabilityURL)
	}
	if cfg.ObservabilityToken != "" {
		os.Setenv("OBSERVABILITY_STACK_SERVICE_ACCOUNT_TOKEN", cfg.ObservabilityToken)
	}
}
