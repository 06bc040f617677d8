package main

import (
	"log"

	"github.com/lumynops/sreagent/internal/config"
)

// configFlags carries the -configure flag values.
type configFlags struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	ObsURL   string
	ObsToken string
}

// apply overlays the non-empty flag values on cfg, so repeated -configure
// invocations update settings incrementally instead of wiping them.
func (f configFlags) apply(cfg *config.Config) {
	if f.Provider != "" {
		cfg.LLMProvider = f.Provider
	}
	if f.APIKey != "" {
		cfg.APIKey = f.APIKey
	}
	if f.Model != "" {
		cfg.Model = f.Model
	}
	if f.BaseURL != "" {
		cfg.BaseURL = f.BaseURL
	}
	if f.ObsURL != "" {
		cfg.ObservabilityURL = f.ObsURL
	}
	if f.ObsToken != "" {
		cfg.ObservabilityToken = f.ObsToken
	}
}

// saveOperatorConfig merges the flag values into the saved operator config.
func saveOperatorConfig(flags configFlags) error {
	manager, err := config.NewManager()
	if err != nil {
		return err
	}
	cfg, err := manager.Load()
	if err != nil {
		return err
	}
	flags.apply(cfg)
	if err := manager.Save(cfg); err != nil {
		return err
	}
	log.Printf("Configuration saved to %s", manager.GetConfigPath())
	return nil
}
