package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for crm-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (client secret) must only come from environment variables.
type Config struct {
	Env     string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version string `yaml:"-"` // Set at load time, not from config

	// DealCloud tenant connection
	DealCloud DealCloudConfig `yaml:"dealcloud"`

	// Entity resolution tuning
	Match MatchConfig `yaml:"match"`
}

// DealCloudConfig holds the CRM tenant endpoint and OAuth client settings.
type DealCloudConfig struct {
	// BaseURL is the tenant root, e.g. https://firm.dealcloud.com
	BaseURL  string `yaml:"base_url" env:"DEALCLOUD_BASE_URL" env-default:""`
	ClientID string `yaml:"client_id" env:"DEALCLOUD_CLIENT_ID" env-default:""`
	// ClientSecret is a secret and must come from the environment.
	ClientSecret string `yaml:"-" env:"DEALCLOUD_CLIENT_SECRET"`
	// Scope requested during the client-credentials exchange.
	Scope string `yaml:"scope" env:"DEALCLOUD_SCOPE" env-default:"data user_management"`
	// TimeoutSeconds bounds each CRM round trip.
	TimeoutSeconds int `yaml:"timeout_seconds" env:"DEALCLOUD_TIMEOUT_SECONDS" env-default:"30"`
}

// MatchConfig holds entity-resolution settings.
type MatchConfig struct {
	// Threshold is the fuzzy-ratio cutoff (0-100). Candidates must score
	// strictly above it to count as a match.
	Threshold int `yaml:"threshold" env:"MATCH_THRESHOLD" env-default:"85"`

	// CompanyNameField is the API name of the Company entry type's name field.
	CompanyNameField string `yaml:"company_name_field" env:"MATCH_COMPANY_NAME_FIELD" env-default:"CompanyName"`

	// ContactEmailField is the API name of the Contact email field. When
	// empty it is resolved from the live schema at first use (tenants differ
	// between Email and EmailAddress).
	ContactEmailField string `yaml:"contact_email_field" env:"MATCH_CONTACT_EMAIL_FIELD" env-default:""`
}

// Load reads configuration from config.yaml (when present) with environment
// overrides, or from the environment alone.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate ensures the tenant connection settings are usable.
func (c *Config) validate() error {
	var missing []string
	if c.DealCloud.BaseURL == "" {
		missing = append(missing, "DEALCLOUD_BASE_URL")
	}
	if c.DealCloud.ClientID == "" {
		missing = append(missing, "DEALCLOUD_CLIENT_ID")
	}
	if c.DealCloud.ClientSecret == "" {
		missing = append(missing, "DEALCLOUD_CLIENT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	u, err := url.Parse(c.DealCloud.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("DEALCLOUD_BASE_URL must be an absolute URL, got %q", c.DealCloud.BaseURL)
	}

	if c.Match.Threshold < 0 || c.Match.Threshold > 100 {
		return fmt.Errorf("MATCH_THRESHOLD must be between 0 and 100, got %d", c.Match.Threshold)
	}

	return nil
}
