package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// Documented polling default: one telemetry fetch per minute.
const DefaultPollIntervalSec = 60

// LoadAppConfig loads and validates the application configuration from config.yml.
// Provider credentials may be overridden from the environment (optionally via
// a .env file): LIVETRACK_TELEMETRY_USERNAME, LIVETRACK_TELEMETRY_PASSWORD,
// LIVETRACK_ROUTING_APIKEY.
func LoadAppConfig() error {
	paths := []string{"config.yml", "./config/config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

// Parse unmarshals, validates and defaults a raw yaml document.
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, err
	}
	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *AppConfig) {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()
	if v := os.Getenv("LIVETRACK_TELEMETRY_USERNAME"); v != "" {
		cfg.Telemetry.Username = v
	}
	if v := os.Getenv("LIVETRACK_TELEMETRY_PASSWORD"); v != "" {
		cfg.Telemetry.Password = v
	}
	if v := os.Getenv("LIVETRACK_ROUTING_APIKEY"); v != "" {
		cfg.Routing.APIKey = v
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 16182
	}
	if cfg.Tracking.PollIntervalSec == 0 {
		cfg.Tracking.PollIntervalSec = DefaultPollIntervalSec
	}
	if cfg.Routing.TimeoutMS == 0 {
		cfg.Routing.TimeoutMS = 10000
	}
	if cfg.Telemetry.TimeoutMS == 0 {
		cfg.Telemetry.TimeoutMS = 10000
	}
	if cfg.Telemetry.AuthScheme == "" {
		cfg.Telemetry.AuthScheme = "Bearer"
	}
	if cfg.Telemetry.Mode == "" {
		cfg.Telemetry.Mode = "LIVE"
	}
}
